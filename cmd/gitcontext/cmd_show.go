package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ASolomatin/GitContext/pkg/repo"
)

// metadata mirrors the reader's accessor contract: the eight published
// fields, in a shape every output encoder can serialize.
type metadata struct {
	CommitHash string   `json:"commitHash" toml:"commit_hash"`
	Branch     string   `json:"branch" toml:"branch"`
	Detached   bool     `json:"detached" toml:"detached"`
	Author     string   `json:"author" toml:"author"`
	Date       string   `json:"date" toml:"date"`
	Message    string   `json:"message" toml:"message"`
	Parents    []string `json:"parents" toml:"parents"`
	Tags       []string `json:"tags" toml:"tags"`
}

func newShowCmd() *cobra.Command {
	var (
		dir     string
		strict  bool
		format  string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print metadata for the enclosing repository's HEAD commit",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []repo.Option{repo.WithDir(dir)}
			if strict {
				opts = append(opts, repo.Strict())
			}
			if verbose {
				log, err := zap.NewDevelopment()
				if err != nil {
					return fmt.Errorf("logger: %w", err)
				}
				defer log.Sync()
				opts = append(opts, repo.WithLogger(log))
			}

			meta, err := collect(repo.NewReader(opts...))
			if err != nil {
				return err
			}

			switch format {
			case "text":
				printText(meta)
				return nil
			case "json":
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(meta)
			case "toml":
				return toml.NewEncoder(os.Stdout).Encode(meta)
			default:
				return fmt.Errorf("unknown format %q (want text, json, or toml)", format)
			}
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "directory to start the repository search from")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on missing or malformed repository state")
	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json, or toml")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log swallowed failures to stderr")
	return cmd
}

// collect drives all eight accessors. In lenient mode every call
// returns a nil error and absent values come back as defaults.
func collect(r *repo.Reader) (*metadata, error) {
	meta := &metadata{}
	var err error

	if meta.CommitHash, err = r.CommitHash(); err != nil {
		return nil, err
	}
	if meta.Branch, err = r.Branch(); err != nil {
		return nil, err
	}
	if meta.Detached, err = r.IsDetached(); err != nil {
		return nil, err
	}
	if meta.Author, err = r.Author(); err != nil {
		return nil, err
	}
	var date time.Time
	if date, err = r.Date(); err != nil {
		return nil, err
	}
	if !date.IsZero() {
		meta.Date = date.Format("Mon Jan 2 15:04:05 2006 -0700")
	}
	if meta.Message, err = r.Message(); err != nil {
		return nil, err
	}
	if meta.Parents, err = r.Parents(); err != nil {
		return nil, err
	}
	if meta.Tags, err = r.Tags(); err != nil {
		return nil, err
	}
	return meta, nil
}

func printText(meta *metadata) {
	fmt.Printf("commit   %s\n", meta.CommitHash)
	if meta.Detached {
		fmt.Println("branch   (detached)")
	} else {
		fmt.Printf("branch   %s\n", meta.Branch)
	}
	fmt.Printf("author   %s\n", meta.Author)
	fmt.Printf("date     %s\n", meta.Date)
	for _, p := range meta.Parents {
		fmt.Printf("parent   %s\n", p)
	}
	for _, t := range meta.Tags {
		fmt.Printf("tag      %s\n", t)
	}
	fmt.Printf("\n%s\n", meta.Message)
}
