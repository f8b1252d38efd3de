package repo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ASolomatin/GitContext/pkg/object"
)

// probe abstracts the existence checks discovery performs, so the
// upward walk can run against a simulated tree in tests.
type probe interface {
	dirExists(path string) bool
	fileExists(path string) bool
}

type diskProbe struct{}

func (diskProbe) dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (diskProbe) fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Discover searches upward from start for a repository root: a
// directory whose .git subdirectory is a directory holding a HEAD file
// and an objects directory. It returns the .git directory path.
// Reaching the filesystem root without a match is ErrNotFound.
func Discover(start string) (string, error) {
	return discover(start, diskProbe{})
}

func discover(start string, fs probe) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("discover: abs path: %w", err)
	}

	cur := abs
	for {
		gitDir := filepath.Join(cur, ".git")
		if fs.dirExists(gitDir) &&
			fs.fileExists(filepath.Join(gitDir, "HEAD")) &&
			fs.dirExists(filepath.Join(gitDir, "objects")) {
			return gitDir, nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			// Reached filesystem root without finding a repository.
			return "", fmt.Errorf("discover: no git repository at or above %s: %w", abs, object.ErrNotFound)
		}
		cur = parent
	}
}
