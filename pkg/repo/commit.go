package repo

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/ASolomatin/GitContext/pkg/object"
)

// CommitInfo is the metadata extracted from the HEAD commit object.
// Date keeps the author's recorded UTC offset; it is provenance, not a
// normalized instant.
type CommitInfo struct {
	Hash    object.Hash
	Author  string // "name <email>"
	Date    time.Time
	Message string // may be empty, never means "absent"
	Parents []object.Hash
}

// Author line: "name <email> epochSeconds ±HHMM".
var authorPattern = regexp.MustCompile(`^(.*) <(.*)> (\d+) ([+-])(\d{2})(\d{2})$`)

// readCommit decodes the commit object for hash. Unknown header fields
// (tree, committer, gpgsig, anything newer) are skipped; a missing or
// unparsable author line, or an invalid parent hash, is malformed.
func readCommit(gitDir string, hash object.Hash) (*CommitInfo, error) {
	dec, err := object.Open(filepath.Join(gitDir, "objects"), hash)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	objType, err := dec.ReadHeader()
	if err != nil {
		return nil, err
	}
	if objType != object.TypeCommit {
		return nil, fmt.Errorf("object %s: type %q, want %q: %w", hash, objType, object.TypeCommit, object.ErrMalformed)
	}

	info := &CommitInfo{Hash: hash}
	haveAuthor := false
	for {
		key, value, ok, err := dec.ReadField()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		switch key {
		case "author":
			author, date, err := parseAuthor(value)
			if err != nil {
				return nil, fmt.Errorf("commit %s: %w", hash, err)
			}
			info.Author = author
			info.Date = date
			haveAuthor = true
		case "parent":
			parent := object.Hash(value)
			if !parent.IsValid() {
				return nil, fmt.Errorf("commit %s: invalid parent %q: %w", hash, value, object.ErrMalformed)
			}
			info.Parents = append(info.Parents, parent)
		}
	}
	if !haveAuthor {
		return nil, fmt.Errorf("commit %s: no author field: %w", hash, object.ErrMalformed)
	}

	message, err := dec.ReadBody()
	if err != nil {
		return nil, err
	}
	info.Message = message
	return info, nil
}

// parseAuthor splits an author value into the display identity and the
// authorship instant. The epoch seconds are UTC; the ±HHMM offset is
// attached as the instant's reporting zone without shifting it.
func parseAuthor(value string) (string, time.Time, error) {
	m := authorPattern.FindStringSubmatch(value)
	if m == nil {
		return "", time.Time{}, fmt.Errorf("author line %q: %w", value, object.ErrMalformed)
	}

	epoch, err := strconv.ParseInt(m[3], 10, 64)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("author line %q: epoch: %w", value, object.ErrMalformed)
	}

	hours, _ := strconv.Atoi(m[5])
	minutes, _ := strconv.Atoi(m[6])
	offset := (hours*60 + minutes) * 60
	if m[4] == "-" {
		offset = -offset
	}
	zone := time.FixedZone(m[4]+m[5]+m[6], offset)

	author := fmt.Sprintf("%s <%s>", m[1], m[2])
	return author, time.Unix(epoch, 0).In(zone), nil
}
