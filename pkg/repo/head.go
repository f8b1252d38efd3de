package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ASolomatin/GitContext/pkg/object"
)

// HeadInfo is the resolved state of HEAD. Branch is non-empty exactly
// when Detached is false.
type HeadInfo struct {
	Ref        string      // raw trimmed HEAD content
	Branch     string      // branch name, "" when detached
	CommitHash object.Hash // commit HEAD ultimately points at
	Detached   bool
}

const branchRefPrefix = "refs/heads/"

// resolveHead reads <gitDir>/HEAD and resolves it to a commit hash.
// "ref: refs/heads/<branch>" is followed through the branch ref file;
// any other "ref: " target is malformed (only the heads namespace is
// supported). Bare content must itself be a valid hash (detached).
func resolveHead(gitDir string) (*HeadInfo, error) {
	data, err := os.ReadFile(filepath.Join(gitDir, "HEAD"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("read HEAD: %w", object.ErrNotFound)
		}
		return nil, fmt.Errorf("read HEAD: %w", err)
	}
	content := strings.TrimSpace(string(data))

	if ref, isSymbolic := strings.CutPrefix(content, "ref: "); isSymbolic {
		branch, ok := strings.CutPrefix(ref, branchRefPrefix)
		if !ok {
			return nil, fmt.Errorf("HEAD ref %q: outside %s: %w", ref, branchRefPrefix, object.ErrMalformed)
		}

		refData, err := os.ReadFile(filepath.Join(gitDir, filepath.FromSlash(ref)))
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("read ref %q: %w", ref, object.ErrNotFound)
			}
			return nil, fmt.Errorf("read ref %q: %w", ref, err)
		}

		hash := object.Hash(strings.TrimSpace(string(refData)))
		if !hash.IsValid() {
			return nil, fmt.Errorf("ref %q: invalid hash %q: %w", ref, hash, object.ErrMalformed)
		}
		return &HeadInfo{Ref: content, Branch: branch, CommitHash: hash}, nil
	}

	hash := object.Hash(content)
	if !hash.IsValid() {
		return nil, fmt.Errorf("detached HEAD: invalid hash %q: %w", content, object.ErrMalformed)
	}
	return &HeadInfo{Ref: content, CommitHash: hash, Detached: true}, nil
}
