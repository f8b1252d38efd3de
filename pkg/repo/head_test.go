package repo

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ASolomatin/GitContext/pkg/object"
)

func TestResolveHeadOnBranch(t *testing.T) {
	_, gitDir := initGitDir(t)
	commit := writeCommitObject(t, gitDir, testAuthorLine, "initial\n")

	head, err := resolveHead(gitDir)
	if err != nil {
		t.Fatalf("resolveHead: %v", err)
	}
	if head.Detached {
		t.Fatalf("Detached = true on a branch")
	}
	if head.Branch != "main" {
		t.Fatalf("Branch = %q, want main", head.Branch)
	}
	if head.CommitHash != commit {
		t.Fatalf("CommitHash = %q, want %q", head.CommitHash, commit)
	}
	if head.Ref != "ref: refs/heads/main" {
		t.Fatalf("Ref = %q", head.Ref)
	}
}

func TestResolveHeadDetached(t *testing.T) {
	_, gitDir := initGitDir(t)
	commit := writeCommitObject(t, gitDir, testAuthorLine, "initial\n")
	writeFile(t, filepath.Join(gitDir, "HEAD"), string(commit)+"\n")

	head, err := resolveHead(gitDir)
	if err != nil {
		t.Fatalf("resolveHead: %v", err)
	}
	if !head.Detached {
		t.Fatalf("Detached = false for a bare hash HEAD")
	}
	if head.Branch != "" {
		t.Fatalf("Branch = %q on detached HEAD, want empty", head.Branch)
	}
	if head.CommitHash != commit {
		t.Fatalf("CommitHash = %q, want %q", head.CommitHash, commit)
	}
}

// Exactly one of {detached, branch present} holds for every resolved
// HEAD.
func TestResolveHeadExclusivity(t *testing.T) {
	_, gitDir := initGitDir(t)
	commit := writeCommitObject(t, gitDir, testAuthorLine, "initial\n")

	for _, headContent := range []string{"ref: refs/heads/main\n", string(commit) + "\n"} {
		writeFile(t, filepath.Join(gitDir, "HEAD"), headContent)
		head, err := resolveHead(gitDir)
		if err != nil {
			t.Fatalf("resolveHead(%q): %v", headContent, err)
		}
		if head.Detached == (head.Branch != "") {
			t.Fatalf("HEAD %q: Detached=%v Branch=%q, want exactly one", headContent, head.Detached, head.Branch)
		}
	}
}

func TestResolveHeadRefOutsideHeads(t *testing.T) {
	_, gitDir := initGitDir(t)
	writeFile(t, filepath.Join(gitDir, "HEAD"), "ref: refs/remotes/origin/main\n")

	if _, err := resolveHead(gitDir); !errors.Is(err, object.ErrMalformed) {
		t.Fatalf("resolveHead = %v, want ErrMalformed", err)
	}
}

func TestResolveHeadMissingBranchRef(t *testing.T) {
	_, gitDir := initGitDir(t)
	writeFile(t, filepath.Join(gitDir, "HEAD"), "ref: refs/heads/gone\n")

	if _, err := resolveHead(gitDir); !errors.Is(err, object.ErrNotFound) {
		t.Fatalf("resolveHead = %v, want ErrNotFound", err)
	}
}

func TestResolveHeadBadBranchRefContent(t *testing.T) {
	_, gitDir := initGitDir(t)
	writeFile(t, filepath.Join(gitDir, "refs", "heads", "main"), "not a hash\n")

	if _, err := resolveHead(gitDir); !errors.Is(err, object.ErrMalformed) {
		t.Fatalf("resolveHead = %v, want ErrMalformed", err)
	}
}

func TestResolveHeadBadDetachedContent(t *testing.T) {
	_, gitDir := initGitDir(t)
	writeFile(t, filepath.Join(gitDir, "HEAD"), strings.Repeat("z", 40)+"\n")

	if _, err := resolveHead(gitDir); !errors.Is(err, object.ErrMalformed) {
		t.Fatalf("resolveHead = %v, want ErrMalformed", err)
	}
}
