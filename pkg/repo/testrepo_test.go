package repo

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zlib"

	"github.com/ASolomatin/GitContext/pkg/object"
)

// initGitDir builds a minimal .git tree (HEAD on main, objects/,
// refs/heads/, refs/tags/) under a temp dir and returns both roots.
func initGitDir(t *testing.T) (root, gitDir string) {
	t.Helper()

	root = t.TempDir()
	gitDir = filepath.Join(root, ".git")
	for _, d := range []string{
		filepath.Join(gitDir, "objects"),
		filepath.Join(gitDir, "refs", "heads"),
		filepath.Join(gitDir, "refs", "tags"),
	} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", d, err)
		}
	}
	writeFile(t, filepath.Join(gitDir, "HEAD"), "ref: refs/heads/main\n")
	return root, gitDir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// writeObject stores a zlib-compressed loose object and returns its
// real SHA-1 hash.
func writeObject(t *testing.T, gitDir, objType string, content []byte) object.Hash {
	t.Helper()

	header := fmt.Sprintf("%s %d\x00", objType, len(content))
	sum := sha1.New()
	sum.Write([]byte(header))
	sum.Write(content)
	h := object.Hash(hex.EncodeToString(sum.Sum(nil)))

	dir := filepath.Join(gitDir, "objects", string(h[:2]))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write([]byte(header)); err != nil {
		t.Fatalf("compress header: %v", err)
	}
	if _, err := zw.Write(content); err != nil {
		t.Fatalf("compress content: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("compress close: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, string(h[2:])), buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write object: %v", err)
	}
	return h
}

// writeCommitObject stores a commit with the given author line,
// parents, and message, points refs/heads/main at it, and returns its
// hash.
func writeCommitObject(t *testing.T, gitDir, authorLine, message string, parents ...object.Hash) object.Hash {
	t.Helper()

	var buf bytes.Buffer
	buf.WriteString("tree 4b825dc642cb6eb9a060e54bf8d69288fbee4904\n")
	for _, p := range parents {
		fmt.Fprintf(&buf, "parent %s\n", p)
	}
	fmt.Fprintf(&buf, "author %s\n", authorLine)
	fmt.Fprintf(&buf, "committer %s\n", authorLine)
	buf.WriteString("\n")
	buf.WriteString(message)

	h := writeObject(t, gitDir, "commit", buf.Bytes())
	writeFile(t, filepath.Join(gitDir, "refs", "heads", "main"), string(h)+"\n")
	return h
}

const testAuthorLine = "A U Thor <a@b.c> 1700000000 +0200"
