package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ASolomatin/GitContext/pkg/object"
)

// TagInfo is a tag pointing at the current HEAD commit. Message is
// only set for annotated tags; Annotated distinguishes an empty
// annotated message from a lightweight tag.
type TagInfo struct {
	Commit    object.Hash
	Name      string // ref filename under refs/tags
	Message   string
	Annotated bool
}

// resolveTags enumerates refs/tags and returns the tags whose target
// is commit. Only direct children are read; nested tag namespaces
// (refs/tags/foo/bar) are skipped. Refs that do not resolve to commit
// are dropped silently: tags unrelated to HEAD are steady state, not a
// fault.
func resolveTags(gitDir string, commit object.Hash) ([]TagInfo, error) {
	tagsDir := filepath.Join(gitDir, "refs", "tags")
	entries, err := os.ReadDir(tagsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list tags: %w", err)
	}

	var tags []TagInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(tagsDir, e.Name()))
		if err != nil {
			continue
		}
		target := object.Hash(strings.TrimSpace(string(data)))

		if target == commit {
			// Lightweight tag on the HEAD commit; no object to decode.
			tags = append(tags, TagInfo{Commit: target, Name: e.Name()})
			continue
		}
		if tag, ok := readAnnotatedTag(gitDir, target, commit, e.Name()); ok {
			tags = append(tags, tag)
		}
	}
	return tags, nil
}

// readAnnotatedTag decodes target as a tag object and checks that it
// annotates commit: type "tag", object field equal to commit, type
// field "commit". Anything else reports ok=false and the ref is
// excluded from the published list.
func readAnnotatedTag(gitDir string, target, commit object.Hash, name string) (TagInfo, bool) {
	if !target.IsValid() {
		return TagInfo{}, false
	}

	dec, err := object.Open(filepath.Join(gitDir, "objects"), target)
	if err != nil {
		return TagInfo{}, false
	}
	defer dec.Close()

	objType, err := dec.ReadHeader()
	if err != nil || objType != object.TypeTag {
		return TagInfo{}, false
	}

	var tagged object.Hash
	var taggedType string
	for {
		key, value, ok, err := dec.ReadField()
		if err != nil {
			return TagInfo{}, false
		}
		if !ok {
			break
		}
		switch key {
		case "object":
			tagged = object.Hash(value)
		case "type":
			taggedType = value
		}
	}
	if !tagged.IsValid() || tagged != commit || taggedType != object.TypeCommit {
		return TagInfo{}, false
	}

	message, err := dec.ReadBody()
	if err != nil {
		return TagInfo{}, false
	}
	return TagInfo{Commit: commit, Name: name, Message: message, Annotated: true}, true
}
