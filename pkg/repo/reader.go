package repo

import (
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Reader extracts version-control metadata for the repository
// enclosing a starting directory, straight from the on-disk object
// store. Each backing value (HEAD state, commit metadata, tag list) is
// computed at most once per Reader; concurrent callers of any accessor
// block on the same in-flight computation and observe the same settled
// result.
//
// In the default lenient mode every failure is swallowed at the point
// of detection: a diagnostic goes to the configured logger and the
// affected accessors return their zero defaults. In strict mode the
// accessor that triggered the computation returns the error;
// already-cached sibling values are unaffected.
type Reader struct {
	startDir string
	strict   bool
	log      *zap.Logger

	gitDir string // set by the head cell

	headOnce sync.Once
	head     *HeadInfo
	headErr  error

	commitOnce sync.Once
	commit     *CommitInfo
	commitErr  error

	tagsOnce sync.Once
	tags     []TagInfo
	tagsErr  error

	loads atomic.Int32 // backing computations performed, observable in tests
}

// Option configures a Reader.
type Option func(*Reader)

// WithDir sets the directory the repository search starts from. The
// default is the process working directory.
func WithDir(dir string) Option {
	return func(r *Reader) { r.startDir = dir }
}

// Strict makes accessor calls return discovery and parse failures
// instead of degrading to defaults.
func Strict() Option {
	return func(r *Reader) { r.strict = true }
}

// WithLogger sets the logger lenient-mode diagnostics are emitted to.
// The default is a nop logger.
func WithLogger(log *zap.Logger) Option {
	return func(r *Reader) { r.log = log }
}

// NewReader creates a Reader. No filesystem access happens until the
// first accessor call.
func NewReader(opts ...Option) *Reader {
	r := &Reader{startDir: ".", log: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Reader) loadHead() (*HeadInfo, error) {
	r.headOnce.Do(func() {
		r.loads.Add(1)
		gitDir, err := discover(r.startDir, diskProbe{})
		if err != nil {
			r.headErr = err
			r.log.Warn("repository discovery failed", zap.String("start", r.startDir), zap.Error(err))
			return
		}
		r.gitDir = gitDir

		r.head, r.headErr = resolveHead(gitDir)
		if r.headErr != nil {
			r.log.Warn("HEAD resolution failed", zap.String("gitDir", gitDir), zap.Error(r.headErr))
		}
	})
	return r.head, r.headErr
}

func (r *Reader) loadCommit() (*CommitInfo, error) {
	r.commitOnce.Do(func() {
		head, err := r.loadHead()
		if err != nil {
			r.commitErr = err
			return
		}

		r.loads.Add(1)
		r.commit, r.commitErr = readCommit(r.gitDir, head.CommitHash)
		if r.commitErr != nil {
			r.log.Warn("commit decode failed", zap.String("hash", string(head.CommitHash)), zap.Error(r.commitErr))
		}
	})
	return r.commit, r.commitErr
}

func (r *Reader) loadTags() ([]TagInfo, error) {
	r.tagsOnce.Do(func() {
		head, err := r.loadHead()
		if err != nil {
			r.tagsErr = err
			return
		}

		r.loads.Add(1)
		r.tags, r.tagsErr = resolveTags(r.gitDir, head.CommitHash)
		if r.tagsErr != nil {
			r.log.Warn("tag enumeration failed", zap.String("hash", string(head.CommitHash)), zap.Error(r.tagsErr))
		}
	})
	return r.tags, r.tagsErr
}

// boundary applies the error mode at the accessor edge: strict readers
// surface the failure, lenient readers swallow it (the diagnostic was
// already logged where it was detected).
func (r *Reader) boundary(err error) error {
	if r.strict {
		return err
	}
	return nil
}

// CommitHash returns the 40-hex hash of the HEAD commit.
func (r *Reader) CommitHash() (string, error) {
	head, err := r.loadHead()
	if err != nil {
		return "", r.boundary(err)
	}
	return string(head.CommitHash), nil
}

// Branch returns the current branch name, or "" when HEAD is detached.
func (r *Reader) Branch() (string, error) {
	head, err := r.loadHead()
	if err != nil {
		return "", r.boundary(err)
	}
	return head.Branch, nil
}

// IsDetached reports whether HEAD points directly at a commit.
func (r *Reader) IsDetached() (bool, error) {
	head, err := r.loadHead()
	if err != nil {
		return false, r.boundary(err)
	}
	return head.Detached, nil
}

// Author returns the HEAD commit author as "name <email>".
func (r *Reader) Author() (string, error) {
	commit, err := r.loadCommit()
	if err != nil {
		return "", r.boundary(err)
	}
	return commit.Author, nil
}

// Date returns the authorship instant, reported at the author's
// original UTC offset.
func (r *Reader) Date() (time.Time, error) {
	commit, err := r.loadCommit()
	if err != nil {
		return time.Time{}, r.boundary(err)
	}
	return commit.Date, nil
}

// Message returns the HEAD commit message.
func (r *Reader) Message() (string, error) {
	commit, err := r.loadCommit()
	if err != nil {
		return "", r.boundary(err)
	}
	return commit.Message, nil
}

// Parents returns the HEAD commit's parent hashes in file order (the
// first entry is the first parent of a merge).
func (r *Reader) Parents() ([]string, error) {
	commit, err := r.loadCommit()
	if err != nil {
		return nil, r.boundary(err)
	}
	parents := make([]string, len(commit.Parents))
	for i, p := range commit.Parents {
		parents[i] = string(p)
	}
	return parents, nil
}

// Tags returns the names of the tags pointing at the HEAD commit.
func (r *Reader) Tags() ([]string, error) {
	tags, err := r.loadTags()
	if err != nil {
		return nil, r.boundary(err)
	}
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
	}
	return names, nil
}

// TagDetails returns the full tag records, including annotated tag
// messages, for consumers that need more than names.
func (r *Reader) TagDetails() ([]TagInfo, error) {
	tags, err := r.loadTags()
	if err != nil {
		return nil, r.boundary(err)
	}
	return tags, nil
}
