package object

import "errors"

// ErrNotFound marks a missing piece of repository state: no enclosing
// .git directory, a missing HEAD or ref file, or an absent object file.
var ErrNotFound = errors.New("not found")

// ErrMalformed marks content that violates the expected on-disk
// format: a bad hash shape, an object header without a size separator,
// a field line without a key/value split, an unparsable author line.
var ErrMalformed = errors.New("malformed object")
