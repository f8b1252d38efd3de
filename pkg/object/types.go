package object

// Hash is a 40-character hex-encoded SHA-1 digest, the address of a
// loose object in the store.
type Hash string

// IsValid reports whether h has the exact shape of an object hash:
// length 40, every character in [0-9a-f]. Every hash read from a ref
// file or object field must pass this check before it is used as a
// filesystem path component.
func (h Hash) IsValid() bool {
	if len(h) != 40 {
		return false
	}
	for i := 0; i < len(h); i++ {
		c := h[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// Object types surfaced by this package. Trees and blobs exist in the
// store but are never decoded here.
const (
	TypeCommit = "commit"
	TypeTag    = "tag"
)
