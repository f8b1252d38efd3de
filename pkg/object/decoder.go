package object

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zlib"
)

// Decoder reads one loose object from the store: a zlib-deflate stream
// holding "<type> <size>\0", then (for commits and tags) "key value\n"
// lines up to a blank line, then a free-text body.
//
// Reads are strictly sequential: ReadHeader, then ReadField until it
// reports no more fields, then ReadBody. Close releases the file
// handle and the inflate stream and is safe after a partial read or an
// error.
type Decoder struct {
	hash Hash
	file *os.File
	zr   io.ReadCloser
	br   *bufio.Reader
}

// Open locates the object objectsDir/hash[:2]/hash[2:] and sets up the
// inflate stream. A missing file is reported as ErrNotFound.
func Open(objectsDir string, h Hash) (*Decoder, error) {
	if !h.IsValid() {
		return nil, fmt.Errorf("open object: invalid hash %q: %w", h, ErrMalformed)
	}

	path := filepath.Join(objectsDir, string(h[:2]), string(h[2:]))
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("open object %s: %w", h, ErrNotFound)
		}
		return nil, fmt.Errorf("open object %s: %w", h, err)
	}

	zr, err := zlib.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("inflate object %s: %v: %w", h, err, ErrMalformed)
	}

	return &Decoder{hash: h, file: f, zr: zr, br: bufio.NewReader(zr)}, nil
}

// ReadHeader consumes the NUL-terminated "<type> <size>" header and
// returns the object type. The size is informational only and is not
// checked against the body.
func (d *Decoder) ReadHeader() (string, error) {
	header, err := d.br.ReadString('\x00')
	if err != nil {
		return "", fmt.Errorf("object %s: header: %v: %w", d.hash, err, ErrMalformed)
	}
	header = strings.TrimSuffix(header, "\x00")

	objType, _, ok := strings.Cut(header, " ")
	if !ok {
		return "", fmt.Errorf("object %s: header %q: no size separator: %w", d.hash, header, ErrMalformed)
	}
	return objType, nil
}

// ReadField returns the next "key value" header line. ok is false once
// the blank separator line is reached and the body follows. A
// non-empty line without a space is malformed.
func (d *Decoder) ReadField() (key, value string, ok bool, err error) {
	line, err := d.br.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", "", false, fmt.Errorf("object %s: field: %w", d.hash, err)
	}
	line = strings.TrimSuffix(line, "\n")
	if line == "" {
		return "", "", false, nil
	}

	key, value, found := strings.Cut(line, " ")
	if !found {
		return "", "", false, fmt.Errorf("object %s: field %q: no separator: %w", d.hash, line, ErrMalformed)
	}
	return key, value, true, nil
}

// ReadBody consumes everything after the blank line and returns it as
// the object's message text.
func (d *Decoder) ReadBody() (string, error) {
	data, err := io.ReadAll(d.br)
	if err != nil {
		return "", fmt.Errorf("object %s: body: %w", d.hash, err)
	}
	return string(data), nil
}

// Close releases the inflate stream and the underlying file.
func (d *Decoder) Close() error {
	zerr := d.zr.Close()
	ferr := d.file.Close()
	if zerr != nil {
		return fmt.Errorf("close object %s: %w", d.hash, zerr)
	}
	if ferr != nil {
		return fmt.Errorf("close object %s: %w", d.hash, ferr)
	}
	return nil
}
