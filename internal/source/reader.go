package source

import (
	"bufio"
	"io"
)

type namedReader struct {
	io.Reader
	name string
}

func (nr namedReader) Name() string { return nr.name }

// newRuneReader returns r if it already reads runes, otherwise wraps it in a
// bufio.Reader.
func newRuneReader(r io.Reader) io.RuneReader {
	if rr, ok := r.(io.RuneReader); ok {
		return rr
	}
	return bufio.NewReader(r)
}
