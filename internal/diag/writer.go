package diag

import (
	"bytes"
	"sync"
)

// Writer hands each complete line written to it to Logf, without its
// newline. Echoed source and table dumps are routed into test logs this way.
type Writer struct {
	Logf func(string, ...interface{})

	mu      sync.Mutex
	partial []byte
}

func (w *Writer) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	n := len(p)
	for len(p) > 0 {
		i := bytes.IndexByte(p, '\n')
		if i < 0 {
			w.partial = append(w.partial, p...)
			break
		}
		w.line(p[:i])
		p = p[i+1:]
	}
	return n, nil
}

// Sync logs any final unterminated line.
func (w *Writer) Sync() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.partial) > 0 {
		w.line(nil)
	}
	return nil
}

func (w *Writer) line(tail []byte) {
	line := tail
	if len(w.partial) > 0 {
		line = append(w.partial, tail...)
		w.partial = w.partial[:0]
	}
	w.Logf("%s", line)
}
