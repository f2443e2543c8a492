// Package source provides line-oriented reading of program text through a
// queue of one or more input streams, tracking names and line numbers for
// diagnostics.
package source

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

// Location names a line in an Input stream.
type Location struct {
	Name string
	Line int
}

// Line combines a Location along with a bytes.Buffer holding its text.
type Line struct {
	Location
	bytes.Buffer
}

func (loc Location) String() string { return fmt.Sprintf("%v:%v", loc.Name, loc.Line) }
func (il Line) String() string      { return fmt.Sprintf("%v %q", il.Location, il.Buffer.String()) }

// Input implements sequential line reading through a Queue of input streams.
// Both the current and last read lines are tracked to facilitate user
// feedback.
type Input struct {
	rr    io.RuneReader
	Queue []io.Reader
	Last  Line
	Scan  Line

	closers []io.Closer
}

// New returns an Input reading each of the given streams in order.
func New(rs ...io.Reader) *Input {
	return &Input{Queue: rs}
}

// FromString returns an Input reading text stream under the given name.
func FromString(name, text string) *Input {
	return New(namedReader{strings.NewReader(text), name})
}

// Open returns an Input reading the named file; callers should Close it.
func Open(name string) (*Input, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	in := New(f)
	in.closers = append(in.closers, f)
	return in, nil
}

// Close closes any files opened by Open.
func (in *Input) Close() (err error) {
	for i := len(in.closers) - 1; i >= 0; i-- {
		if cerr := in.closers[i].Close(); err == nil {
			err = cerr
		}
	}
	in.closers = nil
	return err
}

// ReadLine returns the text of the next line, without its line terminator.
// A final line lacking a terminator is still returned. Returns io.EOF once
// every queued stream is exhausted.
func (in *Input) ReadLine() (string, error) {
	for {
		if in.rr == nil && !in.nextIn() {
			return "", io.EOF
		}

		r, _, err := in.rr.ReadRune()
		if err == nil {
			if r == '\n' {
				return in.nextLine(), nil
			}
			in.Scan.WriteRune(r)
			continue
		}

		if err != io.EOF {
			return "", err
		}
		in.rr = nil
		if in.Scan.Len() > 0 {
			return in.nextLine(), nil
		}
	}
}

// Location returns the location of the last line returned by ReadLine.
func (in *Input) Location() Location { return in.Last.Location }

func (in *Input) nextLine() string {
	in.Last.Reset()
	in.Last.Name = in.Scan.Name
	in.Last.Line = in.Scan.Line
	in.Last.Write(bytes.TrimSuffix(in.Scan.Bytes(), []byte{'\r'}))
	in.Scan.Reset()
	in.Scan.Line++
	return in.Last.Buffer.String()
}

func (in *Input) nextIn() bool {
	if len(in.Queue) == 0 {
		return false
	}
	r := in.Queue[0]
	in.Queue = in.Queue[1:]
	in.rr = newRuneReader(r)
	in.Scan.Reset()
	in.Scan.Name = nameOf(r)
	in.Scan.Line = 1
	return true
}

func nameOf(obj interface{}) string {
	if nom, ok := obj.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return fmt.Sprintf("<unnamed %T>", obj)
}
