package main

import (
	"bufio"
	"bytes"
	"io"
	"io/ioutil"
	"strings"
)

// output receives PRINT lines and READ prompts. It is flushed before every
// prompt and when the program halts.
type output interface {
	io.Writer
	Flush() error
}

type unbuffered struct{ io.Writer }

func (unbuffered) Flush() error { return nil }

var discardOutput output = unbuffered{ioutil.Discard}

func newOutput(w io.Writer) output {
	switch impl := w.(type) {
	case nil:
		return discardOutput
	case output:
		return impl
	case *bytes.Buffer, *strings.Builder:
		return unbuffered{w}
	}
	if w == ioutil.Discard {
		return discardOutput
	}
	return bufio.NewWriter(w)
}

// teeOutput copies every write to each of its outputs in turn.
type teeOutput []output

func (tee teeOutput) Write(p []byte) (int, error) {
	for _, out := range tee {
		if n, err := out.Write(p); err != nil {
			return n, err
		} else if n < len(p) {
			return n, io.ErrShortWrite
		}
	}
	return len(p), nil
}

func (tee teeOutput) Flush() error {
	var first error
	for _, out := range tee {
		if err := out.Flush(); first == nil {
			first = err
		}
	}
	return first
}

func addTee(out, also output) output {
	var tee teeOutput
	for _, o := range [...]output{out, also} {
		switch impl := o.(type) {
		case nil:
		case teeOutput:
			tee = append(tee, impl...)
		default:
			if o != discardOutput {
				tee = append(tee, o)
			}
		}
	}
	if len(tee) == 0 {
		return discardOutput
	}
	if len(tee) == 1 {
		return tee[0]
	}
	return tee
}
