package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/jcorbin/quadpas/internal/source"
)

// IntReader supplies the integers read by the READ instruction; it returns
// io.EOF once no more input is available.
type IntReader interface {
	ReadInt(prompt string) (int, error)
}

const retryMessage = "Not an integer, try again"

// lineReader reads one integer per line; prompts and retry messages are
// written to out.
type lineReader struct {
	in  *source.Input
	out io.Writer
}

func newLineReader(in *source.Input, out io.Writer) *lineReader {
	return &lineReader{in: in, out: out}
}

func (lr *lineReader) ReadInt(prompt string) (int, error) {
	for {
		if err := lr.printf("%s", prompt); err != nil {
			return 0, err
		}
		line, err := lr.in.ReadLine()
		if err != nil {
			return 0, err
		}
		if n, err := strconv.Atoi(strings.TrimSpace(line)); err == nil {
			return n, nil
		}
		if err := lr.printf("%v\n", retryMessage); err != nil {
			return 0, err
		}
	}
}

func (lr *lineReader) printf(mess string, args ...interface{}) error {
	if _, err := fmt.Fprintf(lr.out, mess, args...); err != nil {
		return err
	}
	if wf, ok := lr.out.(output); ok {
		return wf.Flush()
	}
	return nil
}

func (lr *lineReader) Close() error { return lr.in.Close() }

// terminalReader prompts through line editing on an interactive terminal.
type terminalReader struct {
	ln *liner.State
}

func newTerminalReader() *terminalReader {
	ln := liner.NewLiner()
	ln.SetCtrlCAborts(true)
	return &terminalReader{ln: ln}
}

func (tr *terminalReader) ReadInt(prompt string) (int, error) {
	for {
		line, err := tr.ln.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			return 0, io.EOF
		} else if err != nil {
			return 0, err
		}
		if n, err := strconv.Atoi(strings.TrimSpace(line)); err == nil {
			tr.ln.AppendHistory(line)
			return n, nil
		}
		prompt = retryMessage + ": "
	}
}

func (tr *terminalReader) Close() error { return tr.ln.Close() }
