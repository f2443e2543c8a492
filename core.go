package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/jcorbin/quadpas/internal/quads"
)

// VM executes a Program's quads against its symbol table.
type VM struct {
	tracer
	prog *Program

	pc        int
	at        int
	quad      quads.Quad
	steps     int
	stepLimit int

	input []io.Reader
	in    IntReader
	out   output
}

// Close releases any resources held by the VM's integer reader.
func (vm *VM) Close() error {
	if cl, ok := vm.in.(io.Closer); ok {
		return cl.Close()
	}
	return nil
}

// halt flushes output then unwinds the current run; a nil err is a normal
// stop.
func (vm *VM) halt(err error) {
	if ferr := vm.out.Flush(); err == nil {
		err = ferr
	}
	if err != nil {
		vm.tracef("#", "halt error: %v", err)
	} else {
		vm.tracef("#", "halt")
	}
	panic(haltError{err})
}

func (vm *VM) haltif(err error) {
	if err != nil {
		vm.halt(err)
	}
}

// fault halts with a *Fault describing the quad being executed.
func (vm *VM) fault(err error) {
	vm.halt(&Fault{PC: vm.at, Quad: vm.quad, Err: err})
}

// haltError carries the reason for stopping out of the panic that unwinds a
// run.
type haltError struct{ err error }

func (h haltError) Error() string {
	if h.err == nil {
		return "program halted"
	}
	return "program halted: " + h.err.Error()
}

func (h haltError) Unwrap() error { return h.err }

// Fault is returned by Run when the program performs an invalid operation.
type Fault struct {
	PC   int
	Quad quads.Quad
	Err  error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("fault at quad %v (%v): %v", f.PC, f.Quad, f.Err)
}

func (f *Fault) Unwrap() error { return f.Err }

var (
	errDivideByZero = errors.New("integer division by zero")
	errNotFinite    = errors.New("arithmetic result is not finite")
	errIntOverflow  = errors.New("integer overflow")
	errStepLimit    = errors.New("step limit exceeded")
)

type opcodeError quads.Opcode
type jumpError int

func (op opcodeError) Error() string { return fmt.Sprintf("invalid opcode %v", quads.Opcode(op)) }
func (pc jumpError) Error() string   { return fmt.Sprintf("invalid jump target %v", int(pc)) }

// tracer writes labeled trace lines, right aligning each label to the widest
// one seen so far.
type tracer struct {
	logfn func(mess string, args ...interface{})
	width int
}

func (tr *tracer) tracing() bool { return tr.logfn != nil }

func (tr *tracer) tracef(label, mess string, args ...interface{}) {
	if tr.logfn == nil {
		return
	}
	if len(label) > tr.width {
		tr.width = len(label)
	}
	tr.logfn("%*s %v", tr.width, label, fmt.Sprintf(mess, args...))
}
