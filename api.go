package main

import (
	"context"
	"errors"
	"io"

	"github.com/jcorbin/quadpas/internal/lexer"
	"github.com/jcorbin/quadpas/internal/panicerr"
	"github.com/jcorbin/quadpas/internal/parser"
	"github.com/jcorbin/quadpas/internal/quads"
	"github.com/jcorbin/quadpas/internal/source"
	"github.com/jcorbin/quadpas/internal/symtab"
)

// Program pairs compiled quads with the symbol table that serves as their
// data memory.
type Program struct {
	Symbols *symtab.Table
	Quads   *quads.Table
}

const (
	defaultMaxSymbols = 250
	defaultMaxQuads   = 1000
)

// Compile parses program text from in into a new Program. The program is
// returned even when compilation fails, so that its tables may be dumped.
func Compile(in *source.Input, opts ...CompileOption) (*Program, error) {
	var c compiler
	c.apply(opts...)
	prog := &Program{
		Symbols: symtab.New(c.maxSymbols),
		Quads:   quads.New(c.maxQuads),
	}
	lex := lexer.New(in, prog.Symbols, c.lexOpts...)
	err := parser.New(lex, prog.Symbols, prog.Quads, c.parseOpts...).Parse()
	return prog, err
}

// New returns a VM that will run prog.
func New(prog *Program, opts ...VMOption) *VM {
	vm := &VM{prog: prog}
	vm.apply(opts...)
	return vm
}

// Run executes the program from its first quad until it stops, runs off the
// end of its quads, or input runs out. Invalid operations are returned as a
// *Fault.
func (vm *VM) Run(ctx context.Context) error {
	err := panicerr.Recover("VM", func() error {
		vm.run(ctx)
		return nil
	})
	var halt haltError
	if errors.As(err, &halt) {
		err = halt.err
	} else if err != nil {
		err = &Fault{PC: vm.at, Quad: vm.quad, Err: err}
	}
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func WithInput(r io.Reader) VMOption                                 { return withInput(r) }
func WithReader(r IntReader) VMOption                                { return withReader(r) }
func WithOutput(w io.Writer) VMOption                                { return withOutput(w) }
func WithTee(w io.Writer) VMOption                                   { return withTee(w) }
func WithStepLimit(limit int) VMOption                               { return withStepLimit(limit) }
func WithLogf(logfn func(mess string, args ...interface{})) VMOption { return withLogfn(logfn) }

func WithMaxSymbols(n int) CompileOption    { return withMaxSymbols(n) }
func WithMaxQuads(n int) CompileOption      { return withMaxQuads(n) }
func WithQuote(quote rune) CompileOption    { return withLexOption(lexer.WithQuote(quote)) }
func WithEcho(w io.Writer) CompileOption    { return withLexOption(lexer.WithEcho(w)) }
func WithVerdict(w io.Writer) CompileOption { return withParseOption(parser.WithOutput(w)) }

func WithTokenLog(tokenf func(mess string, args ...interface{})) CompileOption {
	return withLexOption(lexer.WithTokenLog(tokenf))
}

func WithParseTrace(tracef func(mess string, args ...interface{})) CompileOption {
	return withParseOption(parser.WithTrace(tracef))
}

// WithDiagnostics routes lexer and parser warnings and errors to logf.
func WithDiagnostics(logf func(level, mess string, args ...interface{})) CompileOption {
	return compileOptionFunc(func(c *compiler) {
		c.lexOpts = append(c.lexOpts, lexer.WithLogf(logf))
		c.parseOpts = append(c.parseOpts, parser.WithLogf(logf))
	})
}
