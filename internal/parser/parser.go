// Package parser implements a recursive descent parser that generates quad
// code and symbols as a side effect of recognizing each grammar rule.
//
// Rules computing a value return the symbol index holding it; relational
// rules return the quad number of a conditional jump awaiting its target.
// Either is -1 after an error.
package parser

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jcorbin/quadpas/internal/diag"
	"github.com/jcorbin/quadpas/internal/lexer"
	"github.com/jcorbin/quadpas/internal/quads"
	"github.com/jcorbin/quadpas/internal/symtab"
)

// Error is returned by Parse when compilation fails.
type Error struct {
	Count int
}

func (err *Error) Error() string {
	return fmt.Sprintf("compilation failed with %v error(s)", err.Count)
}

// Parser consumes tokens from a lexer, writing symbols and quads.
type Parser struct {
	lex   *lexer.Lexer
	syms  *symtab.Table
	quads *quads.Table

	tok lexer.Token

	// anyErrors is sticky: once set every rule returns immediately, until
	// Statement resynchronizes.
	anyErrors bool
	errCount  int
	full      bool

	level    int
	temps    int
	declared map[int]bool
	warned   map[int]bool

	out    io.Writer
	logf   func(level, mess string, args ...interface{})
	tracef func(mess string, args ...interface{})
}

// Option configures a Parser.
type Option func(p *Parser)

// WithLogf sets the function used to report warnings and errors.
func WithLogf(logf func(level, mess string, args ...interface{})) Option {
	return func(p *Parser) { p.logf = logf }
}

// WithTrace logs entry to and exit from every grammar rule.
func WithTrace(tracef func(mess string, args ...interface{})) Option {
	return func(p *Parser) { p.tracef = tracef }
}

// WithOutput sets where the final Success/failure verdict is written.
func WithOutput(w io.Writer) Option {
	return func(p *Parser) { p.out = w }
}

// New returns a Parser reading from lex and generating into syms and qt;
// lex must register its symbols in syms.
func New(lex *lexer.Lexer, syms *symtab.Table, qt *quads.Table, opts ...Option) *Parser {
	p := &Parser{
		lex:      lex,
		syms:     syms,
		quads:    qt,
		declared: make(map[int]bool),
		warned:   make(map[int]bool),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse compiles a whole program, ending it with a STOP quad.
// Returns nil on success, or an *Error counting the lexical and syntax
// errors reported.
func (p *Parser) Parse() error {
	p.advance()
	p.program()
	if n := p.errCount + p.lex.Errors(); n > 0 {
		p.verdict("Compilation failed.")
		return &Error{Count: n}
	}
	p.verdict("Success.")
	return nil
}

func (p *Parser) verdict(mess string) {
	if p.out != nil {
		fmt.Fprintln(p.out, mess)
	}
}

func (p *Parser) advance() {
	if tok, ok := p.lex.Next(); ok {
		p.tok = tok
	} else {
		p.tok = lexer.Token{Code: lexer.EOF, Mnemonic: lexer.EOF.String()}
	}
}

// found describes the current token for diagnostics.
func (p *Parser) found() string {
	if p.tok.Code == lexer.EOF {
		return "end of file"
	}
	return p.tok.Lexeme
}

func (p *Parser) error(wanted, got string) {
	p.errorf("Expected %v but found %v", wanted, got)
}

func (p *Parser) errorf(mess string, args ...interface{}) {
	if p.anyErrors {
		return
	}
	p.anyErrors = true
	p.errCount++
	p.log(diag.Error, mess, args...)
}

func (p *Parser) log(level, mess string, args ...interface{}) {
	if p.logf != nil {
		p.logf(level, mess, args...)
	}
}

// expect consumes the current token if it has the given code, reporting an
// error otherwise.
func (p *Parser) expect(code lexer.Code) bool {
	if p.anyErrors {
		return false
	}
	if p.tok.Code != code {
		p.error(p.lex.Spelling(code), p.found())
		return false
	}
	p.advance()
	return true
}

func (p *Parser) trace(proc string) func() {
	if p.tracef == nil {
		return func() {}
	}
	p.tracef("%v--> Entering %v", strings.Repeat(" ", p.level), proc)
	p.level++
	return func() {
		if p.level > 0 {
			p.level--
		}
		p.tracef("%v<-- Exiting %v", strings.Repeat(" ", p.level), proc)
	}
}

func (p *Parser) emit(op quads.Opcode, a, b, c int) int {
	at := p.quads.Next()
	if at < 0 {
		p.full = true
		p.errorf("Quad table full, program too large")
		return -1
	}
	p.quads.Add(op, a, b, c)
	return at
}

func (p *Parser) patch(at, target int) {
	if at >= 0 {
		p.quads.UpdateJump(at, target)
	}
}

func (p *Parser) addSymbol(name string, usage symtab.Usage, val symtab.Value) int {
	i := p.syms.Add(name, usage, val)
	if i < 0 {
		p.full = true
		p.errorf("Symbol table full, cannot add %v", name)
	}
	return i
}

// constant returns the index of an integer constant symbol, adding it if this
// is its first use.
func (p *Parser) constant(n int) int {
	return p.addSymbol(strconv.Itoa(n), symtab.Constant, symtab.Int(n))
}

// temp mints a uniquely named temporary to hold an intermediate result.
func (p *Parser) temp(kind symtab.Kind) int {
	p.temps++
	return p.addSymbol(fmt.Sprintf("@T%v", p.temps), symtab.Constant, symtab.Zero(kind))
}

// resultKind returns the kind of an arithmetic result on two operands.
func (p *Parser) resultKind(a, b int) symtab.Kind {
	if p.syms.Kind(a) == symtab.Integer && p.syms.Kind(b) == symtab.Integer {
		return symtab.Integer
	}
	return symtab.Real
}
