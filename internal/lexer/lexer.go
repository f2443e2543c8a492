// Package lexer turns program text into tokens, registering every
// identifier and literal it sees in a symbol table.
package lexer

import (
	"fmt"
	"io"

	"github.com/jcorbin/quadpas/internal/diag"
	"github.com/jcorbin/quadpas/internal/names"
	"github.com/jcorbin/quadpas/internal/source"
	"github.com/jcorbin/quadpas/internal/symtab"
)

// Token is one scanned lexeme with its classification.
type Token struct {
	Lexeme   string
	Code     Code
	Mnemonic string
}

func (tok Token) String() string {
	return fmt.Sprintf("%v(%q)", tok.Mnemonic, tok.Lexeme)
}

// Length limits, past which lexemes are truncated.
const (
	MaxIdentLen    = 20
	MaxIntDigits   = 6
	MaxFracDigits  = 12
	MaxExponentLen = 3
)

// Lexer scans tokens from a line-oriented source.
// Every line is followed by a synthesized end of line character, so that
// recognizers treat line boundaries uniformly.
type Lexer struct {
	in        *source.Input
	syms      *symtab.Table
	reserve   *names.Table
	mnemonics *names.Table

	line      []rune
	linePos   int
	lineCount int
	needLine  bool
	eof       bool
	started   bool
	curr      rune

	errCount int

	quote  rune
	echo   io.Writer
	logf   func(level, mess string, args ...interface{})
	tokenf func(mess string, args ...interface{})
}

// Option configures a Lexer.
type Option func(lex *Lexer)

// WithEcho writes every source line, prefixed by its line number, to w.
func WithEcho(w io.Writer) Option { return func(lex *Lexer) { lex.echo = w } }

// WithLogf sets the function used to report warnings and errors.
func WithLogf(logf func(level, mess string, args ...interface{})) Option {
	return func(lex *Lexer) { lex.logf = logf }
}

// WithTokenLog logs every token returned by Next.
func WithTokenLog(tokenf func(mess string, args ...interface{})) Option {
	return func(lex *Lexer) { lex.tokenf = tokenf }
}

// WithQuote sets the character that delimits text literals; it defaults to
// the single quote.
func WithQuote(quote rune) Option { return func(lex *Lexer) { lex.quote = quote } }

// New returns a Lexer reading from in, registering symbols in syms.
func New(in *source.Input, syms *symtab.Table, opts ...Option) *Lexer {
	lex := &Lexer{
		in:        in,
		syms:      syms,
		reserve:   ReserveWords(),
		mnemonics: Mnemonics(),
		linePos:   -1,
		needLine:  true,
		quote:     '\'',
	}
	for _, opt := range opts {
		opt(lex)
	}
	return lex
}

// EOF returns true once all input has been consumed.
func (lex *Lexer) EOF() bool { return lex.eof }

// Line returns the number of the line being scanned.
func (lex *Lexer) Line() int { return lex.lineCount }

// CodeFor returns the token code for a mnemonic, or -1 if unknown.
func (lex *Lexer) CodeFor(mnemonic string) Code {
	return Code(lex.mnemonics.LookupName(mnemonic))
}

// ReserveFor returns the reserved word or operator for a mnemonic.
func (lex *Lexer) ReserveFor(mnemonic string) string {
	return lex.reserve.LookupCode(lex.mnemonics.LookupName(mnemonic))
}

// Spelling returns the reserved word or operator for a code.
func (lex *Lexer) Spelling(code Code) string {
	return lex.reserve.LookupCode(int(code))
}

// Next returns the next token, or false once input is exhausted.
func (lex *Lexer) Next() (Token, bool) {
	if !lex.started {
		lex.started = true
		lex.curr = lex.nextChar()
	}

	lex.skipWhiteSpace()
	if lex.eof {
		return Token{}, false
	}

	var tok Token
	switch {
	case isLetter(lex.curr):
		tok = lex.identifier()
	case isDigit(lex.curr):
		tok = lex.number()
	case lex.curr == lex.quote:
		tok = lex.text()
	default:
		tok = lex.other()
	}
	if tok.Lexeme == "" {
		return Token{}, false
	}

	tok.Mnemonic = lex.mnemonics.LookupCode(int(tok.Code))
	if lex.tokenf != nil {
		lex.tokenf("\t%v | \t%04d | \t%v", tok.Mnemonic, int(tok.Code), tok.Lexeme)
	}
	return tok, true
}

func (lex *Lexer) warnf(mess string, args ...interface{}) {
	if lex.logf != nil {
		lex.logf(diag.Warning, mess, args...)
	}
}

// Errors returns how many lexical errors have been reported.
func (lex *Lexer) Errors() int { return lex.errCount }

func (lex *Lexer) errorf(mess string, args ...interface{}) {
	lex.errCount++
	if lex.logf != nil {
		lex.logf(diag.Error, mess, args...)
	}
}

func (lex *Lexer) nextLine() {
	text, err := lex.in.ReadLine()
	if err != nil {
		if err != io.EOF {
			lex.errorf("read failed: %v", err)
		}
		lex.eof = true
	} else {
		lex.lineCount++
		if lex.echo != nil {
			fmt.Fprintf(lex.echo, "%04d %s\n", lex.lineCount, text)
		}
	}
	lex.line = []rune(text)
	lex.linePos = -1
	lex.needLine = false
}

// nextChar returns the next character, reading a new line when the current
// one is used up; an end of line is returned at the end of every line, and
// forever once input is exhausted.
func (lex *Lexer) nextChar() rune {
	if lex.needLine {
		lex.nextLine()
	}
	if lex.eof {
		return '\n'
	}
	if lex.linePos < len(lex.line)-1 {
		lex.linePos++
		return lex.line[lex.linePos]
	}
	lex.needLine = true
	return '\n'
}

// peekChar returns the character after curr on the current line without
// consuming it, or a space at the end of the line.
func (lex *Lexer) peekChar() rune {
	if lex.needLine || lex.eof {
		return ' '
	}
	if i := lex.linePos + 1; i < len(lex.line) {
		return lex.line[i]
	}
	return ' '
}

func isLetter(ch rune) bool { return ('A' <= ch && ch <= 'Z') || ('a' <= ch && ch <= 'z') }
func isDigit(ch rune) bool  { return '0' <= ch && ch <= '9' }
func isWhitespace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}
func isIdentChar(ch rune) bool { return isLetter(ch) || isDigit(ch) || ch == '_' || ch == '$' }
func isPrefix(ch rune) bool    { return ch == ':' || ch == '<' || ch == '>' }
