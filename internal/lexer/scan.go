package lexer

import (
	"strconv"

	"github.com/jcorbin/quadpas/internal/symtab"
)

const (
	commentStart1   = '{'
	commentEnd1     = '}'
	commentStart2   = '('
	commentPairChar = '*'
	commentEnd2     = ')'
)

func (lex *Lexer) atComment() bool {
	return lex.curr == commentStart1 ||
		(lex.curr == commentStart2 && lex.peekChar() == commentPairChar)
}

// skipWhiteSpace consumes any mix of whitespace and comments before a token.
func (lex *Lexer) skipWhiteSpace() {
	for !lex.eof {
		if isWhitespace(lex.curr) {
			lex.curr = lex.nextChar()
		} else if lex.atComment() {
			lex.skipComment()
		} else {
			break
		}
	}
}

func (lex *Lexer) skipComment() {
	if lex.curr == commentStart1 {
		lex.curr = lex.nextChar()
		for lex.curr != commentEnd1 && !lex.eof {
			lex.curr = lex.nextChar()
		}
		if lex.eof {
			lex.errorf("Comment not terminated before End Of File")
		} else {
			lex.curr = lex.nextChar()
		}
		return
	}

	lex.nextChar()            // the pair character
	lex.curr = lex.nextChar() // into the comment
	for !(lex.curr == commentPairChar && lex.peekChar() == commentEnd2) && !lex.eof {
		lex.curr = lex.nextChar()
	}
	if lex.eof {
		lex.errorf("Comment not terminated before End Of File")
	} else {
		lex.nextChar()            // the close
		lex.curr = lex.nextChar() // whatever follows
	}
}

func (lex *Lexer) identifier() Token {
	buf := make([]rune, 0, MaxIdentLen)
	truncated := false
	for isIdentChar(lex.curr) {
		if len(buf) < MaxIdentLen {
			buf = append(buf, lex.curr)
		} else {
			truncated = true
		}
		lex.curr = lex.nextChar()
	}

	tok := Token{Lexeme: string(buf)}
	if truncated {
		lex.warnf("Identifier length > %v, truncated to %v", MaxIdentLen, tok.Lexeme)
	}
	if code := lex.reserve.LookupName(tok.Lexeme); code >= 0 {
		tok.Code = Code(code)
		return tok
	}
	tok.Code = Ident
	lex.register(tok.Lexeme, symtab.Variable, symtab.Int(0))
	return tok
}

// digits appends up to max digits to buf, consuming and discarding any
// further ones; it returns true if any were discarded.
func (lex *Lexer) digits(buf []rune, max int) ([]rune, bool) {
	n, truncated := 0, false
	for isDigit(lex.curr) {
		if n < max {
			buf = append(buf, lex.curr)
			n++
		} else {
			truncated = true
		}
		lex.curr = lex.nextChar()
	}
	return buf, truncated
}

func (lex *Lexer) number() Token {
	tok := Token{Code: IntLit}

	buf, truncated := lex.digits(nil, MaxIntDigits)
	if truncated {
		lex.warnf("Integer part longer than %v digits, truncated to %v", MaxIntDigits, string(buf))
	}

	if lex.curr == '.' {
		tok.Code = FloatLit
		buf = append(buf, lex.curr)
		lex.curr = lex.nextChar()
		if buf, truncated = lex.digits(buf, MaxFracDigits); truncated {
			lex.warnf("Fraction longer than %v digits, truncated to %v", MaxFracDigits, string(buf))
		}
	}

	if lex.curr == 'E' || lex.curr == 'e' {
		if next := lex.peekChar(); isDigit(next) || next == '+' || next == '-' {
			tok.Code = FloatLit
			buf = append(buf, lex.curr)
			lex.curr = lex.nextChar()
			if lex.curr == '+' || lex.curr == '-' {
				buf = append(buf, lex.curr)
				lex.curr = lex.nextChar()
			}
			if buf, truncated = lex.digits(buf, MaxExponentLen); truncated {
				lex.warnf("Exponent longer than %v digits, truncated to %v", MaxExponentLen, string(buf))
			}
		}
	}

	tok.Lexeme = string(buf)
	switch tok.Code {
	case IntLit:
		if n, err := strconv.Atoi(tok.Lexeme); err == nil {
			lex.register(tok.Lexeme, symtab.Constant, symtab.Int(n))
			return tok
		}
	case FloatLit:
		if f, err := strconv.ParseFloat(tok.Lexeme, 64); err == nil {
			lex.register(tok.Lexeme, symtab.Constant, symtab.Float(f))
			return tok
		}
	}

	// an exponent marker and sign lacking digits, or an exponent out of range
	lex.errorf("Malformed numeric literal %v", tok.Lexeme)
	tok.Code = Unknown
	return tok
}

func (lex *Lexer) text() Token {
	buf := []rune{lex.curr}
	lex.curr = lex.nextChar()
	for lex.curr != lex.quote && lex.curr != '\n' {
		buf = append(buf, lex.curr)
		lex.curr = lex.nextChar()
	}

	if lex.curr != lex.quote {
		lex.errorf("Unterminated string %v", string(buf))
		return Token{Lexeme: string(buf), Code: Unknown}
	}

	buf = append(buf, lex.curr)
	lex.curr = lex.nextChar()
	tok := Token{Lexeme: string(buf), Code: StringLit}
	lex.register(tok.Lexeme, symtab.Constant, symtab.Str(string(buf[1:len(buf)-1])))
	return tok
}

func (lex *Lexer) other() Token {
	lexeme := string(lex.curr)
	if isPrefix(lex.curr) {
		if pair := lexeme + string(lex.peekChar()); lex.reserve.LookupName(pair) >= 0 {
			lex.nextChar()
			lexeme = pair
		}
	}
	lex.curr = lex.nextChar()

	tok := Token{Lexeme: lexeme, Code: Unknown}
	if code := lex.reserve.LookupName(lexeme); code >= 0 {
		tok.Code = Code(code)
	}
	return tok
}

func (lex *Lexer) register(name string, usage symtab.Usage, val symtab.Value) {
	if lex.syms.Add(name, usage, val) < 0 {
		lex.errorf("Symbol table full, cannot add %v", name)
	}
}
