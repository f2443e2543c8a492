package lexer_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/jcorbin/quadpas/internal/lexer"
	"github.com/jcorbin/quadpas/internal/source"
	"github.com/jcorbin/quadpas/internal/symtab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scanResult struct {
	toks []string
	logs []string
	syms *symtab.Table
	lex  *lexer.Lexer
}

func scan(src string, opts ...lexer.Option) (res scanResult) {
	res.syms = symtab.New(100)
	opts = append([]lexer.Option{
		lexer.WithLogf(func(level, mess string, args ...interface{}) {
			res.logs = append(res.logs, level+": "+fmt.Sprintf(mess, args...))
		}),
	}, opts...)
	res.lex = lexer.New(source.FromString("test", src), res.syms, opts...)
	for {
		tok, ok := res.lex.Next()
		if !ok {
			break
		}
		res.toks = append(res.toks, fmt.Sprintf("%v %v", tok.Mnemonic, tok.Lexeme))
	}
	return res
}

func Test_Lexer_tokens(t *testing.T) {
	for _, tc := range []struct {
		name string
		src  string
		toks []string
		logs []string
	}{
		{
			name: "program header",
			src:  "UNIT test;\nbegin end.",
			toks: []string{"UNIT UNIT", "IDNT test", "SCLN ;", "BGIN begin", "END_ end", "DOT_ ."},
		},
		{
			name: "reserved words ignore case",
			src:  "If iF then WriteLn",
			toks: []string{"IF__ If", "IF__ iF", "THEN then", "WTLN WriteLn"},
		},
		{
			name: "two character operators",
			src:  "a:=b<=c>=d<>e<f>g:h",
			toks: []string{
				"IDNT a", "DEFN :=", "IDNT b", "LTEQ <=", "IDNT c", "GTEQ >=",
				"IDNT d", "NTEQ <>", "IDNT e", "LESS <", "IDNT f", "GRTR >",
				"IDNT g", "COLN :", "IDNT h",
			},
		},
		{
			name: "prefix at end of line",
			src:  "x :\n= y",
			toks: []string{"IDNT x", "COLN :", "EQUL =", "IDNT y"},
		},
		{
			name: "punctuation",
			src:  "( ) [ ] , . + - * / =",
			toks: []string{
				"LFTP (", "RITP )", "LBRK [", "RBRK ]", "COMA ,", "DOT_ .",
				"PLUS +", "MNUS -", "MTPY *", "DVDE /", "EQUL =",
			},
		},
		{
			name: "unknown characters",
			src:  "a # b",
			toks: []string{"IDNT a", "UNKN #", "IDNT b"},
		},
		{
			name: "identifier characters",
			src:  "a_1$ b2",
			toks: []string{"IDNT a_1$", "IDNT b2"},
		},
		{
			name: "numbers",
			src:  "12 3.25 1.5E3 2e-2 7E+1 4.",
			toks: []string{"INTV 12", "DFPV 3.25", "DFPV 1.5E3", "DFPV 2e-2", "DFPV 7E+1", "DFPV 4."},
		},
		{
			name: "exponent marker needs a digit or sign",
			src:  "3end",
			toks: []string{"INTV 3", "END_ end"},
		},
		{
			name: "comments",
			src:  "a { one } b (* two\n three *) c{x}{y}(*z*)d",
			toks: []string{"IDNT a", "IDNT b", "IDNT c", "IDNT d"},
		},
		{
			name: "paren without star is not a comment",
			src:  "(a)",
			toks: []string{"LFTP (", "IDNT a", "RITP )"},
		},
		{
			name: "text",
			src:  "writeln('hello world')",
			toks: []string{"WTLN writeln", "LFTP (", "STRV 'hello world'", "RITP )"},
		},
		{
			name: "unterminated text",
			src:  "x := 'oops\ny",
			toks: []string{"IDNT x", "DEFN :=", "UNKN 'oops", "IDNT y"},
			logs: []string{"ERROR: Unterminated string 'oops"},
		},
		{
			name: "unterminated brace comment",
			src:  "a { never\nclosed",
			toks: []string{"IDNT a"},
			logs: []string{"ERROR: Comment not terminated before End Of File"},
		},
		{
			name: "unterminated pair comment",
			src:  "a (* never *\n) closed",
			toks: []string{"IDNT a"},
			logs: []string{"ERROR: Comment not terminated before End Of File"},
		},
		{
			name: "identifier truncation",
			src:  "abcdefghijklmnopqrstuvwxyz := 1",
			toks: []string{"IDNT abcdefghijklmnopqrst", "DEFN :=", "INTV 1"},
			logs: []string{"WARNING: Identifier length > 20, truncated to abcdefghijklmnopqrst"},
		},
		{
			name: "identifier at the limit is not truncated",
			src:  "abcdefghijklmnopqrst",
			toks: []string{"IDNT abcdefghijklmnopqrst"},
		},
		{
			name: "integer truncation",
			src:  "12345678",
			toks: []string{"INTV 123456"},
			logs: []string{"WARNING: Integer part longer than 6 digits, truncated to 123456"},
		},
		{
			name: "fraction truncation",
			src:  "1.12345678901234",
			toks: []string{"DFPV 1.123456789012"},
			logs: []string{"WARNING: Fraction longer than 12 digits, truncated to 1.123456789012"},
		},
		{
			name: "malformed exponent",
			src:  "x := 123.456E+y",
			toks: []string{"IDNT x", "DEFN :=", "UNKN 123.456E+", "IDNT y"},
			logs: []string{"ERROR: Malformed numeric literal 123.456E+"},
		},
		{
			name: "empty input",
			src:  "",
		},
		{
			name: "only comments",
			src:  "{ nothing here }\n",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			res := scan(tc.src)
			assert.Equal(t, tc.toks, res.toks, "expected tokens")
			assert.Equal(t, tc.logs, res.logs, "expected diagnostics")
			assert.True(t, res.lex.EOF(), "expected input to be consumed")

			errs := 0
			for _, log := range tc.logs {
				if strings.HasPrefix(log, "ERROR: ") {
					errs++
				}
			}
			assert.Equal(t, errs, res.lex.Errors(), "expected error count")
		})
	}
}

func Test_Lexer_symbols(t *testing.T) {
	res := scan("unit prog; x := 3 + 2.5; X := 'hi'; if x then")
	require.Nil(t, res.logs)

	expect := []symtab.Symbol{
		{Name: "prog", Usage: symtab.Variable, Value: symtab.Int(0)},
		{Name: "x", Usage: symtab.Variable, Value: symtab.Int(0)},
		{Name: "3", Usage: symtab.Constant, Value: symtab.Int(3)},
		{Name: "2.5", Usage: symtab.Constant, Value: symtab.Float(2.5)},
		{Name: "'hi'", Usage: symtab.Constant, Value: symtab.Str("hi")},
	}
	require.Equal(t, len(expect), res.syms.Len(), "reserved words must not be registered")
	for i, sym := range expect {
		assert.Equal(t, sym, res.syms.Symbol(i), "symbol %v", i)
	}
}

func Test_Lexer_malformedNotRegistered(t *testing.T) {
	res := scan("1E-")
	assert.Equal(t, []string{"UNKN 1E-"}, res.toks)
	assert.Equal(t, -1, res.syms.Lookup("1E-"))
	assert.Equal(t, 0, res.syms.Len())
}

func Test_Lexer_fullSymbolTable(t *testing.T) {
	var logs []string
	syms := symtab.New(1)
	lex := lexer.New(source.FromString("test", "a b"), syms, lexer.WithLogf(
		func(level, mess string, args ...interface{}) {
			logs = append(logs, level+": "+fmt.Sprintf(mess, args...))
		}))
	for _, ok := lex.Next(); ok; _, ok = lex.Next() {
	}
	assert.Equal(t, []string{"ERROR: Symbol table full, cannot add b"}, logs)
}

func Test_Lexer_echoAndTokenLog(t *testing.T) {
	var echo bytes.Buffer
	var toks []string
	res := scan("unit t;\n\nbegin end.",
		lexer.WithEcho(&echo),
		lexer.WithTokenLog(func(mess string, args ...interface{}) {
			toks = append(toks, strings.TrimSpace(fmt.Sprintf(mess, args...)))
		}))
	assert.Len(t, res.toks, 6)
	assert.Equal(t, "0001 unit t;\n0002 \n0003 begin end.\n", echo.String())
	assert.Equal(t, "UNIT | \t0015 | \tunit", toks[0])
	assert.Equal(t, "DOT_ | \t0048 | \t.", toks[5])
}

func Test_Lexer_quote(t *testing.T) {
	res := scan(`writeln("double")`, lexer.WithQuote('"'))
	assert.Equal(t, []string{"WTLN writeln", "LFTP (", `STRV "double"`, "RITP )"}, res.toks)
	assert.Equal(t, "double", res.syms.Text(res.syms.Lookup(`"double"`)))
}

func Test_Lexer_lookups(t *testing.T) {
	lex := lexer.New(source.FromString("test", ""), symtab.New(1))
	assert.Equal(t, lexer.Begin, lex.CodeFor("BGIN"))
	assert.Equal(t, lexer.Ident, lex.CodeFor("idnt"))
	assert.Equal(t, lexer.Code(-1), lex.CodeFor("NOPE"))
	assert.Equal(t, "BEGIN", lex.ReserveFor("BGIN"))
	assert.Equal(t, ":=", lex.ReserveFor("DEFN"))
	assert.Equal(t, "", lex.ReserveFor("IDNT"))
	assert.Equal(t, ";", lex.Spelling(lexer.Semicolon))
	assert.Equal(t, "RDLN", lexer.Readln.String())
	assert.Equal(t, "EOF_", lexer.EOF.String())

	words := lexer.ReserveWords()
	for _, name := range []string{"IF", "if", "If"} {
		assert.Equal(t, int(lexer.If), words.LookupName(name))
	}
}
