package lexer

import "github.com/jcorbin/quadpas/internal/names"

// Code classifies a token. Reserved words and operators have their own codes;
// identifiers and literals share four classification codes.
type Code int

// Reserved words.
const (
	Goto        Code = 0
	IntegerType Code = 1
	To          Code = 2
	Do          Code = 3
	If          Code = 4
	Then        Code = 5
	Else        Code = 6
	For         Code = 7
	Of          Code = 8
	Writeln     Code = 9
	Readln      Code = 10
	Begin       Code = 11
	End         Code = 12
	Var         Code = 13
	While       Code = 14
	Unit        Code = 15
	Label       Code = 16
	Repeat      Code = 17
	Until       Code = 18
	Procedure   Code = 19
	Downto      Code = 20
	Function    Code = 21
	Return      Code = 22
	FloatType   Code = 23
	StringType  Code = 24
	Array       Code = 25
)

// Operators and punctuation.
const (
	Divide    Code = 30
	Multiply  Code = 31
	Plus      Code = 32
	Minus     Code = 33
	LParen    Code = 34
	RParen    Code = 35
	Semicolon Code = 36
	Assign    Code = 37
	Greater   Code = 38
	Less      Code = 39
	GreaterEq Code = 40
	LessEq    Code = 41
	Equal     Code = 42
	NotEqual  Code = 43
	Comma     Code = 44
	LBracket  Code = 45
	RBracket  Code = 46
	Colon     Code = 47
	Period    Code = 48
)

// Classifications of non-reserved tokens.
const (
	Ident     Code = 50
	IntLit    Code = 51
	FloatLit  Code = 52
	StringLit Code = 53
	Unknown   Code = 99

	// EOF is never produced by the lexer; the parser uses it in place of a
	// token once input is exhausted.
	EOF Code = -1
)

var codeTable = []struct {
	reserve  string
	mnemonic string
	code     Code
}{
	{"GOTO", "GOTO", Goto},
	{"INTEGER", "INTR", IntegerType},
	{"TO", "TO__", To},
	{"DO", "DO__", Do},
	{"IF", "IF__", If},
	{"THEN", "THEN", Then},
	{"ELSE", "ELSE", Else},
	{"FOR", "FOR_", For},
	{"OF", "OF__", Of},
	{"WRITELN", "WTLN", Writeln},
	{"READLN", "RDLN", Readln},
	{"BEGIN", "BGIN", Begin},
	{"END", "END_", End},
	{"VAR", "VAR_", Var},
	{"WHILE", "WHIL", While},
	{"UNIT", "UNIT", Unit},
	{"LABEL", "LABL", Label},
	{"REPEAT", "REPT", Repeat},
	{"UNTIL", "UNTL", Until},
	{"PROCEDURE", "PROC", Procedure},
	{"DOWNTO", "DOWN", Downto},
	{"FUNCTION", "FUNC", Function},
	{"RETURN", "RTRN", Return},
	{"FLOAT", "DFPR", FloatType},
	{"STRING", "STRR", StringType},
	{"ARRAY", "ARRY", Array},

	{"/", "DVDE", Divide},
	{"*", "MTPY", Multiply},
	{"+", "PLUS", Plus},
	{"-", "MNUS", Minus},
	{"(", "LFTP", LParen},
	{")", "RITP", RParen},
	{";", "SCLN", Semicolon},
	{":=", "DEFN", Assign},
	{">", "GRTR", Greater},
	{"<", "LESS", Less},
	{">=", "GTEQ", GreaterEq},
	{"<=", "LTEQ", LessEq},
	{"=", "EQUL", Equal},
	{"<>", "NTEQ", NotEqual},
	{",", "COMA", Comma},
	{"[", "LBRK", LBracket},
	{"]", "RBRK", RBracket},
	{":", "COLN", Colon},
	{".", "DOT_", Period},
}

var classTable = []struct {
	mnemonic string
	code     Code
}{
	{"IDNT", Ident},
	{"INTV", IntLit},
	{"DFPV", FloatLit},
	{"STRV", StringLit},
	{"UNKN", Unknown},
}

const tableSize = 60

// ReserveWords returns a name table of every reserved word and operator.
func ReserveWords() *names.Table {
	tab := names.New(tableSize)
	for _, row := range codeTable {
		tab.Add(row.reserve, int(row.code))
	}
	return tab
}

// Mnemonics returns a name table of the short mnemonic for every token code.
func Mnemonics() *names.Table {
	tab := names.New(tableSize)
	for _, row := range codeTable {
		tab.Add(row.mnemonic, int(row.code))
	}
	for _, row := range classTable {
		tab.Add(row.mnemonic, int(row.code))
	}
	return tab
}

var mnemonics = Mnemonics()

func (code Code) String() string {
	if code == EOF {
		return "EOF_"
	}
	if s := mnemonics.LookupCode(int(code)); s != "" {
		return s
	}
	return "UNKN"
}
