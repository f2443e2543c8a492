package parser

import (
	"github.com/jcorbin/quadpas/internal/diag"
	"github.com/jcorbin/quadpas/internal/lexer"
	"github.com/jcorbin/quadpas/internal/quads"
	"github.com/jcorbin/quadpas/internal/symtab"
)

// relJumps maps each relational operator to the jump taken when the relation
// is false, given the sign of left minus right.
var relJumps = map[lexer.Code]quads.Opcode{
	lexer.Equal:     quads.JNZ,
	lexer.NotEqual:  quads.JZ,
	lexer.Less:      quads.JNN,
	lexer.Greater:   quads.JNP,
	lexer.LessEq:    quads.JP,
	lexer.GreaterEq: quads.JN,
}

func isStatementStart(code lexer.Code) bool {
	switch code {
	case lexer.Ident, lexer.Begin, lexer.If, lexer.While,
		lexer.Repeat, lexer.For, lexer.Writeln, lexer.Readln:
		return true
	}
	return false
}

func (p *Parser) program() {
	if p.anyErrors {
		return
	}
	defer p.trace("Program")()

	if !p.expect(lexer.Unit) {
		return
	}
	p.progIdentifier()
	if !p.expect(lexer.Semicolon) {
		return
	}
	p.block()
	if p.anyErrors {
		return
	}
	if !p.expect(lexer.Period) {
		return
	}
	p.emit(quads.STOP, 0, 0, 0)
}

func (p *Parser) progIdentifier() {
	if p.anyErrors {
		return
	}
	defer p.trace("ProgIdentifier")()

	if i := p.identifier(); i >= 0 {
		p.syms.Update(i, symtab.ProgramName, p.syms.Value(i))
	}
}

func (p *Parser) block() {
	if p.anyErrors {
		return
	}
	defer p.trace("Block")()

	for p.tok.Code == lexer.Var && !p.anyErrors {
		p.advance()
		p.varDeclarations()
	}
	p.blockBody()
}

func (p *Parser) varDeclarations() {
	if p.anyErrors {
		return
	}
	defer p.trace("VarDeclarations")()

	for {
		ids := []int{p.identifier()}
		for p.tok.Code == lexer.Comma && !p.anyErrors {
			p.advance()
			ids = append(ids, p.identifier())
		}
		if !p.expect(lexer.Colon) {
			return
		}
		kind, ok := p.simpleType()
		if !ok {
			return
		}
		for _, i := range ids {
			p.declare(i, kind)
		}
		if !p.expect(lexer.Semicolon) {
			return
		}
		if p.tok.Code != lexer.Ident {
			return
		}
	}
}

func (p *Parser) declare(i int, kind symtab.Kind) {
	if p.declared[i] {
		p.log(diag.Warning, "Identifier %v declared more than once", p.syms.Name(i))
	}
	p.declared[i] = true
	p.syms.Declare(i, kind)
}

func (p *Parser) simpleType() (symtab.Kind, bool) {
	if p.anyErrors {
		return 0, false
	}
	defer p.trace("SimpleType")()

	var kind symtab.Kind
	switch p.tok.Code {
	case lexer.IntegerType:
		kind = symtab.Integer
	case lexer.FloatType:
		kind = symtab.Real
	case lexer.StringType:
		kind = symtab.Text
	default:
		p.error("INTEGER, FLOAT, or STRING", p.found())
		return 0, false
	}
	p.advance()
	return kind, true
}

func (p *Parser) blockBody() {
	if p.anyErrors {
		return
	}
	defer p.trace("BlockBody")()

	if !p.expect(lexer.Begin) {
		return
	}
	p.statement()
	for p.tok.Code == lexer.Semicolon && !p.anyErrors {
		p.advance()
		p.statement()
	}
	p.expect(lexer.End)
}

// statement parses one statement. After an error it skips to the next token
// that can start a statement and tries again, until input runs out.
func (p *Parser) statement() {
	if p.anyErrors {
		return
	}
	defer p.trace("Statement")()

	for {
		p.dispatch()
		if !p.anyErrors || !p.resync() {
			return
		}
	}
}

func (p *Parser) resync() bool {
	if p.full {
		return false
	}
	skipped := 0
	for p.tok.Code != lexer.EOF && !isStatementStart(p.tok.Code) {
		p.advance()
		skipped++
	}
	if p.tok.Code == lexer.EOF {
		p.log(diag.Resync, "no statement found before end of file")
		return false
	}
	p.log(diag.Resync, "skipped %v token(s), resuming at %v on line %v",
		skipped, p.tok.Lexeme, p.lex.Line())
	p.anyErrors = false
	return true
}

func (p *Parser) dispatch() {
	switch p.tok.Code {
	case lexer.Ident:
		p.assignment()
	case lexer.Begin:
		p.blockBody()
	case lexer.If:
		p.ifStatement()
	case lexer.While:
		p.whileStatement()
	case lexer.Repeat:
		p.repeatStatement()
	case lexer.For:
		p.forStatement()
	case lexer.Writeln:
		p.writeln()
	case lexer.Readln:
		p.readln()
	case lexer.End, lexer.Until:
		// empty statement
	default:
		p.error("statement", p.found())
	}
}

func (p *Parser) assignment() {
	defer p.trace("Assignment")()

	target := p.variable()
	if !p.expect(lexer.Assign) {
		return
	}
	src := p.operand()
	if p.anyErrors {
		return
	}
	p.emit(quads.MOV, src, 0, target)
}

// operand parses a text literal or a simple expression.
func (p *Parser) operand() int {
	if p.tok.Code == lexer.StringLit && !p.anyErrors {
		return p.literal()
	}
	return p.simpleExpression()
}

func (p *Parser) ifStatement() {
	defer p.trace("IfStatement")()

	p.advance()
	test := p.relExpression()
	if !p.expect(lexer.Then) {
		return
	}
	p.statement()
	if p.anyErrors {
		return
	}
	if p.tok.Code != lexer.Else {
		p.patch(test, p.quads.Next())
		return
	}
	p.advance()
	skip := p.emit(quads.JMP, 0, 0, -1)
	p.patch(test, p.quads.Next())
	p.statement()
	if p.anyErrors {
		return
	}
	p.patch(skip, p.quads.Next())
}

func (p *Parser) whileStatement() {
	defer p.trace("WhileStatement")()

	p.advance()
	top := p.quads.Next()
	test := p.relExpression()
	if !p.expect(lexer.Do) {
		return
	}
	p.statement()
	if p.anyErrors {
		return
	}
	p.emit(quads.JMP, 0, 0, top)
	p.patch(test, p.quads.Next())
}

func (p *Parser) repeatStatement() {
	defer p.trace("RepeatStatement")()

	p.advance()
	top := p.quads.Next()
	p.statement()
	for p.tok.Code == lexer.Semicolon && !p.anyErrors {
		p.advance()
		p.statement()
	}
	if !p.expect(lexer.Until) {
		return
	}
	test := p.relExpression()
	if p.anyErrors {
		return
	}
	p.patch(test, top)
}

// forStatement counts the control variable from start to limit by one,
// testing before the first pass so that an empty range runs no passes.
func (p *Parser) forStatement() {
	defer p.trace("ForStatement")()

	p.advance()
	counter := p.variable()
	if !p.expect(lexer.Assign) {
		return
	}
	start := p.simpleExpression()
	if p.anyErrors {
		return
	}

	down := false
	switch p.tok.Code {
	case lexer.To:
	case lexer.Downto:
		down = true
	default:
		p.error("TO or DOWNTO", p.found())
		return
	}
	p.advance()

	limit := p.simpleExpression()
	if !p.expect(lexer.Do) {
		return
	}

	step := p.constant(1)
	if down {
		step = p.constant(-1)
	}
	bound := p.temp(p.syms.Kind(limit))
	if p.anyErrors {
		return
	}
	diff := p.temp(p.resultKind(bound, counter))
	if p.anyErrors {
		return
	}
	left, right := bound, counter
	if down {
		left, right = counter, bound
	}

	p.emit(quads.MOV, start, 0, counter)
	p.emit(quads.MOV, limit, 0, bound)
	p.emit(quads.SUB, left, right, diff)
	guard := p.emit(quads.JN, diff, 0, -1)
	head := p.quads.Next()
	p.statement()
	if p.anyErrors {
		return
	}
	p.emit(quads.ADD, counter, step, counter)
	p.emit(quads.SUB, left, right, diff)
	p.emit(quads.JNN, diff, 0, head)
	p.patch(guard, p.quads.Next())
}

func (p *Parser) writeln() {
	defer p.trace("Writeln")()

	p.advance()
	if !p.expect(lexer.LParen) {
		return
	}
	v := p.operand()
	if !p.expect(lexer.RParen) {
		return
	}
	p.emit(quads.PRINT, 0, 0, v)
}

func (p *Parser) readln() {
	defer p.trace("Readln")()

	p.advance()
	if !p.expect(lexer.LParen) {
		return
	}
	v := p.variable()
	if !p.expect(lexer.RParen) {
		return
	}
	p.emit(quads.READ, 0, 0, v)
}

// relExpression emits a subtraction of its operands followed by a
// conditional jump, with no target yet, taken when the relation is false.
func (p *Parser) relExpression() int {
	if p.anyErrors {
		return -1
	}
	defer p.trace("RelExpression")()

	left := p.simpleExpression()
	if p.anyErrors {
		return -1
	}
	op, ok := relJumps[p.tok.Code]
	if !ok {
		p.error("relational operator", p.found())
		return -1
	}
	p.advance()
	right := p.simpleExpression()
	if p.anyErrors {
		return -1
	}
	diff := p.temp(p.resultKind(left, right))
	if p.anyErrors {
		return -1
	}
	p.emit(quads.SUB, left, right, diff)
	return p.emit(op, diff, 0, -1)
}

func (p *Parser) simpleExpression() int {
	if p.anyErrors {
		return -1
	}
	defer p.trace("SimpleExpression")()

	negate := false
	if p.tok.Code == lexer.Plus || p.tok.Code == lexer.Minus {
		negate = p.tok.Code == lexer.Minus
		p.advance()
	}
	left := p.term()
	if negate && !p.anyErrors {
		left = p.arith(quads.MUL, left, p.constant(-1))
	}
	for !p.anyErrors && (p.tok.Code == lexer.Plus || p.tok.Code == lexer.Minus) {
		op := quads.ADD
		if p.tok.Code == lexer.Minus {
			op = quads.SUB
		}
		p.advance()
		right := p.term()
		left = p.arith(op, left, right)
	}
	if p.anyErrors {
		return -1
	}
	return left
}

func (p *Parser) term() int {
	if p.anyErrors {
		return -1
	}
	defer p.trace("Term")()

	left := p.factor()
	for !p.anyErrors && (p.tok.Code == lexer.Multiply || p.tok.Code == lexer.Divide) {
		op := quads.MUL
		if p.tok.Code == lexer.Divide {
			op = quads.DIV
		}
		p.advance()
		right := p.factor()
		left = p.arith(op, left, right)
	}
	if p.anyErrors {
		return -1
	}
	return left
}

// arith emits op on two operands into a fresh temporary, returning it.
func (p *Parser) arith(op quads.Opcode, a, b int) int {
	if p.anyErrors || a < 0 || b < 0 {
		return -1
	}
	t := p.temp(p.resultKind(a, b))
	if t < 0 {
		return -1
	}
	p.emit(op, a, b, t)
	return t
}

func (p *Parser) factor() int {
	if p.anyErrors {
		return -1
	}
	defer p.trace("Factor")()

	switch p.tok.Code {
	case lexer.IntLit, lexer.FloatLit:
		return p.literal()
	case lexer.Ident:
		return p.variable()
	case lexer.LParen:
		p.advance()
		v := p.simpleExpression()
		if !p.expect(lexer.RParen) {
			return -1
		}
		return v
	}
	p.error("number, variable, or (", p.found())
	return -1
}

// literal returns the symbol the lexer registered for the current literal.
func (p *Parser) literal() int {
	defer p.trace("Literal")()

	i := p.syms.Lookup(p.tok.Lexeme)
	if i < 0 {
		p.full = true
		p.errorf("Symbol table full, %v was never registered", p.tok.Lexeme)
		return -1
	}
	p.advance()
	return i
}

func (p *Parser) variable() int {
	if p.anyErrors {
		return -1
	}
	defer p.trace("Variable")()

	lexeme := p.tok.Lexeme
	i := p.identifier()
	if i < 0 {
		return -1
	}
	if p.syms.Usage(i) == symtab.ProgramName {
		p.errorf("Program name %v cannot be used as a variable", lexeme)
		return -1
	}
	if !p.declared[i] && !p.warned[i] {
		p.warned[i] = true
		p.log(diag.Warning, "Undeclared identifier %v", lexeme)
	}
	return i
}

func (p *Parser) identifier() int {
	if p.anyErrors {
		return -1
	}
	if p.tok.Code != lexer.Ident {
		p.error("identifier", p.found())
		return -1
	}
	i := p.syms.Lookup(p.tok.Lexeme)
	if i < 0 {
		p.full = true
		p.errorf("Symbol table full, %v was never registered", p.tok.Lexeme)
		return -1
	}
	p.advance()
	return i
}
