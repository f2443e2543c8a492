package main

import (
	"sort"

	"github.com/jcorbin/quadpas/internal/quads"
	"github.com/jcorbin/quadpas/internal/symtab"
)

// demoPrograms build quad programs directly, without the compiler, each
// computing a function of n and printing it.
var demoPrograms = map[string]func(n int) *Program{
	"factorial": factorialProgram,
	"summation": summationProgram,
}

func demoNames() []string {
	names := make([]string, 0, len(demoPrograms))
	for name := range demoPrograms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type progBuilder struct {
	*Program
}

func newProgBuilder(maxSymbols, maxQuads int) progBuilder {
	return progBuilder{&Program{
		Symbols: symtab.New(maxSymbols),
		Quads:   quads.New(maxQuads),
	}}
}

func (b progBuilder) variable(name string, n int) int {
	return b.Symbols.Add(name, symtab.Variable, symtab.Int(n))
}

func (b progBuilder) constant(name string, val symtab.Value) int {
	return b.Symbols.Add(name, symtab.Constant, val)
}

func (b progBuilder) emit(op quads.Opcode, a, bb, c int) int {
	at := b.Quads.Next()
	b.Quads.Add(op, a, bb, c)
	return at
}

// factorialProgram multiplies product by i for i from 1 to n.
func factorialProgram(n int) *Program {
	b := newProgBuilder(8, 16)
	limit := b.variable("n", n)
	i := b.variable("i", 0)
	product := b.variable("product", 0)
	one := b.constant("1", symtab.Int(1))
	diff := b.constant("@T1", symtab.Int(0))

	b.emit(quads.MOV, one, 0, i)
	b.emit(quads.MOV, one, 0, product)
	top := b.emit(quads.SUB, i, limit, diff)
	exit := b.emit(quads.JP, diff, 0, -1)
	b.emit(quads.MUL, product, i, product)
	b.emit(quads.ADD, i, one, i)
	b.emit(quads.JMP, 0, 0, top)
	b.Quads.UpdateJump(exit, b.emit(quads.PRINT, 0, 0, product))
	b.emit(quads.STOP, 0, 0, 0)
	return b.Program
}

// summationProgram adds i to sum for i from 1 to n.
func summationProgram(n int) *Program {
	b := newProgBuilder(8, 16)
	limit := b.variable("n", n)
	i := b.variable("i", 0)
	sum := b.variable("sum", 0)
	zero := b.constant("0", symtab.Int(0))
	one := b.constant("1", symtab.Int(1))
	diff := b.constant("@T1", symtab.Int(0))

	b.emit(quads.MOV, zero, 0, sum)
	b.emit(quads.MOV, one, 0, i)
	top := b.emit(quads.SUB, i, limit, diff)
	exit := b.emit(quads.JP, diff, 0, -1)
	b.emit(quads.ADD, sum, i, sum)
	b.emit(quads.ADD, i, one, i)
	b.emit(quads.JMP, 0, 0, top)
	b.Quads.UpdateJump(exit, b.emit(quads.PRINT, 0, 0, sum))
	b.emit(quads.STOP, 0, 0, 0)
	return b.Program
}
