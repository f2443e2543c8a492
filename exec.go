package main

import (
	"context"
	"fmt"
	"math"

	"github.com/jcorbin/quadpas/internal/quads"
	"github.com/jcorbin/quadpas/internal/symtab"
)

func (vm *VM) run(ctx context.Context) {
	vm.pc = 0
	vm.steps = 0
	for vm.pc < vm.prog.Quads.Len() {
		vm.step()
		vm.haltif(ctx.Err())
	}
	vm.haltif(vm.out.Flush())
}

func (vm *VM) step() {
	vm.at = vm.pc
	vm.quad = vm.prog.Quads.Get(vm.pc)
	vm.pc++
	if vm.stepLimit > 0 {
		if vm.steps++; vm.steps > vm.stepLimit {
			vm.fault(errStepLimit)
		}
	}
	if vm.tracing() {
		vm.tracef("exec", "@%04d %v", vm.at, vm.describe(vm.quad))
	}

	syms := vm.prog.Symbols
	switch q := vm.quad; q.Op {
	case quads.STOP:
		vm.halt(nil)
	case quads.DIV, quads.MUL, quads.SUB, quads.ADD:
		vm.store(q.C, vm.arith(q.Op, syms.Value(q.A), syms.Value(q.B)))
	case quads.MOV:
		vm.store(q.C, syms.Value(q.A))
	case quads.PRINT:
		vm.print(syms.Value(q.C))
	case quads.READ:
		vm.read(q.C)
	case quads.JMP:
		vm.jump(q.C)
	case quads.JZ, quads.JP, quads.JN, quads.JNZ, quads.JNP, quads.JNN:
		if q.Op.Taken(sign(syms.Value(q.A))) {
			vm.jump(q.C)
		}
	case quads.JINDR:
		vm.jump(syms.Int(q.C))
	default:
		vm.fault(opcodeError(q.Op))
	}
}

func (vm *VM) jump(pc int) {
	if pc < 0 {
		vm.fault(jumpError(pc))
	}
	vm.pc = pc
}

const (
	maxInt = int(^uint(0) >> 1)
	minInt = -maxInt - 1

	// intLimit is the smallest positive real too large to store as an integer.
	intLimit = float64(maxInt) + 1
)

// arith computes an integer result when both operands are integers, and a
// real result otherwise.
func (vm *VM) arith(op quads.Opcode, x, y symtab.Value) symtab.Value {
	if x.Kind() == symtab.Integer && y.Kind() == symtab.Integer {
		n, err := intArith(op, x.AsInt(), y.AsInt())
		if err != nil {
			vm.fault(err)
		}
		return symtab.Int(n)
	}

	a, b := toReal(x), toReal(y)
	var f float64
	switch op {
	case quads.DIV:
		f = a / b
	case quads.MUL:
		f = a * b
	case quads.SUB:
		f = a - b
	default:
		f = a + b
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		vm.fault(errNotFinite)
	}
	return symtab.Float(f)
}

// intArith is integer division, multiplication, subtraction, or addition,
// failing rather than wrapping around.
func intArith(op quads.Opcode, a, b int) (int, error) {
	switch op {
	case quads.DIV:
		if b == 0 {
			return 0, errDivideByZero
		}
		if a == minInt && b == -1 {
			return 0, errIntOverflow
		}
		return a / b, nil
	case quads.MUL:
		c := a * b
		if a != 0 && (c/a != b || (a == -1 && b == minInt)) {
			return 0, errIntOverflow
		}
		return c, nil
	case quads.SUB:
		c := a - b
		if (c < a) != (b > 0) {
			return 0, errIntOverflow
		}
		return c, nil
	default:
		c := a + b
		if (c > a) != (b > 0) {
			return 0, errIntOverflow
		}
		return c, nil
	}
}

// store converts val to the kind of symbol i before storing it; text neither
// converts to nor from a number. Reals truncate toward zero into integers.
func (vm *VM) store(i int, val symtab.Value) {
	syms := vm.prog.Symbols
	switch have, want := val.Kind(), syms.Kind(i); {
	case have == symtab.Integer && want == symtab.Real:
		val = symtab.Float(float64(val.AsInt()))
	case have == symtab.Real && want == symtab.Integer:
		f := val.AsFloat()
		if f >= intLimit || f < -intLimit {
			vm.fault(errIntOverflow)
		}
		val = symtab.Int(int(f))
	}
	syms.Update(i, syms.Usage(i), val)
}

func (vm *VM) print(val symtab.Value) {
	_, err := fmt.Fprintln(vm.out, val.String())
	vm.haltif(err)
}

func (vm *VM) read(i int) {
	vm.haltif(vm.out.Flush())
	name := vm.prog.Symbols.Name(i)
	n, err := vm.in.ReadInt(fmt.Sprintf("Enter an integer for %v: ", name))
	vm.haltif(err)
	vm.store(i, symtab.Int(n))
}

func (vm *VM) describe(q quads.Quad) string {
	syms := vm.prog.Symbols
	operand := func(i int) string {
		if i < 0 || i >= syms.Len() {
			return fmt.Sprint(i)
		}
		return fmt.Sprintf("%v=%v", syms.Name(i), syms.Value(i))
	}
	switch {
	case q.Op == quads.STOP:
		return q.Op.String()
	case q.Op == quads.JMP:
		return fmt.Sprintf("%v %v", q.Op, q.C)
	case q.Op.IsJump():
		return fmt.Sprintf("%v %v, %v", q.Op, operand(q.A), q.C)
	case q.Op == quads.PRINT, q.Op == quads.READ, q.Op == quads.JINDR:
		return fmt.Sprintf("%v %v", q.Op, operand(q.C))
	case q.Op == quads.MOV:
		return fmt.Sprintf("%v %v, %v", q.Op, operand(q.A), operand(q.C))
	}
	return fmt.Sprintf("%v %v, %v, %v", q.Op, operand(q.A), operand(q.B), operand(q.C))
}

func toReal(v symtab.Value) float64 {
	if v.Kind() == symtab.Integer {
		return float64(v.AsInt())
	}
	return v.AsFloat()
}

func sign(v symtab.Value) int {
	if v.Kind() == symtab.Integer {
		switch n := v.AsInt(); {
		case n < 0:
			return -1
		case n > 0:
			return 1
		}
		return 0
	}
	switch f := v.AsFloat(); {
	case f < 0:
		return -1
	case f > 0:
		return 1
	}
	return 0
}
