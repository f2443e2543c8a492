package quads

import (
	"fmt"

	"github.com/jcorbin/quadpas/internal/names"
)

// Opcode names a quad instruction.
type Opcode int

// Instruction set. In the descriptions, a b and c are the three operand
// fields; jump instructions test symbol a and jump to quad c.
const (
	STOP  Opcode = iota // halt
	DIV                 // c = a / b
	MUL                 // c = a * b
	SUB                 // c = a - b
	ADD                 // c = a + b
	MOV                 // c = a
	PRINT               // print c
	READ                // read an integer into c
	JMP                 // goto c
	JZ                  // goto c if a == 0
	JP                  // goto c if a > 0
	JN                  // goto c if a < 0
	JNZ                 // goto c if a != 0
	JNP                 // goto c if a <= 0
	JNN                 // goto c if a >= 0
	JINDR               // goto the quad number stored in symbol c

	opcodeMax
)

var opcodeNames = [opcodeMax]string{
	STOP:  "STOP",
	DIV:   "DIV",
	MUL:   "MUL",
	SUB:   "SUB",
	ADD:   "ADD",
	MOV:   "MOV",
	PRINT: "PRINT",
	READ:  "READ",
	JMP:   "JMP",
	JZ:    "JZ",
	JP:    "JP",
	JN:    "JN",
	JNZ:   "JNZ",
	JNP:   "JNP",
	JNN:   "JNN",
	JINDR: "JINDR",
}

// Mnemonics returns a name table of every opcode mnemonic.
func Mnemonics() *names.Table {
	tab := names.New(20)
	for op, name := range opcodeNames {
		tab.Add(name, op)
	}
	return tab
}

// Valid returns true if op is a defined opcode.
func (op Opcode) Valid() bool { return op >= 0 && op < opcodeMax }

func (op Opcode) String() string {
	if op.Valid() {
		return opcodeNames[op]
	}
	return fmt.Sprintf("Opcode(%d)", int(op))
}

// IsJump returns true for instructions whose c field is a quad number.
func (op Opcode) IsJump() bool { return op >= JMP && op <= JNN }

// Taken reports whether a jump with this opcode is taken when its tested
// operand has the given sign (-1, 0, or 1).
func (op Opcode) Taken(sign int) bool {
	switch op {
	case JMP:
		return true
	case JZ:
		return sign == 0
	case JP:
		return sign > 0
	case JN:
		return sign < 0
	case JNZ:
		return sign != 0
	case JNP:
		return sign <= 0
	case JNN:
		return sign >= 0
	}
	return false
}
