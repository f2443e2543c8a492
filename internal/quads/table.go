// Package quads implements the instruction store of the quad machine: a fixed
// capacity, append-only list of (opcode, a, b, c) instructions.
package quads

import "fmt"

// Quad is one instruction. Fields a and b are symbol indices; c is either a
// destination symbol index or, for jumps, a quad number.
type Quad struct {
	Op      Opcode
	A, B, C int
}

// Sentinel is reported for rows that hold no instruction.
var Sentinel = Quad{Op: -1, A: -1, B: -1, C: -1}

func (q Quad) String() string {
	return fmt.Sprintf("%v %v, %v, %v", q.Op, q.A, q.B, q.C)
}

// Table stores quads by their position. Only the jump target of a stored
// quad may be changed after it is added.
type Table struct {
	quads []Quad
}

// New creates a Table that will hold at most maxSize quads.
func New(maxSize int) *Table {
	return &Table{quads: make([]Quad, 0, maxSize)}
}

// Len returns the number of quads stored.
func (tab *Table) Len() int { return len(tab.quads) }

// Cap returns the maximum number of quads.
func (tab *Table) Cap() int { return cap(tab.quads) }

// Next returns the index the next added quad will have, or -1 if the table is
// full.
func (tab *Table) Next() int {
	if len(tab.quads) == cap(tab.quads) {
		return -1
	}
	return len(tab.quads)
}

// Add appends a quad; it is silently dropped when the table is full.
func (tab *Table) Add(op Opcode, a, b, c int) {
	if len(tab.quads) < cap(tab.quads) {
		tab.quads = append(tab.quads, Quad{op, a, b, c})
	}
}

// Get returns the quad at index i, or Sentinel if there is none.
func (tab *Table) Get(i int) Quad {
	if i < 0 || i >= len(tab.quads) {
		return Sentinel
	}
	return tab.quads[i]
}

// UpdateJump sets the c field of the quad at index i, backpatching a
// forward jump; it does nothing if i is not a stored quad.
func (tab *Table) UpdateJump(i, c int) {
	if i >= 0 && i < len(tab.quads) {
		tab.quads[i].C = c
	}
}
