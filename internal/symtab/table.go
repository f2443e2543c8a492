// Package symtab implements the symbol table shared by the compiler and the
// quad interpreter: an ordered list of typed cells addressed by index.
package symtab

import "strings"

// Symbol is one cell of the table.
type Symbol struct {
	Name  string
	Usage Usage
	Value Value
}

// Table holds at most a fixed number of symbols. Names are unique ignoring
// case, and a symbol's index never changes once assigned.
type Table struct {
	syms  []Symbol
	index map[string]int
}

// New creates a Table that will hold at most maxSize symbols.
func New(maxSize int) *Table {
	return &Table{
		syms:  make([]Symbol, 0, maxSize),
		index: make(map[string]int, maxSize),
	}
}

// Len returns the number of symbols stored.
func (tab *Table) Len() int { return len(tab.syms) }

// Cap returns the maximum number of symbols.
func (tab *Table) Cap() int { return cap(tab.syms) }

// Add stores a new symbol, returning its index.
// If a symbol with the same name (ignoring case) already exists, its index is
// returned and nothing is changed. If the table is full, -1 is returned.
func (tab *Table) Add(name string, usage Usage, val Value) int {
	key := strings.ToUpper(name)
	if i, ok := tab.index[key]; ok {
		return i
	}
	if len(tab.syms) == cap(tab.syms) {
		return -1
	}
	i := len(tab.syms)
	tab.syms = append(tab.syms, Symbol{Name: name, Usage: usage, Value: val})
	tab.index[key] = i
	return i
}

// Lookup returns the index of the named symbol, ignoring case, or -1.
func (tab *Table) Lookup(name string) int {
	if i, ok := tab.index[strings.ToUpper(name)]; ok {
		return i
	}
	return -1
}

// Update overwrites the usage and value of the symbol at index i; it does
// nothing if i is out of range. The new value must have the symbol's kind.
func (tab *Table) Update(i int, usage Usage, val Value) {
	if i < 0 || i >= len(tab.syms) {
		return
	}
	sym := &tab.syms[i]
	if have, want := sym.Value.Kind(), val.Kind(); have != want {
		panic(&KindError{Index: i, Have: have, Want: want})
	}
	sym.Usage = usage
	sym.Value = val
}

// Declare fixes the kind of the variable at index i, resetting its value to
// that kind's zero.
func (tab *Table) Declare(i int, kind Kind) {
	sym := tab.at(i)
	sym.Usage = Variable
	sym.Value = Zero(kind)
}

// Symbol returns a copy of the symbol at index i.
func (tab *Table) Symbol(i int) Symbol { return *tab.at(i) }

// Name returns the name of the symbol at index i.
func (tab *Table) Name(i int) string { return tab.at(i).Name }

// Usage returns the usage of the symbol at index i.
func (tab *Table) Usage(i int) Usage { return tab.at(i).Usage }

// Kind returns the data kind of the symbol at index i.
func (tab *Table) Kind(i int) Kind { return tab.at(i).Value.Kind() }

// Value returns the value of the symbol at index i.
func (tab *Table) Value(i int) Value { return tab.at(i).Value }

// Int returns the integer value of the symbol at index i.
func (tab *Table) Int(i int) int { return tab.checked(i, Integer).i }

// Float returns the real value of the symbol at index i.
func (tab *Table) Float(i int) float64 { return tab.checked(i, Real).f }

// Text returns the text value of the symbol at index i.
func (tab *Table) Text(i int) string { return tab.checked(i, Text).s }

func (tab *Table) at(i int) *Symbol {
	if i < 0 || i >= len(tab.syms) {
		panic(&RangeError{Index: i, Len: len(tab.syms)})
	}
	return &tab.syms[i]
}

func (tab *Table) checked(i int, want Kind) Value {
	val := tab.at(i).Value
	if have := val.Kind(); have != want {
		panic(&KindError{Index: i, Have: have, Want: want})
	}
	return val
}
