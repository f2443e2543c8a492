// Package names implements a small fixed capacity table associating short
// names with integer codes, as used for reserved words and opcode mnemonics.
package names

import "strings"

// Table is an append-only list of (name, code) rows.
// Duplicate names and codes are permitted; name lookup is case-insensitive
// and returns the first matching row, while code lookup returns the last.
type Table struct {
	names []string
	codes []int
	first map[string]int
}

// New creates a Table that will hold at most maxSize rows.
func New(maxSize int) *Table {
	return &Table{
		names: make([]string, 0, maxSize),
		codes: make([]int, 0, maxSize),
		first: make(map[string]int, maxSize),
	}
}

// Add appends a row, returning its index, or -1 if the table is full.
func (tab *Table) Add(name string, code int) int {
	if len(tab.names) == cap(tab.names) {
		return -1
	}
	i := len(tab.names)
	tab.names = append(tab.names, name)
	tab.codes = append(tab.codes, code)
	key := strings.ToUpper(name)
	if _, seen := tab.first[key]; !seen {
		tab.first[key] = i
	}
	return i
}

// LookupName returns the code of the first row named name, ignoring case, or
// -1 if there is no such row.
func (tab *Table) LookupName(name string) int {
	if i, ok := tab.first[strings.ToUpper(name)]; ok {
		return tab.codes[i]
	}
	return -1
}

// LookupCode returns the name of the last row with the given code, or "" if
// there is no such row.
func (tab *Table) LookupCode(code int) string {
	for i := len(tab.codes) - 1; i >= 0; i-- {
		if tab.codes[i] == code {
			return tab.names[i]
		}
	}
	return ""
}

// Len returns the number of rows added so far.
func (tab *Table) Len() int { return len(tab.names) }

// Cap returns the maximum number of rows.
func (tab *Table) Cap() int { return cap(tab.names) }

// Row returns the name and code stored at index i.
func (tab *Table) Row(i int) (name string, code int) {
	return tab.names[i], tab.codes[i]
}
