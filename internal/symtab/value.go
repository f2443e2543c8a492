package symtab

import (
	"fmt"
	"strconv"
)

// Usage tags the role a symbol plays in the program.
type Usage byte

// Symbol usages, using the single letter codes shown in table dumps.
const (
	Variable    Usage = 'V'
	Constant    Usage = 'C'
	ProgramName Usage = 'P'
)

func (u Usage) String() string {
	switch u {
	case Variable:
		return "variable"
	case Constant:
		return "constant"
	case ProgramName:
		return "program"
	}
	return fmt.Sprintf("Usage(%q)", byte(u))
}

// Kind is the data type stored in a symbol's cell.
type Kind byte

// Cell kinds, using the single letter codes shown in table dumps.
const (
	Integer Kind = 'I'
	Real    Kind = 'F'
	Text    Kind = 'S'
)

func (k Kind) String() string {
	switch k {
	case Integer:
		return "integer"
	case Real:
		return "real"
	case Text:
		return "text"
	}
	return fmt.Sprintf("Kind(%q)", byte(k))
}

// Value is a typed cell value; the zero Value is the integer 0.
type Value struct {
	kind Kind
	i    int
	f    float64
	s    string
}

// Int returns an integer Value.
func Int(i int) Value { return Value{kind: Integer, i: i} }

// Float returns a real Value.
func Float(f float64) Value { return Value{kind: Real, f: f} }

// Str returns a text Value.
func Str(s string) Value { return Value{kind: Text, s: s} }

// Zero returns the zero Value of the given kind.
func Zero(kind Kind) Value {
	switch kind {
	case Real:
		return Float(0)
	case Text:
		return Str("")
	}
	return Int(0)
}

// Kind returns the value's kind.
func (v Value) Kind() Kind {
	if v.kind == 0 {
		return Integer
	}
	return v.kind
}

// AsInt returns the integer held by v, or panics with a *KindError.
func (v Value) AsInt() int {
	if k := v.Kind(); k != Integer {
		panic(&KindError{Index: -1, Have: k, Want: Integer})
	}
	return v.i
}

// AsFloat returns the real held by v, or panics with a *KindError.
func (v Value) AsFloat() float64 {
	if k := v.Kind(); k != Real {
		panic(&KindError{Index: -1, Have: k, Want: Real})
	}
	return v.f
}

// AsText returns the text held by v, or panics with a *KindError.
func (v Value) AsText() string {
	if k := v.Kind(); k != Text {
		panic(&KindError{Index: -1, Have: k, Want: Text})
	}
	return v.s
}

// String formats the value the way the interpreter prints it.
func (v Value) String() string {
	switch v.Kind() {
	case Real:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case Text:
		return v.s
	}
	return strconv.Itoa(v.i)
}

// KindError reports an access to a symbol with the wrong value kind.
type KindError struct {
	Index int
	Have  Kind
	Want  Kind
}

func (err *KindError) Error() string {
	if err.Index < 0 {
		return fmt.Sprintf("%v value accessed as %v", err.Have, err.Want)
	}
	return fmt.Sprintf("symbol %v holds %v, accessed as %v", err.Index, err.Have, err.Want)
}

// RangeError reports an access to a symbol index outside the table.
type RangeError struct {
	Index int
	Len   int
}

func (err *RangeError) Error() string {
	return fmt.Sprintf("symbol index %v out of range [0:%v]", err.Index, err.Len)
}
