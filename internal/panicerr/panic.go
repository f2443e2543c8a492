package panicerr

import (
	"fmt"
	"io"
)

// Error is a recovered panic: the value passed to panic, and the stack at the
// point it was raised.
type Error struct {
	Where string
	Value interface{}
	Stack []byte
}

func (e *Error) Error() string {
	if e.Where == "" {
		return fmt.Sprintf("panic: %v", e.Value)
	}
	return fmt.Sprintf("%v: panic: %v", e.Where, e.Value)
}

// Format adds the panic stack under the %+v verb.
func (e *Error) Format(f fmt.State, c rune) {
	io.WriteString(f, e.Error())
	if c == 'v' && f.Flag('+') {
		fmt.Fprintf(f, "\n%s", e.Stack)
	}
}

// Unwrap returns the panic value when it was an error, so that errors.Is and
// errors.As see through the recovery.
func (e *Error) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}
