// Package panicerr converts panics raised by programmer faults deep inside the
// compiler or interpreter back into ordinary error returns.
package panicerr

import "runtime/debug"

// Recover calls f and returns its error; a panic inside f is returned as an
// *Error labeled with where.
func Recover(where string, f func() error) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = &Error{Where: where, Value: v, Stack: debug.Stack()}
		}
	}()
	return f()
}
