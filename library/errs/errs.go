package errs

import (
	"fmt"
	"runtime/debug"
)

// PanicError is a recovered panic with the stack it was raised from.
type PanicError struct {
	Value interface{}
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// Recovered converts a recover() result into an error.
// Must be called from the deferred function itself to capture the right stack.
func Recovered(e interface{}) error {
	if e == nil {
		return nil
	}
	return &PanicError{Value: e, Stack: debug.Stack()}
}
