package wallet

import (
	"fmt"

	"github.com/iov-one/custody/errors"
)

// wallet takes 1040-1049
var (
	// ErrAlreadyExecuted is returned when approving a transaction that
	// has already been executed.
	ErrAlreadyExecuted = errors.Register(1040, "transaction already executed")

	// ErrInvariant is returned when a registry change would break the
	// registry rules.
	ErrInvariant = errors.Register(1041, "registry invariant violated")

	// ErrExecution is returned when one of the actions of a transaction
	// failed and the whole batch was reverted.
	ErrExecution = errors.Register(1042, "execution failed")
)

// executionError carries the index of the failed action. It matches both
// ErrExecution and the error of the failed action.
type executionError struct {
	index int
	cause error
}

func newExecutionError(index int, cause error) error {
	return &executionError{index: index, cause: cause}
}

func (e *executionError) Error() string {
	return fmt.Sprintf("%s: action %d: %s", ErrExecution.Error(), e.index, e.cause)
}

func (e *executionError) Cause() error {
	return e.cause
}

func (e *executionError) Unpack() []error {
	return []error{ErrExecution, e.cause}
}

// FailedAction returns the index of the action that failed the execution
// reported by err.
func FailedAction(err error) (int, bool) {
	for err != nil {
		if e, ok := err.(*executionError); ok {
			return e.index, true
		}
		c, ok := err.(interface{ Cause() error })
		if !ok {
			return 0, false
		}
		err = c.Cause()
	}
	return 0, false
}
