package browser

import (
	"errors"
	"fmt"
)

// Failure conditions reported by drivers and by the page primitives built on them
var (
	ErrNotFound        = errors.New("element not found")
	ErrNotInteractable = errors.New("element not interactable")
	ErrTimeout         = errors.New("wait timed out")
)

// ActionError records which action failed on which locator. It matches every sentinel in
// its chain, so errors.Is(err, ErrTimeout) still holds for a NotInteractable click whose
// wait timed out.
type ActionError struct {
	Op      string
	Locator Locator
	Err     error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Locator, e.Err)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

// NewActionError wraps cause so that it also matches kind.
func NewActionError(op string, locator Locator, kind, cause error) error {
	err := cause
	if kind != nil && !errors.Is(cause, kind) {
		err = fmt.Errorf("%w: %w", kind, cause)
	}
	return &ActionError{Op: op, Locator: locator, Err: err}
}
