package journeys

import (
	"errors"
	"fmt"
)

// ErrAssertion marks a step that ran but observed the wrong thing
var ErrAssertion = errors.New("assertion failed")

// expect fails with ErrAssertion unless ok
func expect(ok bool, format string, args ...any) error {
	if ok {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrAssertion, fmt.Sprintf(format, args...))
}

// expectEqual fails with ErrAssertion unless got equals want
func expectEqual[T comparable](what string, got, want T) error {
	if got == want {
		return nil
	}
	return fmt.Errorf("%w: %s: got %v, want %v", ErrAssertion, what, got, want)
}
