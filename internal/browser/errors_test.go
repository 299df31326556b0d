package browser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewActionError(t *testing.T) {
	cause := errors.New("driver said no")

	err := NewActionError("click", "#submit", ErrNotInteractable, cause)

	assert.ErrorIs(t, err, ErrNotInteractable)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), `click "#submit"`)

	var actionErr *ActionError
	if assert.ErrorAs(t, err, &actionErr) {
		assert.Equal(t, "click", actionErr.Op)
		assert.Equal(t, Locator("#submit"), actionErr.Locator)
	}
}

func TestNewActionError_KeepsTimeoutInChain(t *testing.T) {
	err := NewActionError("click", ".add-to-cart", ErrNotInteractable, ErrTimeout)

	assert.ErrorIs(t, err, ErrNotInteractable)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestNewActionError_NoDoubleWrap(t *testing.T) {
	err := NewActionError("text", "h2", ErrTimeout, ErrTimeout)

	var actionErr *ActionError
	assert.ErrorAs(t, err, &actionErr)
	assert.Same(t, ErrTimeout, actionErr.Err)
}
