package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMatching(t *testing.T) {
	err := NotFoundf("no document %s", "a.pdf:1")

	assert.True(t, Is(err, ErrNotFound))
	assert.False(t, Is(err, ErrValidation))
	assert.Equal(t, "no document a.pdf:1", err.Error())
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := Wrap(cause, CodeStorage, "save state")

	assert.True(t, Is(err, ErrStorage))
	assert.True(t, Is(err, cause))
	assert.Equal(t, "save state: disk full", err.Error())
	assert.Equal(t, cause, Unwrap(err))
}

func TestWrappedCodeMatchesThroughChain(t *testing.T) {
	inner := Canceled("render superseded")
	outer := Wrap(inner, CodeLoad, "render page 3")

	// The outer code matches directly, the inner through unwrapping.
	assert.True(t, Is(outer, ErrLoad))
	assert.True(t, Is(outer, ErrCanceled))
}

func TestWithDetails(t *testing.T) {
	err := ValidationWithDetails("validation failed", map[string]string{"font_size": "must be at least 14"})

	assert.True(t, Is(err, ErrValidation))

	var domainErr *Error
	assert.True(t, As(err, &domainErr))
	assert.Equal(t, CodeValidation, domainErr.Code)
	assert.NotNil(t, domainErr.Details)
}

func TestAs(t *testing.T) {
	var target *Error
	assert.True(t, As(Storagef("write %s", "blob:x"), &target))
	assert.Equal(t, CodeStorage, target.Code)

	target = nil
	assert.False(t, As(fmt.Errorf("plain"), &target))
}
