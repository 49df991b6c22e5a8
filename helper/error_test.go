package helper

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewError(t *testing.T) {
	sentinel := errors.New("not found")

	t.Run("Error message carries the trace", func(t *testing.T) {
		err := NewError("load graph", sentinel)
		assert.Equal(t, "load graph: not found", err.Error())
	})

	t.Run("Wrapped sentinel stays matchable", func(t *testing.T) {
		var err error = NewError("outer", NewError("inner", sentinel))
		assert.ErrorIs(t, err, sentinel, "Expected errors.Is to see through both wrappers")

		var traced *Error
		assert.True(t, errors.As(err, &traced))
		assert.Equal(t, "outer", traced.Trace)
	})
}
