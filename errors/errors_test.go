package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	original := New("original")
	wrapped := Wrap(original, "wrapped")

	assert.Contains(t, wrapped.Error(), "wrapped")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestWithHint(t *testing.T) {
	err := WithHint(New("error"), "declare the property type first")

	hints := GetAllHints(err)
	require.Len(t, hints, 1)
	assert.Equal(t, "declare the property type first", hints[0])
}

func TestStackTrace(t *testing.T) {
	err := New("with stack")

	detailed := fmt.Sprintf("%+v", err)
	assert.Contains(t, detailed, "errors_test.go")
}

func TestNilHandling(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, Wrapf(nil, "context %d", 1))
	assert.Nil(t, WithHint(nil, "hint"))
	assert.False(t, IsNotFoundError(nil))
	assert.False(t, IsTypeMismatch(nil))
}

func TestNotFound(t *testing.T) {
	err := NewNotFoundError("container %s", "abc")
	assert.True(t, IsNotFoundError(err))
	assert.Contains(t, err.Error(), "container abc")

	wrapped := Wrap(err, "read")
	assert.True(t, IsNotFoundError(wrapped))
}

func TestTypeMismatch(t *testing.T) {
	err := NewTypeMismatchError("_num", "number", "blob")
	assert.True(t, IsTypeMismatch(err))
	assert.Contains(t, err.Error(), "_num")

	details := GetAllDetails(err)
	require.Len(t, details, 1)
	assert.Equal(t, "declared number, got blob", details[0])
}
