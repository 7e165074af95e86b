package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	t.Run("typed error", func(t *testing.T) {
		err := New(NotFound, "missing")
		assert.Equal(t, NotFound, KindOf(err))
	})

	t.Run("wrapped typed error", func(t *testing.T) {
		inner := New(Forbidden, "locked")
		err := fmt.Errorf("outer: %w", inner)
		assert.Equal(t, Forbidden, KindOf(err))
	})

	t.Run("plain error defaults to internal", func(t *testing.T) {
		assert.Equal(t, Internal, KindOf(errors.New("boom")))
	})
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(Internal, "write failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "write failed")
	assert.Contains(t, err.Error(), "disk full")
}

func TestIs(t *testing.T) {
	err := Newf(AlreadyExists, "path %s exists", "/tmp/x")

	assert.True(t, Is(err, AlreadyExists))
	assert.False(t, Is(err, NotFound))
	assert.False(t, Is(nil, AlreadyExists))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "not_found", NotFound.String())
	assert.Equal(t, "invalid_argument", InvalidArgument.String())
	assert.Equal(t, "internal", Internal.String())
}
