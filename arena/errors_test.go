package arena

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapErrorNilCauseReturnsNil(t *testing.T) {
	require.NoError(t, WrapError("context", nil))
}

func TestWrapErrorFormatsContextAndCause(t *testing.T) {
	cause := errors.New("boom")
	err := WrapError("doing thing", cause)
	require.EqualError(t, err, "doing thing: boom")
	require.ErrorIs(t, err, cause)
}
