package apierror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNotFoundMatchesSentinel(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("wiki: fetch page: %w", NotFound("wikipage"))
	require.ErrorIs(t, err, ErrNotFound)
	require.Equal(t, "wiki: fetch page: wikipage not found", err.Error())

	field, ok := FieldOf(err)
	require.True(t, ok)
	require.Equal(t, "wikipage", field)
}

func TestFieldOfPlainError(t *testing.T) {
	t.Parallel()

	_, ok := FieldOf(errors.New("boom"))
	require.False(t, ok)

	_, ok = FieldOf(ErrNotFound)
	require.False(t, ok)
	require.Equal(t, "not found", NotFound("").Error())
}
