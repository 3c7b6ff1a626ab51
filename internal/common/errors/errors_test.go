package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsAppErrorUnwrapsWrappedErrors(t *testing.T) {
	base := NewListingNotFoundError("abc")
	wrapped := fmt.Errorf("loading: %w", base)

	appErr, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, ErrCodeListingNotFound, appErr.Code)
	assert.True(t, appErr.IsNotFound())
	assert.True(t, HasCode(wrapped, ErrCodeListingNotFound))
	assert.False(t, HasCode(wrapped, ErrCodeNotOwner))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	appErr := NewDatabaseError("list listings", cause)

	assert.ErrorIs(t, appErr, cause)
	assert.True(t, appErr.IsInternal())
	assert.Contains(t, appErr.Error(), "connection refused")
	assert.Equal(t, "list listings", appErr.Details["operation"])
}

func TestAsAppErrorNil(t *testing.T) {
	_, ok := AsAppError(nil)
	assert.False(t, ok)
}
