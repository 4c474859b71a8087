package calendarx_test

import (
	"errors"
	"testing"

	"github.com/goliatone/calendarx"
	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
)

func TestSentinelCategories(t *testing.T) {
	tests := []struct {
		name     string
		err      *goerrors.Error
		category goerrors.Category
		textCode string
	}{
		{
			name:     "Invalid credentials",
			err:      calendarx.ErrMismatchedHashAndPassword,
			category: goerrors.CategoryAuth,
			textCode: calendarx.TextCodeInvalidCreds,
		},
		{
			name:     "Duplicate email",
			err:      calendarx.ErrDuplicateEmail,
			category: goerrors.CategoryConflict,
			textCode: calendarx.TextCodeDuplicateEmail,
		},
		{
			name:     "Expired token",
			err:      calendarx.ErrTokenExpired,
			category: goerrors.CategoryAuth,
			textCode: calendarx.TextCodeTokenExpired,
		},
		{
			name:     "Malformed token",
			err:      calendarx.ErrTokenMalformed,
			category: goerrors.CategoryAuth,
			textCode: calendarx.TextCodeTokenMalformed,
		},
		{
			name:     "Task not found",
			err:      calendarx.ErrTaskNotFound,
			category: goerrors.CategoryNotFound,
			textCode: calendarx.TextCodeTaskNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.category, tt.err.Category)
			assert.Equal(t, tt.textCode, tt.err.TextCode)
		})
	}
}

func TestNotFoundSentinels(t *testing.T) {
	assert.True(t, goerrors.IsNotFound(calendarx.ErrIdentityNotFound))
	assert.True(t, goerrors.IsNotFound(calendarx.ErrTaskNotFound))
	assert.False(t, goerrors.IsNotFound(calendarx.ErrMismatchedHashAndPassword))
}

func TestIsTokenExpiredError(t *testing.T) {
	assert.False(t, calendarx.IsTokenExpiredError(nil))
	assert.True(t, calendarx.IsTokenExpiredError(calendarx.ErrTokenExpired))
	assert.True(t, calendarx.IsTokenExpiredError(errors.New("token is expired by 3h")))
	assert.False(t, calendarx.IsTokenExpiredError(errors.New("something else")))
}

func TestIsMalformedError(t *testing.T) {
	assert.False(t, calendarx.IsMalformedError(nil))
	assert.True(t, calendarx.IsMalformedError(calendarx.ErrTokenMalformed))
	assert.True(t, calendarx.IsMalformedError(errors.New("token is malformed")))
	assert.True(t, calendarx.IsMalformedError(errors.New("missing or malformed JWT")))
	assert.False(t, calendarx.IsMalformedError(errors.New("token is expired")))
}
