package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		code int
		want int
	}{
		{ErrCodeInsufficientStock, http.StatusBadRequest},
		{ErrCodeInvalidParams, http.StatusBadRequest},
		{ErrCodeReviewDuplicate, http.StatusBadRequest},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeForbidden, http.StatusForbidden},
		{ErrCodeBookNotFound, http.StatusNotFound},
		{ErrCodeTooManyRequests, http.StatusTooManyRequests},
		{ErrCodeInternal, http.StatusInternalServerError},
		{12345, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, HTTPStatus(tc.code), "code=%d", tc.code)
	}
}

func TestGetAppError_WrapsPlainErrors(t *testing.T) {
	plain := errors.New("connection refused")

	appErr := GetAppError(plain)
	assert.Equal(t, ErrCodeInternal, appErr.Code)
	assert.ErrorIs(t, appErr, plain)

	wrapped := fmt.Errorf("step failed: %w", ErrForbidden)
	assert.Equal(t, ErrCodeForbidden, Code(wrapped))
	assert.True(t, IsAppError(wrapped))
	assert.Equal(t, 0, Code(nil))
}

func TestAppError_Error(t *testing.T) {
	assert.Equal(t, "[40300] Not authorized", ErrForbidden.Error())

	err := Wrap(errors.New("boom"), "query failed")
	assert.Equal(t, "[50000] query failed: boom", err.Error())
}
