package failure_test

import (
	"errors"
	"fmt"
	"hotel/shared/failure"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "test error message",
	}

	assert.Equal(t, "test error message", f.Error())
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{
			name:    "BadRequest",
			err:     failure.BadRequest(errors.New("validation failed")),
			code:    http.StatusBadRequest,
			message: "validation failed",
		},
		{
			name:    "BadRequestFromString",
			err:     failure.BadRequestFromString("Email already exists"),
			code:    http.StatusBadRequest,
			message: "Email already exists",
		},
		{
			name:    "MissingFields",
			err:     failure.MissingFields("name", "email"),
			code:    http.StatusBadRequest,
			message: "Missing required fields: name, email",
		},
		{
			name:    "Unauthorized",
			err:     failure.Unauthorized("token expired"),
			code:    http.StatusUnauthorized,
			message: "token expired",
		},
		{
			name:    "InternalErrorFromString",
			err:     failure.InternalErrorFromString("Registration failed"),
			code:    http.StatusInternalServerError,
			message: "Registration failed",
		},
		{
			name:    "NotFound",
			err:     failure.NotFound("Guest"),
			code:    http.StatusNotFound,
			message: "Guest not found",
		},
		{
			name:    "Conflict",
			err:     failure.Conflict("Email already registered"),
			code:    http.StatusConflict,
			message: "Email already registered",
		},
		{
			name:    "TooManyRequests",
			err:     failure.TooManyRequests("slow down"),
			code:    http.StatusTooManyRequests,
			message: "slow down",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f *failure.Failure
			if assert.ErrorAs(t, tt.err, &f) {
				assert.Equal(t, tt.code, f.Code)
				assert.Equal(t, tt.message, f.Message)
			}
		})
	}
}

func TestNilInputs(t *testing.T) {
	assert.Nil(t, failure.BadRequest(nil))
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected int
	}{
		{
			name:     "failure error",
			input:    &failure.Failure{Code: http.StatusBadRequest, Message: "test"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "wrapped failure error",
			input:    fmt.Errorf("context: %w", failure.NotFound("Room")),
			expected: http.StatusNotFound,
		},
		{
			name:     "regular error",
			input:    errors.New("regular error"),
			expected: http.StatusInternalServerError,
		},
		{
			name:     "nil error",
			input:    nil,
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, failure.GetCode(tt.input))
		})
	}
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", failure.Conflict("dup"))

	assert.True(t, failure.Is(err, http.StatusConflict))
	assert.False(t, failure.Is(err, http.StatusBadRequest))
	assert.False(t, failure.Is(errors.New("plain"), http.StatusConflict))
}

func TestIsFailure(t *testing.T) {
	assert.True(t, failure.IsFailure(fmt.Errorf("tx: %w", failure.BadRequestFromString("bad"))))
	assert.False(t, failure.IsFailure(errors.New("plain")))
	assert.False(t, failure.IsFailure(nil))
}
