package failure

import (
	"errors"
	"net/http"
	"strings"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Error returns the error code and message in a formatted string.
func (e *Failure) Error() string {
	return e.Message
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
	}
}

// MissingFields lists absent required fields in the order given.
func MissingFields(fields ...string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: "Missing required fields: " + strings.Join(fields, ", "),
	}
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Message: msg,
	}
}

// InternalErrorFromString hides the underlying cause behind a fixed message.
func InternalErrorFromString(msg string) error {
	return &Failure{
		Code:    http.StatusInternalServerError,
		Message: msg,
	}
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Message: entityName + " not found",
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: message,
	}
}

func TooManyRequests(msg string) error {
	return &Failure{
		Code:    http.StatusTooManyRequests,
		Message: msg,
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// IsFailure reports whether err already carries an HTTP status.
func IsFailure(err error) bool {
	var fail *Failure

	return errors.As(err, &fail)
}

// Is reports whether err carries a Failure with the given code.
func Is(err error, code int) bool {
	var fail *Failure

	return errors.As(err, &fail) && fail.Code == code
}
