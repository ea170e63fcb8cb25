package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the failure type every repository and facade operation returns.
// Status is the HTTP status the transport layer reports; the layer itself
// never retries or recovers, failures propagate untouched.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

func BadRequest(msg string) error   { return &Error{Status: http.StatusBadRequest, Message: msg} }
func Unauthorized(msg string) error { return &Error{Status: http.StatusUnauthorized, Message: msg} }
func Forbidden(msg string) error    { return &Error{Status: http.StatusForbidden, Message: msg} }
func NotFound(msg string) error     { return &Error{Status: http.StatusNotFound, Message: msg} }
func Conflict(msg string) error     { return &Error{Status: http.StatusConflict, Message: msg} }
func Internal(msg string) error {
	return &Error{Status: http.StatusInternalServerError, Message: msg}
}

func BadRequestf(format string, args ...any) error {
	return BadRequest(fmt.Sprintf(format, args...))
}

func Forbiddenf(format string, args ...any) error {
	return Forbidden(fmt.Sprintf(format, args...))
}

func Internalf(format string, args ...any) error {
	return Internal(fmt.Sprintf(format, args...))
}

// StatusOf maps an error to the HTTP status code the caller should report.
// Unclassified errors are treated as internal.
func StatusOf(err error) int {
	var de *Error
	if errors.As(err, &de) {
		return de.Status
	}
	return http.StatusInternalServerError
}

// IsStatus reports whether err carries the given HTTP status.
func IsStatus(err error, status int) bool {
	var de *Error
	return errors.As(err, &de) && de.Status == status
}
