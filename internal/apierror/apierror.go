// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import "net/http"

// Error codes surfaced to callers. Services attach exactly one code per error;
// handlers translate the code into an HTTP status.
const (
	CodeNotFound     = "not_found"
	CodeConflict     = "conflict"
	CodeBadRequest   = "bad_request"
	CodeUnauthorized = "unauthorized"
	CodeInternal     = "internal"
)

// Error is the typed error services return. It implements the error interface
// so it travels through normal error returns.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"detail"`
}

func (e *Error) Error() string { return e.Message }

func NotFound(msg string) *Error     { return &Error{Code: CodeNotFound, Message: msg} }
func Unauthorized(msg string) *Error { return &Error{Code: CodeUnauthorized, Message: msg} }
func Conflict(msg string) *Error     { return &Error{Code: CodeConflict, Message: msg} }
func BadRequest(msg string) *Error   { return &Error{Code: CodeBadRequest, Message: msg} }
func Internal(msg string) *Error     { return &Error{Code: CodeInternal, Message: msg} }

// HTTPStatus maps an error to its HTTP status. Untyped errors are treated as
// internal failures so repository/driver errors never pick an accidental 4xx.
func HTTPStatus(err error) int {
	e, ok := err.(*Error)
	if !ok {
		return http.StatusInternalServerError
	}
	switch e.Code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
	Code   string `json:"code,omitempty"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// FromError builds the response envelope for a service error, defaulting to an
// opaque internal message for untyped errors.
func FromError(err error) *APIError {
	if e, ok := err.(*Error); ok {
		return &APIError{Detail: e.Message, Code: e.Code}
	}
	return &APIError{Detail: "internal server error", Code: CodeInternal}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "validation error", Fields: fields}
}
