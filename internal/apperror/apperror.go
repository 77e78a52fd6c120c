// Package apperror carries the error kinds handlers map onto HTTP statuses.
package apperror

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JonasLeetTheWay/clashon-go/internal/validation"
)

type Kind string

const (
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindForbidden  Kind = "forbidden"
	KindConflict   Kind = "conflict"
	KindInternal   Kind = "internal"
)

type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// Status maps the kind onto an HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func Validation(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }

func NotFound(msg string) *Error { return &Error{Kind: KindNotFound, Message: msg} }

func Forbidden(msg string) *Error { return &Error{Kind: KindForbidden, Message: msg} }

func Conflict(msg string) *Error { return &Error{Kind: KindConflict, Message: msg} }

// Internal wraps a store or infrastructure failure. Its raw text is
// surfaced to the client as details.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "Internal server error", Cause: err}
}

// Binding converts a ShouldBind failure into a validation error.
func Binding(err error) *Error {
	return &Error{Kind: KindValidation, Message: validation.Message(err), Cause: err}
}

// Respond writes err as {"error": ...} with the status its kind maps to.
// Errors without a kind are treated as internal.
func Respond(c *gin.Context, err error) {
	var appErr *Error
	if !errors.As(err, &appErr) {
		appErr = Internal(err)
	}

	_ = c.Error(err)
	if appErr.Kind == KindInternal {
		details := appErr.Error()
		if appErr.Cause != nil {
			details = appErr.Cause.Error()
		}
		c.AbortWithStatusJSON(appErr.Status(), gin.H{
			"error":   appErr.Message,
			"details": details,
		})
		return
	}
	c.AbortWithStatusJSON(appErr.Status(), gin.H{"error": appErr.Message})
}
