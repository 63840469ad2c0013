// Package errors defines typed application errors and their HTTP mapping.
//
// An Error carries two user-facing strings: Title, a short statement of what
// went wrong (rendered as the JSON "error" field), and Message, guidance for
// the caller (rendered as "message").
package errors

import (
	stderrors "errors"
	"net/http"
	"strings"
)

// Kind classifies application failures for consistent HTTP mapping.
type Kind string

const (
	KindUnknown      Kind = "unknown"
	KindInvalidInput Kind = "invalid_input"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindUnavailable  Kind = "unavailable"
)

// Generic copy used when an error carries no public text.
const (
	InternalTitle   = "Internal server error"
	InternalMessage = "An unexpected error occurred while processing your request"
)

// Error is a typed application failure.
type Error struct {
	Kind    Kind
	Title   string
	Message string
	Cause   error
}

// Error renders the title, falling back to the message and then the kind.
func (e Error) Error() string {
	if e.Title != "" {
		return e.Title
	}
	if e.Message != "" {
		return e.Message
	}
	return string(e.Kind)
}

// Unwrap exposes the cause for errors.Is/As traversal.
func (e Error) Unwrap() error {
	return e.Cause
}

// E builds a typed Error.
func E(kind Kind, title, message string) error {
	return Error{Kind: kind, Title: strings.TrimSpace(title), Message: strings.TrimSpace(message)}
}

// Wrap builds a typed Error around cause.
func Wrap(kind Kind, title, message string, cause error) error {
	return Error{Kind: kind, Title: strings.TrimSpace(title), Message: strings.TrimSpace(message), Cause: cause}
}

// KindOf returns the kind of the first typed Error in err's chain.
func KindOf(err error) Kind {
	var appErr Error
	if !stderrors.As(err, &appErr) {
		return KindUnknown
	}
	return appErr.Kind
}

// HTTPStatus maps an error to an HTTP status code.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	switch KindOf(err) {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Public returns the caller-safe title and message for err. Untyped errors
// and unknown kinds never leak their text.
func Public(err error) (title string, message string) {
	var appErr Error
	if err == nil || !stderrors.As(err, &appErr) || appErr.Kind == KindUnknown {
		return InternalTitle, InternalMessage
	}
	title = appErr.Title
	if title == "" {
		title = http.StatusText(HTTPStatus(appErr))
	}
	message = appErr.Message
	if message == "" {
		message = title
	}
	return title, message
}
