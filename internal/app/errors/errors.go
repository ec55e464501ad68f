package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Failure kinds of the rename pipeline. Every error that leaves the adaptive
// transcriber matches exactly one of them through errors.Is.
var (
	ErrModelNotLoaded       = New("speech model not loaded")
	ErrAudioNotFound        = New("audio file not found")
	ErrInvalidConfiguration = New("invalid configuration")
	ErrUnreadableAudio      = New("unreadable audio")
	ErrTranscriptionFailure = New("transcription failed")
)

// Supporting errors used by the driver and the provider registry
var (
	ErrMissingAPIKey    = New("API key is required")
	ErrProviderNotFound = New("provider not found")
	ErrFileWriteFailed  = New("file write failed")
	ErrUploadFailed     = New("upload failed")
)

// Error represents a standardized error
type Error struct {
	message string
	cause   error
}

// New creates a new error
func New(message string) *Error {
	return &Error{message: message}
}

// Newf creates a new formatted error
func Newf(format string, args ...interface{}) *Error {
	return &Error{message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: message,
		cause:   err,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: fmt.Sprintf(format, args...),
		cause:   err,
	}
}

// Tag marks cause as being of the given kind. The result matches kind with
// errors.Is and still unwraps to cause, so callers can inspect both.
// A cause that already matches kind is returned unchanged.
func Tag(kind *Error, cause error) error {
	if cause == nil {
		return nil
	}
	if stderrors.Is(cause, kind) {
		return cause
	}
	return &Error{
		message: kind.message,
		cause:   cause,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// Is checks if the error matches target
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.message == t.message
}

// InvalidField returns a configuration error for invalid field values
func InvalidField(field string, reason string) error {
	return Wrapf(ErrInvalidConfiguration, "%s is invalid: %s", field, reason)
}

// NotFound returns an error for items that were not found
func NotFound(itemType string, identifier string) error {
	return Newf("%s not found: %s", itemType, identifier)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	if err == nil {
		return false
	}
	if stderrors.Is(err, ErrInvalidConfiguration) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "required") ||
		strings.Contains(msg, "invalid")
}
