package console

import (
	"errors"
	"fmt"

	"github.com/studiowebux/apiconsole/internal/backend"
)

// User-facing messages
const (
	MsgFetchFailed      = "Failed to fetch APIs"
	MsgOperationFailed  = "Operation failed"
	MsgCreated          = "API created successfully"
	MsgUpdated          = "API updated successfully"
	MsgConfirmDelete    = "Are you sure you want to delete this API?"
	MsgDeleted          = "API deleted successfully"
	MsgDeleteFailed     = "Failed to delete API"
	MsgProfileUpdated   = "Profile updated successfully!"
	MsgProfileFailed    = "Failed to update profile"
	MsgPasswordMismatch = "New passwords do not match"
	MsgPasswordTooShort = "Password must be at least 6 characters"
	MsgPasswordChanged  = "Password changed successfully!"
	MsgPasswordFailed   = "Failed to change password"
	MsgNameRequired     = "Name is required"
	MsgEndpointRequired = "Endpoint is required"
	MsgUsernameRequired = "Username is required"
	MsgEmailInvalid     = "Please enter a valid email address"
	MsgNoRecords        = "No APIs found. Create your first API to get started!"
	MsgNoDescription    = "No description"
)

// MinPasswordLength is the shortest password accepted locally
const MinPasswordLength = 6

var (
	// ErrStale marks a result superseded by a later request. It is never shown.
	ErrStale = errors.New("stale response discarded")
	// ErrSubmitInFlight is returned while the same flow already has a request pending
	ErrSubmitInFlight = errors.New("submission already in progress")
	// ErrNotConfirmed is returned when the user declines a destructive action
	ErrNotConfirmed = errors.New("action not confirmed")
	// ErrNavigationDisabled is returned when paging past either end of the listing
	ErrNavigationDisabled = errors.New("page navigation disabled")
	// ErrNotEditing is returned when saving or editing a form that is in view state
	ErrNotEditing = errors.New("form is not being edited")
	// ErrFlowClosed is returned when acting on a closed editor or password flow
	ErrFlowClosed = errors.New("flow is closed")
)

// ValidationKind identifies which pre-flight rule failed
type ValidationKind string

const (
	KindRequired  ValidationKind = "required"
	KindMalformed ValidationKind = "malformed"
	KindMismatch  ValidationKind = "mismatch"
	KindTooShort  ValidationKind = "too_short"
)

// ValidationError is a local pre-flight rejection; no request was issued
type ValidationError struct {
	Field   string
	Kind    ValidationKind
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// RequestError is a backend or transport rejection
type RequestError struct {
	Op string
	// Message is what the user was shown: the server's text or the fallback
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// newRequestError picks the server-supplied message when there is one
func newRequestError(op, fallback string, err error) *RequestError {
	msg := backend.MessageOf(err)
	if msg == "" {
		msg = fallback
	}
	return &RequestError{Op: op, Message: msg, Err: err}
}

// IsValidation reports whether err is a local pre-flight rejection
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsRequest reports whether err is a backend or transport rejection
func IsRequest(err error) bool {
	var re *RequestError
	return errors.As(err, &re)
}
