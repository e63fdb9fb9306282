package reservation

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDate means the calendar selection does not parse as YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid reservation date")
	// ErrUnknownSlot means the slot label is not in the catalog.
	ErrUnknownSlot = errors.New("unknown time slot")
	// ErrIncompleteDraft means a draft transition was attempted before its
	// preconditions held (wrong state, terms unchecked, signature missing).
	ErrIncompleteDraft = errors.New("reservation draft incomplete")
	// ErrAuthenticationRequired means no bearer token is available; checked
	// locally before any network call.
	ErrAuthenticationRequired = errors.New("authentication required")
	// ErrMalformedResponse means the backend answered success without the
	// expected reservation payload.
	ErrMalformedResponse = errors.New("malformed reservation response")
)

// SubmissionError reports a transport or server failure during submission.
// Message carries the server-provided message when one was present.
type SubmissionError struct {
	Status  int // HTTP status, 0 on transport failure
	Message string
	Err     error
}

func (e *SubmissionError) Error() string {
	switch {
	case e.Message != "" && e.Status > 0:
		return fmt.Sprintf("reservation submission failed: %s (status=%d)", e.Message, e.Status)
	case e.Message != "":
		return fmt.Sprintf("reservation submission failed: %s", e.Message)
	case e.Status > 0:
		return fmt.Sprintf("reservation submission failed (status=%d)", e.Status)
	case e.Err != nil:
		return fmt.Sprintf("reservation submission failed: %v", e.Err)
	}
	return "reservation submission failed"
}

func (e *SubmissionError) Unwrap() error { return e.Err }
