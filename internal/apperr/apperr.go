// Package apperr classifies failures of calls made on behalf of the
// administrator so handlers can turn them into a message for the page.
package apperr

import (
	"errors"
	"fmt"
)

// Kind is the coarse failure class of an Error.
type Kind string

const (
	// Network means no response was received from the remote API.
	Network Kind = "network"
	// Unauthorized means the bearer credential was rejected.
	Unauthorized Kind = "unauthorized"
	// Invalid covers local validation failures and any non-401 response that
	// carries a message.
	Invalid Kind = "invalid"
	// Unknown is everything else; it never carries a public message.
	Unknown Kind = "unknown"
)

// NetworkMessage is shown when the remote API could not be reached.
const NetworkMessage = "Network error occurred"

type Error struct {
	Kind    Kind
	Status  int    // HTTP status of the remote response, 0 when there was none
	Message string // safe to show to the administrator
	Err     error  // underlying cause, for logs
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil && e.Message != "":
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

func NetworkErr(err error) *Error {
	return &Error{Kind: Network, Message: NetworkMessage, Err: err}
}

func UnauthorizedErr(status int, msg string) *Error {
	return &Error{Kind: Unauthorized, Status: status, Message: msg}
}

func InvalidErr(msg string) *Error {
	return &Error{Kind: Invalid, Message: msg}
}

// RemoteErr builds the error for a non-2xx response. Any response with a
// message is Invalid whatever its status; one without a message is Unknown.
func RemoteErr(status int, msg string) *Error {
	if msg != "" {
		return &Error{Kind: Invalid, Status: status, Message: msg}
	}
	return &Error{Kind: Unknown, Status: status, Err: fmt.Errorf("remote status %d", status)}
}

func Wrap(err error) *Error {
	if err == nil {
		return nil
	}
	if ae, ok := As(err); ok {
		return ae
	}
	return &Error{Kind: Unknown, Err: err}
}

func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

func Is(err error, kind Kind) bool {
	ae, ok := As(err)
	return ok && ae.Kind == kind
}

// IsUnauthorized reports whether err means the stored credential is no longer valid.
func IsUnauthorized(err error) bool { return Is(err, Unauthorized) }

// PublicMessage returns the text to show for err, or fallback when err has none.
func PublicMessage(err error, fallback string) string {
	if ae, ok := As(err); ok && ae.Kind != Unknown && ae.Message != "" {
		return ae.Message
	}
	return fallback
}
