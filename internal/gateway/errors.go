package gateway

import (
	"context"
	"errors"
	"net/http"

	"taskboard/internal/validate"
)

// Kind classifies a failure for presentation and exit codes.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAPI
	KindServer
	KindUnauthenticated
	KindNetwork
	KindCanceled
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAPI:
		return "api"
	case KindServer:
		return "server"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindNetwork:
		return "network"
	case KindCanceled:
		return "canceled"
	default:
		return "internal"
	}
}

// Default messages used when the server gives none.
const (
	MsgServerError  = "server error"
	MsgUnreachable  = "server unreachable"
	MsgTimedOut     = "request timed out"
	MsgMalformed    = "malformed response from server"
	MsgUnauthorized = "session expired or invalid"
)

var (
	// ErrUnauthenticated matches errors for authorization-failure responses.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrUnreachable matches errors where no response was received.
	ErrUnreachable = errors.New("server unreachable")
)

// APIError is a normalized failure of a Gateway call.
// Status is 0 when no HTTP response was received.
type APIError struct {
	Status  int
	Message string

	kind  Kind
	cause error
}

// Error returns the user-visible message.
func (e *APIError) Error() string {
	return e.Message
}

// Unwrap returns the transport error, if any.
func (e *APIError) Unwrap() error {
	return e.cause
}

// Is matches the ErrUnauthenticated and ErrUnreachable sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthenticated:
		return e.kind == KindUnauthenticated
	case ErrUnreachable:
		return e.kind == KindNetwork
	}
	return false
}

// Kind returns the error's classification.
func (e *APIError) Kind() Kind {
	return e.kind
}

// NewAPIError builds an error for an HTTP status, classified by status class.
// Fakes use it to produce the same errors the Gateway would.
func NewAPIError(status int, message string) *APIError {
	if message == "" {
		message = MsgServerError
	}
	return &APIError{Status: status, Message: message, kind: kindForStatus(status)}
}

func isAuthFailure(status int) bool {
	return status == http.StatusUnauthorized || status == http.StatusForbidden
}

func kindForStatus(status int) Kind {
	switch {
	case isAuthFailure(status):
		return KindUnauthenticated
	case status >= 500:
		return KindServer
	default:
		return KindAPI
	}
}

func malformed(status int, cause error) *APIError {
	return &APIError{Status: status, Message: MsgMalformed, kind: KindServer, cause: cause}
}

func unreachable(msg string, cause error) *APIError {
	return &APIError{Message: msg, kind: KindNetwork, cause: cause}
}

// Classify maps any error returned by the data-access layer onto a Kind.
func Classify(err error) Kind {
	if err == nil {
		return KindInternal
	}
	var verrs validate.Errors
	if errors.As(err, &verrs) {
		return KindValidation
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.kind
	}
	if errors.Is(err, context.Canceled) {
		return KindCanceled
	}
	return KindInternal
}
