// Package exitcode defines exit codes for the CLI.
package exitcode

import "taskboard/internal/gateway"

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, validation, rejected by the API).
	UserError = 1

	// AuthError indicates a missing or rejected session.
	AuthError = 2

	// BackendError indicates a server, network or local storage failure.
	BackendError = 3
)

// For maps an error from the data-access layer to an exit code.
func For(err error) int {
	if err == nil {
		return Success
	}
	switch gateway.Classify(err) {
	case gateway.KindValidation, gateway.KindAPI, gateway.KindCanceled:
		return UserError
	case gateway.KindUnauthenticated:
		return AuthError
	default:
		return BackendError
	}
}
