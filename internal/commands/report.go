package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"taskboard/internal/exitcode"
	"taskboard/internal/gateway"
	"taskboard/internal/validate"
)

// LoginHint follows every message that asks the user to sign in again.
const LoginHint = "(run: taskboard login)"

// fail prints err in the CLI's error format and returns its exit code.
// Validation failures print one line per field.
func fail(errOut io.Writer, err error) int {
	var verrs validate.Errors
	switch {
	case errors.As(err, &verrs):
		for _, f := range verrs.Fields() {
			fmt.Fprintf(errOut, "error: %s: %s\n", f, verrs[f].Message(f))
		}
	case errors.Is(err, gateway.ErrUnauthenticated):
		fmt.Fprintf(errOut, "error: %s %s\n", err, LoginHint)
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(errOut, "error: cancelled")
	case errors.Is(err, ErrTaskNotFound):
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	default:
		fmt.Fprintf(errOut, "error: %s\n", err)
	}
	return exitcode.For(err)
}

// usageError prints a bad-arguments message.
func usageError(errOut io.Writer, format string, a ...any) int {
	fmt.Fprintf(errOut, "error: "+format+"\n", a...)
	return exitcode.UserError
}
