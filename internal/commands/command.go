// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/pflag"

	"taskboard/internal/config"
	"taskboard/internal/guard"
	"taskboard/internal/logging"
	"taskboard/internal/service"
	"taskboard/internal/session"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// Route returns the screen the command navigates to. Protected routes
	// are refused by the guard when no session exists. An empty route means
	// the command is not a navigation (help, version, logout, whoami) and
	// runs without a service.
	Route() guard.Route

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *pflag.FlagSet)

	// Run executes the command with positional args left after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int
}

// Env is what a command runs against.
type Env struct {
	Config *config.Config

	// Service is nil when Route() is empty.
	Service service.Service

	Sessions *session.Store
	Logger   *slog.Logger
}

// quietln prints an informational line unless quiet mode is on.
func (e *Env) quietln(out io.Writer, a ...any) {
	if e.Config != nil && e.Config.Quiet {
		return
	}
	fmt.Fprintln(out, a...)
}

func (e *Env) logger() *slog.Logger {
	if e.Logger == nil {
		return logging.Discard()
	}
	return e.Logger
}
