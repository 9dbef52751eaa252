package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"taskboard/internal/exitcode"
	"taskboard/internal/guard"
	"taskboard/internal/output"
)

func init() {
	Register(&LogoutCmd{})
	Register(&WhoamiCmd{})
}

// LogoutCmd implements the logout command.
type LogoutCmd struct{}

func (c *LogoutCmd) Name() string       { return "logout" }
func (c *LogoutCmd) Aliases() []string  { return nil }
func (c *LogoutCmd) Synopsis() string   { return "Remove the stored session" }
func (c *LogoutCmd) Usage() string      { return "taskboard logout [common flags]" }
func (c *LogoutCmd) Route() guard.Route { return "" }

func (c *LogoutCmd) RegisterFlags(fs *pflag.FlagSet) {}

// Run removes both entries even when only one of them is stored.
func (c *LogoutCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	prev := env.Sessions.Get()

	if err := env.Sessions.Clear(); err != nil {
		fmt.Fprintf(errOut, "error: failed to remove session: %v\n", err)
		return exitcode.BackendError
	}

	if prev.Token == "" && prev.User == nil {
		env.quietln(out, "not logged in")
		return exitcode.Success
	}
	env.quietln(out, "ok")
	return exitcode.Success
}

// WhoamiCmd prints the signed-in user from the stored session.
// It never contacts the server.
type WhoamiCmd struct{}

func (c *WhoamiCmd) Name() string       { return "whoami" }
func (c *WhoamiCmd) Aliases() []string  { return nil }
func (c *WhoamiCmd) Synopsis() string   { return "Show the signed-in user" }
func (c *WhoamiCmd) Usage() string      { return "taskboard whoami [common flags]" }
func (c *WhoamiCmd) Route() guard.Route { return "" }

func (c *WhoamiCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *WhoamiCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	sess := env.Sessions.Get()
	if !sess.Authenticated() {
		fmt.Fprintf(errOut, "error: not logged in %s\n", LoginHint)
		return exitcode.AuthError
	}
	output.FormatUser(out, sess.User)
	return exitcode.Success
}
