package commands

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/pflag"

	"taskboard/internal/auth"
	"taskboard/internal/exitcode"
	"taskboard/internal/guard"
	"taskboard/internal/validate"
)

func init() {
	Register(&LoginCmd{})
	Register(&SignupCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct {
	email    string
	password string
}

func (c *LoginCmd) Name() string       { return "login" }
func (c *LoginCmd) Aliases() []string  { return nil }
func (c *LoginCmd) Synopsis() string   { return "Sign in with email and password" }
func (c *LoginCmd) Usage() string      { return "taskboard login --email <email> --password <password>" }
func (c *LoginCmd) Route() guard.Route { return guard.RouteLogin }

func (c *LoginCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.email, "email", "", "account email")
	fs.StringVar(&c.password, "password", "", "account password")
}

func (c *LoginCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		return usageError(errOut, "unexpected argument: %s", args[0])
	}

	user, err := auth.Login(ctx, env.Service, env.Sessions, validate.LoginForm{
		Email:    c.email,
		Password: c.password,
	})
	if err != nil {
		return fail(errOut, err)
	}

	env.logger().Debug("signed in", slog.String("user", user.ID))
	env.quietln(out, "ok")
	return exitcode.Success
}

// SignupCmd implements the signup command. A successful signup leaves the
// new account signed in.
type SignupCmd struct {
	name            string
	email           string
	password        string
	confirmPassword string
}

func (c *SignupCmd) Name() string       { return "signup" }
func (c *SignupCmd) Aliases() []string  { return []string{"register"} }
func (c *SignupCmd) Synopsis() string   { return "Create an account and sign in" }
func (c *SignupCmd) Route() guard.Route { return guard.RouteSignup }

func (c *SignupCmd) Usage() string {
	return "taskboard signup --name <name> --email <email> --password <password> --confirm-password <password>"
}

func (c *SignupCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.name, "name", "", "display name")
	fs.StringVar(&c.email, "email", "", "account email")
	fs.StringVar(&c.password, "password", "", "account password")
	fs.StringVar(&c.confirmPassword, "confirm-password", "", "repeat the password")
}

func (c *SignupCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		return usageError(errOut, "unexpected argument: %s", args[0])
	}

	user, err := auth.Signup(ctx, env.Service, env.Sessions, validate.SignupForm{
		Name:            c.name,
		Email:           c.email,
		Password:        c.password,
		ConfirmPassword: c.confirmPassword,
	})
	if err != nil {
		return fail(errOut, err)
	}

	env.logger().Debug("signed up", slog.String("user", user.ID))
	env.quietln(out, "ok")
	return exitcode.Success
}
