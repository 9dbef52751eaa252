// Package cli parses the command line, evaluates the route guard and
// dispatches to commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"

	"taskboard/internal/backend/taskapi"
	"taskboard/internal/commands"
	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/gateway"
	"taskboard/internal/guard"
	"taskboard/internal/logging"
	"taskboard/internal/service"
	"taskboard/internal/session"
)

// DefaultCommand runs when no arguments are given.
const DefaultCommand = "summary"

// ServiceFactory creates a Service from config.
// Used to inject the backend during dispatch.
type ServiceFactory func(ctx context.Context, cfg *config.Config, sessions *session.Store, logger *slog.Logger) (service.Service, error)

// GatewayFactory builds the task API client on the authenticated gateway.
func GatewayFactory(ctx context.Context, cfg *config.Config, sessions *session.Store, logger *slog.Logger) (service.Service, error) {
	if cfg.APIURL == "" {
		return nil, errors.New("no API URL configured")
	}
	gw := gateway.New(cfg.APIURL, sessions,
		gateway.WithLogger(logger),
		gateway.WithTimeout(cfg.RequestTimeout),
	)
	return taskapi.New(gw), nil
}

// StorageFactory opens durable session storage for a config directory.
type StorageFactory func(dir string) session.Storage

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  ServiceFactory
	storage  StorageFactory
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithStorage replaces file storage in the config directory.
func WithStorage(f StorageFactory) Option {
	return func(d *Dispatcher) { d.storage = f }
}

// NewDispatcher creates a new dispatcher with the given registry and service
// factory. A nil factory means GatewayFactory.
func NewDispatcher(registry *commands.Registry, factory ServiceFactory, opts ...Option) *Dispatcher {
	if factory == nil {
		factory = GatewayFactory
	}
	d := &Dispatcher{
		registry: registry,
		factory:  factory,
		storage:  func(dir string) session.Storage { return session.NewFileStorage(dir) },
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> the summary screen
	if len(args) == 0 {
		args = []string{DefaultCommand}
	}

	cmdName := args[0]

	// Flags require a command
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatchCommand(ctx, cmd, args[1:], out, errOut)
}

// commonFlags are accepted by every command.
type commonFlags struct {
	configDir string
	apiURL    string
	quiet     bool
	debug     bool
}

func (f *commonFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.configDir, "config", "", "config directory")
	fs.StringVar(&f.apiURL, "api-url", "", "task API base URL")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "suppress informational output")
	fs.BoolVar(&f.debug, "debug", false, "print debug logs to stderr")
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := pflag.NewFlagSet(cmd.Name(), pflag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves
	fs.Usage = func() {}

	var common commonFlags
	common.register(fs)
	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			fmt.Fprintf(out, "Usage:\n  %s\n\nFlags:\n%s", cmd.Usage(), fs.FlagUsages())
			return exitcode.Success
		}
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}

	cfg, err := config.Load(common.configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	if common.apiURL != "" {
		cfg.APIURL = strings.TrimRight(common.apiURL, "/")
	}
	cfg.Quiet = common.quiet
	cfg.Debug = common.debug

	logger := logging.New(errOut, cfg.LogLevel, cfg.LogFormat, cfg.Debug).
		With(logging.Command(cmd.Name()))

	sessions := session.New(d.storage(cfg.Dir), logger)
	unsubscribe := sessions.Subscribe(func(s session.Session) {
		logger.Debug("session changed", slog.Bool("authenticated", s.Authenticated()))
	})
	defer unsubscribe()

	env := &commands.Env{Config: cfg, Sessions: sessions, Logger: logger}

	if route := cmd.Route(); route != "" {
		decision := guard.New(sessions).Evaluate(guard.Navigation{Route: route})
		logger.Debug("navigate",
			logging.Route(string(route)),
			slog.String("state", decision.State.String()),
			slog.Bool("render", decision.Render))
		if !decision.Render {
			fmt.Fprintf(errOut, "error: not logged in %s\n", commands.LoginHint)
			return exitcode.AuthError
		}

		env.Service, err = d.factory(ctx, cfg, sessions, logger)
		if err != nil {
			fmt.Fprintf(errOut, "error: backend error: %s\n", err)
			return exitcode.BackendError
		}
	}

	return cmd.Run(ctx, env, fs.Args(), out, errOut)
}
