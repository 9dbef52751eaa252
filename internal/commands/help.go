package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"taskboard/internal/exitcode"
	"taskboard/internal/guard"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "taskboard help" }
func (c *HelpCmd) Route() guard.Route { return "" }

func (c *HelpCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  taskboard                                          Show task counts per status
  taskboard summary [common flags]
  taskboard list [common flags] [--status <status>]  List tasks
  taskboard show [common flags] [--status <status>] <n> | --id <id>
  taskboard add [common flags] --description <text> [--status <status>] <title...>
  taskboard edit [common flags] [--title <t>] [--description <d>] [--status <s>] [--in <status>] <n> | --id <id>
  taskboard done [common flags] [--status <status>] <n> | --id <id>
  taskboard start [common flags] [--status <status>] <n> | --id <id>
  taskboard rm [common flags] [--status <status>] <n> | --id <id>
  taskboard login [common flags] --email <email> --password <password>
  taskboard signup [common flags] --name <name> --email <email> --password <p> --confirm-password <p>
  taskboard logout [common flags]
  taskboard whoami [common flags]
  taskboard help
  taskboard version

Statuses:
  Pending, "In Progress" (or InProgress), Completed

Common flags:
  --config <dir>     Override config directory
  --api-url <url>    Override the task API base URL
  --quiet            Suppress informational output
  --debug            Print debug logs to stderr
`
