package commands

import (
	"context"
	"io"

	"github.com/spf13/pflag"

	"taskboard/internal/exitcode"
	"taskboard/internal/guard"
	"taskboard/internal/output"
	"taskboard/internal/service"
	"taskboard/internal/tasks"
)

func init() {
	Register(&SummaryCmd{})
	Register(&ListCmd{})
	Register(&ShowCmd{})
}

// SummaryCmd shows the signed-in user and task counts per status.
// It is what `taskboard` runs with no arguments.
type SummaryCmd struct{}

func (c *SummaryCmd) Name() string       { return "summary" }
func (c *SummaryCmd) Aliases() []string  { return []string{"home"} }
func (c *SummaryCmd) Synopsis() string   { return "Show task counts per status" }
func (c *SummaryCmd) Usage() string      { return "taskboard [summary] [common flags]" }
func (c *SummaryCmd) Route() guard.Route { return guard.RouteSummary }

func (c *SummaryCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *SummaryCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		return usageError(errOut, "unexpected argument: %s", args[0])
	}

	coll := tasks.New(env.Service)
	defer coll.Close()

	if _, err := coll.Load(ctx, nil); err != nil {
		return fail(errOut, err)
	}
	output.FormatSummary(out, env.Sessions.Get().User, coll.Counts())
	return exitcode.Success
}

// ListCmd implements the list command.
type ListCmd struct {
	status       service.Status
	statusFilter *statusValue
}

func (c *ListCmd) Name() string       { return "list" }
func (c *ListCmd) Aliases() []string  { return []string{"ls"} }
func (c *ListCmd) Synopsis() string   { return "List tasks" }
func (c *ListCmd) Usage() string      { return "taskboard list [--status <status>]" }
func (c *ListCmd) Route() guard.Route { return guard.RouteTaskList }

func (c *ListCmd) RegisterFlags(fs *pflag.FlagSet) {
	c.statusFilter = statusFlag(fs, "", &c.status, "only tasks with this status (filtered by the server)")
}

func (c *ListCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		return usageError(errOut, "unexpected argument: %s", args[0])
	}

	coll := tasks.New(env.Service)
	defer coll.Close()

	list, err := coll.Load(ctx, c.statusFilter.filter())
	if err != nil {
		return fail(errOut, err)
	}

	if len(list) == 0 {
		env.quietln(out, output.NoTasks)
		return exitcode.Success
	}
	output.FormatTasks(out, list)
	return exitcode.Success
}

// ShowCmd prints the details of one task.
type ShowCmd struct {
	id           string
	status       service.Status
	statusFilter *statusValue
}

func (c *ShowCmd) Name() string       { return "show" }
func (c *ShowCmd) Aliases() []string  { return nil }
func (c *ShowCmd) Synopsis() string   { return "Show a task" }
func (c *ShowCmd) Usage() string      { return "taskboard show [--status <status>] <n> | --id <id>" }
func (c *ShowCmd) Route() guard.Route { return guard.RouteTaskList }

func (c *ShowCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.id, "id", "", "task id instead of a list number")
	c.statusFilter = statusFlag(fs, "", &c.status, "resolve <n> within this status")
}

func (c *ShowCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	ref, err := ParseTaskRef(args, c.id)
	if err != nil {
		return usageError(errOut, "%v", err)
	}

	coll := tasks.New(env.Service)
	defer coll.Close()

	task, err := resolveTask(ctx, coll, c.statusFilter.filter(), ref)
	if err != nil {
		return fail(errOut, err)
	}
	output.FormatTaskDetail(out, task)
	return exitcode.Success
}
