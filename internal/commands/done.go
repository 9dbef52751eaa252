package commands

import (
	"context"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"taskboard/internal/guard"
	"taskboard/internal/service"
	"taskboard/internal/tasks"
)

func init() {
	Register(NewSetStatusCmd("done", service.StatusCompleted))
	Register(NewSetStatusCmd("start", service.StatusInProgress))
}

// SetStatusCmd moves one task to a fixed status. It is the edit form with
// only the status changed.
type SetStatusCmd struct {
	name string
	to   service.Status

	id           string
	status       service.Status
	statusFilter *statusValue
}

// NewSetStatusCmd returns a command named name that sets status to.
func NewSetStatusCmd(name string, to service.Status) *SetStatusCmd {
	return &SetStatusCmd{name: name, to: to}
}

func (c *SetStatusCmd) Name() string       { return c.name }
func (c *SetStatusCmd) Aliases() []string  { return nil }
func (c *SetStatusCmd) Synopsis() string   { return "Mark a task " + strings.ToLower(string(c.to)) }
func (c *SetStatusCmd) Usage() string      { return "taskboard " + c.name + " [--status <status>] <n> | --id <id>" }
func (c *SetStatusCmd) Route() guard.Route { return guard.RouteTaskForm }

func (c *SetStatusCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.id, "id", "", "task id instead of a list number")
	c.statusFilter = statusFlag(fs, "", &c.status, "resolve <n> within this status")
}

func (c *SetStatusCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
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

	nav := guard.Navigation{Route: guard.RouteTaskForm, Editing: &task}
	form := formFor(nav)
	form.Status = c.to
	return submitTaskForm(ctx, env, coll, nav, form, out, errOut)
}
