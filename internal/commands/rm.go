package commands

import (
	"context"
	"io"

	"github.com/spf13/pflag"

	"taskboard/internal/exitcode"
	"taskboard/internal/guard"
	"taskboard/internal/service"
	"taskboard/internal/tasks"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct {
	id           string
	status       service.Status
	statusFilter *statusValue
}

func (c *RmCmd) Name() string       { return "rm" }
func (c *RmCmd) Aliases() []string  { return []string{"delete"} }
func (c *RmCmd) Synopsis() string   { return "Delete a task" }
func (c *RmCmd) Usage() string      { return "taskboard rm [--status <status>] <n> | --id <id>" }
func (c *RmCmd) Route() guard.Route { return guard.RouteTaskList }

func (c *RmCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.id, "id", "", "task id instead of a list number")
	c.statusFilter = statusFlag(fs, "", &c.status, "resolve <n> within this status")
}

func (c *RmCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	ref, err := ParseTaskRef(args, c.id)
	if err != nil {
		return usageError(errOut, "%v", err)
	}

	coll := tasks.New(env.Service)
	defer coll.Close()

	// An explicit id goes straight to the server, so a task that is gone
	// reports the server's own message.
	id := ref.ID
	if id == "" {
		task, err := resolveTask(ctx, coll, c.statusFilter.filter(), ref)
		if err != nil {
			return fail(errOut, err)
		}
		id = task.ID
	}

	if err := coll.Delete(ctx, id); err != nil {
		return fail(errOut, err)
	}

	env.quietln(out, "ok")
	return exitcode.Success
}
