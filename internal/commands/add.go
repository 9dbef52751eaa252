package commands

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"

	"taskboard/internal/exitcode"
	"taskboard/internal/guard"
	"taskboard/internal/service"
	"taskboard/internal/tasks"
	"taskboard/internal/validate"
)

func init() {
	Register(&AddCmd{})
	Register(&EditCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	title       string
	description string
	status      service.Status
}

func (c *AddCmd) Name() string       { return "add" }
func (c *AddCmd) Aliases() []string  { return []string{"new", "create"} }
func (c *AddCmd) Synopsis() string   { return "Create a task" }
func (c *AddCmd) Route() guard.Route { return guard.RouteTaskForm }

func (c *AddCmd) Usage() string {
	return "taskboard add --description <text> [--status <status>] [--title <title> | <title...>]"
}

func (c *AddCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.title, "title", "t", "", "task title")
	fs.StringVarP(&c.description, "description", "d", "", "task description")
	statusFlag(fs, service.StatusPending, &c.status, "initial status")
}

func (c *AddCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	title := c.title
	if len(args) > 0 {
		if title != "" {
			return usageError(errOut, "cannot use both --title and a positional title")
		}
		title = strings.Join(args, " ")
	}

	coll := tasks.New(env.Service)
	defer coll.Close()

	nav := guard.Navigation{Route: guard.RouteTaskForm}
	form := formFor(nav)
	form.Title = title
	form.Description = c.description
	if c.status != "" {
		form.Status = c.status
	}
	return submitTaskForm(ctx, env, coll, nav, form, out, errOut)
}

// EditCmd implements the edit command. Fields that are not given keep the
// task's current values.
type EditCmd struct {
	id           string
	title        string
	description  string
	status       service.Status
	filter       service.Status
	statusFilter *statusValue
	fs           *pflag.FlagSet
}

func (c *EditCmd) Name() string       { return "edit" }
func (c *EditCmd) Aliases() []string  { return []string{"update"} }
func (c *EditCmd) Synopsis() string   { return "Change a task" }
func (c *EditCmd) Route() guard.Route { return guard.RouteTaskForm }

func (c *EditCmd) Usage() string {
	return "taskboard edit [--title <title>] [--description <text>] [--status <status>] [--in <status>] <n> | --id <id>"
}

func (c *EditCmd) RegisterFlags(fs *pflag.FlagSet) {
	c.fs = fs
	fs.StringVar(&c.id, "id", "", "task id instead of a list number")
	fs.StringVarP(&c.title, "title", "t", "", "new title")
	fs.StringVarP(&c.description, "description", "d", "", "new description")
	statusFlag(fs, "", &c.status, "new status")
	c.statusFilter = newStatusValue("", &c.filter)
	fs.Var(c.statusFilter, "in", "resolve <n> within the listing of this status")
}

func (c *EditCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
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
	if c.changed("title") {
		form.Title = c.title
	}
	if c.changed("description") {
		form.Description = c.description
	}
	if c.changed("status") {
		form.Status = c.status
	}
	return submitTaskForm(ctx, env, coll, nav, form, out, errOut)
}

func (c *EditCmd) changed(name string) bool {
	return c.fs != nil && c.fs.Changed(name)
}

// formFor pre-fills the task form: from the task being edited, or empty
// with the default status.
func formFor(nav guard.Navigation) validate.TaskForm {
	if nav.Editing == nil {
		return validate.TaskForm{Status: service.StatusPending}
	}
	return validate.TaskForm{
		Title:       nav.Editing.Title,
		Description: nav.Editing.Description,
		Status:      nav.Editing.Status,
	}
}

// submitTaskForm updates nav.Editing when set and creates a task otherwise.
func submitTaskForm(ctx context.Context, env *Env, coll *tasks.Collection, nav guard.Navigation, form validate.TaskForm, out, errOut io.Writer) int {
	var (
		task service.Task
		err  error
	)
	if nav.Editing != nil {
		task, err = coll.Update(ctx, nav.Editing.ID, form)
	} else {
		task, err = coll.Create(ctx, form)
	}
	if err != nil {
		return fail(errOut, err)
	}

	env.logger().Debug("task saved", slog.String("id", task.ID), slog.Bool("edit", nav.Editing != nil))
	env.quietln(out, "ok")
	return exitcode.Success
}
