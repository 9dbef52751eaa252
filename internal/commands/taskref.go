package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"taskboard/internal/service"
	"taskboard/internal/tasks"
)

// TaskRef identifies a task on the command line.
// A reference is either a 1-based position in a listing, as printed by
// "taskboard list" with the same --status, or a task id prefixed with "id:"
// or given through --id.
type TaskRef struct {
	Position int    // 1-based; 0 when ID is set
	ID       string // server id; "" when Position is set
}

func (r TaskRef) String() string {
	if r.ID != "" {
		return "id:" + r.ID
	}
	return strconv.Itoa(r.Position)
}

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses a task reference from args, or from id when the
// --id flag was given. Exactly one reference is accepted.
func ParseTaskRef(args []string, id string) (TaskRef, error) {
	id = strings.TrimSpace(id)
	if id != "" {
		if len(args) > 0 {
			return TaskRef{}, errors.New("cannot use both --id and a task number")
		}
		return TaskRef{ID: id}, nil
	}
	if len(args) == 0 {
		return TaskRef{}, ErrTaskRefRequired
	}
	if len(args) > 1 {
		return TaskRef{}, fmt.Errorf("unexpected argument: %s", args[1])
	}

	arg := args[0]
	if rest, ok := strings.CutPrefix(arg, "id:"); ok && rest != "" {
		return TaskRef{ID: rest}, nil
	}
	if !isAllDigits(arg) {
		return TaskRef{}, fmt.Errorf("invalid task reference: %s", arg)
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return TaskRef{}, fmt.Errorf("task number out of range: %s", arg)
	}
	return TaskRef{Position: n}, nil
}

// ErrTaskNotFound is returned by resolveTask when the reference matches nothing.
var ErrTaskNotFound = errors.New("task not found")

// resolveTask loads the listing for filter into coll and returns the
// referenced task.
func resolveTask(ctx context.Context, coll *tasks.Collection, filter *service.Status, ref TaskRef) (service.Task, error) {
	if _, err := coll.Load(ctx, filter); err != nil {
		return service.Task{}, err
	}
	var (
		task service.Task
		ok   bool
	)
	if ref.ID != "" {
		task, ok = coll.Find(ref.ID)
	} else {
		task, ok = coll.At(ref.Position)
	}
	if !ok {
		return service.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, ref)
	}
	return task, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
