// Package tasks holds the client-side task collection and the create, update
// and delete flows that mutate it through the service.
//
// The collection is a read-through cache for the lifetime of one view. It is
// never patched locally: every successful mutation reloads it from the
// server, which stays the source of truth.
package tasks

import (
	"context"
	"errors"
	"sync"

	"taskboard/internal/service"
	"taskboard/internal/validate"
)

var (
	// ErrStale reports that a newer load was started before this one resolved.
	// The response was discarded.
	ErrStale = errors.New("stale response discarded")

	// ErrClosed reports that the collection was closed before the call resolved.
	ErrClosed = errors.New("collection closed")
)

// Collection is the task list view-model. It is safe for concurrent use.
type Collection struct {
	svc service.Service

	mu         sync.RWMutex
	tasks      []service.Task
	loaded     bool
	filter     *service.Status
	generation uint64
	closed     bool
}

// New returns an empty, unloaded collection.
func New(svc service.Service) *Collection {
	return &Collection{svc: svc}
}

// Load fetches tasks, optionally filtered server-side by status, and
// replaces the collection. Only the most recently started load may replace
// it; an older one resolving later returns ErrStale.
func (c *Collection) Load(ctx context.Context, filter *service.Status) ([]service.Task, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClosed
	}
	c.generation++
	gen := c.generation
	var f *service.Status
	if filter != nil {
		v := *filter
		f = &v
	}
	c.filter = f
	c.mu.Unlock()

	list, err := c.svc.ListTasks(ctx, f)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, ErrClosed
	}
	if gen != c.generation {
		return nil, ErrStale
	}
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []service.Task{}
	}
	c.tasks = list
	c.loaded = true
	return cloneTasks(list), nil
}

// Reload repeats the last load with the same filter.
func (c *Collection) Reload(ctx context.Context) ([]service.Task, error) {
	c.mu.RLock()
	f := c.filter
	c.mu.RUnlock()
	return c.Load(ctx, f)
}

// Create validates form and, only if it is valid, creates the task and
// reloads the collection. Validation failures are returned as validate.Errors.
func (c *Collection) Create(ctx context.Context, form validate.TaskForm) (service.Task, error) {
	if errs := validate.Task(form); !errs.OK() {
		return service.Task{}, errs
	}
	if err := c.live(); err != nil {
		return service.Task{}, err
	}
	task, err := c.svc.CreateTask(ctx, form.Input())
	if err != nil {
		return service.Task{}, err
	}
	if _, err := c.Reload(ctx); err != nil && !errors.Is(err, ErrStale) {
		return task, err
	}
	return task, nil
}

// Update validates form and, only if it is valid, replaces task id and
// reloads the collection.
func (c *Collection) Update(ctx context.Context, id string, form validate.TaskForm) (service.Task, error) {
	if errs := validate.Task(form); !errs.OK() {
		return service.Task{}, errs
	}
	if err := c.live(); err != nil {
		return service.Task{}, err
	}
	task, err := c.svc.UpdateTask(ctx, id, form.Input())
	if err != nil {
		return service.Task{}, err
	}
	if _, err := c.Reload(ctx); err != nil && !errors.Is(err, ErrStale) {
		return task, err
	}
	return task, nil
}

// Delete removes task id. On failure the collection is left unchanged.
func (c *Collection) Delete(ctx context.Context, id string) error {
	if err := c.live(); err != nil {
		return err
	}
	if err := c.svc.DeleteTask(ctx, id); err != nil {
		return err
	}
	if _, err := c.Reload(ctx); err != nil && !errors.Is(err, ErrStale) {
		return err
	}
	return nil
}

// Close detaches the collection from its view. Calls that resolve afterwards
// are discarded.
func (c *Collection) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

// Tasks returns a copy of the loaded tasks in server order.
func (c *Collection) Tasks() []service.Task {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneTasks(c.tasks)
}

// Loaded reports whether any load has succeeded.
func (c *Collection) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Empty reports whether the loaded collection has no tasks.
func (c *Collection) Empty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tasks) == 0
}

// Filter returns the loaded tasks with the given status, in server order.
// It never touches the network or the collection.
func (c *Collection) Filter(status service.Status) []service.Task {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return FilterByStatus(c.tasks, status)
}

// Counts returns the number of loaded tasks per status. Every fixed status
// is present, possibly with zero.
func (c *Collection) Counts() map[service.Status]int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	counts := make(map[service.Status]int, len(service.Statuses))
	for _, s := range service.Statuses {
		counts[s] = 0
	}
	for _, t := range c.tasks {
		counts[t.Status]++
	}
	return counts
}

// Find returns the loaded task with the given id.
func (c *Collection) Find(id string) (service.Task, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, t := range c.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}

// At returns the task at 1-based position n.
func (c *Collection) At(n int) (service.Task, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if n < 1 || n > len(c.tasks) {
		return service.Task{}, false
	}
	return c.tasks[n-1], true
}

// FilterByStatus is the pure predicate behind Filter.
func FilterByStatus(list []service.Task, status service.Status) []service.Task {
	out := make([]service.Task, 0, len(list))
	for _, t := range list {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

func (c *Collection) live() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClosed
	}
	return nil
}

func cloneTasks(list []service.Task) []service.Task {
	out := make([]service.Task, len(list))
	copy(out, list)
	return out
}
