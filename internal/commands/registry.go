package commands

import (
	"fmt"
	"sort"
	"sync"

	"taskboard/internal/guard"
)

// Registry maps command names and aliases to commands.
type Registry struct {
	mu      sync.RWMutex
	byName  map[string]Command
	aliases map[string]string // alias -> name
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:  make(map[string]Command),
		aliases: make(map[string]string),
	}
}

// routable reports whether r is a screen the guard knows, or empty for
// commands that never touch a screen.
func routable(r guard.Route) bool {
	switch r {
	case "", guard.RouteLogin, guard.RouteSignup, guard.RouteSummary, guard.RouteTaskList, guard.RouteTaskForm:
		return true
	}
	return false
}

// Register adds c under its name and aliases. Names and aliases share one
// namespace, and a command must map to a known route.
func (r *Registry) Register(c Command) error {
	if !routable(c.Route()) {
		return fmt.Errorf("command %s: unknown route %q", c.Name(), c.Route())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	keys := append([]string{c.Name()}, c.Aliases()...)
	for _, k := range keys {
		if r.taken(k) {
			return fmt.Errorf("command name already registered: %s", k)
		}
	}

	r.byName[c.Name()] = c
	for _, alias := range c.Aliases() {
		r.aliases[alias] = c.Name()
	}
	return nil
}

func (r *Registry) taken(k string) bool {
	_, isName := r.byName[k]
	_, isAlias := r.aliases[k]
	return isName || isAlias
}

// Find looks up a command by name or alias.
func (r *Registry) Find(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if canonical, ok := r.aliases[name]; ok {
		name = canonical
	}
	cmd, ok := r.byName[name]
	return cmd, ok
}

// All returns every command once, sorted by name.
func (r *Registry) All() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Command, 0, len(r.byName))
	for _, cmd := range r.byName {
		result = append(result, cmd)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name() < result[j].Name() })
	return result
}

// DefaultRegistry holds the commands registered from init.
var DefaultRegistry = NewRegistry()

// Register adds c to DefaultRegistry and panics on a conflict.
func Register(c Command) {
	if err := DefaultRegistry.Register(c); err != nil {
		panic(err)
	}
}
