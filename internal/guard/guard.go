// Package guard decides, per navigation, whether a screen may render or the
// user must sign in first.
//
// The decision is keyed purely on the presence of a session token. Tokens are
// never validated here: a stale token is accepted until a real request is
// rejected, at which point the gateway clears the session and the next
// evaluation redirects.
package guard

import (
	"taskboard/internal/service"
	"taskboard/internal/session"
)

// Route is a navigable screen.
type Route string

const (
	RouteLogin    Route = "/login"
	RouteSignup   Route = "/signup"
	RouteSummary  Route = "/"
	RouteTaskList Route = "/tasks/list"
	RouteTaskForm Route = "/tasks/new"
)

// Protected reports whether r requires a session.
func (r Route) Protected() bool {
	switch r {
	case RouteLogin, RouteSignup:
		return false
	}
	return true
}

// State is the guard's view of the session.
type State int

const (
	Unauthorized State = iota
	Authorized
)

func (s State) String() string {
	if s == Authorized {
		return "authorized"
	}
	return "unauthorized"
}

// Navigation is a request to show a route. Editing carries the task being
// edited on the task form; it lives in memory only, never in the route.
type Navigation struct {
	Route   Route
	Editing *service.Task
}

// Decision is the outcome of evaluating a navigation.
type Decision struct {
	State State

	// Render is true when the requested route may be shown.
	Render bool

	// RedirectTo is set when Render is false. No return path is kept.
	RedirectTo Route
}

// Sessions is the part of the session store the guard reads.
type Sessions interface {
	Get() session.Session
}

// Guard evaluates navigations against the session.
type Guard struct {
	sessions Sessions
}

// New returns a guard reading from sessions.
func New(sessions Sessions) *Guard {
	return &Guard{sessions: sessions}
}

// State returns the current state.
func (g *Guard) State() State {
	if g.sessions.Get().Authenticated() {
		return Authorized
	}
	return Unauthorized
}

// Evaluate decides whether nav may render.
func (g *Guard) Evaluate(nav Navigation) Decision {
	state := g.State()
	if !nav.Route.Protected() || state == Authorized {
		return Decision{State: state, Render: true}
	}
	return Decision{State: state, RedirectTo: RouteLogin}
}
