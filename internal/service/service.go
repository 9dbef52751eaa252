// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for task backend operations.
// All remote API calls go through this interface.
// Commands never talk HTTP directly.
type Service interface {
	// Login exchanges credentials for a user and bearer token.
	Login(ctx context.Context, email, password string) (AuthResult, error)

	// Signup registers an account and returns its user and bearer token.
	Signup(ctx context.Context, name, email, password string) (AuthResult, error)

	// ListTasks returns tasks in API order (no client-side sorting).
	// A nil status lists every task.
	// Returns an empty slice, not an error, when there are none.
	ListTasks(ctx context.Context, status *Status) ([]Task, error)

	// CreateTask creates a task and returns it as stored by the server.
	CreateTask(ctx context.Context, in TaskInput) (Task, error)

	// UpdateTask replaces a task's fields and returns the stored task.
	UpdateTask(ctx context.Context, id string, in TaskInput) (Task, error)

	// DeleteTask deletes a task.
	DeleteTask(ctx context.Context, id string) error
}
