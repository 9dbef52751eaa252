// Package taskapi implements the service.Service interface on the task REST API.
package taskapi

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"taskboard/internal/gateway"
	"taskboard/internal/service"
)

// Requester is the Gateway surface used by the client.
type Requester interface {
	Do(ctx context.Context, method, path string, body, out any, opts ...gateway.CallOption) error
}

// Client implements service.Service using the task REST API.
type Client struct {
	gw Requester
}

// New creates a client issuing every call through gw.
func New(gw Requester) *Client {
	return &Client{gw: gw}
}

// Login exchanges credentials for a user and bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (service.AuthResult, error) {
	req := loginRequest{Email: email, Password: password}
	var resp authResponse
	if err := c.gw.Do(ctx, http.MethodPost, "/auth/login", req, &resp, gateway.Anonymous()); err != nil {
		return service.AuthResult{}, err
	}
	return resp.result()
}

// Signup registers an account.
func (c *Client) Signup(ctx context.Context, name, email, password string) (service.AuthResult, error) {
	req := signupRequest{Name: name, Email: email, Password: password}
	var resp authResponse
	if err := c.gw.Do(ctx, http.MethodPost, "/auth/signup", req, &resp, gateway.Anonymous()); err != nil {
		return service.AuthResult{}, err
	}
	return resp.result()
}

// ListTasks returns tasks in API order, optionally filtered server-side.
func (c *Client) ListTasks(ctx context.Context, status *service.Status) ([]service.Task, error) {
	path := "/tasks"
	if status != nil {
		path += "?status=" + url.QueryEscape(string(*status))
	}

	var resp []taskDTO
	if err := c.gw.Do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}

	result := make([]service.Task, 0, len(resp))
	for _, t := range resp {
		result = append(result, t.task())
	}
	return result, nil
}

// CreateTask creates a task.
func (c *Client) CreateTask(ctx context.Context, in service.TaskInput) (service.Task, error) {
	var resp *taskDTO
	if err := c.gw.Do(ctx, http.MethodPost, "/tasks", newTaskRequest(in), &resp); err != nil {
		return service.Task{}, err
	}
	if resp == nil || resp.task().ID == "" {
		return service.Task{}, malformed()
	}
	return resp.task(), nil
}

// UpdateTask replaces a task's fields.
func (c *Client) UpdateTask(ctx context.Context, id string, in service.TaskInput) (service.Task, error) {
	var resp *taskDTO
	if err := c.gw.Do(ctx, http.MethodPut, taskPath(id), newTaskRequest(in), &resp); err != nil {
		return service.Task{}, err
	}
	if resp == nil || *resp == (taskDTO{}) {
		return service.Task{}, malformed()
	}
	task := resp.task()
	if task.ID == "" {
		task.ID = id
	}
	return task, nil
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.gw.Do(ctx, http.MethodDelete, taskPath(id), nil, nil)
}

func taskPath(id string) string {
	return "/tasks/" + url.PathEscape(strings.TrimSpace(id))
}
