// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"taskboard/internal/gateway"
	"taskboard/internal/service"
)

// FakeService is an in-memory implementation of service.Service for testing.
// Errors it returns are the same *gateway.APIError values the real backend
// would produce.
type FakeService struct {
	mu       sync.RWMutex
	tasks    []service.Task
	accounts map[string]fakeAccount // email -> account
	nextID   int

	// Calls counts invocations per method name.
	Calls map[string]int

	// LastFilter is the status passed to the most recent ListTasks call.
	LastFilter *service.Status

	// Error injection for testing
	LoginErr      error
	SignupErr     error
	ListTasksErr  error
	CreateTaskErr error
	UpdateTaskErr error
	DeleteTaskErr error

	// ListGate, when set, is called inside ListTasks before it answers.
	// Tests use it to hold a load in flight.
	ListGate func(ctx context.Context)
}

type fakeAccount struct {
	user     service.User
	password string
	token    string
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		accounts: make(map[string]fakeAccount),
		Calls:    make(map[string]int),
	}
}

// AddAccount registers credentials accepted by Login.
func (f *FakeService) AddAccount(id, name, email, password, token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts[email] = fakeAccount{
		user:     service.User{ID: id, Name: name, Email: email},
		password: password,
		token:    token,
	}
}

// AddTask appends a task as if it already existed on the server.
func (f *FakeService) AddTask(id, title, description string, status service.Status) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, service.Task{ID: id, Title: title, Description: description, Status: status})
}

// Snapshot returns the stored tasks without counting as a call.
func (f *FakeService) Snapshot() []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]service.Task(nil), f.tasks...)
}

// CallCount returns how many times method was called.
func (f *FakeService) CallCount(method string) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.Calls[method]
}

// TotalCalls returns the number of calls across all methods.
func (f *FakeService) TotalCalls() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	n := 0
	for _, c := range f.Calls {
		n += c
	}
	return n
}

func (f *FakeService) record(method string) {
	f.mu.Lock()
	f.Calls[method]++
	f.mu.Unlock()
}

// Login implements service.Service.
func (f *FakeService) Login(ctx context.Context, email, password string) (service.AuthResult, error) {
	f.record("Login")
	if f.LoginErr != nil {
		return service.AuthResult{}, f.LoginErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	acct, ok := f.accounts[email]
	if !ok || acct.password != password {
		return service.AuthResult{}, gateway.NewAPIError(http.StatusBadRequest, "Invalid credentials")
	}
	return service.AuthResult{User: acct.user, Token: acct.token}, nil
}

// Signup implements service.Service.
func (f *FakeService) Signup(ctx context.Context, name, email, password string) (service.AuthResult, error) {
	f.record("Signup")
	if f.SignupErr != nil {
		return service.AuthResult{}, f.SignupErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.accounts[email]; exists {
		return service.AuthResult{}, gateway.NewAPIError(http.StatusConflict, "User already exists")
	}
	f.nextID++
	acct := fakeAccount{
		user:     service.User{ID: fmt.Sprintf("u%d", f.nextID), Name: name, Email: email},
		password: password,
		token:    fmt.Sprintf("token-%d", f.nextID),
	}
	f.accounts[email] = acct
	return service.AuthResult{User: acct.user, Token: acct.token}, nil
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context, status *service.Status) ([]service.Task, error) {
	f.record("ListTasks")
	f.mu.Lock()
	f.LastFilter = status
	gate := f.ListGate
	f.mu.Unlock()
	if gate != nil {
		gate(ctx)
	}
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}

	f.mu.RLock()
	defer f.mu.RUnlock()
	result := []service.Task{}
	for _, t := range f.tasks {
		if status == nil || t.Status == *status {
			result = append(result, t)
		}
	}
	return result, nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, in service.TaskInput) (service.Task, error) {
	f.record("CreateTask")
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	task := service.Task{
		ID:          fmt.Sprintf("t%d", f.nextID),
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
	}
	f.tasks = append(f.tasks, task)
	return task, nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, id string, in service.TaskInput) (service.Task, error) {
	f.record("UpdateTask")
	if f.UpdateTaskErr != nil {
		return service.Task{}, f.UpdateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks[i] = service.Task{ID: id, Title: in.Title, Description: in.Description, Status: in.Status}
			return f.tasks[i], nil
		}
	}
	return service.Task{}, gateway.NewAPIError(http.StatusNotFound, "not found")
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id string) error {
	f.record("DeleteTask")
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return gateway.NewAPIError(http.StatusNotFound, "not found")
}
