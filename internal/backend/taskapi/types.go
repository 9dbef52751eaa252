package taskapi

import (
	"net/http"

	"taskboard/internal/gateway"
	"taskboard/internal/service"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type taskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

func newTaskRequest(in service.TaskInput) taskRequest {
	return taskRequest{Title: in.Title, Description: in.Description, Status: string(in.Status)}
}

// userDTO accepts either "id" or the document-store "_id".
type userDTO struct {
	ID    string `json:"id"`
	OID   string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u userDTO) user() service.User {
	id := u.ID
	if id == "" {
		id = u.OID
	}
	return service.User{ID: id, Name: u.Name, Email: u.Email}
}

func malformed() error {
	return gateway.NewAPIError(http.StatusBadGateway, gateway.MsgMalformed)
}

type authResponse struct {
	User  *userDTO `json:"user"`
	Token string   `json:"token"`
}

// result rejects a success response that lacks the identity or the token.
func (r authResponse) result() (service.AuthResult, error) {
	if r.User == nil || r.Token == "" {
		return service.AuthResult{}, malformed()
	}
	return service.AuthResult{User: r.User.user(), Token: r.Token}, nil
}

// taskDTO accepts either "id" or "_id". Status is passed through verbatim.
type taskDTO struct {
	ID          string `json:"id"`
	OID         string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

func (t taskDTO) task() service.Task {
	id := t.ID
	if id == "" {
		id = t.OID
	}
	return service.Task{
		ID:          id,
		Title:       t.Title,
		Description: t.Description,
		Status:      service.Status(t.Status),
	}
}
