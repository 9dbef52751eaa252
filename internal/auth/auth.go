// Package auth implements the sign-in and sign-up flows.
package auth

import (
	"context"
	"fmt"

	"taskboard/internal/service"
	"taskboard/internal/validate"
)

// SessionWriter records a signed-in identity.
type SessionWriter interface {
	Set(user *service.User, token string) error
}

// Login validates form, signs in and records the session.
// Invalid forms return validate.Errors without calling svc.
func Login(ctx context.Context, svc service.Service, sessions SessionWriter, form validate.LoginForm) (service.User, error) {
	if errs := validate.Login(form); !errs.OK() {
		return service.User{}, errs
	}
	res, err := svc.Login(ctx, form.Email, form.Password)
	if err != nil {
		return service.User{}, err
	}
	return record(sessions, res)
}

// Signup validates form, registers the account and signs in with the token
// returned by the server. There is no separate sign-in step after signup.
func Signup(ctx context.Context, svc service.Service, sessions SessionWriter, form validate.SignupForm) (service.User, error) {
	if errs := validate.Signup(form); !errs.OK() {
		return service.User{}, errs
	}
	res, err := svc.Signup(ctx, form.Name, form.Email, form.Password)
	if err != nil {
		return service.User{}, err
	}
	return record(sessions, res)
}

func record(sessions SessionWriter, res service.AuthResult) (service.User, error) {
	user := res.User
	if err := sessions.Set(&user, res.Token); err != nil {
		return service.User{}, fmt.Errorf("failed to save session: %w", err)
	}
	return user, nil
}
