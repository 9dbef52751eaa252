// Package validate holds the field rules applied to every form before a
// request is issued. All functions are pure and check every field on each
// call so that every invalid field is reported at once.
package validate

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"taskboard/internal/service"
)

// MinPasswordLength is the shortest accepted password, in characters.
const MinPasswordLength = 6

// Field names a form field.
type Field string

const (
	FieldName            Field = "name"
	FieldEmail           Field = "email"
	FieldPassword        Field = "password"
	FieldConfirmPassword Field = "confirm-password"
	FieldTitle           Field = "title"
	FieldDescription     Field = "description"
	FieldStatus          Field = "status"
)

// Code is the reason a field failed.
type Code string

const (
	Required      Code = "required"
	InvalidFormat Code = "invalid_format"
	TooShort      Code = "too_short"
	Mismatch      Code = "mismatch"
)

// Message returns the user-facing text for a failure of field f.
func (c Code) Message(f Field) string {
	switch c {
	case InvalidFormat:
		return "Invalid email format."
	case TooShort:
		return "Password must be at least 6 characters."
	case Mismatch:
		return "Passwords do not match."
	case Required:
		return label(f) + " is required."
	}
	return string(c)
}

func label(f Field) string {
	switch f {
	case FieldConfirmPassword:
		return "Password confirmation"
	case "":
		return "Value"
	}
	s := string(f)
	return strings.ToUpper(s[:1]) + s[1:]
}

// Errors maps each failing field to its code. An empty Errors means valid.
type Errors map[Field]Code

// OK reports whether no field failed.
func (e Errors) OK() bool {
	return len(e) == 0
}

// Fields returns the failing fields sorted by name.
func (e Errors) Fields() []Field {
	fields := make([]Field, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })
	return fields
}

// Error lists every failure as "field: message", sorted by field.
func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, f := range e.Fields() {
		parts = append(parts, string(f)+": "+e[f].Message(f))
	}
	return strings.Join(parts, "; ")
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email fails with InvalidFormat unless s looks like local@domain.tld.
// Any Unicode space is rejected, not only the ASCII ones \s matches.
func Email(s string) (Code, bool) {
	if strings.IndexFunc(s, unicode.IsSpace) >= 0 || !emailPattern.MatchString(s) {
		return InvalidFormat, false
	}
	return "", true
}

// Password fails with TooShort under MinPasswordLength characters.
func Password(s string) (Code, bool) {
	if utf8.RuneCountInString(s) < MinPasswordLength {
		return TooShort, false
	}
	return "", true
}

// NotBlank fails with Required when s is empty after trimming.
func NotBlank(s string) (Code, bool) {
	if strings.TrimSpace(s) == "" {
		return Required, false
	}
	return "", true
}

// StatusValue fails with Required unless s is one of the fixed statuses.
func StatusValue(s service.Status) (Code, bool) {
	if !s.Valid() {
		return Required, false
	}
	return "", true
}

// LoginForm is the sign-in form.
type LoginForm struct {
	Email    string
	Password string
}

// SignupForm is the registration form.
type SignupForm struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// TaskForm is the create/edit form.
type TaskForm struct {
	Title       string
	Description string
	Status      service.Status
}

// Input converts a validated form to the backend payload.
func (f TaskForm) Input() service.TaskInput {
	return service.TaskInput{Title: f.Title, Description: f.Description, Status: f.Status}
}

type rule func() (Field, Code, bool)

func check(rules ...rule) Errors {
	errs := Errors{}
	for _, r := range rules {
		if f, c, ok := r(); !ok {
			errs[f] = c
		}
	}
	return errs
}

func on(f Field, fn func() (Code, bool)) rule {
	return func() (Field, Code, bool) {
		c, ok := fn()
		return f, c, ok
	}
}

// Login validates the sign-in form.
func Login(f LoginForm) Errors {
	return check(
		on(FieldEmail, func() (Code, bool) { return Email(f.Email) }),
		on(FieldPassword, func() (Code, bool) { return Password(f.Password) }),
	)
}

// Signup validates the registration form.
func Signup(f SignupForm) Errors {
	return check(
		on(FieldName, func() (Code, bool) { return NotBlank(f.Name) }),
		on(FieldEmail, func() (Code, bool) { return Email(f.Email) }),
		on(FieldPassword, func() (Code, bool) { return Password(f.Password) }),
		on(FieldConfirmPassword, func() (Code, bool) {
			if f.Password != f.ConfirmPassword {
				return Mismatch, false
			}
			return "", true
		}),
	)
}

// Task validates the create/edit form.
func Task(f TaskForm) Errors {
	return check(
		on(FieldTitle, func() (Code, bool) { return NotBlank(f.Title) }),
		on(FieldDescription, func() (Code, bool) { return NotBlank(f.Description) }),
		on(FieldStatus, func() (Code, bool) { return StatusValue(f.Status) }),
	)
}
