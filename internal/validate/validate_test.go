package validate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"taskboard/internal/service"
	"taskboard/internal/validate"
)

func TestEmail_Malformed(t *testing.T) {
	malformed := []string{
		"",
		"plainaddress",
		"a@b",
		"a@bcom",
		"@b.com",
		"a@.com",
		"a@b.",
		"a b@c.com",
		"a@b c.com",
		"a@@b.com",
		"a@b@c.com",
		" a@b.com",
		"a\vb@c.com",
		"a\u00a0b@c.com",
		"a\u2003@c.com",
		"a@b.c\u3000m",
		"a@b.com\u0085",
	}
	for _, in := range malformed {
		code, ok := validate.Email(in)
		assert.False(t, ok, "email %q", in)
		assert.Equal(t, validate.InvalidFormat, code, "email %q", in)
	}
}

func TestEmail_WellFormed(t *testing.T) {
	for _, in := range []string{"a@b.com", "first.last@sub.example.org", "x+tag@y.io"} {
		_, ok := validate.Email(in)
		assert.True(t, ok, "email %q", in)
	}
}

func TestPassword_TooShort(t *testing.T) {
	for n := 0; n <= 5; n++ {
		code, ok := validate.Password(strings.Repeat("x", n))
		assert.False(t, ok, "length %d", n)
		assert.Equal(t, validate.TooShort, code)
	}
	_, ok := validate.Password("secret")
	assert.True(t, ok)
	// Counted in characters, not bytes.
	_, ok = validate.Password("ééééé")
	assert.False(t, ok)
}

func TestLogin_ReportsEveryField(t *testing.T) {
	errs := validate.Login(validate.LoginForm{Email: "nope", Password: "123"})
	assert.Equal(t, validate.Errors{
		validate.FieldEmail:    validate.InvalidFormat,
		validate.FieldPassword: validate.TooShort,
	}, errs)
	assert.False(t, errs.OK())

	assert.True(t, validate.Login(validate.LoginForm{Email: "a@b.com", Password: "secret1"}).OK())
}

func TestSignup_MismatchAlwaysReported(t *testing.T) {
	valid := validate.Signup(validate.SignupForm{Name: "A", Email: "a@b.com", Password: "secret1", ConfirmPassword: "secret1"})
	assert.True(t, valid.OK())

	forms := []validate.SignupForm{
		{Name: "A", Email: "a@b.com", Password: "secret1", ConfirmPassword: "secret2"},
		{Name: "", Email: "bad", Password: "123", ConfirmPassword: "1234"},
		{Name: "A", Email: "a@b.com", Password: "secret1", ConfirmPassword: ""},
	}
	for _, f := range forms {
		errs := validate.Signup(f)
		assert.Equal(t, validate.Mismatch, errs[validate.FieldConfirmPassword])
		assert.False(t, errs.OK())
	}
}

func TestSignup_BlankName(t *testing.T) {
	errs := validate.Signup(validate.SignupForm{Name: "   ", Email: "a@b.com", Password: "secret1", ConfirmPassword: "secret1"})
	assert.Equal(t, validate.Errors{validate.FieldName: validate.Required}, errs)
}

func TestTask(t *testing.T) {
	errs := validate.Task(validate.TaskForm{Title: "", Description: "x", Status: service.StatusPending})
	assert.Equal(t, validate.Errors{validate.FieldTitle: validate.Required}, errs)

	errs = validate.Task(validate.TaskForm{Title: " ", Description: "\t", Status: "Done"})
	assert.Equal(t, validate.Errors{
		validate.FieldTitle:       validate.Required,
		validate.FieldDescription: validate.Required,
		validate.FieldStatus:      validate.Required,
	}, errs)

	assert.True(t, validate.Task(validate.TaskForm{Title: "t", Description: "d", Status: service.StatusInProgress}).OK())
}

func TestErrors_Error(t *testing.T) {
	errs := validate.Errors{
		validate.FieldTitle:    validate.Required,
		validate.FieldEmail:    validate.InvalidFormat,
		validate.FieldPassword: validate.TooShort,
	}
	assert.Equal(t, "email: Invalid email format.; password: Password must be at least 6 characters.; title: Title is required.", errs.Error())
}

func TestCode_Message(t *testing.T) {
	assert.Equal(t, "Passwords do not match.", validate.Mismatch.Message(validate.FieldConfirmPassword))
	assert.Equal(t, "Description is required.", validate.Required.Message(validate.FieldDescription))
	assert.Equal(t, "Password confirmation is required.", validate.Required.Message(validate.FieldConfirmPassword))
}
