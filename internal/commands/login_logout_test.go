package commands_test

import (
	"net/http"
	"testing"

	"taskboard/internal/commands"
	"taskboard/internal/exitcode"
	"taskboard/internal/gateway"
	"taskboard/internal/service"
	"taskboard/internal/session"
	"taskboard/internal/testutil"
)

func withAccount() *testutil.FakeService {
	svc := testutil.NewFakeService()
	svc.AddAccount("1", "Ann", "ann@example.com", "secret1", "T1")
	return svc
}

// TestLoginCommand_Success verifies a good login stores both entries
func TestLoginCommand_Success(t *testing.T) {
	svc := withAccount()
	storage := session.NewMemoryStorage()
	store := session.New(storage, nil)

	stdout, stderr, code := runCommand(t, &commands.LoginCmd{}, svc, store,
		[]string{"--email", "ann@example.com", "--password", "secret1"}, false)

	expectOutput(t, stdout, stderr, code, "ok\n", "", exitcode.Success)
	if tok, ok, _ := storage.Get(session.KeyToken); !ok || tok != "T1" {
		t.Errorf("expected stored token T1, got %q (present=%v)", tok, ok)
	}
	if _, ok, _ := storage.Get(session.KeyUser); !ok {
		t.Error("expected stored user")
	}
	if u := store.Get().User; u == nil || u.ID != "1" {
		t.Errorf("expected user 1 in session, got %+v", u)
	}
}

// TestLoginCommand_InvalidForm verifies field errors are reported without a request
func TestLoginCommand_InvalidForm(t *testing.T) {
	svc := withAccount()
	stdout, stderr, code := runCommand(t, &commands.LoginCmd{}, svc, nil,
		[]string{"--email", "ann.example.com", "--password", "12345"}, false)

	want := "error: email: Invalid email format.\n" +
		"error: password: Password must be at least 6 characters.\n"
	expectOutput(t, stdout, stderr, code, "", want, exitcode.UserError)
	if svc.TotalCalls() != 0 {
		t.Errorf("expected no service calls, got %d", svc.TotalCalls())
	}
}

// TestLoginCommand_BadCredentials verifies the server's message is shown verbatim
func TestLoginCommand_BadCredentials(t *testing.T) {
	store := session.New(session.NewMemoryStorage(), nil)
	stdout, stderr, code := runCommand(t, &commands.LoginCmd{}, withAccount(), store,
		[]string{"--email", "ann@example.com", "--password", "wrong-1"}, false)

	expectOutput(t, stdout, stderr, code, "", "error: Invalid credentials\n", exitcode.UserError)
	if store.Get().Authenticated() {
		t.Error("expected no session after a rejected login")
	}
}

// TestLoginCommand_ServerDown verifies unreachable servers map to a backend error
func TestLoginCommand_ServerDown(t *testing.T) {
	svc := withAccount()
	svc.LoginErr = gateway.NewAPIError(http.StatusBadGateway, "")

	stdout, stderr, code := runCommand(t, &commands.LoginCmd{}, svc, nil,
		[]string{"--email", "ann@example.com", "--password", "secret1"}, false)
	expectOutput(t, stdout, stderr, code, "", "error: server error\n", exitcode.BackendError)
}

// TestLoginCommand_ReplacesSession verifies login over an existing session switches user
func TestLoginCommand_ReplacesSession(t *testing.T) {
	svc := withAccount()
	svc.AddAccount("2", "Bob", "bob@example.com", "secret2", "T2")
	store := signedIn(t)

	_, _, code := runCommand(t, &commands.LoginCmd{}, svc, store,
		[]string{"--email", "bob@example.com", "--password", "secret2"}, true)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if got := store.Get(); got.Token != "T2" || got.User.Name != "Bob" {
		t.Errorf("expected Bob's session, got %+v", got)
	}
}

// TestSignupCommand_SignsIn verifies signup leaves the new account signed in
func TestSignupCommand_SignsIn(t *testing.T) {
	svc := testutil.NewFakeService()
	store := session.New(session.NewMemoryStorage(), nil)

	stdout, stderr, code := runCommand(t, &commands.SignupCmd{}, svc, store, []string{
		"--name", "Cy", "--email", "cy@example.com",
		"--password", "hunter22", "--confirm-password", "hunter22",
	}, false)

	expectOutput(t, stdout, stderr, code, "ok\n", "", exitcode.Success)
	got := store.Get()
	if !got.Authenticated() || got.User == nil || got.User.Email != "cy@example.com" {
		t.Errorf("expected signed-in session for cy, got %+v", got)
	}
	if n := svc.CallCount("Login"); n != 0 {
		t.Errorf("expected no separate login call, got %d", n)
	}
}

// TestSignupCommand_Mismatch verifies the confirmation must match
func TestSignupCommand_Mismatch(t *testing.T) {
	svc := testutil.NewFakeService()
	stdout, stderr, code := runCommand(t, &commands.SignupCmd{}, svc, nil, []string{
		"--name", "Cy", "--email", "cy@example.com",
		"--password", "hunter22", "--confirm-password", "hunter23",
	}, false)

	expectOutput(t, stdout, stderr, code, "", "error: confirm-password: Passwords do not match.\n", exitcode.UserError)
	if svc.TotalCalls() != 0 {
		t.Errorf("expected no service calls, got %d", svc.TotalCalls())
	}
}

// TestSignupCommand_Duplicate verifies a conflict is reported with the server's message
func TestSignupCommand_Duplicate(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.SignupCmd{}, withAccount(), nil, []string{
		"--name", "Ann", "--email", "ann@example.com",
		"--password", "secret1", "--confirm-password", "secret1",
	}, false)

	expectOutput(t, stdout, stderr, code, "", "error: User already exists\n", exitcode.UserError)
}

// TestLogoutCommand_RemovesBothEntries verifies logout clears token and user
func TestLogoutCommand_RemovesBothEntries(t *testing.T) {
	storage := session.NewMemoryStorage()
	store := session.New(storage, nil)
	if err := store.Set(&service.User{ID: "1", Name: "Ann"}, "T"); err != nil {
		t.Fatalf("failed to set session: %v", err)
	}

	stdout, stderr, code := runCommand(t, &commands.LogoutCmd{}, nil, store, nil, false)

	expectOutput(t, stdout, stderr, code, "ok\n", "", exitcode.Success)
	for _, key := range []string{session.KeyToken, session.KeyUser} {
		if _, ok, _ := storage.Get(key); ok {
			t.Errorf("expected %s to be removed", key)
		}
	}
}

// TestLogoutCommand_RemovesStrayUser verifies a user entry without a token is removed
func TestLogoutCommand_RemovesStrayUser(t *testing.T) {
	storage := session.NewMemoryStorage()
	if err := storage.Set(session.KeyUser, `{"id":"1","name":"Ann","email":"ann@example.com"}`); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	store := session.New(storage, nil)

	stdout, stderr, code := runCommand(t, &commands.LogoutCmd{}, nil, store, nil, false)

	expectOutput(t, stdout, stderr, code, "ok\n", "", exitcode.Success)
	if _, ok, _ := storage.Get(session.KeyUser); ok {
		t.Error("expected user entry to be removed")
	}
}

func TestLogoutCommand_NotLoggedIn(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.LogoutCmd{}, nil, nil, nil, false)
	expectOutput(t, stdout, stderr, code, "not logged in\n", "", exitcode.Success)
}

func TestLogoutCommand_NotLoggedInQuiet(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.LogoutCmd{}, nil, nil, nil, true)
	expectOutput(t, stdout, stderr, code, "", "", exitcode.Success)
}

func TestWhoamiCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.WhoamiCmd{}, nil, signedIn(t), nil, false)
	expectOutput(t, stdout, stderr, code, "Ann <ann@example.com>\n", "", exitcode.Success)
}

func TestWhoamiCommand_NotLoggedIn(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.WhoamiCmd{}, nil, nil, nil, false)
	expectOutput(t, stdout, stderr, code, "", "error: not logged in (run: taskboard login)\n", exitcode.AuthError)
}
