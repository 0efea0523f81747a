package cmd

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"airvend/internal/config"
	"airvend/internal/session"
	"airvend/pkg/models"
)

// Full login flow through the command tree: anonymous → authenticating →
// authenticated, with token and user persisted for the next process.
func TestLoginCommand_PersistsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" {
			t.Errorf("unexpected request: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"token":"tok-a","data":{"email":"a@b.c","wallet":{"balance":1500}}}`))
	}))
	defer server.Close()

	t.Setenv("AIRVEND_HOME", t.TempDir())
	t.Setenv("AIRVEND_BASE_URL", server.URL)

	root := NewRootCmd()
	root.SetArgs([]string{"login", "--email", "a@b.c"})
	root.SetIn(strings.NewReader("secret\n"))
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)

	if err := root.Execute(); err != nil {
		t.Fatalf("login failed: %v\noutput: %s", err, out.String())
	}
	if !strings.Contains(out.String(), "Login successful") {
		t.Fatalf("expected success notification, got %q", out.String())
	}

	// Fresh process over the same durable storage.
	creds, err := config.NewCredentialStore()
	if err != nil {
		t.Fatalf("credential store: %v", err)
	}
	store := session.NewStore(creds)
	if err := store.Restore(); err != nil {
		t.Fatalf("restore: %v", err)
	}
	snap := store.Snapshot()
	if !snap.IsAuthenticated || snap.Token != "tok-a" || snap.User.Email != "a@b.c" {
		t.Fatalf("expected persisted authenticated session, got %+v", snap)
	}
}

func TestLoginCommand_FailureRecordsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Invalid credentials"}`))
	}))
	defer server.Close()

	t.Setenv("AIRVEND_HOME", t.TempDir())
	t.Setenv("AIRVEND_BASE_URL", server.URL)

	root := NewRootCmd()
	root.SetArgs([]string{"login", "--email", "a@b.c"})
	root.SetIn(strings.NewReader("wrong\n"))
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)

	err := root.Execute()
	if err == nil || err.Error() != "Invalid credentials" {
		t.Fatalf("expected server message verbatim, got %v", err)
	}

	// Nothing persisted.
	creds, cerr := config.NewCredentialStore()
	if cerr != nil {
		t.Fatalf("credential store: %v", cerr)
	}
	token, user, lerr := creds.Load()
	if lerr != nil {
		t.Fatalf("load: %v", lerr)
	}
	if token != "" || user != nil {
		t.Fatalf("expected no persisted session, got %q %+v", token, user)
	}
}

// Logout resets to anonymous, clears storage, and protected commands then
// redirect to login.
func TestLogoutCommand_ClearsSession(t *testing.T) {
	home := t.TempDir()
	t.Setenv("AIRVEND_HOME", home)

	creds := config.NewCredentialStoreAt(home)
	store := session.NewStore(creds)
	user := &models.User{Email: "a@b.c", Wallet: models.Wallet{Balance: 1000}}
	if err := store.LoginSuccess("tok-e", user); err != nil {
		t.Fatalf("login: %v", err)
	}

	root := NewRootCmd()
	root.SetArgs([]string{"logout"})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	if err := root.Execute(); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if !strings.Contains(out.String(), "Logged out successfully") {
		t.Fatalf("expected logout notification, got %q", out.String())
	}

	token, user, err := creds.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if token != "" || user != nil {
		t.Fatalf("expected storage cleared, got %q %+v", token, user)
	}

	// Protected command now refuses.
	root = NewRootCmd()
	root.SetArgs([]string{"wallet"})
	out.Reset()
	root.SetOut(&out)
	root.SetErr(&out)
	err = root.Execute()
	if err == nil || !strings.Contains(err.Error(), "airvend login") {
		t.Fatalf("expected login redirect, got %v", err)
	}
}
