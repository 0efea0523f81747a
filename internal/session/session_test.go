package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"airvend/internal/config"
	"airvend/pkg/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(config.NewCredentialStoreAt(t.TempDir()))
}

func testUser() *models.User {
	return &models.User{Email: "a@b.c", Wallet: models.Wallet{Balance: 1000}}
}

func TestLoginFlow_Transitions(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	if got := s.Snapshot(); got.State != StateAnonymous || got.IsAuthenticated {
		t.Fatalf("expected anonymous start, got %+v", got)
	}

	s.LoginStart()
	if got := s.Snapshot(); got.State != StateAuthenticating || !got.Loading {
		t.Fatalf("expected authenticating with loading, got %+v", got)
	}

	if err := s.LoginSuccess("tok-1", testUser()); err != nil {
		t.Fatalf("login success: %v", err)
	}
	got := s.Snapshot()
	if got.State != StateAuthenticated || !got.IsAuthenticated || got.Loading {
		t.Fatalf("expected authenticated, got %+v", got)
	}
	if got.Token != "tok-1" || got.User == nil || got.User.Email != "a@b.c" {
		t.Fatalf("expected identity stored, got %+v", got)
	}
}

func TestLoginFailure_StaysLogicallyAnonymous(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	s.LoginStart()
	s.LoginFailure("Invalid credentials")

	got := s.Snapshot()
	if got.State != StateAuthError || got.IsAuthenticated {
		t.Fatalf("expected auth-error without authentication, got %+v", got)
	}
	if got.Token != "" || got.User != nil {
		t.Fatalf("expected in-memory credentials cleared, got %+v", got)
	}
	if got.Error != "Invalid credentials" {
		t.Fatalf("expected error recorded, got %q", got.Error)
	}
}

func TestClearError_Idempotent(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	s.LoginFailure("boom")
	s.ClearError()
	if got := s.Snapshot().Error; got != "" {
		t.Fatalf("expected error cleared, got %q", got)
	}
	s.ClearError()
	if got := s.Snapshot().Error; got != "" {
		t.Fatalf("expected error still clear, got %q", got)
	}
}

func TestRestore_RoundTrip(t *testing.T) {
	t.Parallel()

	creds := config.NewCredentialStoreAt(t.TempDir())
	first := NewStore(creds)
	if err := first.LoginSuccess("tok-9", testUser()); err != nil {
		t.Fatalf("login: %v", err)
	}

	// Fresh process: a new store over the same durable storage.
	second := NewStore(creds)
	if err := second.Restore(); err != nil {
		t.Fatalf("restore: %v", err)
	}
	got := second.Snapshot()
	if !got.IsAuthenticated {
		t.Fatalf("expected authenticated after restore, got %+v", got)
	}
	if got.Token != "tok-9" || got.User.Email != "a@b.c" || got.User.Wallet.Balance != 1000 {
		t.Fatalf("expected identical token and user, got %+v", got)
	}
}

func TestRestore_PartialStateDiscarded(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	creds := config.NewCredentialStoreAt(dir)
	// Simulate a crash between the token and user writes: only the
	// credentials file exists, no user record.
	env := []byte("AIRVEND_TOKEN=tok-partial\n")
	if err := os.WriteFile(filepath.Join(dir, "credentials.env"), env, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	s := NewStore(creds)
	if err := s.Restore(); err != nil {
		t.Fatalf("restore: %v", err)
	}
	got := s.Snapshot()
	if got.IsAuthenticated || got.State != StateAnonymous {
		t.Fatalf("expected partial state discarded, got %+v", got)
	}

	// Both keys must be gone after the discard.
	token, user, err := creds.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if token != "" || user != nil {
		t.Fatalf("expected durable storage cleared, got %q %+v", token, user)
	}
}

func TestLogout_ClearsStateAndStorage(t *testing.T) {
	t.Parallel()

	creds := config.NewCredentialStoreAt(t.TempDir())
	s := NewStore(creds)
	if err := s.LoginSuccess("tok-1", testUser()); err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := s.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	got := s.Snapshot()
	if got.State != StateAnonymous || got.IsAuthenticated || got.Token != "" || got.User != nil {
		t.Fatalf("expected anonymous reset, got %+v", got)
	}
	token, user, err := creds.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if token != "" || user != nil {
		t.Fatalf("expected durable storage cleared, got %q %+v", token, user)
	}
}

func TestUpdateUser_MergesAndPersists(t *testing.T) {
	t.Parallel()

	creds := config.NewCredentialStoreAt(t.TempDir())
	s := NewStore(creds)
	if err := s.LoginSuccess("tok-1", testUser()); err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := s.SetWalletBalance(6000); err != nil {
		t.Fatalf("set balance: %v", err)
	}

	got := s.Snapshot()
	if got.State != StateAuthenticated {
		t.Fatalf("update must not change state, got %v", got.State)
	}
	if got.User.Wallet.Balance != 6000 {
		t.Fatalf("expected balance 6000, got %d", got.User.Wallet.Balance)
	}
	// Email untouched by the partial update.
	if got.User.Email != "a@b.c" {
		t.Fatalf("expected other fields preserved, got %+v", got.User)
	}

	_, persisted, err := creds.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if persisted.Wallet.Balance != 6000 {
		t.Fatalf("expected persisted balance 6000, got %d", persisted.Wallet.Balance)
	}
}

func TestUpdateUser_RequiresAuthenticated(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	if err := s.SetWalletBalance(100); err == nil {
		t.Fatalf("expected error updating anonymous session")
	}
}

func TestTokenExpiry_ParsesUnverified(t *testing.T) {
	t.Parallel()

	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	s := newTestStore(t)
	if err := s.LoginSuccess(signed, testUser()); err != nil {
		t.Fatalf("login: %v", err)
	}
	got, ok := s.TokenExpiry()
	if !ok {
		t.Fatalf("expected expiry parsed")
	}
	if !got.Equal(exp) {
		t.Fatalf("expected %v, got %v", exp, got)
	}
}

func TestTokenExpiry_OpaqueTokenHasNone(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	if err := s.LoginSuccess("opaque-token", testUser()); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, ok := s.TokenExpiry(); ok {
		t.Fatalf("expected no expiry for opaque token")
	}
}
