// Package session tracks the authenticated identity for the lifetime of the
// client process. State changes only through the transition methods below;
// exactly one identity is tracked at a time and the machine never terminates,
// it cycles between anonymous and authenticated.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"airvend/pkg/models"
)

// State is the session machine's current position.
type State int

const (
	StateAnonymous State = iota
	StateAuthenticating
	StateAuthenticated
	StateAuthError
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	case StateAuthError:
		return "auth-error"
	default:
		return "unknown"
	}
}

// CredentialStore is the durable storage the session persists to.
type CredentialStore interface {
	Save(token string, user *models.User) error
	SaveUser(user *models.User) error
	Load() (string, *models.User, error)
	Clear() error
}

// Snapshot is a copy of the session state at one point in time.
type Snapshot struct {
	State           State
	IsAuthenticated bool
	User            *models.User
	Token           string
	Loading         bool
	Error           string
}

// Store is the process-wide session store. It is injectable rather than a
// package singleton so commands and tests construct their own.
type Store struct {
	mu    sync.Mutex
	creds CredentialStore

	state State
	user  *models.User
	token string
	err   string
}

// NewStore returns an anonymous session backed by the given durable storage.
func NewStore(creds CredentialStore) *Store {
	return &Store{creds: creds, state: StateAnonymous}
}

// Restore attempts to resume a persisted session. When both token and user are
// present the session enters authenticated directly, without a network
// round-trip; the restored session is trusted until a request proves otherwise
// with a 401. A partial pair (one key missing or unparseable) is invalid:
// both keys are discarded and the session stays anonymous.
func (s *Store) Restore() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, user, err := s.creds.Load()
	if err != nil {
		return fmt.Errorf("failed to read persisted session: %w", err)
	}
	if token == "" && user == nil {
		return nil
	}
	if token == "" || user == nil {
		// Partial write from an earlier crash; discard rather than repair.
		s.state = StateAnonymous
		return s.creds.Clear()
	}
	s.state = StateAuthenticated
	s.token = token
	s.user = user
	return nil
}

// LoginStart marks a login or registration submission in flight.
func (s *Store) LoginStart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateAuthenticating
	s.err = ""
}

// LoginSuccess stores the new identity and persists it. The durable write
// happens before the in-memory transition so a persistence failure never
// yields an authenticated session that would vanish on restart.
func (s *Store) LoginSuccess(token string, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.creds.Save(token, user); err != nil {
		s.state = StateAuthError
		s.err = "failed to persist session"
		return err
	}
	s.state = StateAuthenticated
	s.token = token
	s.user = user
	s.err = ""
	return nil
}

// LoginFailure records a failed login or registration. In-memory credentials
// are cleared; the session is logically anonymous with an error message.
func (s *Store) LoginFailure(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateAuthError
	s.token = ""
	s.user = nil
	s.err = message
}

// Logout resets the session to anonymous and clears durable storage. It is
// also the 401 teardown path the API client's OnUnauthorized hook is wired to.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateAnonymous
	s.token = ""
	s.user = nil
	s.err = ""
	return s.creds.Clear()
}

// UpdateUser merges changes into the current user and re-persists the record.
// No state transition occurs; the session must already be authenticated.
func (s *Store) UpdateUser(mutate func(*models.User)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAuthenticated || s.user == nil {
		return fmt.Errorf("no authenticated user to update")
	}
	updated := *s.user
	mutate(&updated)
	if err := s.creds.SaveUser(&updated); err != nil {
		return fmt.Errorf("failed to persist user: %w", err)
	}
	s.user = &updated
	return nil
}

// SetWalletBalance updates the user's wallet balance in place and persists it.
func (s *Store) SetWalletBalance(balance int64) error {
	return s.UpdateUser(func(u *models.User) {
		u.Wallet.Balance = balance
	})
}

// ClearError clears the error field only. Calling it in any state, any number
// of times, changes nothing else.
func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
}

// Snapshot returns a copy of the current session state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	var user *models.User
	if s.user != nil {
		u := *s.user
		user = &u
	}
	return Snapshot{
		State:           s.state,
		IsAuthenticated: s.state == StateAuthenticated && s.token != "" && s.user != nil,
		User:            user,
		Token:           s.token,
		Loading:         s.state == StateAuthenticating,
		Error:           s.err,
	}
}

// TokenExpiry parses the session token's exp claim without verifying the
// signature. Display only: an expired-looking token is still trusted until
// the platform answers 401.
func (s *Store) TokenExpiry() (time.Time, bool) {
	s.mu.Lock()
	token := s.token
	s.mu.Unlock()

	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
