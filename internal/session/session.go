package session

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"

	"scoreline/internal/models"
)

// CredentialStore persists the bearer token and the serialized user across
// invocations. Implementations must treat corrupt stored user JSON as absence:
// return nil and log, never fail.
type CredentialStore interface {
	StoreToken(token *oauth2.Token) error
	Token() (*oauth2.Token, error) // nil when absent
	RemoveToken() error

	StoreUser(user *models.User) error
	StoredUser() (*models.User, error) // nil when absent or unparseable
	RemoveUser() error
}

// Session is the process-wide record of the current authenticated user.
// All mutation happens through the fixed method set below; reads and writes
// are guarded so TUI goroutines can observe it safely.
type Session struct {
	mu     sync.RWMutex
	store  CredentialStore
	logger *log.Logger

	user          *models.User
	token         *oauth2.Token
	authenticated bool
	loading       bool
	lastError     string
}

// New constructs a Session seeded synchronously from the credential store.
// When both a persisted token and a persisted user are present the session
// starts authenticated without any network round-trip; a stale token will
// surface as a 401 on the first protected call.
func New(store CredentialStore, logger *log.Logger) *Session {
	s := &Session{store: store, logger: logger}

	if store == nil {
		return s
	}

	token, err := store.Token()
	if err != nil {
		logger.Warn("failed to read persisted token", "error", err)
		return s
	}
	user, err := store.StoredUser()
	if err != nil {
		logger.Warn("failed to read persisted user", "error", err)
		return s
	}

	if token != nil && user != nil {
		s.user = user
		s.token = token
		s.authenticated = true
	}

	return s
}

// SetUser replaces the current user wholesale and flips the authenticated flag.
func (s *Session) SetUser(user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.authenticated = user != nil
}

// ClearUser drops the current user and clears the authenticated flag.
func (s *Session) ClearUser() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.token = nil
	s.authenticated = false
}

// SetLoading sets the loading flag.
func (s *Session) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
}

// SetError records the last error message.
func (s *Session) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = msg
}

// ClearError clears the last error message.
func (s *Session) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = ""
}

// User returns the current user, nil when unauthenticated.
func (s *Session) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// IsAuthenticated reports the in-memory authenticated flag. This trusts local
// state and may be stale relative to backend-side token validity.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// IsLoading reports whether a wrapped call is in flight.
func (s *Session) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the last recorded error message, empty when none.
func (s *Session) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastError
}

// AccessToken returns the raw bearer token, empty when none is held.
// An expired token is still returned: requests go out regardless and the
// backend's 401 is surfaced like any other request failure.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == nil {
		return ""
	}
	return s.token.AccessToken
}

// SetToken replaces the in-memory token without touching persistence.
// Used between the login and profile-fetch steps, before the session is
// established for good.
func (s *Session) SetToken(token *oauth2.Token) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// Establish persists the token and user, then seeds the in-memory state.
func (s *Session) Establish(user *models.User, token *oauth2.Token) error {
	if s.store != nil {
		if err := s.store.StoreToken(token); err != nil {
			return err
		}
		if err := s.store.StoreUser(user); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.token = token
	s.authenticated = user != nil
	return nil
}

// Logout clears the session locally: both persisted keys are removed together
// and in-memory state is reset. No backend call is made.
func (s *Session) Logout() error {
	if s.store != nil {
		if err := s.store.RemoveToken(); err != nil {
			return err
		}
		if err := s.store.RemoveUser(); err != nil {
			return err
		}
	}

	s.ClearUser()
	return nil
}

// Run wraps a call for UI consumption: sets the loading flag, clears any prior
// error, invokes fn, records the error message on failure, and always resets
// the loading flag. The error is returned so the caller can react locally too.
func (s *Session) Run(ctx context.Context, fn func(context.Context) error) error {
	s.SetLoading(true)
	s.ClearError()
	defer s.SetLoading(false)

	if err := fn(ctx); err != nil {
		s.SetError(err.Error())
		return err
	}
	return nil
}
