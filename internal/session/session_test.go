package session

import (
	"context"
	"errors"
	"io"
	"testing"

	"golang.org/x/oauth2"

	"scoreline/internal/models"
	"scoreline/internal/shared"
)

// fakeStore is an in-memory CredentialStore that counts reads, so tests can
// assert that boot never touches the network and only hits the store once.
type fakeStore struct {
	token *oauth2.Token
	user  *models.User

	tokenReads int
	userReads  int
	tokenErr   error
}

func (f *fakeStore) StoreToken(token *oauth2.Token) error {
	f.token = token
	return nil
}

func (f *fakeStore) Token() (*oauth2.Token, error) {
	f.tokenReads++
	return f.token, f.tokenErr
}

func (f *fakeStore) RemoveToken() error {
	f.token = nil
	return nil
}

func (f *fakeStore) StoreUser(user *models.User) error {
	f.user = user
	return nil
}

func (f *fakeStore) StoredUser() (*models.User, error) {
	f.userReads++
	return f.user, nil
}

func (f *fakeStore) RemoveUser() error {
	f.user = nil
	return nil
}

func TestSessionBoot(t *testing.T) {
	logger := shared.NewLogger(io.Discard)

	t.Run("SeedsFromPersistedState", func(t *testing.T) {
		store := &fakeStore{
			token: &oauth2.Token{AccessToken: "T1", TokenType: "Bearer"},
			user:  &models.User{ID: "u1", Username: "bob", Roles: []string{models.RoleUser}},
		}

		s := New(store, logger)

		if !s.IsAuthenticated() {
			t.Error("session should boot authenticated from persisted state")
		}
		if s.AccessToken() != "T1" {
			t.Errorf("expected token T1, got %q", s.AccessToken())
		}
		if user := s.User(); user == nil || user.Username != "bob" {
			t.Errorf("expected user bob, got %+v", user)
		}
		if store.tokenReads != 1 || store.userReads != 1 {
			t.Errorf("boot should read each key exactly once, got %d/%d", store.tokenReads, store.userReads)
		}
	})

	t.Run("TokenWithoutUserStaysLoggedOut", func(t *testing.T) {
		store := &fakeStore{token: &oauth2.Token{AccessToken: "T1"}}

		s := New(store, logger)

		if s.IsAuthenticated() {
			t.Error("token without a stored user must not authenticate the session")
		}
	})

	t.Run("NilStore", func(t *testing.T) {
		s := New(nil, logger)

		if s.IsAuthenticated() {
			t.Error("empty boot must start unauthenticated")
		}
		if s.AccessToken() != "" {
			t.Errorf("expected empty token, got %q", s.AccessToken())
		}
	})

	t.Run("StoreErrorDegradesToLoggedOut", func(t *testing.T) {
		store := &fakeStore{tokenErr: errors.New("disk on fire")}

		s := New(store, logger)

		if s.IsAuthenticated() {
			t.Error("a failing store must not authenticate the session")
		}
	})
}

func TestSessionLifecycle(t *testing.T) {
	logger := shared.NewLogger(io.Discard)

	t.Run("EstablishPersistsBothKeys", func(t *testing.T) {
		store := &fakeStore{}
		s := New(store, logger)

		user := &models.User{ID: "u1", Username: "bob"}
		token := &oauth2.Token{AccessToken: "abc", TokenType: "Bearer"}
		if err := s.Establish(user, token); err != nil {
			t.Fatalf("establish failed: %v", err)
		}

		if !s.IsAuthenticated() {
			t.Error("session should be authenticated after establish")
		}
		if store.token == nil || store.token.AccessToken != "abc" {
			t.Error("token was not persisted")
		}
		if store.user == nil || store.user.Username != "bob" {
			t.Error("user was not persisted")
		}
	})

	t.Run("LogoutClearsEverythingLocally", func(t *testing.T) {
		store := &fakeStore{
			token: &oauth2.Token{AccessToken: "T1"},
			user:  &models.User{Username: "bob"},
		}
		s := New(store, logger)

		if err := s.Logout(); err != nil {
			t.Fatalf("logout failed: %v", err)
		}

		if s.IsAuthenticated() {
			t.Error("session should be unauthenticated after logout")
		}
		if s.AccessToken() != "" {
			t.Errorf("token should be gone, got %q", s.AccessToken())
		}
		if store.token != nil || store.user != nil {
			t.Error("both persisted keys must be removed together")
		}
	})

	t.Run("SetTokenDoesNotPersist", func(t *testing.T) {
		store := &fakeStore{}
		s := New(store, logger)

		s.SetToken(&oauth2.Token{AccessToken: "transient"})

		if s.AccessToken() != "transient" {
			t.Errorf("expected in-memory token, got %q", s.AccessToken())
		}
		if store.token != nil {
			t.Error("SetToken must not write to the store")
		}
	})
}

func TestSessionRun(t *testing.T) {
	logger := shared.NewLogger(io.Discard)

	t.Run("SuccessClearsError", func(t *testing.T) {
		s := New(nil, logger)
		s.SetError("stale failure")

		var sawLoading bool
		err := s.Run(context.Background(), func(ctx context.Context) error {
			sawLoading = s.IsLoading()
			return nil
		})

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !sawLoading {
			t.Error("loading flag should be set while the call runs")
		}
		if s.IsLoading() {
			t.Error("loading flag should reset after the call")
		}
		if s.Err() != "" {
			t.Errorf("prior error should be cleared, got %q", s.Err())
		}
	})

	t.Run("FailureRecordsMessage", func(t *testing.T) {
		s := New(nil, logger)

		err := s.Run(context.Background(), func(ctx context.Context) error {
			return errors.New("backend exploded")
		})

		if err == nil {
			t.Fatal("expected the error to propagate")
		}
		if s.Err() != "backend exploded" {
			t.Errorf("expected recorded message, got %q", s.Err())
		}
		if s.IsLoading() {
			t.Error("loading flag must reset even on failure")
		}
	})
}
