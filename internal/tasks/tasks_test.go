package tasks

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"golang.org/x/oauth2"

	"scoreline/internal/models"
	"scoreline/internal/session"
	"scoreline/internal/shared"
)

type fakeAuth struct {
	token    *oauth2.Token
	loginErr error

	user  *models.User
	meErr error

	// sawToken records what the session held when Me was called, proving the
	// login token is visible before the profile fetch.
	sess     *session.Session
	sawToken string
}

func (f *fakeAuth) Login(ctx context.Context, username, password string) (*oauth2.Token, error) {
	return f.token, f.loginErr
}

func (f *fakeAuth) Me(ctx context.Context) (*models.User, error) {
	if f.sess != nil {
		f.sawToken = f.sess.AccessToken()
	}
	return f.user, f.meErr
}

type fakeMatches struct {
	mu      sync.Mutex
	list    []models.Match
	listErr error
	getErr  error
	gets    []int64
}

func (f *fakeMatches) List(ctx context.Context) ([]models.Match, error) {
	return f.list, f.listErr
}

func (f *fakeMatches) Get(ctx context.Context, id int64) (*models.Match, error) {
	f.mu.Lock()
	f.gets = append(f.gets, id)
	f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	m := models.Match{
		ID:       id,
		HomeTeam: &models.TeamInfo{Name: "Chelsea FC"},
		AwayTeam: &models.TeamInfo{Name: "Arsenal FC"},
		Comments: []models.CommentRef{{Text: "refetched"}},
	}
	return &m, nil
}

type fakeComments struct {
	created   *models.Comment
	createErr error
	gotText   string
	gotUserID string
	gotMatch  int64
}

func (f *fakeComments) Create(ctx context.Context, text, userID string, matchID int64) (*models.Comment, error) {
	f.gotText = text
	f.gotUserID = userID
	f.gotMatch = matchID
	return f.created, f.createErr
}

type fakeSnapshots struct {
	mu      sync.Mutex
	saved   []models.Match
	saveErr error
}

func (f *fakeSnapshots) Save(m models.Match) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.mu.Lock()
	f.saved = append(f.saved, m)
	f.mu.Unlock()
	return nil
}

func newTestEngine(auth *fakeAuth, matches *fakeMatches, comments *fakeComments) (*FlowEngine, *session.Session) {
	logger := shared.NewLogger(io.Discard)
	sess := session.New(nil, logger)
	if auth != nil {
		auth.sess = sess
	}
	return NewFlowEngine(auth, matches, comments, sess, logger), sess
}

func TestLoginFlow(t *testing.T) {
	t.Run("ChainsTokenThenProfile", func(t *testing.T) {
		auth := &fakeAuth{
			token: &oauth2.Token{AccessToken: "jwt-abc", TokenType: "Bearer"},
			user:  &models.User{ID: "u1", Username: "bob"},
		}
		engine, sess := newTestEngine(auth, nil, nil)

		user, err := engine.Login(context.Background(), "bob", "hunter22")
		if err != nil {
			t.Fatalf("login failed: %v", err)
		}

		if user.Username != "bob" {
			t.Errorf("expected bob, got %q", user.Username)
		}
		if auth.sawToken != "jwt-abc" {
			t.Errorf("profile fetch must run with the fresh token, saw %q", auth.sawToken)
		}
		if !sess.IsAuthenticated() {
			t.Error("session should be established after login")
		}
		if sess.AccessToken() != "jwt-abc" {
			t.Errorf("expected session token jwt-abc, got %q", sess.AccessToken())
		}
	})

	t.Run("TokenRejectedByLogin", func(t *testing.T) {
		auth := &fakeAuth{loginErr: errors.New("bad credentials")}
		engine, sess := newTestEngine(auth, nil, nil)

		if _, err := engine.Login(context.Background(), "bob", "nope"); err == nil {
			t.Fatal("expected login error")
		}
		if sess.IsAuthenticated() || sess.AccessToken() != "" {
			t.Error("failed login must leave the session untouched")
		}
	})

	t.Run("ProfileFetchFailureRollsBackToken", func(t *testing.T) {
		auth := &fakeAuth{
			token: &oauth2.Token{AccessToken: "jwt-abc"},
			meErr: errors.New("profile endpoint down"),
		}
		engine, sess := newTestEngine(auth, nil, nil)

		if _, err := engine.Login(context.Background(), "bob", "hunter22"); err == nil {
			t.Fatal("expected error when the profile fetch fails")
		}
		if sess.AccessToken() != "" {
			t.Errorf("token must be rolled back, got %q", sess.AccessToken())
		}
		if sess.IsAuthenticated() {
			t.Error("session must not be authenticated")
		}
	})
}

func TestVerifyFlow(t *testing.T) {
	t.Run("NoToken", func(t *testing.T) {
		engine, _ := newTestEngine(&fakeAuth{}, nil, nil)

		_, err := engine.Verify(context.Background())
		if !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	t.Run("RejectedTokenClearsSession", func(t *testing.T) {
		auth := &fakeAuth{meErr: errors.New("401")}
		engine, sess := newTestEngine(auth, nil, nil)
		sess.Establish(&models.User{Username: "bob"}, &oauth2.Token{AccessToken: "stale"})

		_, err := engine.Verify(context.Background())
		if !errors.Is(err, shared.ErrSessionInvalid) {
			t.Errorf("expected ErrSessionInvalid, got %v", err)
		}
		if sess.IsAuthenticated() || sess.AccessToken() != "" {
			t.Error("a rejected token must fully clear the session")
		}
	})

	t.Run("ValidTokenRefreshesProfile", func(t *testing.T) {
		auth := &fakeAuth{user: &models.User{Username: "bob-renamed"}}
		engine, sess := newTestEngine(auth, nil, nil)
		sess.Establish(&models.User{Username: "bob"}, &oauth2.Token{AccessToken: "good"})

		user, err := engine.Verify(context.Background())
		if err != nil {
			t.Fatalf("verify failed: %v", err)
		}
		if user.Username != "bob-renamed" {
			t.Errorf("expected refreshed profile, got %q", user.Username)
		}
		if sess.User().Username != "bob-renamed" {
			t.Error("session should hold the refreshed profile")
		}
	})
}

func TestPostCommentFlow(t *testing.T) {
	t.Run("CreateThenRefetch", func(t *testing.T) {
		matches := &fakeMatches{}
		comments := &fakeComments{created: &models.Comment{ID: "c1", Text: "goal!"}}
		engine, sess := newTestEngine(&fakeAuth{}, matches, comments)
		sess.Establish(&models.User{ID: "u1", Username: "bob"}, &oauth2.Token{AccessToken: "t"})

		result, err := engine.PostComment(context.Background(), 42, "goal!")
		if err != nil {
			t.Fatalf("post comment failed: %v", err)
		}

		if comments.gotText != "goal!" || comments.gotUserID != "u1" || comments.gotMatch != 42 {
			t.Errorf("unexpected create call: %+v", comments)
		}
		if len(matches.gets) != 1 || matches.gets[0] != 42 {
			t.Errorf("expected one refetch of match 42, got %v", matches.gets)
		}
		if result.Comment.ID != "c1" {
			t.Errorf("unexpected comment: %+v", result.Comment)
		}
		if result.Match == nil || len(result.Match.Comments) != 1 {
			t.Errorf("expected refetched match with comments, got %+v", result.Match)
		}
	})

	t.Run("AnonymousUserSendsEmptyID", func(t *testing.T) {
		matches := &fakeMatches{}
		comments := &fakeComments{created: &models.Comment{ID: "c1"}}
		engine, _ := newTestEngine(&fakeAuth{}, matches, comments)

		if _, err := engine.PostComment(context.Background(), 42, "hi"); err != nil {
			t.Fatalf("post comment failed: %v", err)
		}
		if comments.gotUserID != "" {
			t.Errorf("expected empty user id, got %q", comments.gotUserID)
		}
	})

	t.Run("CreateFailureSkipsRefetch", func(t *testing.T) {
		matches := &fakeMatches{}
		comments := &fakeComments{createErr: errors.New("401")}
		engine, _ := newTestEngine(&fakeAuth{}, matches, comments)

		if _, err := engine.PostComment(context.Background(), 42, "hi"); err == nil {
			t.Fatal("expected create error to propagate")
		}
		if len(matches.gets) != 0 {
			t.Errorf("refetch must not run when create fails, got %v", matches.gets)
		}
	})

	t.Run("RefetchFailureReturnsPartialResult", func(t *testing.T) {
		matches := &fakeMatches{getErr: errors.New("timeout")}
		comments := &fakeComments{created: &models.Comment{ID: "c1"}}
		engine, _ := newTestEngine(&fakeAuth{}, matches, comments)

		result, err := engine.PostComment(context.Background(), 42, "hi")
		if err != nil {
			t.Fatalf("partial result should not error: %v", err)
		}
		if result.Comment == nil || result.Match != nil {
			t.Errorf("expected comment without match, got %+v", result)
		}
	})
}

func TestSnapshotFlow(t *testing.T) {
	listing := []models.Match{
		{ID: 1, HomeTeam: &models.TeamInfo{Name: "A"}, Comments: []models.CommentRef{}},
		{ID: 2, HomeTeam: &models.TeamInfo{Name: "B"}, Comments: []models.CommentRef{}},
		{ID: 3, HomeTeam: &models.TeamInfo{Name: "C"}, Comments: []models.CommentRef{}},
	}

	t.Run("SavesEveryMatch", func(t *testing.T) {
		matches := &fakeMatches{list: listing}
		engine, _ := newTestEngine(&fakeAuth{}, matches, nil)
		store := &fakeSnapshots{}

		result, err := engine.Snapshot(context.Background(), store, SnapshotOptions{Detail: true}, nil)
		if err != nil {
			t.Fatalf("snapshot failed: %v", err)
		}

		if result.Total != 3 || result.Saved != 3 || result.Failed != 0 {
			t.Errorf("unexpected result: %+v", result)
		}
		if len(store.saved) != 3 {
			t.Errorf("expected 3 saved matches, got %d", len(store.saved))
		}
		if len(matches.gets) != 3 {
			t.Errorf("detail mode should refetch each match, got %d fetches", len(matches.gets))
		}
	})

	t.Run("ShallowModeSkipsDetailFetches", func(t *testing.T) {
		matches := &fakeMatches{list: listing}
		engine, _ := newTestEngine(&fakeAuth{}, matches, nil)
		store := &fakeSnapshots{}

		result, err := engine.Snapshot(context.Background(), store, SnapshotOptions{}, nil)
		if err != nil {
			t.Fatalf("snapshot failed: %v", err)
		}

		if result.Saved != 3 {
			t.Errorf("expected 3 saved, got %d", result.Saved)
		}
		if len(matches.gets) != 0 {
			t.Errorf("shallow mode must not fetch details, got %v", matches.gets)
		}
	})

	t.Run("DetailFailureFallsBackToListing", func(t *testing.T) {
		matches := &fakeMatches{list: listing, getErr: errors.New("rate limited")}
		engine, _ := newTestEngine(&fakeAuth{}, matches, nil)
		store := &fakeSnapshots{}

		result, err := engine.Snapshot(context.Background(), store, SnapshotOptions{Detail: true}, nil)
		if err != nil {
			t.Fatalf("snapshot failed: %v", err)
		}

		if result.Saved != 3 {
			t.Errorf("listing payloads should still be saved, got %d", result.Saved)
		}
		if len(result.Errors) != 3 {
			t.Errorf("expected 3 recorded fetch errors, got %d", len(result.Errors))
		}
	})

	t.Run("SaveFailuresAreCounted", func(t *testing.T) {
		matches := &fakeMatches{list: listing}
		engine, _ := newTestEngine(&fakeAuth{}, matches, nil)
		store := &fakeSnapshots{saveErr: errors.New("disk full")}

		result, err := engine.Snapshot(context.Background(), store, SnapshotOptions{}, nil)
		if err != nil {
			t.Fatalf("snapshot failed: %v", err)
		}

		if result.Failed != 3 || result.Saved != 0 {
			t.Errorf("unexpected result: %+v", result)
		}
	})

	t.Run("ListFailurePropagates", func(t *testing.T) {
		matches := &fakeMatches{listErr: errors.New("backend down")}
		engine, _ := newTestEngine(&fakeAuth{}, matches, nil)

		if _, err := engine.Snapshot(context.Background(), &fakeSnapshots{}, SnapshotOptions{}, nil); err == nil {
			t.Fatal("expected list error to propagate")
		}
	})

	t.Run("EmptyListing", func(t *testing.T) {
		matches := &fakeMatches{list: []models.Match{}}
		engine, _ := newTestEngine(&fakeAuth{}, matches, nil)

		result, err := engine.Snapshot(context.Background(), &fakeSnapshots{}, SnapshotOptions{}, nil)
		if err != nil {
			t.Fatalf("snapshot failed: %v", err)
		}
		if result.Total != 0 || result.Saved != 0 {
			t.Errorf("unexpected result: %+v", result)
		}
	})
}
