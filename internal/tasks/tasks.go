package tasks

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"

	"scoreline/internal/models"
	"scoreline/internal/session"
	"scoreline/internal/shared"
)

// Authenticator is the slice of the auth service the flows need.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*oauth2.Token, error)
	Me(ctx context.Context) (*models.User, error)
}

// MatchFetcher is the slice of the match service the flows need.
type MatchFetcher interface {
	List(ctx context.Context) ([]models.Match, error)
	Get(ctx context.Context, id int64) (*models.Match, error)
}

// CommentPoster is the slice of the comment service the flows need.
type CommentPoster interface {
	Create(ctx context.Context, text, userID string, matchID int64) (*models.Comment, error)
}

// SnapshotStore persists fetched matches locally.
type SnapshotStore interface {
	Save(m models.Match) error
}

// FlowEngine orchestrates multi-step flows across the services and the session.
type FlowEngine struct {
	auth     Authenticator
	matches  MatchFetcher
	comments CommentPoster
	session  *session.Session
	logger   *log.Logger
}

// NewFlowEngine creates a flow engine. Any service a caller never exercises may
// be nil.
func NewFlowEngine(auth Authenticator, matches MatchFetcher, comments CommentPoster, sess *session.Session, logger *log.Logger) *FlowEngine {
	return &FlowEngine{
		auth:     auth,
		matches:  matches,
		comments: comments,
		session:  sess,
		logger:   logger,
	}
}

// Matches exposes the match fetcher for frontends that drive their own
// fetch-and-render loop.
func (e *FlowEngine) Matches() MatchFetcher {
	return e.matches
}

// Login runs the full sign-in chain: exchange credentials for a token, fetch
// the profile with that token, then establish the session so both survive
// restarts. The token is only persisted once the profile fetch succeeds.
func (e *FlowEngine) Login(ctx context.Context, username, password string) (*models.User, error) {
	token, err := e.auth.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}

	// The profile call authenticates with the fresh token, so it has to be
	// visible to the HTTP client before the session is established.
	e.session.SetToken(token)

	user, err := e.auth.Me(ctx)
	if err != nil {
		e.session.SetToken(nil)
		return nil, fmt.Errorf("failed to load profile after login: %w", err)
	}

	if err := e.session.Establish(user, token); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	e.logger.Info("logged in", "username", user.Username)
	return user, nil
}

// Verify checks the held token against the backend. On success the stored
// profile is refreshed; on any failure the session is fully logged out so a
// dead token never lingers.
func (e *FlowEngine) Verify(ctx context.Context) (*models.User, error) {
	token := e.session.AccessToken()
	if token == "" {
		return nil, shared.ErrNotAuthenticated
	}

	user, err := e.auth.Me(ctx)
	if err != nil {
		if logoutErr := e.session.Logout(); logoutErr != nil {
			e.logger.Warn("failed to clear session after rejected token", "error", logoutErr)
		}
		return nil, fmt.Errorf("%w: %v", shared.ErrSessionInvalid, err)
	}

	if err := e.session.Establish(user, &oauth2.Token{AccessToken: token, TokenType: "Bearer"}); err != nil {
		return nil, fmt.Errorf("failed to refresh stored profile: %w", err)
	}
	return user, nil
}

// CommentResult pairs a created comment with the refetched match it belongs to.
type CommentResult struct {
	Comment *models.Comment
	Match   *models.Match
}

// PostComment creates a comment on a match and then refetches the match so the
// caller sees the new comment in context. The refetch only starts after the
// create response has been observed.
func (e *FlowEngine) PostComment(ctx context.Context, matchID int64, text string) (*CommentResult, error) {
	userID := ""
	if user := e.session.User(); user != nil {
		userID = user.ID
	}

	comment, err := e.comments.Create(ctx, text, userID, matchID)
	if err != nil {
		return nil, err
	}

	match, err := e.matches.Get(ctx, matchID)
	if err != nil {
		// The comment exists server-side; report the partial result.
		e.logger.Warn("comment created but refetch failed", "match_id", matchID, "error", err)
		return &CommentResult{Comment: comment}, nil
	}

	return &CommentResult{Comment: comment, Match: match}, nil
}
