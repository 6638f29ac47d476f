package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/oauth2"

	"scoreline/internal/models"
	"scoreline/internal/shared"
)

const minPasswordLength = 6

// AuthService is the facade for the authentication endpoints.
//
// Login returns the bearer token only; composing login with the profile fetch
// and session seeding is the tasks layer's job, as two independently
// retryable steps.
type AuthService struct {
	client *Client
}

// NewAuthService creates an auth facade over the given client.
func NewAuthService(client *Client) *AuthService {
	return &AuthService{client: client}
}

// Register creates a new account. No token is required and no session state is
// touched. Form-level validation happens here, before any network call.
func (s *AuthService) Register(ctx context.Context, username, email, password, confirm string) (*models.User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, fmt.Errorf("%w: username is required", shared.ErrValidation)
	}
	if strings.TrimSpace(email) == "" {
		return nil, fmt.Errorf("%w: email is required", shared.ErrValidation)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", shared.ErrValidation, minPasswordLength)
	}
	if password != confirm {
		return nil, fmt.Errorf("%w: passwords do not match", shared.ErrValidation)
	}

	payload := map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}

	raw, err := s.client.post(ctx, "/api/auth/register", payload)
	if err != nil {
		return nil, err
	}

	user := models.NormalizeUser(raw)
	return &user, nil
}

// Login exchanges credentials for a bearer token. The token is returned as an
// [oauth2.Token] so expiry metadata can ride along when the backend provides it.
func (s *AuthService) Login(ctx context.Context, username, password string) (*oauth2.Token, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", shared.ErrValidation)
	}

	payload := map[string]string{
		"username": username,
		"password": password,
	}

	raw, err := s.client.post(ctx, "/api/auth/login", payload)
	if err != nil {
		return nil, err
	}

	body, _ := raw.(map[string]any)
	token, _ := body["token"].(string)
	if token == "" {
		return nil, fmt.Errorf("%w: backend returned no token", shared.ErrAuthFailed)
	}

	return &oauth2.Token{AccessToken: token, TokenType: "Bearer"}, nil
}

// Me retrieves the current user's profile. The bearer token is attached by the
// client when the session holds one; without a valid token the backend's 401
// surfaces as a RequestError.
func (s *AuthService) Me(ctx context.Context) (*models.User, error) {
	raw, err := s.client.get(ctx, "/api/auth/me")
	if err != nil {
		return nil, err
	}

	user := models.NormalizeUser(raw)
	return &user, nil
}
