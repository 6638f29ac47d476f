package services

import (
	"context"
	"fmt"
	"strings"

	"scoreline/internal/models"
	"scoreline/internal/shared"
)

// CommentService is the facade for the comment resource.
type CommentService struct {
	client *Client
}

// NewCommentService creates a comment facade over the given client.
func NewCommentService(client *Client) *CommentService {
	return &CommentService{client: client}
}

// Create posts a comment on a match. The wire field is named eventId for
// backend compatibility but always carries the match's integer id.
//
// Empty text is rejected client-side; a missing token is not. The request is
// sent anyway and the backend's 401 surfaces as a RequestError.
func (s *CommentService) Create(ctx context.Context, text, userID string, matchID int64) (*models.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: comment text is required", shared.ErrValidation)
	}

	payload := models.Comment{
		Text:    text,
		UserID:  userID,
		EventID: matchID,
	}.Wire()

	raw, err := s.client.post(ctx, "/api/comments", payload)
	if err != nil {
		return nil, err
	}

	comment := models.NormalizeComment(raw)
	return &comment, nil
}
