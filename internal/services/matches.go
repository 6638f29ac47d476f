package services

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"scoreline/internal/models"
)

// MatchService is the facade for match and legacy event resources.
type MatchService struct {
	client *Client
}

// NewMatchService creates a match facade over the given client.
func NewMatchService(client *Client) *MatchService {
	return &MatchService{client: client}
}

// List retrieves all matches.
func (s *MatchService) List(ctx context.Context) ([]models.Match, error) {
	raw, err := s.client.get(ctx, "/api/matches")
	if err != nil {
		return nil, err
	}
	return models.NormalizeMatches(raw), nil
}

// Get retrieves a single match by its backend-assigned id.
func (s *MatchService) Get(ctx context.Context, id int64) (*models.Match, error) {
	raw, err := s.client.get(ctx, fmt.Sprintf("/api/matches/%d", id))
	if err != nil {
		return nil, err
	}
	m := models.NormalizeMatch(raw)
	return &m, nil
}

// ByDateRange retrieves matches between two dates, inclusive.
func (s *MatchService) ByDateRange(ctx context.Context, start, end time.Time) ([]models.Match, error) {
	q := url.Values{}
	q.Set("startDate", start.Format("2006-01-02"))
	q.Set("endDate", end.Format("2006-01-02"))

	raw, err := s.client.get(ctx, "/api/matches/date-range?"+q.Encode())
	if err != nil {
		return nil, err
	}
	return models.NormalizeMatches(raw), nil
}

// ByTeam retrieves matches involving the given team.
func (s *MatchService) ByTeam(ctx context.Context, teamID int64) ([]models.Match, error) {
	raw, err := s.client.get(ctx, fmt.Sprintf("/api/matches/team/%d", teamID))
	if err != nil {
		return nil, err
	}
	return models.NormalizeMatches(raw), nil
}

// ByCompetition retrieves matches in the given competition.
func (s *MatchService) ByCompetition(ctx context.Context, competitionID int64) ([]models.Match, error) {
	raw, err := s.client.get(ctx, fmt.Sprintf("/api/matches/competition/%d", competitionID))
	if err != nil {
		return nil, err
	}
	return models.NormalizeMatches(raw), nil
}

// ByStatus retrieves matches in the given lifecycle status.
func (s *MatchService) ByStatus(ctx context.Context, status models.MatchStatus) ([]models.Match, error) {
	raw, err := s.client.get(ctx, "/api/matches/status/"+url.PathEscape(string(status)))
	if err != nil {
		return nil, err
	}
	return models.NormalizeMatches(raw), nil
}

// Today retrieves matches scheduled for today.
func (s *MatchService) Today(ctx context.Context) ([]models.Match, error) {
	return s.collection(ctx, "/api/matches/today")
}

// Upcoming retrieves matches that haven't kicked off yet.
func (s *MatchService) Upcoming(ctx context.Context) ([]models.Match, error) {
	return s.collection(ctx, "/api/matches/upcoming")
}

// Finished retrieves completed matches.
func (s *MatchService) Finished(ctx context.Context) ([]models.Match, error) {
	return s.collection(ctx, "/api/matches/finished")
}

func (s *MatchService) collection(ctx context.Context, path string) ([]models.Match, error) {
	raw, err := s.client.get(ctx, path)
	if err != nil {
		return nil, err
	}
	return models.NormalizeMatches(raw), nil
}

// Stats retrieves the backend's aggregate match statistics as loose JSON.
func (s *MatchService) Stats(ctx context.Context) (map[string]any, error) {
	raw, err := s.client.get(ctx, "/api/matches/stats")
	if err != nil {
		return nil, err
	}
	stats, ok := raw.(map[string]any)
	if !ok {
		return map[string]any{}, nil
	}
	return stats, nil
}

// ListEvents retrieves matches from the legacy flatter /api/events endpoint.
// Semantically identical to List; only the payload shape differs.
func (s *MatchService) ListEvents(ctx context.Context) ([]models.Match, error) {
	raw, err := s.client.get(ctx, "/api/events")
	if err != nil {
		return nil, err
	}
	return models.NormalizeEvents(raw), nil
}

// GetEvent retrieves a single match from the legacy endpoint.
func (s *MatchService) GetEvent(ctx context.Context, id int64) (*models.Match, error) {
	raw, err := s.client.get(ctx, fmt.Sprintf("/api/events/%d", id))
	if err != nil {
		return nil, err
	}
	m := models.NormalizeEvent(raw)
	return &m, nil
}
