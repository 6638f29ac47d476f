package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"scoreline/internal/models"
	"scoreline/internal/shared"
)

// MatchSnapshot is a locally persisted copy of a fetched match.
// Payload holds the full normalized record as JSON; the other columns are
// denormalized for listing without decoding.
type MatchSnapshot struct {
	ID          string
	Sequence    int
	MatchID     int64
	UTCDate     *time.Time
	Status      string
	HomeTeam    string
	AwayTeam    string
	Competition string
	Payload     []byte
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MatchRepository persists match snapshots for offline listing.
type MatchRepository struct {
	db *sql.DB
}

// NewMatchRepository creates a snapshot repository over the given database.
func NewMatchRepository(db *sql.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

// Save upserts a snapshot keyed by the backend's match id. Re-saving an
// already snapshotted match refreshes its payload and status in place.
func (r *MatchRepository) Save(m models.Match) error {
	payload, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to encode match payload: %w", err)
	}

	now := time.Now().UTC()

	var existing string
	err = r.db.QueryRow("SELECT id FROM matches WHERE match_id = ? AND deleted_at IS NULL", m.ID).Scan(&existing)
	if err == nil {
		query := `
			UPDATE matches
			SET utc_date = ?, status = ?, home_team = ?, away_team = ?, competition = ?, payload = ?, updated_at = ?
			WHERE id = ?
		`
		_, err = r.db.Exec(query, nullableTime(m.UTCDate), string(m.Status),
			m.HomeTeamName(), m.AwayTeamName(), m.CompetitionName(), string(payload), now, existing)
		if err != nil {
			return fmt.Errorf("failed to update match snapshot: %w", err)
		}
		return nil
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("failed to query match snapshot: %w", err)
	}

	sequence, err := NextSequence(r.db, "matches")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	query := `
		INSERT INTO matches (id, sequence, match_id, utc_date, status, home_team, away_team, competition, payload, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.Exec(query, shared.GenerateID(), sequence, m.ID, nullableTime(m.UTCDate), string(m.Status),
		m.HomeTeamName(), m.AwayTeamName(), m.CompetitionName(), string(payload), now, now)
	if err != nil {
		return fmt.Errorf("failed to insert match snapshot: %w", err)
	}

	return nil
}

// List retrieves all snapshots in sequence order, excluding soft-deleted rows.
func (r *MatchRepository) List() ([]MatchSnapshot, error) {
	query := `
		SELECT id, sequence, match_id, utc_date, status, home_team, away_team, competition, payload, created_at, updated_at
		FROM matches
		WHERE deleted_at IS NULL
		ORDER BY sequence ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query match snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []MatchSnapshot
	for rows.Next() {
		var (
			s       MatchSnapshot
			utcDate sql.NullTime
			payload string
		)
		err := rows.Scan(&s.ID, &s.Sequence, &s.MatchID, &utcDate, &s.Status,
			&s.HomeTeam, &s.AwayTeam, &s.Competition, &payload, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match snapshot: %w", err)
		}
		if utcDate.Valid {
			t := utcDate.Time
			s.UTCDate = &t
		}
		s.Payload = []byte(payload)
		snapshots = append(snapshots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return snapshots, nil
}

// Get retrieves one snapshot by the backend's match id.
func (r *MatchRepository) Get(matchID int64) (*MatchSnapshot, error) {
	query := `
		SELECT id, sequence, match_id, utc_date, status, home_team, away_team, competition, payload, created_at, updated_at
		FROM matches
		WHERE match_id = ? AND deleted_at IS NULL
	`

	var (
		s       MatchSnapshot
		utcDate sql.NullTime
		payload string
	)
	err := r.db.QueryRow(query, matchID).Scan(&s.ID, &s.Sequence, &s.MatchID, &utcDate, &s.Status,
		&s.HomeTeam, &s.AwayTeam, &s.Competition, &payload, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: no snapshot for match %d", shared.ErrMatchNotFound, matchID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query match snapshot: %w", err)
	}

	if utcDate.Valid {
		t := utcDate.Time
		s.UTCDate = &t
	}
	s.Payload = []byte(payload)
	return &s, nil
}

// Clear soft-deletes all snapshots and returns how many were affected.
func (r *MatchRepository) Clear() (int64, error) {
	result, err := r.db.Exec("UPDATE matches SET deleted_at = ? WHERE deleted_at IS NULL", time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to clear match snapshots: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return rows, nil
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
