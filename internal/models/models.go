package models

import (
	"fmt"
	"time"
)

// MatchStatus is the lifecycle state of a fixture as reported by the backend.
//
// Unrecognized values are preserved verbatim so newer backend releases don't break older clients.
type MatchStatus string

const (
	StatusScheduled MatchStatus = "SCHEDULED"
	StatusTimed     MatchStatus = "TIMED"
	StatusInPlay    MatchStatus = "IN_PLAY"
	StatusPaused    MatchStatus = "PAUSED"
	StatusFinished  MatchStatus = "FINISHED"
	StatusSuspended MatchStatus = "SUSPENDED"
	StatusPostponed MatchStatus = "POSTPONED"
	StatusCancelled MatchStatus = "CANCELLED"
	StatusAwarded   MatchStatus = "AWARDED"
)

// Known reports whether the status is one of the documented values.
func (s MatchStatus) Known() bool {
	switch s {
	case StatusScheduled, StatusTimed, StatusInPlay, StatusPaused, StatusFinished,
		StatusSuspended, StatusPostponed, StatusCancelled, StatusAwarded:
		return true
	}
	return false
}

// Live reports whether the match is currently being played.
func (s MatchStatus) Live() bool {
	return s == StatusInPlay || s == StatusPaused
}

// Area represents the geographic area a competition belongs to.
type Area struct {
	ID   int64
	Name string
	Code string
	Flag string
}

// Competition represents a league or cup.
type Competition struct {
	ID     int64
	Name   string
	Code   string
	Type   string
	Emblem string
}

// Season represents a competition season. Winner is nil until the season is decided.
type Season struct {
	ID              int64
	StartDate       *time.Time
	EndDate         *time.Time
	CurrentMatchday *int
	Winner          *TeamInfo
}

// TeamInfo represents a club taking part in a match.
type TeamInfo struct {
	ID          int64
	Name        string
	ShortName   string
	TLA         string
	Crest       string
	Address     string
	Website     string
	Founded     *int
	ClubColors  string
	Venue       string
	LastUpdated *time.Time
}

// TimeScore holds the goals for one period of play. Home/Away are nil when the
// backend hasn't reported a score, which is distinct from 0-0.
type TimeScore struct {
	Home *int
	Away *int
}

// Score holds the result of a match across periods.
type Score struct {
	Winner   string
	Duration string
	FullTime *TimeScore
	HalfTime *TimeScore
}

// CommentRef is a lightweight comment projection embedded in a Match.
// These are copies, not the authoritative comment resources.
type CommentRef struct {
	ID        string
	Text      string
	CreatedAt *time.Time
	UserID    string
	Username  string
}

// Match represents a single fixture. Nested value objects are nil when the
// backend omitted them; callers go through the display helpers rather than
// dereferencing directly.
type Match struct {
	ID          int64
	UTCDate     *time.Time
	Status      MatchStatus
	Matchday    *int
	Stage       *string
	Group       *string
	LastUpdated *time.Time
	Area        *Area
	Competition *Competition
	Season      *Season
	HomeTeam    *TeamInfo
	AwayTeam    *TeamInfo
	Score       *Score
	Comments    []CommentRef // never nil
}

// HomeTeamName returns the home team's display name, "TBD" when unknown.
func (m *Match) HomeTeamName() string {
	if m.HomeTeam == nil || m.HomeTeam.Name == "" {
		return "TBD"
	}
	return m.HomeTeam.Name
}

// AwayTeamName returns the away team's display name, "TBD" when unknown.
func (m *Match) AwayTeamName() string {
	if m.AwayTeam == nil || m.AwayTeam.Name == "" {
		return "TBD"
	}
	return m.AwayTeam.Name
}

// CompetitionName returns the competition's display name, empty when unknown.
func (m *Match) CompetitionName() string {
	if m.Competition == nil {
		return ""
	}
	return m.Competition.Name
}

// ScoreLine renders the full-time score as "2 - 1", or "vs" when either side
// has no reported score.
func (m *Match) ScoreLine() string {
	if m.Score == nil || m.Score.FullTime == nil {
		return "vs"
	}
	ft := m.Score.FullTime
	if ft.Home == nil || ft.Away == nil {
		return "vs"
	}
	return fmt.Sprintf("%d - %d", *ft.Home, *ft.Away)
}

// Headline renders the match as "Home vs Away" or "Home 2 - 1 Away".
func (m *Match) Headline() string {
	return fmt.Sprintf("%s %s %s", m.HomeTeamName(), m.ScoreLine(), m.AwayTeamName())
}

// Comment is the authoritative standalone comment resource.
//
// EventID carries the owning match's integer id. The field keeps its legacy
// wire name for compatibility with the older event-shaped backend.
type Comment struct {
	ID        string
	Text      string
	CreatedAt *time.Time
	UserID    string
	Username  string
	UserEmail string
	EventID   int64
}

// CommentWire is the outbound JSON payload for comment creation.
type CommentWire struct {
	Text      string  `json:"text"`
	UserID    string  `json:"userId"`
	EventID   int64   `json:"eventId"`
	CreatedAt *string `json:"createdAt,omitempty"`
}

// Wire serializes the comment for a write request. CreatedAt renders as an
// ISO-8601 string when present and is omitted when nil.
func (c Comment) Wire() CommentWire {
	w := CommentWire{
		Text:    c.Text,
		UserID:  c.UserID,
		EventID: c.EventID,
	}
	if c.CreatedAt != nil {
		ts := c.CreatedAt.UTC().Format(time.RFC3339)
		w.CreatedAt = &ts
	}
	return w
}

// Role tags attached to users by the backend.
const (
	RoleUser      = "USER"
	RoleAdmin     = "ADMIN"
	RoleModerator = "MODERATOR"
)

// User represents an authenticated account.
type User struct {
	ID             string
	Username       string
	Email          string
	Roles          []string // defaults to {"USER"}
	ProfilePicture *string
	CreatedAt      *time.Time
}

// HasRole reports whether the user carries the given role tag.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (u *User) IsAdmin() bool     { return u.HasRole(RoleAdmin) }
func (u *User) IsModerator() bool { return u.HasRole(RoleModerator) }
