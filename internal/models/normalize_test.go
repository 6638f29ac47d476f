package models

import (
	"encoding/json"
	"testing"
	"time"
)

func decode(t *testing.T, payload string) any {
	t.Helper()
	var raw any
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		t.Fatalf("failed to decode test payload: %v", err)
	}
	return raw
}

func TestNormalizeMatch(t *testing.T) {
	t.Run("FullPayload", func(t *testing.T) {
		raw := decode(t, `{
			"id": 42,
			"utcDate": "2026-08-20T19:00:00Z",
			"status": "FINISHED",
			"matchday": 3,
			"competition": {"id": 2021, "name": "Premier League", "code": "PL"},
			"homeTeam": {"id": 61, "name": "Chelsea FC", "tla": "CHE"},
			"awayTeam": {"id": 57, "name": "Arsenal FC", "tla": "ARS"},
			"score": {"winner": "HOME_TEAM", "fullTime": {"home": 2, "away": 1}, "halfTime": {"home": 1, "away": 0}},
			"comments": [{"id": "c1", "text": "what a goal", "userId": "u1", "username": "bob"}]
		}`)

		m := NormalizeMatch(raw)

		if m.ID != 42 {
			t.Errorf("expected id 42, got %d", m.ID)
		}
		if m.Status != StatusFinished {
			t.Errorf("expected FINISHED, got %s", m.Status)
		}
		if m.UTCDate == nil || !m.UTCDate.Equal(time.Date(2026, 8, 20, 19, 0, 0, 0, time.UTC)) {
			t.Errorf("unexpected kickoff time: %v", m.UTCDate)
		}
		if m.HomeTeamName() != "Chelsea FC" || m.AwayTeamName() != "Arsenal FC" {
			t.Errorf("unexpected team names: %s / %s", m.HomeTeamName(), m.AwayTeamName())
		}
		if m.ScoreLine() != "2 - 1" {
			t.Errorf("expected score line 2 - 1, got %s", m.ScoreLine())
		}
		if m.Headline() != "Chelsea FC 2 - 1 Arsenal FC" {
			t.Errorf("unexpected headline: %s", m.Headline())
		}
		if len(m.Comments) != 1 || m.Comments[0].Text != "what a goal" {
			t.Errorf("unexpected comments: %+v", m.Comments)
		}
	})

	t.Run("EmptyObject", func(t *testing.T) {
		m := NormalizeMatch(decode(t, `{}`))

		if m.ID != 0 {
			t.Errorf("expected zero id, got %d", m.ID)
		}
		if m.HomeTeam != nil || m.AwayTeam != nil || m.Score != nil || m.Competition != nil {
			t.Error("nested objects should stay nil when absent")
		}
		if m.Comments == nil {
			t.Error("Comments must never be nil")
		}
		if m.HomeTeamName() != "TBD" || m.AwayTeamName() != "TBD" {
			t.Errorf("missing teams should display as TBD, got %s / %s", m.HomeTeamName(), m.AwayTeamName())
		}
		if m.ScoreLine() != "vs" {
			t.Errorf("missing score should display as vs, got %s", m.ScoreLine())
		}
		if m.Headline() != "TBD vs TBD" {
			t.Errorf("unexpected headline: %s", m.Headline())
		}
	})

	t.Run("NotAnObject", func(t *testing.T) {
		for _, raw := range []any{nil, "nonsense", 3.14, []any{"a"}} {
			m := NormalizeMatch(raw)
			if m.Comments == nil {
				t.Errorf("Comments must never be nil for input %v", raw)
			}
			if m.Headline() != "TBD vs TBD" {
				t.Errorf("unexpected headline for input %v: %s", raw, m.Headline())
			}
		}
	})

	t.Run("MistypedFields", func(t *testing.T) {
		raw := decode(t, `{
			"id": "not-a-number",
			"utcDate": "yesterday-ish",
			"status": 7,
			"homeTeam": "Chelsea",
			"score": [1, 2],
			"comments": "none"
		}`)

		m := NormalizeMatch(raw)

		if m.ID != 0 {
			t.Errorf("mistyped id should degrade to 0, got %d", m.ID)
		}
		if m.UTCDate != nil {
			t.Errorf("unparseable date should degrade to nil, got %v", m.UTCDate)
		}
		if m.Status != "" {
			t.Errorf("mistyped status should degrade to empty, got %q", m.Status)
		}
		if m.HomeTeam != nil || m.Score != nil {
			t.Error("mistyped nested objects should stay nil")
		}
		if m.Comments == nil || len(m.Comments) != 0 {
			t.Errorf("mistyped comments should degrade to empty slice, got %v", m.Comments)
		}
	})

	t.Run("UnknownStatusPreserved", func(t *testing.T) {
		m := NormalizeMatch(decode(t, `{"status": "HALF_TIME_EXTENDED"}`))

		if m.Status != "HALF_TIME_EXTENDED" {
			t.Errorf("unknown status must be preserved verbatim, got %q", m.Status)
		}
		if m.Status.Known() {
			t.Error("unknown status must not report as known")
		}
	})

	t.Run("PartialScore", func(t *testing.T) {
		m := NormalizeMatch(decode(t, `{"score": {"fullTime": {"home": 2}}}`))

		if m.ScoreLine() != "vs" {
			t.Errorf("one-sided score should display as vs, got %s", m.ScoreLine())
		}
	})
}

func TestNormalizeMatches(t *testing.T) {
	t.Run("BareArray", func(t *testing.T) {
		matches := NormalizeMatches(decode(t, `[{"id": 1}, {"id": 2}]`))

		if len(matches) != 2 {
			t.Fatalf("expected 2 matches, got %d", len(matches))
		}
		if matches[0].ID != 1 || matches[1].ID != 2 {
			t.Errorf("unexpected ids: %d, %d", matches[0].ID, matches[1].ID)
		}
	})

	t.Run("WrappedObject", func(t *testing.T) {
		matches := NormalizeMatches(decode(t, `{"matches": [{"id": 7}], "count": 1}`))

		if len(matches) != 1 || matches[0].ID != 7 {
			t.Errorf("unexpected matches: %+v", matches)
		}
	})

	t.Run("GarbageYieldsEmpty", func(t *testing.T) {
		for _, raw := range []any{nil, "x", 1.0, map[string]any{"matches": "oops"}} {
			matches := NormalizeMatches(raw)
			if matches == nil || len(matches) != 0 {
				t.Errorf("expected empty slice for %v, got %v", raw, matches)
			}
		}
	})
}

func TestNormalizeEvent(t *testing.T) {
	t.Run("FlatShape", func(t *testing.T) {
		raw := decode(t, `{
			"id": 9,
			"date": "2026-08-20T19:00:00Z",
			"status": "IN_PLAY",
			"homeTeam": "Chelsea FC",
			"awayTeam": "Arsenal FC",
			"competition": "Premier League",
			"homeScore": 1,
			"awayScore": 1
		}`)

		m := NormalizeEvent(raw)

		if m.ID != 9 {
			t.Errorf("expected id 9, got %d", m.ID)
		}
		if m.HomeTeamName() != "Chelsea FC" || m.AwayTeamName() != "Arsenal FC" {
			t.Errorf("unexpected team names: %s / %s", m.HomeTeamName(), m.AwayTeamName())
		}
		if m.CompetitionName() != "Premier League" {
			t.Errorf("unexpected competition: %s", m.CompetitionName())
		}
		if m.ScoreLine() != "1 - 1" {
			t.Errorf("expected 1 - 1, got %s", m.ScoreLine())
		}
		if !m.Status.Live() {
			t.Error("IN_PLAY should report as live")
		}
	})

	t.Run("MissingScores", func(t *testing.T) {
		m := NormalizeEvent(decode(t, `{"homeTeam": "A", "awayTeam": "B"}`))

		if m.Score != nil {
			t.Errorf("no scores should leave Score nil, got %+v", m.Score)
		}
		if m.ScoreLine() != "vs" {
			t.Errorf("expected vs, got %s", m.ScoreLine())
		}
	})

	t.Run("ListWrapper", func(t *testing.T) {
		matches := NormalizeEvents(decode(t, `{"events": [{"id": 1}, {"id": 2}]}`))
		if len(matches) != 2 {
			t.Errorf("expected 2 events, got %d", len(matches))
		}
	})
}

func TestNormalizeComment(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		c := NormalizeComment(decode(t, `{
			"id": "c9",
			"text": "ref was blind",
			"userId": "u3",
			"username": "alice",
			"eventId": 42,
			"createdAt": "2026-08-20T20:15:00Z"
		}`))

		if c.Text != "ref was blind" || c.UserID != "u3" || c.EventID != 42 {
			t.Errorf("unexpected comment: %+v", c)
		}

		wire := c.Wire()
		data, err := json.Marshal(wire)
		if err != nil {
			t.Fatalf("failed to marshal wire payload: %v", err)
		}

		var payload map[string]any
		if err := json.Unmarshal(data, &payload); err != nil {
			t.Fatalf("failed to decode wire payload: %v", err)
		}

		if payload["text"] != "ref was blind" {
			t.Errorf("expected text key, got %v", payload)
		}
		if payload["userId"] != "u3" {
			t.Errorf("expected userId key, got %v", payload)
		}
		if payload["eventId"] != float64(42) {
			t.Errorf("expected eventId key, got %v", payload)
		}
		if payload["createdAt"] != "2026-08-20T20:15:00Z" {
			t.Errorf("expected RFC3339 createdAt, got %v", payload["createdAt"])
		}
	})

	t.Run("WireOmitsNilCreatedAt", func(t *testing.T) {
		wire := Comment{Text: "hi", UserID: "u1", EventID: 5}.Wire()

		data, err := json.Marshal(wire)
		if err != nil {
			t.Fatalf("failed to marshal wire payload: %v", err)
		}

		var payload map[string]any
		if err := json.Unmarshal(data, &payload); err != nil {
			t.Fatalf("failed to decode wire payload: %v", err)
		}
		if _, present := payload["createdAt"]; present {
			t.Error("nil CreatedAt must be omitted from the wire payload")
		}
	})
}

func TestNormalizeUser(t *testing.T) {
	t.Run("RolesDefault", func(t *testing.T) {
		u := NormalizeUser(decode(t, `{"id": "u1", "username": "bob", "email": "bob@example.com"}`))

		if len(u.Roles) != 1 || u.Roles[0] != RoleUser {
			t.Errorf("missing roles should default to USER, got %v", u.Roles)
		}
		if u.IsAdmin() {
			t.Error("default user must not be admin")
		}
	})

	t.Run("RolesPreserved", func(t *testing.T) {
		u := NormalizeUser(decode(t, `{"username": "carol", "roles": ["USER", "ADMIN"]}`))

		if !u.IsAdmin() {
			t.Error("expected admin role")
		}
		if !u.HasRole(RoleUser) {
			t.Error("expected USER role")
		}
	})
}

func TestAsTime(t *testing.T) {
	cases := map[string]bool{
		"2026-08-20T19:00:00Z":          true,
		"2026-08-20T19:00:00.123Z":      true,
		"2026-08-20T19:00:00":           true,
		"2026-08-20":                    true,
		"20/08/2026":                    false,
		"soon":                          false,
		"":                              false,
	}

	for input, expectParsed := range cases {
		got := asTime(input)
		if (got != nil) != expectParsed {
			t.Errorf("asTime(%q): parsed=%v, expected parsed=%v", input, got != nil, expectParsed)
		}
	}

	if got := asTime(float64(1756150000)); got == nil || got.Unix() != 1756150000 {
		t.Errorf("numeric timestamps should parse as epoch seconds, got %v", got)
	}
}
