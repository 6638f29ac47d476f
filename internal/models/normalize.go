package models

import (
	"encoding/json"
	"time"
)

// Normalization converts arbitrary JSON-decoded values (the `any` trees produced
// by encoding/json) into canonical records. Every function here is total:
// missing, null, or mis-typed fields degrade to the documented defaults and
// nothing ever returns an error.

// NormalizeMatch converts a JSON-decoded value into a Match.
// Nested objects stay nil when absent; Comments is always non-nil.
func NormalizeMatch(raw any) Match {
	obj, _ := asObject(raw)

	m := Match{
		ID:          asInt64(obj["id"]),
		UTCDate:     asTime(obj["utcDate"]),
		Status:      MatchStatus(asString(obj["status"])),
		Matchday:    asIntPtr(obj["matchday"]),
		Stage:       asStringPtr(obj["stage"]),
		Group:       asStringPtr(obj["group"]),
		LastUpdated: asTime(obj["lastUpdated"]),
		Area:        normalizeArea(obj["area"]),
		Competition: normalizeCompetition(obj["competition"]),
		Season:      normalizeSeason(obj["season"]),
		HomeTeam:    normalizeTeamInfo(obj["homeTeam"]),
		AwayTeam:    normalizeTeamInfo(obj["awayTeam"]),
		Score:       normalizeScore(obj["score"]),
		Comments:    normalizeCommentRefs(obj["comments"]),
	}

	return m
}

// NormalizeMatches converts a JSON-decoded list into a slice of Match records.
// Accepts either a bare array or an object wrapping the array under "matches".
// Anything else yields an empty slice.
func NormalizeMatches(raw any) []Match {
	if obj, ok := asObject(raw); ok {
		if inner, present := obj["matches"]; present {
			raw = inner
		}
	}

	items, ok := raw.([]any)
	if !ok {
		return []Match{}
	}

	matches := make([]Match, 0, len(items))
	for _, item := range items {
		matches = append(matches, NormalizeMatch(item))
	}
	return matches
}

// NormalizeEvent converts a legacy event-shaped payload (the flatter /api/events
// representation) into the same Match record. Team names arrive as plain strings
// and scores as top-level integers.
func NormalizeEvent(raw any) Match {
	obj, _ := asObject(raw)

	m := Match{
		ID:          asInt64(obj["id"]),
		UTCDate:     asTime(obj["date"]),
		Status:      MatchStatus(asString(obj["status"])),
		LastUpdated: asTime(obj["lastUpdated"]),
		Comments:    normalizeCommentRefs(obj["comments"]),
	}
	if m.UTCDate == nil {
		m.UTCDate = asTime(obj["utcDate"])
	}

	if name := asString(obj["homeTeam"]); name != "" {
		m.HomeTeam = &TeamInfo{Name: name}
	}
	if name := asString(obj["awayTeam"]); name != "" {
		m.AwayTeam = &TeamInfo{Name: name}
	}
	if name := asString(obj["competition"]); name != "" {
		m.Competition = &Competition{Name: name}
	}

	home := asIntPtr(obj["homeScore"])
	away := asIntPtr(obj["awayScore"])
	if home != nil || away != nil {
		m.Score = &Score{FullTime: &TimeScore{Home: home, Away: away}}
	}

	return m
}

// NormalizeEvents converts a legacy event list payload into Match records.
func NormalizeEvents(raw any) []Match {
	if obj, ok := asObject(raw); ok {
		if inner, present := obj["events"]; present {
			raw = inner
		}
	}

	items, ok := raw.([]any)
	if !ok {
		return []Match{}
	}

	matches := make([]Match, 0, len(items))
	for _, item := range items {
		matches = append(matches, NormalizeEvent(item))
	}
	return matches
}

// NormalizeComment converts a JSON-decoded value into a Comment.
func NormalizeComment(raw any) Comment {
	obj, _ := asObject(raw)

	return Comment{
		ID:        asString(obj["id"]),
		Text:      asString(obj["text"]),
		CreatedAt: asTime(obj["createdAt"]),
		UserID:    asString(obj["userId"]),
		Username:  asString(obj["username"]),
		UserEmail: asString(obj["userEmail"]),
		EventID:   asInt64(obj["eventId"]),
	}
}

// NormalizeUser converts a JSON-decoded value into a User.
// Roles default to {"USER"} when absent or empty.
func NormalizeUser(raw any) User {
	obj, _ := asObject(raw)

	u := User{
		ID:             asString(obj["id"]),
		Username:       asString(obj["username"]),
		Email:          asString(obj["email"]),
		Roles:          asStringSlice(obj["roles"]),
		ProfilePicture: asStringPtr(obj["profilePicture"]),
		CreatedAt:      asTime(obj["createdAt"]),
	}
	if len(u.Roles) == 0 {
		u.Roles = []string{RoleUser}
	}
	return u
}

func normalizeArea(raw any) *Area {
	obj, ok := asObject(raw)
	if !ok {
		return nil
	}
	return &Area{
		ID:   asInt64(obj["id"]),
		Name: asString(obj["name"]),
		Code: asString(obj["code"]),
		Flag: asString(obj["flag"]),
	}
}

func normalizeCompetition(raw any) *Competition {
	obj, ok := asObject(raw)
	if !ok {
		return nil
	}
	return &Competition{
		ID:     asInt64(obj["id"]),
		Name:   asString(obj["name"]),
		Code:   asString(obj["code"]),
		Type:   asString(obj["type"]),
		Emblem: asString(obj["emblem"]),
	}
}

func normalizeSeason(raw any) *Season {
	obj, ok := asObject(raw)
	if !ok {
		return nil
	}
	return &Season{
		ID:              asInt64(obj["id"]),
		StartDate:       asTime(obj["startDate"]),
		EndDate:         asTime(obj["endDate"]),
		CurrentMatchday: asIntPtr(obj["currentMatchday"]),
		Winner:          normalizeTeamInfo(obj["winner"]),
	}
}

func normalizeTeamInfo(raw any) *TeamInfo {
	obj, ok := asObject(raw)
	if !ok {
		return nil
	}
	return &TeamInfo{
		ID:          asInt64(obj["id"]),
		Name:        asString(obj["name"]),
		ShortName:   asString(obj["shortName"]),
		TLA:         asString(obj["tla"]),
		Crest:       asString(obj["crest"]),
		Address:     asString(obj["address"]),
		Website:     asString(obj["website"]),
		Founded:     asIntPtr(obj["founded"]),
		ClubColors:  asString(obj["clubColors"]),
		Venue:       asString(obj["venue"]),
		LastUpdated: asTime(obj["lastUpdated"]),
	}
}

func normalizeScore(raw any) *Score {
	obj, ok := asObject(raw)
	if !ok {
		return nil
	}
	return &Score{
		Winner:   asString(obj["winner"]),
		Duration: asString(obj["duration"]),
		FullTime: normalizeTimeScore(obj["fullTime"]),
		HalfTime: normalizeTimeScore(obj["halfTime"]),
	}
}

func normalizeTimeScore(raw any) *TimeScore {
	obj, ok := asObject(raw)
	if !ok {
		return nil
	}
	return &TimeScore{
		Home: asIntPtr(obj["home"]),
		Away: asIntPtr(obj["away"]),
	}
}

func normalizeCommentRefs(raw any) []CommentRef {
	items, ok := raw.([]any)
	if !ok {
		return []CommentRef{}
	}

	refs := make([]CommentRef, 0, len(items))
	for _, item := range items {
		obj, ok := asObject(item)
		if !ok {
			continue
		}
		refs = append(refs, CommentRef{
			ID:        asString(obj["id"]),
			Text:      asString(obj["text"]),
			CreatedAt: asTime(obj["createdAt"]),
			UserID:    asString(obj["userId"]),
			Username:  asString(obj["username"]),
		})
	}
	return refs
}

// asObject returns raw as a JSON object. A nil map is returned on mismatch so
// lookups on the result are safe.
func asObject(raw any) (map[string]any, bool) {
	obj, ok := raw.(map[string]any)
	return obj, ok
}

func asString(raw any) string {
	s, _ := raw.(string)
	return s
}

func asStringPtr(raw any) *string {
	s, ok := raw.(string)
	if !ok {
		return nil
	}
	return &s
}

func asStringSlice(raw any) []string {
	items, ok := raw.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func asInt64(raw any) int64 {
	switch v := raw.(type) {
	case float64:
		return int64(v)
	case int:
		return int64(v)
	case int64:
		return v
	case json.Number:
		n, _ := v.Int64()
		return n
	default:
		return 0
	}
}

func asIntPtr(raw any) *int {
	switch v := raw.(type) {
	case float64:
		n := int(v)
		return &n
	case int:
		return &v
	case json.Number:
		i, err := v.Int64()
		if err != nil {
			return nil
		}
		n := int(i)
		return &n
	default:
		return nil
	}
}

// Timestamp layouts the backend has been observed to emit.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// asTime parses date-like fields. Strings try the known layouts, numbers are
// treated as Unix epoch seconds. Anything unparseable becomes nil rather than
// an error.
func asTime(raw any) *time.Time {
	switch v := raw.(type) {
	case string:
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return &t
			}
		}
		return nil
	case float64:
		t := time.Unix(int64(v), 0).UTC()
		return &t
	default:
		return nil
	}
}
