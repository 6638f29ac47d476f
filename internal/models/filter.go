package models

import "strings"

// minFilterQuery is the shortest query that triggers filtering. Shorter input
// returns the collection unchanged so single keystrokes don't empty the list.
const minFilterQuery = 2

// FilterMatches returns the matches whose home team, away team, competition
// name, or competition code contains the query, case-insensitively. Order is
// preserved. Queries shorter than two characters return the input as-is.
//
// The backend has no server-side search for these fields; filtering happens
// over the already-fetched collection.
func FilterMatches(matches []Match, query string) []Match {
	if len(query) < minFilterQuery {
		return matches
	}

	q := strings.ToLower(query)
	filtered := make([]Match, 0, len(matches))

	for _, m := range matches {
		if matchesQuery(&m, q) {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

func matchesQuery(m *Match, q string) bool {
	fields := []string{
		teamName(m.HomeTeam),
		teamName(m.AwayTeam),
	}
	if m.Competition != nil {
		fields = append(fields, m.Competition.Name, m.Competition.Code)
	}

	for _, f := range fields {
		if f == "" {
			continue
		}
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func teamName(t *TeamInfo) string {
	if t == nil {
		return ""
	}
	return t.Name
}
