package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"scoreline/internal/models"
)

var (
	_ list.Item = matchItem{}
	_ list.Item = commentItem{}
)

// matchItem wraps [models.Match] to implement [list.Item].
type matchItem struct {
	match models.Match
}

func (i matchItem) FilterValue() string { return i.match.Headline() }
func (i matchItem) Title() string {
	return fmt.Sprintf("%s %s %s", i.match.HomeTeamName(), i.match.ScoreLine(), i.match.AwayTeamName())
}
func (i matchItem) Description() string {
	desc := i.match.CompetitionName()
	if i.match.UTCDate != nil {
		desc = fmt.Sprintf("%s • %s", desc, i.match.UTCDate.UTC().Format("2006-01-02 15:04"))
	}
	if i.match.Status.Live() {
		desc = fmt.Sprintf("%s • LIVE", desc)
	}
	return desc
}

// commentItem wraps [models.CommentRef] to implement [list.Item].
type commentItem struct {
	comment models.CommentRef
}

func (i commentItem) FilterValue() string { return i.comment.Text }
func (i commentItem) Title() string       { return i.comment.Text }
func (i commentItem) Description() string {
	author := i.comment.Username
	if author == "" {
		author = i.comment.UserID
	}
	if author == "" {
		author = "anonymous"
	}
	if i.comment.CreatedAt != nil {
		return fmt.Sprintf("%s • %s", author, i.comment.CreatedAt.UTC().Format("2006-01-02 15:04"))
	}
	return author
}

func matchItems(matches []models.Match) []list.Item {
	items := make([]list.Item, len(matches))
	for i, m := range matches {
		items[i] = matchItem{match: m}
	}
	return items
}
