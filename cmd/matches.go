package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/urfave/cli/v3"

	"scoreline/internal/formatter"
	"scoreline/internal/models"
	"scoreline/internal/shared"
)

func parseID(raw string) (int64, error) {
	if raw == "" {
		return 0, fmt.Errorf("%w: id is required", shared.ErrMissingArgument)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: id must be numeric, got %q", shared.ErrInvalidArgument, raw)
	}
	return id, nil
}

// renderMatches prints a match collection, honoring --json/--pretty/--search.
func (r *Runner) renderMatches(cmd *cli.Command, title string, matches []models.Match) error {
	if query := cmd.String("search"); query != "" {
		matches = models.FilterMatches(matches, query)
	}

	if cmd.Bool("json") {
		return r.writeJSON(matches, cmd.Bool("pretty"))
	}

	r.writePlainHeader(title)
	if len(matches) == 0 {
		r.writePlain("No matches found\n")
		return nil
	}

	for i, m := range matches {
		line := m.Headline()
		if m.UTCDate != nil {
			line = fmt.Sprintf("%s  (%s)", line, m.UTCDate.UTC().Format("2006-01-02 15:04"))
		}
		r.writePlain("%d. %s [%s]\n", i+1, line, m.Status)
	}
	r.writePlain("\nTotal: %d matches\n", len(matches))
	return nil
}

// MatchesList lists all matches.
func (r *Runner) MatchesList(ctx context.Context, cmd *cli.Command) error {
	matches, err := r.matches.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch matches: %w", err)
	}
	return r.renderMatches(cmd, "Matches", matches)
}

// MatchesGet shows one match with its comments.
func (r *Runner) MatchesGet(ctx context.Context, cmd *cli.Command) error {
	id, err := parseID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	match, err := r.matches.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch match %d: %w", id, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(match, cmd.Bool("pretty"))
	}

	r.writePlainHeader(match.Headline())
	r.writePlain("Competition: %s\n", match.CompetitionName())
	r.writePlain("Status: %s\n", match.Status)
	if match.UTCDate != nil {
		r.writePlain("Kickoff: %s\n", match.UTCDate.UTC().Format("2006-01-02 15:04 MST"))
	}

	r.writePlainln("Comments (%d):", len(match.Comments))
	for _, c := range match.Comments {
		author := c.Username
		if author == "" {
			author = "anonymous"
		}
		r.writePlain("  %s: %s\n", author, c.Text)
	}
	return nil
}

// MatchesToday lists today's matches.
func (r *Runner) MatchesToday(ctx context.Context, cmd *cli.Command) error {
	matches, err := r.matches.Today(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch today's matches: %w", err)
	}
	return r.renderMatches(cmd, "Today's Matches", matches)
}

// MatchesUpcoming lists matches that haven't kicked off yet.
func (r *Runner) MatchesUpcoming(ctx context.Context, cmd *cli.Command) error {
	matches, err := r.matches.Upcoming(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch upcoming matches: %w", err)
	}
	return r.renderMatches(cmd, "Upcoming Matches", matches)
}

// MatchesFinished lists completed matches.
func (r *Runner) MatchesFinished(ctx context.Context, cmd *cli.Command) error {
	matches, err := r.matches.Finished(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch finished matches: %w", err)
	}
	return r.renderMatches(cmd, "Finished Matches", matches)
}

// MatchesRange lists matches between two dates, inclusive.
func (r *Runner) MatchesRange(ctx context.Context, cmd *cli.Command) error {
	start, err := time.Parse("2006-01-02", cmd.String("start"))
	if err != nil {
		return fmt.Errorf("%w: invalid start date: %v", shared.ErrInvalidFlag, err)
	}
	end, err := time.Parse("2006-01-02", cmd.String("end"))
	if err != nil {
		return fmt.Errorf("%w: invalid end date: %v", shared.ErrInvalidFlag, err)
	}

	matches, err := r.matches.ByDateRange(ctx, start, end)
	if err != nil {
		return fmt.Errorf("failed to fetch matches: %w", err)
	}
	return r.renderMatches(cmd, fmt.Sprintf("Matches %s to %s", cmd.String("start"), cmd.String("end")), matches)
}

// MatchesTeam lists matches involving a team.
func (r *Runner) MatchesTeam(ctx context.Context, cmd *cli.Command) error {
	id, err := parseID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	matches, err := r.matches.ByTeam(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch matches for team %d: %w", id, err)
	}
	return r.renderMatches(cmd, fmt.Sprintf("Matches for Team %d", id), matches)
}

// MatchesCompetition lists matches in a competition.
func (r *Runner) MatchesCompetition(ctx context.Context, cmd *cli.Command) error {
	id, err := parseID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	matches, err := r.matches.ByCompetition(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch matches for competition %d: %w", id, err)
	}
	return r.renderMatches(cmd, fmt.Sprintf("Matches in Competition %d", id), matches)
}

// MatchesStatus lists matches in the given lifecycle status. The status string
// is passed through verbatim so future backend statuses need no client change.
func (r *Runner) MatchesStatus(ctx context.Context, cmd *cli.Command) error {
	status := cmd.StringArg("status")
	if status == "" {
		return fmt.Errorf("%w: status is required", shared.ErrMissingArgument)
	}

	matches, err := r.matches.ByStatus(ctx, models.MatchStatus(status))
	if err != nil {
		return fmt.Errorf("failed to fetch %s matches: %w", status, err)
	}
	return r.renderMatches(cmd, fmt.Sprintf("%s Matches", status), matches)
}

// MatchesStats shows aggregate match statistics.
func (r *Runner) MatchesStats(ctx context.Context, cmd *cli.Command) error {
	stats, err := r.matches.Stats(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch stats: %w", err)
	}
	return r.writeJSON(stats, cmd.Bool("pretty"))
}

// MatchesExport exports the match list to CSV, Markdown or plain text.
func (r *Runner) MatchesExport(ctx context.Context, cmd *cli.Command) error {
	matches, err := r.matches.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch matches: %w", err)
	}

	title := "Matches"
	if query := cmd.String("search"); query != "" {
		matches = models.FilterMatches(matches, query)
		title = fmt.Sprintf("Matches matching %q", query)
	}

	export := &formatter.MatchExport{Title: title, Matches: matches}
	output := cmd.String("output")

	switch format := cmd.String("format"); format {
	case "csv":
		result, err := formatter.WriteCSVExport(export, output)
		if err != nil {
			return err
		}
		r.writePlain("✓ Exported %d matches\n", len(matches))
		r.writePlain("  %s\n", result.MatchesFile)
		r.writePlain("  %s\n", result.SummaryFile)
	case "markdown", "md":
		path, err := formatter.WriteMarkdownExport(export, output)
		if err != nil {
			return err
		}
		r.writePlain("✓ Exported %d matches to %s\n", len(matches), path)
	case "text", "txt":
		path, err := formatter.WriteTextExport(export, output)
		if err != nil {
			return err
		}
		r.writePlain("✓ Exported %d matches to %s\n", len(matches), path)
	default:
		return fmt.Errorf("%w: unknown format %q (use csv, markdown or text)", shared.ErrInvalidFlag, format)
	}

	return nil
}
