// package formatter provides functions to export match data to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"scoreline/internal/models"
	"scoreline/internal/shared"
)

// MatchExport bundles a titled set of matches for export.
type MatchExport struct {
	Title   string
	Matches []models.Match
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format("2006-01-02 15:04")
}

// ExportToCSV converts a MatchExport to CSV format with columns: ID, Date, Status, Home, Away, Score, Competition
func ExportToCSV(export *MatchExport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Date", "Status", "Home", "Away", "Score", "Competition"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, m := range export.Matches {
		record := []string{
			strconv.FormatInt(m.ID, 10),
			formatDate(m.UTCDate),
			string(m.Status),
			m.HomeTeamName(),
			m.AwayTeamName(),
			m.ScoreLine(),
			m.CompetitionName(),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a MatchExport to Markdown format
func ExportToMarkdown(export *MatchExport) ([]byte, error) {
	var buf bytes.Buffer

	title := export.Title
	if title == "" {
		title = "Matches"
	}
	buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	buf.WriteString(fmt.Sprintf("**Matches**: %d\n\n", len(export.Matches)))

	buf.WriteString("| Date | Match | Score | Status | Competition |\n")
	buf.WriteString("|------|-------|-------|--------|-------------|\n")
	for _, m := range export.Matches {
		buf.WriteString(fmt.Sprintf("| %s | %s vs %s | %s | %s | %s |\n",
			formatDate(m.UTCDate), m.HomeTeamName(), m.AwayTeamName(),
			m.ScoreLine(), string(m.Status), m.CompetitionName()))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a MatchExport to plain text format
func ExportToText(export *MatchExport) ([]byte, error) {
	var buf bytes.Buffer

	title := export.Title
	if title == "" {
		title = "Matches"
	}
	buf.WriteString(fmt.Sprintf("%s\n", title))
	buf.WriteString(fmt.Sprintf("Matches: %d\n\n", len(export.Matches)))

	for i, m := range export.Matches {
		line := m.Headline()
		if date := formatDate(m.UTCDate); date != "" {
			line = fmt.Sprintf("%s  (%s)", line, date)
		}
		buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, line))
	}

	return buf.Bytes(), nil
}

// ToSummaryJSON generates a JSON summary of an export (title, count, statuses)
func ToSummaryJSON(export *MatchExport) ([]byte, error) {
	statuses := map[string]int{}
	for _, m := range export.Matches {
		statuses[string(m.Status)]++
	}
	summary := map[string]any{
		"title":    export.Title,
		"count":    len(export.Matches),
		"statuses": statuses,
	}
	return shared.MarshalJSON(summary, true)
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	MatchesFile string
	SummaryFile string
}

// WriteCSVExport exports matches to CSV format with an accompanying summary JSON file.
//
// Defaults to "matches" as the base filename & creates {base}_matches.csv and {base}_summary.json
func WriteCSVExport(export *MatchExport, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = "matches"
	}

	csvData, err := ExportToCSV(export)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	matchesFile := baseFilepath + "_matches.csv"
	if err := os.WriteFile(matchesFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	summaryJSON, err := ToSummaryJSON(export)
	if err != nil {
		return nil, fmt.Errorf("failed to generate summary JSON: %w", err)
	}

	summaryFile := baseFilepath + "_summary.json"
	if err := os.WriteFile(summaryFile, summaryJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write summary file: %w", err)
	}

	return &CSVExportResult{
		MatchesFile: matchesFile,
		SummaryFile: summaryFile,
	}, nil
}

// WriteMarkdownExport exports matches to Markdown format.
//
// Defaults to matches.md as the filename.
func WriteMarkdownExport(export *MatchExport, filepath string) (string, error) {
	if filepath == "" {
		filepath = "matches.md"
	}

	mdData, err := ExportToMarkdown(export)
	if err != nil {
		return "", fmt.Errorf("failed to generate Markdown: %w", err)
	}

	if err := os.WriteFile(filepath, mdData, 0644); err != nil {
		return "", fmt.Errorf("failed to write Markdown file: %w", err)
	}

	return filepath, nil
}

// WriteTextExport exports matches to plain text format.
//
// Defaults to matches.txt as the filename.
func WriteTextExport(export *MatchExport, filepath string) (string, error) {
	if filepath == "" {
		filepath = "matches.txt"
	}

	textData, err := ExportToText(export)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(filepath, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return filepath, nil
}
