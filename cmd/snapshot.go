package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"scoreline/internal/shared"
	"scoreline/internal/tasks"
)

// SnapshotSave fetches matches and persists them for offline listing.
func (r *Runner) SnapshotSave(ctx context.Context, cmd *cli.Command) error {
	if r.snapshots == nil {
		return fmt.Errorf("%w: no database, run 'scoreline setup database' first", shared.ErrServiceUnavailable)
	}

	opts := tasks.SnapshotOptions{
		NumWorkers: int(cmd.Int("workers")),
		RateLimit:  float64(cmd.Float("rate")),
		Detail:     cmd.Bool("detail"),
	}

	progress := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.logger.Info(update.String())
		}
	}()

	result, err := r.engine.Snapshot(ctx, r.snapshots, opts, progress)
	close(progress)
	<-done
	if err != nil {
		return err
	}

	r.writePlain("✓ Saved %d of %d matches\n", result.Saved, result.Total)
	if result.Failed > 0 {
		r.writePlain("✗ %d matches failed to save\n", result.Failed)
	}
	return nil
}

// SnapshotList lists saved snapshots.
func (r *Runner) SnapshotList(ctx context.Context, cmd *cli.Command) error {
	if r.snapshots == nil {
		return fmt.Errorf("%w: no database, run 'scoreline setup database' first", shared.ErrServiceUnavailable)
	}

	snapshots, err := r.snapshots.List()
	if err != nil {
		return fmt.Errorf("failed to list snapshots: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(snapshots, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Saved Matches")
	if len(snapshots) == 0 {
		r.writePlain("No snapshots, run 'scoreline snapshot save' first\n")
		return nil
	}

	for _, s := range snapshots {
		line := fmt.Sprintf("%d. %s vs %s [%s]", s.Sequence, s.HomeTeam, s.AwayTeam, s.Status)
		if s.UTCDate != nil {
			line = fmt.Sprintf("%s  (%s)", line, s.UTCDate.UTC().Format("2006-01-02 15:04"))
		}
		r.writePlain("%s\n", line)
	}
	r.writePlain("\nTotal: %d snapshots\n", len(snapshots))
	return nil
}

// SnapshotClear removes all saved snapshots.
func (r *Runner) SnapshotClear(ctx context.Context, cmd *cli.Command) error {
	if r.snapshots == nil {
		return fmt.Errorf("%w: no database, run 'scoreline setup database' first", shared.ErrServiceUnavailable)
	}

	count, err := r.snapshots.Clear()
	if err != nil {
		return err
	}

	r.writePlain("✓ Cleared %d snapshots\n", count)
	return nil
}
