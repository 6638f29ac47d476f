package tasks

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/time/rate"

	"scoreline/internal/models"
)

// SnapshotOptions tunes the bulk snapshot flow.
type SnapshotOptions struct {
	// NumWorkers is the number of concurrent detail fetchers. Defaults to 3.
	NumWorkers int
	// RateLimit caps detail fetches per second across all workers. Defaults to 5.
	RateLimit float64
	// Detail controls whether each match is refetched individually, which also
	// pulls its comments, before persisting. When false the listing payload is
	// saved as-is.
	Detail bool
}

func (o *SnapshotOptions) applyDefaults() {
	if o.NumWorkers <= 0 {
		o.NumWorkers = 3
	}
	if o.RateLimit <= 0 {
		o.RateLimit = 5
	}
}

// SnapshotResult summarizes a bulk snapshot run.
type SnapshotResult struct {
	Total  int
	Saved  int
	Failed int
	Errors []error
}

// Snapshot fetches the current match listing and persists every match into the
// local store. Detail fetches run on a bounded worker pool behind a shared rate
// limiter so a large listing does not hammer the backend. Progress updates are
// best-effort; pass a nil channel to run silently.
func (e *FlowEngine) Snapshot(ctx context.Context, store SnapshotStore, opts SnapshotOptions, progress chan<- ProgressUpdate) (*SnapshotResult, error) {
	opts.applyDefaults()

	sendProgress(progress, ProgressUpdate{Phase: PhaseFetchList, Message: "fetching match list"})

	matches, err := e.matches.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch match list: %w", err)
	}

	result := &SnapshotResult{Total: len(matches)}
	if len(matches) == 0 {
		sendProgress(progress, ProgressUpdate{Phase: PhaseComplete, Message: "no matches to snapshot"})
		return result, nil
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	type outcome struct {
		match models.Match
		err   error
	}

	jobs := make(chan models.Match, len(matches))
	outcomes := make(chan outcome, len(matches))

	var wg sync.WaitGroup
	for w := 0; w < opts.NumWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for m := range jobs {
				if !opts.Detail {
					outcomes <- outcome{match: m}
					continue
				}
				if err := limiter.Wait(ctx); err != nil {
					outcomes <- outcome{match: m, err: err}
					continue
				}
				full, err := e.matches.Get(ctx, m.ID)
				if err != nil {
					// Fall back to the listing payload rather than losing the row.
					outcomes <- outcome{match: m, err: err}
					continue
				}
				outcomes <- outcome{match: *full}
			}
		}()
	}

	for _, m := range matches {
		jobs <- m
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	step := 0
	for out := range outcomes {
		step++
		if out.err != nil {
			e.logger.Warn("detail fetch failed, saving listing payload", "match_id", out.match.ID, "error", out.err)
			result.Errors = append(result.Errors, out.err)
		}
		sendProgress(progress, ProgressUpdate{
			Phase:   PhasePersist,
			Step:    step,
			Total:   len(matches),
			Message: out.match.Headline(),
		})
		if err := store.Save(out.match); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Errorf("failed to save match %d: %w", out.match.ID, err))
			continue
		}
		result.Saved++
	}

	sendProgress(progress, ProgressUpdate{
		Phase:   PhaseComplete,
		Step:    result.Saved,
		Total:   result.Total,
		Message: fmt.Sprintf("saved %d of %d matches", result.Saved, result.Total),
	})

	return result, nil
}
