package tasks

import "fmt"

// Phase identifies which stage of a flow a progress update belongs to.
type Phase string

const (
	PhaseFetchList   Phase = "fetch_list"
	PhaseFetchDetail Phase = "fetch_detail"
	PhasePersist     Phase = "persist"
	PhaseComplete    Phase = "complete"
)

// ProgressUpdate is a point-in-time report emitted while a flow runs.
// Step counts from 1; Total is 0 when the size of the work is not yet known.
type ProgressUpdate struct {
	Phase   Phase
	Step    int
	Total   int
	Message string
	Err     error
}

// String renders an update for plain-text consumers.
func (u ProgressUpdate) String() string {
	if u.Total > 0 {
		return fmt.Sprintf("[%s] %d/%d %s", u.Phase, u.Step, u.Total, u.Message)
	}
	return fmt.Sprintf("[%s] %s", u.Phase, u.Message)
}

// sendProgress delivers an update without blocking. Updates dropped because the
// consumer is behind are not retried; they are informational only.
func sendProgress(ch chan<- ProgressUpdate, update ProgressUpdate) {
	if ch == nil {
		return
	}
	select {
	case ch <- update:
	default:
	}
}
