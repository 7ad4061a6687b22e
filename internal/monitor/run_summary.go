package monitor

import (
	"github.com/aleister1102/seatwatch/internal/models"
	"github.com/aleister1102/seatwatch/internal/notifier"
)

// RunOutcome classifies a completed run
type RunOutcome string

const (
	OutcomeInitialized RunOutcome = "initialized"
	OutcomeChanged     RunOutcome = "changed"
	OutcomeNoChanges   RunOutcome = "no_changes"
)

// RunSummary describes what one check run did
type RunSummary struct {
	Outcome   RunOutcome
	Fetched   int // courses found on all pages
	Watched   int // courses left after filtering
	Events    map[models.EventKind]int
	Delivery  notifier.DeliveryStats
	Persisted bool
	DryRun    bool
}

// Message returns the status line printed after a run, or "" when the
// notifications already told the story.
func (s *RunSummary) Message() string {
	switch s.Outcome {
	case OutcomeInitialized:
		if s.Delivery.Messages == 0 {
			return "Initialized baseline (no notifications)."
		}
	case OutcomeNoChanges:
		return "No changes."
	}
	return ""
}
