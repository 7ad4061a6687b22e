package differ

import (
	"github.com/aleister1102/seatwatch/internal/filter"
	"github.com/aleister1102/seatwatch/internal/models"
	"github.com/rs/zerolog"
)

// CourseDiffer compares the latest filtered snapshot with the persisted baseline
type CourseDiffer struct {
	logger   zerolog.Logger
	config   CourseDifferConfig
	rule     filter.Rule
	analyzer *AvailabilityAnalyzer
}

// NewCourseDiffer creates a differ with default configuration and a pass-through rule
func NewCourseDiffer(logger zerolog.Logger) *CourseDiffer {
	return NewCourseDifferBuilder(logger).Build()
}

// Diff classifies the changes between latest and baseline. Neither input is
// modified; the updated baseline is returned in the result.
//
// An empty baseline is a first run: latest becomes the baseline and events
// are only produced when initial notifications are enabled.
func (d *CourseDiffer) Diff(latest, baseline *models.Snapshot) *models.CourseDiffResult {
	if baseline.IsEmpty() {
		return d.initialize(latest)
	}

	updated := baseline.Clone()
	builder := NewCourseDiffResultBuilder(updated)

	for _, current := range latest.Records() {
		if event, ok := d.analyzer.Classify(current, updated); ok {
			builder.AddChange(event)
		}
	}
	builder.AddChange(d.analyzer.FindDisappeared(latest, updated, d.rule)...)

	result := builder.Build()
	d.logSummary(result)
	return result
}

func (d *CourseDiffer) initialize(latest *models.Snapshot) *models.CourseDiffResult {
	builder := NewCourseDiffResultBuilder(latest.Clone()).AsFirstRun()

	if d.config.InitialNotify {
		for _, record := range latest.Records() {
			builder.AddNotice(models.CourseEvent{Kind: models.EventInitial, Code: record.Code, Current: record})
		}
	}

	d.logger.Info().
		Int("courses", latest.Len()).
		Bool("initial_notify", d.config.InitialNotify).
		Msg("Empty baseline, initializing")

	return builder.Build()
}

func (d *CourseDiffer) logSummary(result *models.CourseDiffResult) {
	counts := result.CountByKind()
	d.logger.Info().
		Bool("changed", result.Changed).
		Int("appeared", counts[models.EventAppeared]).
		Int("opened", counts[models.EventOpened]).
		Int("closed", counts[models.EventClosed]).
		Int("seats_changed", counts[models.EventSeatsChanged]).
		Int("disappeared", counts[models.EventDisappeared]).
		Msg("Diff completed")
}
