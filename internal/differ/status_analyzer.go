package differ

import (
	"github.com/aleister1102/seatwatch/internal/filter"
	"github.com/aleister1102/seatwatch/internal/models"
	"github.com/rs/zerolog"
)

// AvailabilityAnalyzer classifies per-course changes against a baseline
type AvailabilityAnalyzer struct {
	config CourseDifferConfig
	logger zerolog.Logger
}

// NewAvailabilityAnalyzer creates a new availability analyzer
func NewAvailabilityAnalyzer(config CourseDifferConfig, logger zerolog.Logger) *AvailabilityAnalyzer {
	return &AvailabilityAnalyzer{
		config: config,
		logger: logger.With().Str("component", "AvailabilityAnalyzer").Logger(),
	}
}

// Classify compares one latest record with the baseline and returns the
// resulting event, if any. The baseline is updated for every event.
func (a *AvailabilityAnalyzer) Classify(current models.CourseRecord, baseline *models.Snapshot) (models.CourseEvent, bool) {
	previous, exists := baseline.Get(current.Code)

	switch {
	case !exists, previous.GoneNotified && a.config.ResetGoneOnReappear:
		baseline.Set(current)
		a.logger.Debug().Str("code", current.Code).Bool("reappeared", exists).Msg("Course appeared")
		return models.CourseEvent{Kind: models.EventAppeared, Code: current.Code, Current: current}, true

	case previous.SameAvailability(current):
		return models.CourseEvent{}, false

	case previous.Open != current.Open:
		baseline.Set(current)
		kind := models.EventClosed
		if current.Open {
			kind = models.EventOpened
		}
		a.logger.Debug().Str("code", current.Code).Str("kind", string(kind)).Msg("Course open state changed")
		return models.CourseEvent{Kind: kind, Code: current.Code, Previous: previous, Current: current}, true

	default:
		baseline.Set(current)
		a.logger.Debug().
			Str("code", current.Code).
			Int("previous_seats", previous.Seats).
			Int("seats", current.Seats).
			Msg("Course seats changed")
		return models.CourseEvent{Kind: models.EventSeatsChanged, Code: current.Code, Previous: previous, Current: current}, true
	}
}

// FindDisappeared marks in-scope baseline courses missing from latest and
// returns one event for each course not reported before, in baseline order.
func (a *AvailabilityAnalyzer) FindDisappeared(latest, baseline *models.Snapshot, rule filter.Rule) []models.CourseEvent {
	var events []models.CourseEvent

	for _, record := range baseline.Records() {
		if !rule.Allows(record.Code) || latest.Has(record.Code) || record.GoneNotified {
			continue
		}
		record.GoneNotified = true
		baseline.Set(record)
		events = append(events, models.CourseEvent{Kind: models.EventDisappeared, Code: record.Code, Previous: record, Current: record})
		a.logger.Debug().Str("code", record.Code).Msg("Course disappeared")
	}

	return events
}
