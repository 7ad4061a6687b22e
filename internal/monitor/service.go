package monitor

import (
	"context"

	"github.com/aleister1102/seatwatch/internal/common"
	"github.com/aleister1102/seatwatch/internal/datastore"
	"github.com/aleister1102/seatwatch/internal/differ"
	"github.com/aleister1102/seatwatch/internal/filter"
	"github.com/aleister1102/seatwatch/internal/notifier"
	"github.com/rs/zerolog"
)

// ServiceOptions holds the collaborators of a MonitoringService
type ServiceOptions struct {
	URLs          []string
	Fetcher       Fetcher
	Rule          filter.Rule
	DifferConfig  differ.CourseDifferConfig
	Store         datastore.StateStore
	Notifications *notifier.NotificationHelper
	// DryRun diffs and notifies but never writes the baseline.
	DryRun bool
}

// MonitoringService runs one fetch, diff, notify and persist cycle
type MonitoringService struct {
	urls          []string
	aggregator    *Aggregator
	rule          filter.Rule
	differ        *differ.CourseDiffer
	store         datastore.StateStore
	notifications *notifier.NotificationHelper
	dryRun        bool
	logger        zerolog.Logger
}

// NewMonitoringService creates a new instance of MonitoringService.
func NewMonitoringService(opts ServiceOptions, logger zerolog.Logger) (*MonitoringService, error) {
	if opts.Fetcher == nil {
		return nil, common.NewValidationError("fetcher", opts.Fetcher, "fetcher cannot be nil")
	}
	if opts.Store == nil {
		return nil, common.NewValidationError("store", opts.Store, "state store cannot be nil")
	}
	notifications := opts.Notifications
	if notifications == nil {
		notifications = notifier.NewNotificationHelper(logger)
	}

	return &MonitoringService{
		urls:       opts.URLs,
		aggregator: NewAggregator(opts.Fetcher, logger),
		rule:       opts.Rule,
		differ: differ.NewCourseDifferBuilder(logger).
			WithConfig(opts.DifferConfig).
			WithRule(opts.Rule).
			Build(),
		store:         opts.Store,
		notifications: notifications,
		dryRun:        opts.DryRun,
		logger:        logger.With().Str("component", "MonitoringService").Logger(),
	}, nil
}

// Run performs one check. Fetch and save failures are returned; everything
// else, including notification delivery failures, is handled here.
func (s *MonitoringService) Run(ctx context.Context) (*RunSummary, error) {
	s.logger.Info().Strs("urls", s.urls).Str("filter_mode", string(s.rule.Mode())).Msg("Starting check")

	fetched, err := s.aggregator.Aggregate(ctx, s.urls)
	if err != nil {
		return nil, err
	}
	latest := s.rule.Apply(fetched)

	baseline, err := s.store.Load(ctx)
	if err != nil {
		return nil, common.WrapError(err, "failed to load baseline")
	}

	result := s.differ.Diff(latest, baseline)

	summary := &RunSummary{
		Fetched: fetched.Len(),
		Watched: latest.Len(),
		Events:  result.CountByKind(),
		DryRun:  s.dryRun,
	}
	switch {
	case result.FirstRun:
		summary.Outcome = OutcomeInitialized
	case result.Changed:
		summary.Outcome = OutcomeChanged
	default:
		summary.Outcome = OutcomeNoChanges
	}

	summary.Delivery = s.notifications.NotifyEvents(ctx, result.Events)

	if result.ShouldPersist() {
		if s.dryRun {
			s.logger.Info().Msg("Dry run, baseline not saved")
		} else {
			if err := s.store.Save(ctx, result.Baseline); err != nil {
				return summary, common.NewStateSaveError(s.store.Location(), err)
			}
			summary.Persisted = true
		}
	}

	s.logger.Info().
		Str("outcome", string(summary.Outcome)).
		Int("fetched", summary.Fetched).
		Int("watched", summary.Watched).
		Int("events", len(result.Events)).
		Int("delivery_failures", summary.Delivery.Failed).
		Bool("persisted", summary.Persisted).
		Msg("Check completed")

	return summary, nil
}
