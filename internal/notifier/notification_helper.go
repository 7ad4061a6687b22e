package notifier

import (
	"context"

	"github.com/aleister1102/seatwatch/internal/models"
	"github.com/rs/zerolog"
)

// DeliveryStats counts message deliveries across all notifiers
type DeliveryStats struct {
	Messages int
	Sent     int
	Failed   int
}

// NotificationHelper fans each event out to every configured notifier.
// Delivery is best-effort: failures are logged and never returned.
type NotificationHelper struct {
	notifiers []Notifier
	logger    zerolog.Logger
}

// NewNotificationHelper creates a new NotificationHelper.
func NewNotificationHelper(logger zerolog.Logger, notifiers ...Notifier) *NotificationHelper {
	active := make([]Notifier, 0, len(notifiers))
	for _, n := range notifiers {
		if n != nil {
			active = append(active, n)
		}
	}
	return &NotificationHelper{
		notifiers: active,
		logger:    logger.With().Str("module", "NotificationHelper").Logger(),
	}
}

// Notifiers returns the names of the configured channels
func (nh *NotificationHelper) Notifiers() []string {
	names := make([]string, 0, len(nh.notifiers))
	for _, n := range nh.notifiers {
		names = append(names, n.Name())
	}
	return names
}

// NotifyEvents formats and delivers events in order
func (nh *NotificationHelper) NotifyEvents(ctx context.Context, events []models.CourseEvent) DeliveryStats {
	var stats DeliveryStats
	for _, event := range events {
		s := nh.NotifyText(ctx, FormatEvent(event))
		stats.Messages += s.Messages
		stats.Sent += s.Sent
		stats.Failed += s.Failed
	}
	return stats
}

// NotifyText delivers one message to every notifier
func (nh *NotificationHelper) NotifyText(ctx context.Context, text string) DeliveryStats {
	stats := DeliveryStats{Messages: 1}
	for _, n := range nh.notifiers {
		if err := n.Notify(ctx, text); err != nil {
			stats.Failed++
			nh.logger.Warn().Err(err).Str("notifier", n.Name()).Msg("Notification delivery failed")
			continue
		}
		stats.Sent++
	}
	return stats
}
