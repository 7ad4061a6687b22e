package notifier

import (
	"fmt"

	"github.com/aleister1102/seatwatch/internal/models"
)

// FormatEvent renders an event as a single human-readable line
func FormatEvent(event models.CourseEvent) string {
	switch event.Kind {
	case models.EventInitial:
		return fmt.Sprintf("📌 Initial %s: open=%t, LEFT=%d", event.Code, event.Current.Open, event.Current.Seats)
	case models.EventAppeared:
		return fmt.Sprintf("🆕 New course %s: open=%t, LEFT=%d", event.Code, event.Current.Open, event.Current.Seats)
	case models.EventOpened:
		return fmt.Sprintf("✅ Course %s is now OPEN! LEFT %d→%d", event.Code, event.Previous.Seats, event.Current.Seats)
	case models.EventClosed:
		return fmt.Sprintf("⛔ Course %s is closed/full. LEFT %d→%d", event.Code, event.Previous.Seats, event.Current.Seats)
	case models.EventSeatsChanged:
		return fmt.Sprintf("↔️ Course %s seats changed: LEFT %d→%d", event.Code, event.Previous.Seats, event.Current.Seats)
	case models.EventDisappeared:
		return fmt.Sprintf("⚠️ Course %s was not found on the current pages (term or list may have changed).", event.Code)
	default:
		return fmt.Sprintf("Course %s: %s", event.Code, event.Kind)
	}
}

// truncateContent cuts text to at most limit runes, marking the cut with an ellipsis
func truncateContent(text string, limit int) string {
	runes := []rune(text)
	if limit <= 0 || len(runes) <= limit {
		return text
	}
	if limit == 1 {
		return "…"
	}
	return string(runes[:limit-1]) + "…"
}
