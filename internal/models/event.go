package models

// EventKind classifies an observed change of one course.
type EventKind string

const (
	// EventInitial reports a course found on the first run, when initial notifications are enabled.
	EventInitial EventKind = "initial"
	// EventAppeared reports a course that is not part of the baseline.
	EventAppeared EventKind = "appeared"
	// EventOpened reports a course that switched from closed to open.
	EventOpened EventKind = "opened"
	// EventClosed reports a course that switched from open to closed or full.
	EventClosed EventKind = "closed"
	// EventSeatsChanged reports a seat count change without an open-state change.
	EventSeatsChanged EventKind = "seats_changed"
	// EventDisappeared reports an in-scope baseline course missing from the latest fetch.
	EventDisappeared EventKind = "disappeared"
)

// CourseEvent is one notification-worthy change.
type CourseEvent struct {
	Kind     EventKind
	Code     string
	Previous CourseRecord // zero for initial and appeared events
	Current  CourseRecord // last-seen data for disappeared events
}

// CourseDiffResult is the outcome of comparing the latest snapshot against the baseline.
type CourseDiffResult struct {
	// Baseline is the updated baseline, to be persisted when Changed or FirstRun is set.
	Baseline *Snapshot
	Events   []CourseEvent
	Changed  bool
	FirstRun bool
}

// ShouldPersist reports whether the updated baseline must be written.
func (r *CourseDiffResult) ShouldPersist() bool {
	return r.FirstRun || r.Changed
}

// CountByKind returns how many events of each kind the result holds.
func (r *CourseDiffResult) CountByKind() map[EventKind]int {
	counts := make(map[EventKind]int)
	for _, event := range r.Events {
		counts[event.Kind]++
	}
	return counts
}
