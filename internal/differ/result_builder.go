package differ

import "github.com/aleister1102/seatwatch/internal/models"

// CourseDiffResultBuilder builds CourseDiffResult objects
type CourseDiffResultBuilder struct {
	result models.CourseDiffResult
}

// NewCourseDiffResultBuilder creates a new result builder around baseline
func NewCourseDiffResultBuilder(baseline *models.Snapshot) *CourseDiffResultBuilder {
	return &CourseDiffResultBuilder{
		result: models.CourseDiffResult{
			Baseline: baseline,
			Events:   make([]models.CourseEvent, 0),
		},
	}
}

// AsFirstRun marks the result as the initialization of an empty baseline
func (rb *CourseDiffResultBuilder) AsFirstRun() *CourseDiffResultBuilder {
	rb.result.FirstRun = true
	return rb
}

// AddChange records an event that mutated the baseline
func (rb *CourseDiffResultBuilder) AddChange(events ...models.CourseEvent) *CourseDiffResultBuilder {
	if len(events) > 0 {
		rb.result.Events = append(rb.result.Events, events...)
		rb.result.Changed = true
	}
	return rb
}

// AddNotice records an event without marking the baseline changed
func (rb *CourseDiffResultBuilder) AddNotice(events ...models.CourseEvent) *CourseDiffResultBuilder {
	rb.result.Events = append(rb.result.Events, events...)
	return rb
}

// Build creates the final CourseDiffResult
func (rb *CourseDiffResultBuilder) Build() *models.CourseDiffResult {
	return &rb.result
}
