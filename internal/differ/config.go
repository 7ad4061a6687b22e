package differ

// CourseDifferConfig holds configuration for course comparison
type CourseDifferConfig struct {
	// InitialNotify emits one initial event per course on the first run.
	InitialNotify bool
	// ResetGoneOnReappear treats a reported-gone course that shows up again
	// as newly appeared, which clears its gone flag.
	ResetGoneOnReappear bool
}

// DefaultCourseDifferConfig returns default configuration
func DefaultCourseDifferConfig() CourseDifferConfig {
	return CourseDifferConfig{
		InitialNotify:       false,
		ResetGoneOnReappear: true,
	}
}
