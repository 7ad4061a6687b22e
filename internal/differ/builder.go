package differ

import (
	"github.com/aleister1102/seatwatch/internal/filter"
	"github.com/rs/zerolog"
)

// CourseDifferBuilder provides a fluent interface for creating CourseDiffer
type CourseDifferBuilder struct {
	logger zerolog.Logger
	config CourseDifferConfig
	rule   filter.Rule
}

// NewCourseDifferBuilder creates a new builder
func NewCourseDifferBuilder(logger zerolog.Logger) *CourseDifferBuilder {
	return &CourseDifferBuilder{
		logger: logger.With().Str("component", "CourseDiffer").Logger(),
		config: DefaultCourseDifferConfig(),
	}
}

// WithConfig sets the differ configuration
func (b *CourseDifferBuilder) WithConfig(config CourseDifferConfig) *CourseDifferBuilder {
	b.config = config
	return b
}

// WithRule sets the filter that scopes disappearance checks
func (b *CourseDifferBuilder) WithRule(rule filter.Rule) *CourseDifferBuilder {
	b.rule = rule
	return b
}

// Build creates a new CourseDiffer instance
func (b *CourseDifferBuilder) Build() *CourseDiffer {
	return &CourseDiffer{
		logger:   b.logger,
		config:   b.config,
		rule:     b.rule,
		analyzer: NewAvailabilityAnalyzer(b.config, b.logger),
	}
}
