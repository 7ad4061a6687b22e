package config

// FilterConfig restricts which course codes are tracked.
// CourseCodes takes priority over CodePrefixes when both are set.
type FilterConfig struct {
	CourseCodes  []string `json:"course_codes,omitempty" yaml:"course_codes,omitempty" validate:"omitempty,dive,coursecode"`
	CodePrefixes []string `json:"code_prefixes,omitempty" yaml:"code_prefixes,omitempty" validate:"omitempty,dive,codeprefix"`
}

// NewDefaultFilterConfig creates default filter configuration
func NewDefaultFilterConfig() FilterConfig {
	return FilterConfig{
		CourseCodes:  []string{},
		CodePrefixes: []string{},
	}
}
