package config

// DiffConfig defines how the latest snapshot is compared against the baseline
type DiffConfig struct {
	InitialNotify       bool `json:"initial_notify" yaml:"initial_notify"`
	ResetGoneOnReappear bool `json:"reset_gone_on_reappear" yaml:"reset_gone_on_reappear"`
}

// NewDefaultDiffConfig creates default diff configuration
func NewDefaultDiffConfig() DiffConfig {
	return DiffConfig{
		InitialNotify:       DefaultDiffInitialNotify,
		ResetGoneOnReappear: DefaultDiffResetGoneOnReappear,
	}
}
