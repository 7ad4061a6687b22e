package config

// PortalConfig defines which registration pages are fetched and how
type PortalConfig struct {
	URLs                  []string `json:"urls,omitempty" yaml:"urls,omitempty" validate:"required,min=1,dive,url"`
	UserAgent             string   `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
	RequestTimeoutSecs    int      `json:"request_timeout_secs,omitempty" yaml:"request_timeout_secs,omitempty" validate:"omitempty,min=1"`
	MaxContentSizeMB      int      `json:"max_content_size_mb,omitempty" yaml:"max_content_size_mb,omitempty" validate:"omitempty,min=1"`
	InsecureSkipTLSVerify bool     `json:"insecure_skip_tls_verify" yaml:"insecure_skip_tls_verify"`
}

// NewDefaultPortalConfig creates default portal configuration
func NewDefaultPortalConfig() PortalConfig {
	return PortalConfig{
		URLs:                  []string{DefaultPortalURL},
		UserAgent:             DefaultPortalUserAgent,
		RequestTimeoutSecs:    DefaultPortalRequestTimeoutSecs,
		MaxContentSizeMB:      DefaultPortalMaxContentSizeMB,
		InsecureSkipTLSVerify: false,
	}
}
