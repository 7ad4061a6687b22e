package config

// NotificationConfig defines configuration for notifications
type NotificationConfig struct {
	DiscordWebhookURL  string   `json:"discord_webhook_url,omitempty" yaml:"discord_webhook_url,omitempty" validate:"omitempty,url"`
	Username           string   `json:"username,omitempty" yaml:"username,omitempty"`
	AvatarURL          string   `json:"avatar_url,omitempty" yaml:"avatar_url,omitempty" validate:"omitempty,url"`
	MentionRoleIDs     []string `json:"mention_role_ids,omitempty" yaml:"mention_role_ids,omitempty" validate:"omitempty,dive,numeric"`
	RequestTimeoutSecs int      `json:"request_timeout_secs,omitempty" yaml:"request_timeout_secs,omitempty" validate:"omitempty,min=1"`
	RetryAttempts      int      `json:"retry_attempts,omitempty" yaml:"retry_attempts,omitempty" validate:"omitempty,min=0"`
}

// NewDefaultNotificationConfig creates default notification configuration
func NewDefaultNotificationConfig() NotificationConfig {
	return NotificationConfig{
		DiscordWebhookURL:  "",
		Username:           DefaultNotificationUsername,
		MentionRoleIDs:     []string{},
		RequestTimeoutSecs: DefaultNotificationRequestTimeoutSecs,
		RetryAttempts:      DefaultNotificationRetryAttempts,
	}
}
