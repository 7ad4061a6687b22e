package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aleister1102/seatwatch/internal/common"
	"github.com/aleister1102/seatwatch/internal/config"
	"github.com/aleister1102/seatwatch/internal/httpclient"
	"github.com/rs/zerolog"
)

// DiscordNotifier posts messages to a Discord webhook.
type DiscordNotifier struct {
	webhookURL string
	username   string
	avatarURL  string
	roleIDs    []string
	httpClient *httpclient.HTTPClient
	logger     zerolog.Logger
}

// NewDiscordNotifier creates a new DiscordNotifier. When client is nil one is
// built from cfg, retrying rate-limited calls cfg.RetryAttempts times.
func NewDiscordNotifier(cfg config.NotificationConfig, client *httpclient.HTTPClient, logger zerolog.Logger) (*DiscordNotifier, error) {
	moduleLogger := logger.With().Str("module", "DiscordNotifier").Logger()

	if _, err := url.ParseRequestURI(cfg.DiscordWebhookURL); err != nil {
		return nil, common.NewValidationError("notification_config.discord_webhook_url", "<redacted>", "invalid webhook URL")
	}

	if client == nil {
		var err error
		client, err = newWebhookClient(cfg, moduleLogger)
		if err != nil {
			return nil, err
		}
	}

	return &DiscordNotifier{
		webhookURL: cfg.DiscordWebhookURL,
		username:   cfg.Username,
		avatarURL:  cfg.AvatarURL,
		roleIDs:    cfg.MentionRoleIDs,
		httpClient: client,
		logger:     moduleLogger,
	}, nil
}

func newWebhookClient(cfg config.NotificationConfig, logger zerolog.Logger) (*httpclient.HTTPClient, error) {
	timeout := time.Duration(cfg.RequestTimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = time.Duration(config.DefaultNotificationRequestTimeoutSecs) * time.Second
	}

	retry := httpclient.DefaultRetryHandlerConfig()
	retry.MaxRetries = cfg.RetryAttempts

	return httpclient.NewHTTPClientBuilder(logger).
		WithTimeout(timeout).
		WithRetry(retry).
		Build()
}

// Name returns the channel name
func (dn *DiscordNotifier) Name() string {
	return discordNotifierName
}

// Notify posts text as the message content
func (dn *DiscordNotifier) Notify(ctx context.Context, text string) error {
	content := text
	if len(dn.roleIDs) > 0 {
		mentions := make([]string, 0, len(dn.roleIDs))
		for _, id := range dn.roleIDs {
			mentions = append(mentions, fmt.Sprintf("<@&%s>", id))
		}
		content = strings.Join(mentions, " ") + " " + text
	}

	payload := NewDiscordMessagePayloadBuilder().
		WithContent(content).
		WithUsername(dn.username).
		WithAvatarURL(dn.avatarURL).
		WithRoleMentions(dn.roleIDs).
		Build()

	body, err := json.Marshal(payload)
	if err != nil {
		return common.WrapError(err, "failed to marshal discord payload")
	}

	resp, err := dn.httpClient.Do(&httpclient.HTTPRequest{
		URL:     dn.webhookURL,
		Method:  http.MethodPost,
		Headers: map[string]string{"Content-Type": "application/json"},
		Body:    bytes.NewReader(body),
		Context: ctx,
	})
	if err != nil {
		// the webhook URL carries its token, keep it out of the error
		return common.WrapError(redact(err, dn.webhookURL), "failed to send discord notification")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		dn.logger.Debug().Int("status_code", resp.StatusCode).Str("response_body", string(resp.Body)).Msg("Discord notification failed")
		return &common.HTTPError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(resp.Body))}
	}

	dn.logger.Debug().Int("status_code", resp.StatusCode).Msg("Discord notification sent successfully")
	return nil
}

type redactedError struct {
	msg string
	err error
}

func (e *redactedError) Error() string { return e.msg }
func (e *redactedError) Unwrap() error { return e.err }

func redact(err error, secret string) error {
	if secret == "" || !strings.Contains(err.Error(), secret) {
		return err
	}
	return &redactedError{msg: strings.ReplaceAll(err.Error(), secret, "<webhook>"), err: err}
}
