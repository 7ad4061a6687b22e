package notifier

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/aleister1102/seatwatch/internal/common"
	"github.com/aleister1102/seatwatch/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func webhookConfig(url string) config.NotificationConfig {
	cfg := config.NewDefaultNotificationConfig()
	cfg.DiscordWebhookURL = url
	return cfg
}

func TestDiscordNotifier_PostsContent(t *testing.T) {
	var received map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	dn, err := NewDiscordNotifier(webhookConfig(server.URL+"/api/webhooks/1/token"), nil, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "discord", dn.Name())

	require.NoError(t, dn.Notify(context.Background(), "🆕 New course ABC123: open=true, LEFT=5"))

	assert.Equal(t, "🆕 New course ABC123: open=true, LEFT=5", received["content"])
	assert.Equal(t, config.DefaultNotificationUsername, received["username"])
	mentions, ok := received["allowed_mentions"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, []interface{}{}, mentions["parse"])
}

func TestDiscordNotifier_AvatarURL(t *testing.T) {
	var received map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&received)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	cfg := webhookConfig(server.URL)
	cfg.AvatarURL = "https://cdn.example/seatwatch.png"
	dn, err := NewDiscordNotifier(cfg, nil, zerolog.Nop())
	require.NoError(t, err)

	require.NoError(t, dn.Notify(context.Background(), "No changes."))
	assert.Equal(t, "https://cdn.example/seatwatch.png", received["avatar_url"])
}

func TestDiscordNotifier_RoleMentions(t *testing.T) {
	var received map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&received)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	cfg := webhookConfig(server.URL)
	cfg.MentionRoleIDs = []string{"123", "456"}
	dn, err := NewDiscordNotifier(cfg, nil, zerolog.Nop())
	require.NoError(t, err)

	require.NoError(t, dn.Notify(context.Background(), "hello"))

	assert.Equal(t, "<@&123> <@&456> hello", received["content"])
	mentions := received["allowed_mentions"].(map[string]interface{})
	assert.Equal(t, []interface{}{"123", "456"}, mentions["roles"])
}

func TestDiscordNotifier_RetriesRateLimit(t *testing.T) {
	var calls int32
	var lastBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		lastBody = string(body)
		if atomic.AddInt32(&calls, 1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	dn, err := NewDiscordNotifier(webhookConfig(server.URL), nil, zerolog.Nop())
	require.NoError(t, err)

	require.NoError(t, dn.Notify(context.Background(), "retry me"))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.Contains(t, lastBody, `"content":"retry me"`)
}

func TestDiscordNotifier_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"message": "Cannot send an empty message"}`)
	}))
	defer server.Close()

	dn, err := NewDiscordNotifier(webhookConfig(server.URL), nil, zerolog.Nop())
	require.NoError(t, err)

	err = dn.Notify(context.Background(), "x")
	require.Error(t, err)
	var httpErr *common.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
}

func TestDiscordNotifier_RedactsWebhookOnTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	webhook := server.URL + "/api/webhooks/1/secret-token"
	server.Close()

	cfg := webhookConfig(webhook)
	cfg.RetryAttempts = 0
	dn, err := NewDiscordNotifier(cfg, nil, zerolog.Nop())
	require.NoError(t, err)

	err = dn.Notify(context.Background(), "x")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "secret-token")
	var netErr *common.NetworkError
	assert.ErrorAs(t, err, &netErr)
}

func TestNewDiscordNotifier_InvalidURL(t *testing.T) {
	_, err := NewDiscordNotifier(webhookConfig("not a url"), nil, zerolog.Nop())
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}
