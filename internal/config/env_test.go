package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func lookupFrom(env map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	cfg := NewDefaultGlobalConfig()
	applyEnvOverrides(cfg, lookupFrom(map[string]string{
		EnvPortalURLs:        " https://example.com/GEN.html , ,https://example.com/ELA.html",
		EnvCourseCodes:       "abc123, XYZ999 ,",
		EnvCodePrefixes:      "gen,ela",
		EnvDiscordWebhookURL: " https://discord.com/api/webhooks/1/abc ",
		EnvInitialNotify:     "1",
		EnvStatePath:         "data/state.json",
	}))

	assert.Equal(t, []string{"https://example.com/GEN.html", "https://example.com/ELA.html"}, cfg.PortalConfig.URLs)
	assert.Equal(t, []string{"ABC123", "XYZ999"}, cfg.FilterConfig.CourseCodes)
	assert.Equal(t, []string{"GEN", "ELA"}, cfg.FilterConfig.CodePrefixes)
	assert.Equal(t, "https://discord.com/api/webhooks/1/abc", cfg.NotificationConfig.DiscordWebhookURL)
	assert.True(t, cfg.DiffConfig.InitialNotify)
	assert.Equal(t, "data/state.json", cfg.StorageConfig.StatePath)
}

func TestApplyEnvOverrides_UnsetKeepsValues(t *testing.T) {
	cfg := NewDefaultGlobalConfig()
	cfg.FilterConfig.CourseCodes = []string{"ABC123"}

	applyEnvOverrides(cfg, lookupFrom(map[string]string{}))

	assert.Equal(t, []string{DefaultPortalURL}, cfg.PortalConfig.URLs)
	assert.Equal(t, []string{"ABC123"}, cfg.FilterConfig.CourseCodes)
	assert.Equal(t, DefaultStorageStatePath, cfg.StorageConfig.StatePath)
}

func TestApplyEnvOverrides_EmptyPortalListKeepsDefault(t *testing.T) {
	cfg := NewDefaultGlobalConfig()
	applyEnvOverrides(cfg, lookupFrom(map[string]string{EnvPortalURLs: " , "}))

	assert.Equal(t, []string{DefaultPortalURL}, cfg.PortalConfig.URLs)
}

func TestApplyEnvOverrides_ProcessEnv(t *testing.T) {
	t.Setenv(EnvCourseCodes, "def456")
	cfg := NewDefaultGlobalConfig()

	ApplyEnvOverrides(cfg)

	assert.Equal(t, []string{"DEF456"}, cfg.FilterConfig.CourseCodes)
}

func TestParseFlag(t *testing.T) {
	tests := map[string]bool{
		"":      false,
		"0":     false,
		"false": false,
		"FALSE": false,
		" 0 ":   false,
		"1":     true,
		"true":  true,
		"yes":   true,
	}

	for input, expected := range tests {
		assert.Equal(t, expected, parseFlag(input), "input %q", input)
	}
}
