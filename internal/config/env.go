package config

import (
	"os"
	"strings"
)

// Environment variables understood by ApplyEnvOverrides.
const (
	EnvPortalURLs        = "PORTAL_URLS"
	EnvCourseCodes       = "COURSE_CODES"
	EnvCodePrefixes      = "CODE_PREFIXES"
	EnvDiscordWebhookURL = "DISCORD_WEBHOOK_URL"
	EnvInitialNotify     = "INITIAL_NOTIFY"
	EnvStatePath         = "STATE_PATH"
)

// LookupFunc resolves an environment variable, matching os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// ApplyEnvOverrides overlays the process environment on cfg.
// Only variables that are set replace file or default values.
func ApplyEnvOverrides(cfg *GlobalConfig) {
	applyEnvOverrides(cfg, os.LookupEnv)
}

func applyEnvOverrides(cfg *GlobalConfig, lookup LookupFunc) {
	if v, ok := lookup(EnvPortalURLs); ok {
		if urls := splitList(v, false); len(urls) > 0 {
			cfg.PortalConfig.URLs = urls
		}
	}
	if v, ok := lookup(EnvCourseCodes); ok {
		cfg.FilterConfig.CourseCodes = splitList(v, true)
	}
	if v, ok := lookup(EnvCodePrefixes); ok {
		cfg.FilterConfig.CodePrefixes = splitList(v, true)
	}
	if v, ok := lookup(EnvDiscordWebhookURL); ok {
		cfg.NotificationConfig.DiscordWebhookURL = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvInitialNotify); ok {
		cfg.DiffConfig.InitialNotify = parseFlag(v)
	}
	if v, ok := lookup(EnvStatePath); ok && strings.TrimSpace(v) != "" {
		cfg.StorageConfig.StatePath = strings.TrimSpace(v)
	}
}

// splitList splits a comma separated value, dropping empty items
func splitList(value string, upper bool) []string {
	items := []string{}
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if upper {
			part = strings.ToUpper(part)
		}
		items = append(items, part)
	}
	return items
}

// parseFlag treats anything other than "", "0" and "false" as enabled
func parseFlag(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "0", "false":
		return false
	default:
		return true
	}
}
