package logger

import (
	"strings"

	"github.com/aleister1102/seatwatch/internal/common"
	"github.com/aleister1102/seatwatch/internal/config"
	"github.com/rs/zerolog"
)

// LogFormat is the log_format value of the log config
type LogFormat string

const (
	// FormatConsole writes human readable lines, colored on the console only.
	FormatConsole LogFormat = "console"
	// FormatJSON writes one JSON object per line.
	FormatJSON LogFormat = "json"
)

// LoggerConfig holds the resolved logger setup
type LoggerConfig struct {
	Level         zerolog.Level
	Format        LogFormat
	EnableConsole bool
	EnableFile    bool
	FilePath      string
	MaxSizeMB     int
	MaxBackups    int
}

// DefaultLoggerConfig returns the setup for the default log config
func DefaultLoggerConfig() LoggerConfig {
	cfg, _ := FromLogConfig(config.NewDefaultLogConfig())
	return cfg
}

// FromLogConfig resolves cfg. An unknown level falls back to info and is
// reported; an unknown format falls back to console.
func FromLogConfig(cfg config.LogConfig) (LoggerConfig, error) {
	resolved := LoggerConfig{
		Level:         zerolog.InfoLevel,
		Format:        FormatConsole,
		EnableConsole: true,
		EnableFile:    cfg.LogFile != "",
		FilePath:      cfg.LogFile,
		MaxSizeMB:     orDefault(cfg.MaxLogSizeMB, config.DefaultMaxLogSizeMB),
		MaxBackups:    orDefault(cfg.MaxLogBackups, config.DefaultMaxLogBackups),
	}

	if strings.EqualFold(strings.TrimSpace(cfg.LogFormat), string(FormatJSON)) {
		resolved.Format = FormatJSON
	}

	var err error
	if level := strings.ToLower(strings.TrimSpace(cfg.LogLevel)); level != "" {
		parsed, parseErr := zerolog.ParseLevel(level)
		if parseErr != nil {
			err = common.WrapError(parseErr, "invalid log level")
		} else {
			resolved.Level = parsed
		}
	}

	return resolved, err
}

func orDefault(value, fallback int) int {
	if value <= 0 {
		return fallback
	}
	return value
}
