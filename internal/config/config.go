package config

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/aleister1102/seatwatch/internal/common"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

type GlobalConfig struct {
	DiffConfig         DiffConfig         `json:"diff_config,omitempty" yaml:"diff_config,omitempty"`
	FilterConfig       FilterConfig       `json:"filter_config,omitempty" yaml:"filter_config,omitempty"`
	LogConfig          LogConfig          `json:"log_config,omitempty" yaml:"log_config,omitempty"`
	NotificationConfig NotificationConfig `json:"notification_config,omitempty" yaml:"notification_config,omitempty"`
	PortalConfig       PortalConfig       `json:"portal_config,omitempty" yaml:"portal_config,omitempty"`
	StorageConfig      StorageConfig      `json:"storage_config,omitempty" yaml:"storage_config,omitempty"`
}

func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		DiffConfig:         NewDefaultDiffConfig(),
		FilterConfig:       NewDefaultFilterConfig(),
		LogConfig:          NewDefaultLogConfig(),
		NotificationConfig: NewDefaultNotificationConfig(),
		PortalConfig:       NewDefaultPortalConfig(),
		StorageConfig:      NewDefaultStorageConfig(),
	}
}

// LoadGlobalConfig loads the configuration from a file or default locations.
// It determines the config file path using GetConfigPath, supports both JSON and YAML formats.
// YAML is preferred if the file extension is .yaml or .yml.
// When no file is found the defaults are returned.
func LoadGlobalConfig(providedPath string) (*GlobalConfig, error) {
	cfg := NewDefaultGlobalConfig()

	if providedPath != "" && !fileExists(providedPath) {
		return nil, common.NewValidationError("config_file", providedPath, "config file does not exist")
	}

	filePath := GetConfigPath(providedPath)
	if filePath == "" {
		return cfg, nil
	}

	data, err := loadConfigFileContent(filePath)
	if err != nil {
		return nil, common.WrapError(err, "failed to load config file content")
	}

	if err := parseConfigContent(data, filePath, cfg); err != nil {
		return nil, common.WrapError(err, "failed to parse config content")
	}

	return cfg, nil
}

// loadConfigFileContent reads the config file using FileManager
func loadConfigFileContent(filePath string) ([]byte, error) {
	// the logger is configured from this file, so nothing to log to yet
	fileManager := common.NewFileManager(zerolog.Nop())
	return fileManager.ReadFile(filePath, maxConfigFileSize)
}

// parseConfigContent parses the config content based on file extension
func parseConfigContent(data []byte, filePath string, cfg *GlobalConfig) error {
	ext := filepath.Ext(filePath)
	if isYAMLFile(ext) {
		return parseYAMLConfig(data, filePath, cfg)
	}
	return parseJSONConfig(data, filePath, cfg)
}

// isYAMLFile checks if the file extension indicates a YAML file
func isYAMLFile(ext string) bool {
	return ext == ".yaml" || ext == ".yml"
}

// parseYAMLConfig parses YAML configuration
func parseYAMLConfig(data []byte, filePath string, cfg *GlobalConfig) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return common.NewError("failed to unmarshal YAML from '%s': %w", filePath, err)
	}
	return nil
}

// parseJSONConfig parses JSON configuration
func parseJSONConfig(data []byte, filePath string, cfg *GlobalConfig) error {
	if err := json.Unmarshal(data, cfg); err != nil {
		return common.NewError("failed to unmarshal JSON from '%s': %w", filePath, err)
	}
	return nil
}

// Normalize canonicalizes values that may be written loosely in files or the
// environment: filter codes and prefixes are trimmed and upper-cased, the
// storage backend is lower-cased.
func (c *GlobalConfig) Normalize() {
	c.FilterConfig.CourseCodes = normalizeCodes(c.FilterConfig.CourseCodes)
	c.FilterConfig.CodePrefixes = normalizeCodes(c.FilterConfig.CodePrefixes)
	c.StorageConfig.Backend = strings.ToLower(strings.TrimSpace(c.StorageConfig.Backend))
	if c.StorageConfig.Backend == "" {
		c.StorageConfig.Backend = DefaultStorageBackend
	}
}

func normalizeCodes(values []string) []string {
	normalized := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ToUpper(strings.TrimSpace(v))
		if v != "" {
			normalized = append(normalized, v)
		}
	}
	return normalized
}
