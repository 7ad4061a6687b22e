package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/aleister1102/seatwatch/internal/common"
	"github.com/aleister1102/seatwatch/internal/models"
	"github.com/go-playground/validator/v10"
)

// codePrefixRule accepts any alphanumeric prefix; one that matches no course simply filters everything out.
var codePrefixRule = regexp.MustCompile(`^[A-Z0-9]+$`)

// ValidateConfig performs validation on the GlobalConfig structure.
func ValidateConfig(cfg *GlobalConfig) error {
	if cfg == nil {
		return common.NewValidationError("config", cfg, "config cannot be nil")
	}

	validate := newValidator()

	err := validate.Struct(cfg)
	if err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			var validationErrorMessages []string
			for _, e := range errs {
				msg := fmt.Sprintf("Validation failed for '%s': rule '%s'", trimNamespace(e.Namespace()), e.Tag())
				if e.Param() != "" {
					msg += fmt.Sprintf(" (expected: %s)", e.Param())
				}
				if e.Value() != nil && e.Value() != "" {
					msg += fmt.Sprintf(", actual: '%v'", e.Value())
				}
				validationErrorMessages = append(validationErrorMessages, msg)
			}
			return fmt.Errorf("%w:\n  %s", common.ErrInvalidConfiguration, strings.Join(validationErrorMessages, "\n  "))
		}
		return fmt.Errorf("configuration validation error: %w", err)
	}

	if backendOrDefault(cfg.StorageConfig.Backend) == StorageBackendSQLite && cfg.StorageConfig.SQLitePath == "" {
		return common.NewValidationError("storage_config.sqlite_path", cfg.StorageConfig.SQLitePath, "sqlite backend requires sqlite_path")
	}
	if backendOrDefault(cfg.StorageConfig.Backend) == StorageBackendJSON && cfg.StorageConfig.StatePath == "" {
		return common.NewValidationError("storage_config.state_path", cfg.StorageConfig.StatePath, "json backend requires state_path")
	}

	return nil
}

func newValidator() *validator.Validate {
	validate := validator.New()

	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		level := strings.ToLower(fl.Field().String())
		switch level {
		case "", "debug", "info", "warn", "error", "fatal", "panic": // Allow empty for omitempty
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("logformat", func(fl validator.FieldLevel) bool {
		format := strings.ToLower(fl.Field().String())
		switch format {
		case "", "console", "json": // Allow empty for omitempty
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("coursecode", func(fl validator.FieldLevel) bool {
		return models.IsValidCourseCode(fl.Field().String())
	})

	_ = validate.RegisterValidation("codeprefix", func(fl validator.FieldLevel) bool {
		return codePrefixRule.MatchString(fl.Field().String())
	})

	_ = validate.RegisterValidation("storagebackend", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", StorageBackendJSON, StorageBackendSQLite:
			return true
		default:
			return false
		}
	})

	return validate
}

// trimNamespace drops the root struct name from a validator namespace
func trimNamespace(namespace string) string {
	if idx := strings.Index(namespace, "."); idx >= 0 {
		return namespace[idx+1:]
	}
	return namespace
}

func backendOrDefault(backend string) string {
	if backend == "" {
		return DefaultStorageBackend
	}
	return strings.ToLower(backend)
}
