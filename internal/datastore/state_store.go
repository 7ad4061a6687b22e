// Package datastore persists the course baseline between runs.
package datastore

import (
	"context"
	"strings"

	"github.com/aleister1102/seatwatch/internal/common"
	"github.com/aleister1102/seatwatch/internal/config"
	"github.com/aleister1102/seatwatch/internal/models"
	"github.com/rs/zerolog"
)

// StateStore loads and saves the baseline snapshot.
//
// Load never fails because of a missing or unreadable state; it yields an
// empty snapshot instead, which starts a first run.
type StateStore interface {
	Load(ctx context.Context) (*models.Snapshot, error)
	Save(ctx context.Context, snapshot *models.Snapshot) error
	Location() string
	Close() error
}

// NewStateStore creates the store selected by cfg.Backend
func NewStateStore(cfg config.StorageConfig, logger zerolog.Logger) (StateStore, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", config.StorageBackendJSON:
		return NewJSONStateStore(cfg.StatePath, logger), nil
	case config.StorageBackendSQLite:
		return NewSQLiteStateStore(cfg.SQLitePath, logger)
	default:
		return nil, common.NewValidationError("storage_config.backend", cfg.Backend, "unsupported storage backend")
	}
}
