package datastore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aleister1102/seatwatch/internal/common"
	"github.com/aleister1102/seatwatch/internal/models"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// corruptSuffix is appended to an unreadable database before it is replaced.
const corruptSuffix = ".corrupt"

// SQLiteStateStore keeps the baseline in a SQLite database, one row per course.
type SQLiteStateStore struct {
	db     *sql.DB
	path   string
	logger zerolog.Logger
}

// NewSQLiteStateStore opens the database at path and ensures the schema exists
func NewSQLiteStateStore(path string, logger zerolog.Logger) (*SQLiteStateStore, error) {
	logger = logger.With().Str("component", "SQLiteStateStore").Str("db_path", path).Logger()

	if path == "" {
		return nil, common.NewValidationError("storage_config.sqlite_path", path, "sqlite path is required")
	}

	dbDir := filepath.Dir(path)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		logger.Error().Err(err).Str("directory", dbDir).Msg("Failed to create state database directory")
		return nil, fmt.Errorf("failed to create state database directory %s: %w", dbDir, err)
	}

	store, err := openSQLiteStateStore(path, logger)
	if err == nil {
		return store, nil
	}

	// An unreadable state file starts a fresh baseline, like a malformed JSON state.
	if _, statErr := os.Stat(path); statErr != nil {
		return nil, err
	}
	corruptPath := path + corruptSuffix
	logger.Warn().Err(err).Str("moved_to", corruptPath).Msg("State database is unreadable, starting with empty baseline")
	if renameErr := os.Rename(path, corruptPath); renameErr != nil {
		return nil, fmt.Errorf("failed to move unreadable state database %s aside: %w", path, renameErr)
	}
	for _, suffix := range []string{"-journal", "-wal", "-shm"} {
		_ = os.Remove(path + suffix)
	}

	return openSQLiteStateStore(path, logger)
}

func openSQLiteStateStore(path string, logger zerolog.Logger) (*SQLiteStateStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to open state database")
		return nil, fmt.Errorf("sql.Open failed for %s: %w", path, err)
	}
	// one-shot process, a single connection avoids SQLITE_BUSY between statements
	db.SetMaxOpenConns(1)

	store := &SQLiteStateStore{
		db:     db,
		path:   path,
		logger: logger,
	}

	if err := store.InitSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// InitSchema creates the courses table if it doesn't already exist.
func (s *SQLiteStateStore) InitSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS courses (
		code TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		open INTEGER NOT NULL,
		seats INTEGER NOT NULL,
		gone_notified INTEGER NOT NULL DEFAULT 0
	);
	`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return err
	}
	s.logger.Debug().Msg("Schema initialized (courses table ensured)")
	return nil
}

// Location returns the database path
func (s *SQLiteStateStore) Location() string {
	return s.path
}

// Load reads all courses in their stored order. Query failures are logged
// and yield an empty snapshot.
func (s *SQLiteStateStore) Load(ctx context.Context) (*models.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT code, open, seats, gone_notified FROM courses ORDER BY position`)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to query baseline, starting with empty baseline")
		return models.NewSnapshot(), nil
	}
	defer rows.Close()

	snapshot := models.NewSnapshot()
	for rows.Next() {
		var record models.CourseRecord
		if err := rows.Scan(&record.Code, &record.Open, &record.Seats, &record.GoneNotified); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to read baseline row, starting with empty baseline")
			return models.NewSnapshot(), nil
		}
		snapshot.Set(record)
	}
	if err := rows.Err(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		s.logger.Warn().Err(err).Msg("Failed to iterate baseline, starting with empty baseline")
		return models.NewSnapshot(), nil
	}

	s.logger.Debug().Int("courses", snapshot.Len()).Msg("Loaded baseline")
	return snapshot, nil
}

// Save replaces the table content with snapshot in one transaction
func (s *SQLiteStateStore) Save(ctx context.Context, snapshot *models.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return common.WrapError(err, "failed to begin transaction")
	}
	defer func() {
		_ = tx.Rollback() // no-op after commit
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM courses`); err != nil {
		return common.WrapError(err, "failed to clear courses")
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO courses (code, position, open, seats, gone_notified) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return common.WrapError(err, "failed to prepare insert")
	}
	defer stmt.Close()

	for position, record := range snapshot.Records() {
		if _, err := stmt.ExecContext(ctx, record.Code, position, record.Open, record.Seats, record.GoneNotified); err != nil {
			return common.WrapErrorf(err, "failed to insert course %s", record.Code)
		}
	}

	if err := tx.Commit(); err != nil {
		return common.WrapError(err, "failed to commit baseline")
	}

	s.logger.Debug().Int("courses", snapshot.Len()).Msg("Saved baseline")
	return nil
}

// Close closes the database connection.
func (s *SQLiteStateStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
