package datastore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"

	"github.com/aleister1102/seatwatch/internal/common"
	"github.com/aleister1102/seatwatch/internal/models"
	"github.com/rs/zerolog"
)

const maxStateFileSize = 50 * 1024 * 1024

// JSONStateStore keeps the baseline in a JSON document of the form
// {"courses": {"ABC123": {"open": true, "seats": 5, "_gone_notified": true}}}.
// Course keys are written in snapshot order.
type JSONStateStore struct {
	path        string
	logger      zerolog.Logger
	fileManager *common.FileManager
}

// NewJSONStateStore creates a store backed by the file at path
func NewJSONStateStore(path string, logger zerolog.Logger) *JSONStateStore {
	return &JSONStateStore{
		path:        path,
		logger:      logger.With().Str("component", "JSONStateStore").Str("path", path).Logger(),
		fileManager: common.NewFileManager(logger),
	}
}

// Location returns the state file path
func (s *JSONStateStore) Location() string {
	return s.path
}

// Load reads the baseline. A missing, unreadable or malformed file yields an empty snapshot.
func (s *JSONStateStore) Load(ctx context.Context) (*models.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := s.fileManager.ReadFile(s.path, maxStateFileSize)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Info().Msg("State file does not exist, starting with empty baseline")
		} else {
			s.logger.Warn().Err(err).Msg("Failed to read state file, starting with empty baseline")
		}
		return models.NewSnapshot(), nil
	}

	snapshot, err := decodeState(data)
	if err != nil {
		s.logger.Warn().Err(err).Msg("State file is malformed, starting with empty baseline")
		return models.NewSnapshot(), nil
	}

	s.logger.Debug().Int("courses", snapshot.Len()).Msg("Loaded baseline")
	return snapshot, nil
}

// Save replaces the state file atomically
func (s *JSONStateStore) Save(ctx context.Context, snapshot *models.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := encodeState(snapshot)
	if err != nil {
		return common.WrapError(err, "failed to encode state")
	}

	if err := s.fileManager.WriteFileAtomic(s.path, data, 0644); err != nil {
		return common.WrapError(err, "failed to save state")
	}

	s.logger.Debug().Int("courses", snapshot.Len()).Msg("Saved baseline")
	return nil
}

// Close is a no-op
func (s *JSONStateStore) Close() error {
	return nil
}

// encodeState renders the snapshot with two-space indentation, keeping key order.
func encodeState(snapshot *models.Snapshot) ([]byte, error) {
	var raw bytes.Buffer
	raw.WriteString(`{"courses":{`)
	for i, record := range snapshot.Records() {
		if i > 0 {
			raw.WriteByte(',')
		}
		key, err := json.Marshal(record.Code)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(record)
		if err != nil {
			return nil, err
		}
		raw.Write(key)
		raw.WriteByte(':')
		raw.Write(value)
	}
	raw.WriteString(`}}`)

	var out bytes.Buffer
	if err := json.Indent(&out, raw.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// decodeState parses a state document, preserving the on-disk order of courses.
func decodeState(data []byte) (*models.Snapshot, error) {
	var document struct {
		Courses json.RawMessage `json:"courses"`
	}
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, err
	}

	snapshot := models.NewSnapshot()
	if len(document.Courses) == 0 || string(document.Courses) == "null" {
		return snapshot, nil
	}

	dec := json.NewDecoder(bytes.NewReader(document.Courses))
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}
	for dec.More() {
		token, err := dec.Token()
		if err != nil {
			return nil, err
		}
		code, ok := token.(string)
		if !ok {
			return nil, common.NewError("unexpected course key %v", token)
		}

		var record models.CourseRecord
		if err := dec.Decode(&record); err != nil {
			return nil, common.WrapErrorf(err, "invalid record for course %s", code)
		}
		record.Code = code
		snapshot.Set(record)
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}

	return snapshot, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	token, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return io.ErrUnexpectedEOF
		}
		return err
	}
	if delim, ok := token.(json.Delim); !ok || delim != want {
		return common.NewError("expected %q in courses, got %v", want, token)
	}
	return nil
}
