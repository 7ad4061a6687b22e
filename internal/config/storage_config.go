package config

// StorageConfig defines where the baseline snapshot is kept
type StorageConfig struct {
	Backend    string `json:"backend,omitempty" yaml:"backend,omitempty" validate:"omitempty,storagebackend"`
	StatePath  string `json:"state_path,omitempty" yaml:"state_path,omitempty"`
	SQLitePath string `json:"sqlite_path,omitempty" yaml:"sqlite_path,omitempty"`
}

// NewDefaultStorageConfig creates default storage configuration
func NewDefaultStorageConfig() StorageConfig {
	return StorageConfig{
		Backend:    DefaultStorageBackend,
		StatePath:  DefaultStorageStatePath,
		SQLitePath: DefaultStorageSQLitePath,
	}
}
