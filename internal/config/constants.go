package config

const (
	// Portal Defaults
	DefaultPortalURL                = "https://course-reg.icu.ac.jp/reg/prereg_clist/GEN.html"
	DefaultPortalUserAgent          = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124 Safari/537.36"
	DefaultPortalRequestTimeoutSecs = 20
	DefaultPortalMaxContentSizeMB   = 10

	// Notification Defaults
	DefaultNotificationRequestTimeoutSecs = 10
	DefaultNotificationRetryAttempts      = 2
	DefaultNotificationUsername           = "seatwatch"

	// Storage Defaults
	StorageBackendJSON       = "json"
	StorageBackendSQLite     = "sqlite"
	DefaultStorageBackend    = StorageBackendJSON
	DefaultStorageStatePath  = "state.json"
	DefaultStorageSQLitePath = "state.db"

	// Log Defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3

	// Diff Defaults
	DefaultDiffInitialNotify       = false
	DefaultDiffResetGoneOnReappear = true

	// Config file
	ConfigPathEnvVar  = "SEATWATCH_CONFIG_PATH"
	maxConfigFileSize = 10 * 1024 * 1024 // 10MB max config file size
)
