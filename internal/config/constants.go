// internal/config/constants.go
package config

import "time"

// アプリケーション情報
const (
	AppName    = "vocab-quiz"
	AppVersion = "0.3.0"
)

const (
	BackendModeRemote = "remote"
	BackendModeLocal  = "local"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// デフォルト設定値
const (
	DefaultServerPort         = ":8080"
	DefaultLogLevel           = "info"
	DefaultBackendBaseURL     = "http://localhost:8000/api"
	DefaultBackendTimeout     = 10 * time.Second
	DefaultMinQuestions       = 5
	DefaultMaxQuestions       = 30
	DefaultQuestions          = 10
	DefaultSessionTTL         = time.Hour
	DefaultTTSLanguage        = "fr"
	DefaultTTSCacheDir        = "tts_cache"
	DefaultTTSTimeout         = 10 * time.Second
	DefaultPerformanceTimeout = 5 * time.Second
)
