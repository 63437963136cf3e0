// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // postgres | sqlite
	URL    string `mapstructure:"url"`
}

type BackendConfig struct {
	Mode    string        `mapstructure:"mode"` // remote | local
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type QuizConfig struct {
	MinQuestions     int           `mapstructure:"min_questions"`
	MaxQuestions     int           `mapstructure:"max_questions"`
	DefaultQuestions int           `mapstructure:"default_questions"`
	SessionTTL       time.Duration `mapstructure:"session_ttl"`
}

type TTSConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Endpoint string        `mapstructure:"endpoint"`
	Language string        `mapstructure:"language"`
	CacheDir string        `mapstructure:"cache_dir"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type PerformanceConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Log         LogConfig         `mapstructure:"log"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Backend     BackendConfig     `mapstructure:"backend"`
	Quiz        QuizConfig        `mapstructure:"quiz"`
	TTS         TTSConfig         `mapstructure:"tts"`
	Performance PerformanceConfig `mapstructure:"performance"`
	CORS        CORSConfig        `mapstructure:"cors"`
}

// Cfg は LoadConfig で読み込んだ設定です。
var Cfg Config

// LoadConfig は設定を読み込み Cfg に格納します。
func LoadConfig(paths ...string) error {
	cfg, err := Load(paths...)
	if err != nil {
		return err
	}
	Cfg = *cfg
	return nil
}

// Load は path と カレントディレクトリの config.yaml、.env、APP_ 接頭辞の環境変数から設定を作ります。
// 環境変数が最優先です (例: APP_BACKEND_BASE_URL)。
func Load(paths ...string) (*Config, error) {
	// .env はなくてもよい
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		if p != "" {
			v.AddConfigPath(p)
		}
	}
	v.AddConfigPath(".")

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			log.Println("Warning: Config file not found. Using default settings or environment variables if available.")
		} else {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	log.Println("Config loaded successfully")
	log.Printf("Server Port: %s", cfg.Server.Port)
	log.Printf("Backend Mode: %s", cfg.Backend.Mode)
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", DefaultServerPort)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("database.driver", DriverPostgres)
	v.SetDefault("database.url", "")
	v.SetDefault("backend.mode", BackendModeRemote)
	v.SetDefault("backend.base_url", DefaultBackendBaseURL)
	v.SetDefault("backend.timeout", DefaultBackendTimeout)
	v.SetDefault("quiz.min_questions", DefaultMinQuestions)
	v.SetDefault("quiz.max_questions", DefaultMaxQuestions)
	v.SetDefault("quiz.default_questions", DefaultQuestions)
	v.SetDefault("quiz.session_ttl", DefaultSessionTTL)
	v.SetDefault("tts.enabled", true)
	v.SetDefault("tts.endpoint", "")
	v.SetDefault("tts.language", DefaultTTSLanguage)
	v.SetDefault("tts.cache_dir", DefaultTTSCacheDir)
	v.SetDefault("tts.timeout", DefaultTTSTimeout)
	v.SetDefault("performance.enabled", true)
	v.SetDefault("performance.timeout", DefaultPerformanceTimeout)
	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Content-Type", "X-Request-Id"})
	v.SetDefault("cors.exposed_headers", []string{})
	v.SetDefault("cors.allow_credentials", false)
	v.SetDefault("cors.max_age", 300)
}

// normalize は値の組み合わせを検証し、範囲外の値を既定値に戻します。
func (c *Config) normalize() error {
	c.Backend.Mode = strings.ToLower(c.Backend.Mode)
	switch c.Backend.Mode {
	case BackendModeRemote:
		if c.Backend.BaseURL == "" {
			return errors.New("config: backend.base_url is required in remote mode")
		}
	case BackendModeLocal:
		if c.Database.URL == "" {
			return errors.New("config: database.url is required in local mode")
		}
	default:
		return fmt.Errorf("config: unknown backend.mode %q", c.Backend.Mode)
	}

	c.Database.Driver = strings.ToLower(c.Database.Driver)
	if c.Database.Driver != DriverPostgres && c.Database.Driver != DriverSQLite {
		return fmt.Errorf("config: unknown database.driver %q", c.Database.Driver)
	}

	if c.Quiz.MinQuestions <= 0 || c.Quiz.MaxQuestions < c.Quiz.MinQuestions {
		log.Printf("Quiz question bounds invalid (%d..%d), using default %d..%d",
			c.Quiz.MinQuestions, c.Quiz.MaxQuestions, DefaultMinQuestions, DefaultMaxQuestions)
		c.Quiz.MinQuestions = DefaultMinQuestions
		c.Quiz.MaxQuestions = DefaultMaxQuestions
	}
	if c.Quiz.DefaultQuestions < c.Quiz.MinQuestions || c.Quiz.DefaultQuestions > c.Quiz.MaxQuestions {
		log.Printf("Quiz default questions %d out of range, using %d", c.Quiz.DefaultQuestions, c.Quiz.MinQuestions)
		c.Quiz.DefaultQuestions = c.Quiz.MinQuestions
	}
	if c.Quiz.SessionTTL <= 0 {
		c.Quiz.SessionTTL = DefaultSessionTTL
	}
	if c.Performance.Timeout <= 0 {
		c.Performance.Timeout = DefaultPerformanceTimeout
	}
	return nil
}
