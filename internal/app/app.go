// internal/app/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"go_5_vocab_quiz/internal/backend"
	"go_5_vocab_quiz/internal/config"
	"go_5_vocab_quiz/internal/repository"
	"go_5_vocab_quiz/internal/service"
	"go_5_vocab_quiz/internal/tts"

	"github.com/lmittmann/tint"
	"gorm.io/gorm"
)

// NewLogger は log.level と APP_ENV から slog ロガーを作ります。
// APP_ENV=dev なら tint、それ以外は JSON で w に出力します。
func NewLogger(level string, w io.Writer) *slog.Logger {
	logLevel := new(slog.LevelVar)
	unknown := false
	switch strings.ToLower(level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info", "":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
		unknown = true
	}

	var handler slog.Handler
	if strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
		handler = tint.NewHandler(w, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		})
	} else {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})
	}
	logger := slog.New(handler)
	if unknown {
		logger.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", level))
	}
	return logger
}

// App は設定に応じて組み立てたサービス群です。
type App struct {
	Quiz service.QuizService
	// DB と Import はローカルモードのときだけ設定されます。
	DB     *gorm.DB
	Import service.ImportService

	logger *slog.Logger
}

// Build は backend.mode に従って語彙の取得元を選び、QuizService を組み立てます。
func Build(cfg *config.Config, logger *slog.Logger) (*App, error) {
	a := &App{logger: logger}

	switch cfg.Backend.Mode {
	case config.BackendModeRemote:
		client := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout)
		var recorder service.PerformanceRecorder
		if cfg.Performance.Enabled {
			recorder = client
		}
		a.Quiz = service.NewQuizService(client, client, recorder, *cfg, logger)
		logger.Info("Using remote vocabulary backend", slog.String("base_url", cfg.Backend.BaseURL))

	case config.BackendModeLocal:
		db, err := OpenLocalDB(cfg, logger)
		if err != nil {
			return nil, err
		}
		a.DB = db

		categoryRepo := repository.NewGormCategoryRepository()
		vocabRepo := repository.NewGormVocabularyRepository()

		var synth service.Synthesizer
		if cfg.TTS.Enabled {
			ttsClient, err := tts.NewClient(cfg.TTS.Endpoint, cfg.TTS.CacheDir, cfg.TTS.Timeout, logger)
			if err != nil {
				a.Close()
				return nil, fmt.Errorf("app.Build: %w", err)
			}
			synth = ttsClient
		}
		catalog := service.NewCatalogService(db, categoryRepo, vocabRepo, synth, cfg.TTS.Language)

		var recorder service.PerformanceRecorder
		if cfg.Performance.Enabled {
			recorder = service.NewPerformanceStore(db, repository.NewGormPerformanceRepository())
		}
		a.Quiz = service.NewQuizService(catalog, catalog, recorder, *cfg, logger)
		a.Import = service.NewImportService(db, categoryRepo, vocabRepo)
		logger.Info("Using local vocabulary catalog", slog.String("driver", cfg.Database.Driver))

	default:
		return nil, fmt.Errorf("app.Build: unknown backend mode %q", cfg.Backend.Mode)
	}
	return a, nil
}

// OpenLocalDB は接続してテーブルを作成します。
func OpenLocalDB(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	db, err := repository.NewDB(cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("app.OpenLocalDB: %w", err)
	}
	if err := repository.Migrate(db); err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			sqlDB.Close()
		}
		return nil, fmt.Errorf("app.OpenLocalDB: %w", err)
	}
	return db, nil
}

// Ping は依存先の疎通を確認します。ローカルモードはDB、リモートモードはカテゴリ取得で確認します。
func (a *App) Ping(ctx context.Context) error {
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
	_, err := a.Quiz.ListCategories(ctx)
	return err
}

// Close は記録の送信を待ってからDBを閉じます。
func (a *App) Close() error {
	var errs []error
	if a.Quiz != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.Quiz.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("quiz shutdown: %w", err))
		}
	}
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err == nil {
			err = sqlDB.Close()
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		} else {
			a.logger.Info("Database connection closed.")
		}
	}
	return errors.Join(errs...)
}
