// cmd/vocab_import/main.go
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"go_5_vocab_quiz/internal/app"
	"go_5_vocab_quiz/internal/config"
	"go_5_vocab_quiz/internal/middleware"
	"go_5_vocab_quiz/internal/repository"
	"go_5_vocab_quiz/internal/service"
)

func main() {
	configDir := flag.String("config", "configs", "directory containing config.yaml")
	csvPath := flag.String("file", "", "CSV file with Französisch, Deutsch, Kategorie columns")
	flag.Parse()

	if *csvPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configDir, "../configs")
	if err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger := app.NewLogger(cfg.Log.Level, os.Stderr)
	slog.SetDefault(logger)

	// 取り込み先は常にローカルDB
	db, err := app.OpenLocalDB(cfg, logger)
	if err != nil {
		logger.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		os.Exit(1)
	}
	defer sqlDB.Close()

	f, err := os.Open(*csvPath)
	if err != nil {
		logger.Error("Error opening CSV file", slog.String("path", *csvPath), slog.Any("error", err))
		os.Exit(1)
	}
	defer f.Close()

	importer := service.NewImportService(db, repository.NewGormCategoryRepository(), repository.NewGormVocabularyRepository())
	ctx := middleware.WithLogger(context.Background(), logger)
	result, err := importer.ImportCSV(ctx, f)
	if err != nil {
		logger.Error("Import failed", slog.String("path", *csvPath), slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("Import finished",
		slog.String("path", *csvPath),
		slog.Int("categories_created", result.CategoriesCreated),
		slog.Int("words_created", result.WordsCreated),
		slog.Int("words_updated", result.WordsUpdated),
		slog.Int("errors", result.Errors),
	)
}
