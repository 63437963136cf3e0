// cmd/quiz_tui/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"go_5_vocab_quiz/internal/app"
	"go_5_vocab_quiz/internal/config"
	"go_5_vocab_quiz/internal/middleware"
	"go_5_vocab_quiz/internal/tui"
)

func main() {
	configDir := flag.String("config", "configs", "directory containing config.yaml")
	logPath := flag.String("log", "quiz_tui.log", "log file (the terminal is used by the UI)")
	audioDir := flag.String("audio-dir", "", "directory for downloaded pronunciation files (default: OS temp dir)")
	flag.Parse()

	cfg, err := config.Load(*configDir, "../configs")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	logger := app.NewLogger(cfg.Log.Level, logFile)
	slog.SetDefault(logger)

	application, err := app.Build(cfg, logger)
	if err != nil {
		logger.Error("Error initializing application", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error initializing application: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := application.Close(); err != nil {
			logger.Error("Error during application shutdown", slog.Any("error", err))
		}
	}()

	ctx := middleware.WithLogger(context.Background(), logger.With(slog.String("frontend", "tui")))
	m := tui.New(ctx, application.Quiz, tui.Options{
		MinQuestions:     cfg.Quiz.MinQuestions,
		MaxQuestions:     cfg.Quiz.MaxQuestions,
		DefaultQuestions: cfg.Quiz.DefaultQuestions,
		AudioDir:         *audioDir,
	})

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		logger.Error("TUI exited with error", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
