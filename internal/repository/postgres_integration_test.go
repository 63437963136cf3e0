// internal/repository/postgres_integration_test.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"go_5_vocab_quiz/internal/config"
	"go_5_vocab_quiz/internal/model"

	"github.com/google/uuid"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// startPostgres は PostgreSQL コンテナを起動し、NewDB で接続した *gorm.DB を返します。
// RUN_DOCKER_TESTS=1 のときだけ実行します。
func startPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	if os.Getenv("RUN_DOCKER_TESTS") != "1" {
		t.Skip("RUN_DOCKER_TESTS=1 is not set")
	}

	pool, err := dockertest.NewPool("")
	require.NoError(t, err, "Could not construct pool")
	pool.MaxWait = 120 * time.Second

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "15-alpine",
		Env: []string{
			"POSTGRES_USER=user",
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_DB=vocab_quiz",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err, "Could not start PostgreSQL resource")
	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("Could not purge PostgreSQL resource: %s", err)
		}
	})

	dsn := fmt.Sprintf("postgres://user:secret@%s/vocab_quiz?sslmode=disable", resource.GetHostPort("5432/tcp"))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var db *gorm.DB
	err = pool.Retry(func() error {
		var errRetry error
		db, errRetry = NewDB(config.DatabaseConfig{Driver: config.DriverPostgres, URL: dsn}, logger)
		return errRetry
	})
	require.NoError(t, err, "Could not connect to PostgreSQL container")
	require.NoError(t, Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func TestPostgres_CatalogAndPerformance(t *testing.T) {
	db := startPostgres(t)
	ctx := context.Background()
	categoryRepo := NewGormCategoryRepository()
	vocabRepo := NewGormVocabularyRepository()
	perfRepo := NewGormPerformanceRepository()

	animals := &model.Category{Name: "Tiere"}
	require.NoError(t, categoryRepo.Create(ctx, db, animals))

	// 一意制約違反は ErrConflict に変換される
	err := categoryRepo.Create(ctx, db, &model.Category{Name: "Tiere"})
	assert.True(t, errors.Is(err, model.ErrConflict), "got %v", err)

	require.NoError(t, vocabRepo.Create(ctx, db, &model.Vocabulary{SourceText: "chat", TargetText: "Katze", CategoryID: animals.ID}))
	err = vocabRepo.Create(ctx, db, &model.Vocabulary{SourceText: "chat", TargetText: "Kater", CategoryID: animals.ID})
	assert.ErrorIs(t, err, model.ErrConflict)

	vocab, err := vocabRepo.FindByCategoryIDs(ctx, db, []uint{animals.ID})
	require.NoError(t, err)
	require.Len(t, vocab, 1)
	assert.Equal(t, "Tiere", vocab[0].CategoryName)

	quizID := uuid.New()
	require.NoError(t, perfRepo.Create(ctx, db, &model.PerformanceRecord{
		QuizID:         quizID,
		CategoryIDs:    []uint{animals.ID},
		TotalQuestions: 1,
		CompletedAt:    time.Now(),
		Answers: []model.AnswerRecord{
			{VocabularyID: vocab[0].ID, Direction: model.DirectionSourceToTarget, UserAnswer: "Katze", IsCorrect: true, Phase: "initial", AnsweredAt: time.Now()},
		},
	}))
	got, err := perfRepo.FindByQuizID(ctx, db, quizID)
	require.NoError(t, err)
	assert.Len(t, got.Answers, 1)
}
