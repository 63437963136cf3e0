package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go_5_vocab_quiz/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// --- テストヘルパー関数 (インメモリDBセットアップ) ---
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err, "failed to connect database for repository testing")
	require.NoError(t, Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func seedCatalog(t *testing.T, db *gorm.DB) (model.Category, model.Category) {
	t.Helper()
	animals := model.Category{Name: "Tiere"}
	food := model.Category{Name: "Essen"}
	require.NoError(t, db.Create(&animals).Error)
	require.NoError(t, db.Create(&food).Error)

	vocab := []model.Vocabulary{
		{SourceText: "chat", TargetText: "Katze", CategoryID: animals.ID},
		{SourceText: "chien", TargetText: "Hund", CategoryID: animals.ID},
		{SourceText: "pain", TargetText: "Brot", CategoryID: food.ID},
	}
	require.NoError(t, db.Omit("Category").Create(&vocab).Error)
	return animals, food
}

func TestCategoryRepository(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormCategoryRepository()

	seedCatalog(t, db)

	t.Run("正常系: 名前順で全件取得", func(t *testing.T) {
		categories, err := repo.FindAll(ctx, db)
		require.NoError(t, err)
		require.Len(t, categories, 2)
		assert.Equal(t, "Essen", categories[0].Name)
		assert.Equal(t, "Tiere", categories[1].Name)
	})

	t.Run("正常系: 名前で取得", func(t *testing.T) {
		c, err := repo.FindByName(ctx, db, "Tiere")
		require.NoError(t, err)
		assert.NotZero(t, c.ID)
	})

	t.Run("異常系: 存在しない名前", func(t *testing.T) {
		_, err := repo.FindByName(ctx, db, "Farben")
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("異常系: 名前の重複", func(t *testing.T) {
		err := repo.Create(ctx, db, &model.Category{Name: "Tiere"})
		assert.Error(t, err)
	})
}

func TestVocabularyRepository_FindByCategoryIDs(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormVocabularyRepository()
	animals, food := seedCatalog(t, db)

	tests := []struct {
		name    string
		ids     []uint
		wantLen int
	}{
		{name: "正常系: 1カテゴリ", ids: []uint{animals.ID}, wantLen: 2},
		{name: "正常系: 複数カテゴリ", ids: []uint{animals.ID, food.ID}, wantLen: 3},
		{name: "正常系: 該当なし", ids: []uint{999}, wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vocab, err := repo.FindByCategoryIDs(ctx, db, tt.ids)
			require.NoError(t, err)
			assert.Len(t, vocab, tt.wantLen)
			for _, v := range vocab {
				assert.NotEmpty(t, v.CategoryName)
			}
		})
	}
}

func TestVocabularyRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormVocabularyRepository()
	animals, food := seedCatalog(t, db)

	v := &model.Vocabulary{SourceText: "oiseau", TargetText: "Vogel", CategoryID: animals.ID}
	require.NoError(t, repo.Create(ctx, db, v))
	require.NotZero(t, v.ID)

	found, err := repo.FindBySourceText(ctx, db, "oiseau")
	require.NoError(t, err)
	assert.Equal(t, v.ID, found.ID)

	require.NoError(t, repo.Update(ctx, db, v.ID, map[string]interface{}{
		"german_word": "der Vogel",
		"category_id": food.ID,
	}))

	updated, err := repo.FindByID(ctx, db, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "der Vogel", updated.TargetText)
	assert.Equal(t, food.ID, updated.CategoryID)

	_, err = repo.FindByID(ctx, db, 4242)
	assert.ErrorIs(t, err, model.ErrNotFound)

	err = repo.Update(ctx, db, 4242, map[string]interface{}{"german_word": "x"})
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = repo.FindBySourceText(ctx, db, "poisson")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestPerformanceRepository(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormPerformanceRepository()

	quizID := uuid.New()
	now := time.Now().UTC().Truncate(time.Second)
	record := &model.PerformanceRecord{
		QuizID:            quizID,
		CategoryIDs:       []uint{1, 2},
		TotalQuestions:    2,
		CorrectFirstTry:   1,
		CorrectedOnReview: 1,
		CompletedAt:       now,
		Answers: []model.AnswerRecord{
			{VocabularyID: 1, Direction: model.DirectionSourceToTarget, UserAnswer: "Hund", IsCorrect: false, Phase: "initial", AnsweredAt: now},
			{VocabularyID: 2, Direction: model.DirectionSourceToTarget, UserAnswer: "Brot", IsCorrect: true, Phase: "initial", AnsweredAt: now},
			{VocabularyID: 1, Direction: model.DirectionSourceToTarget, UserAnswer: "Katze", IsCorrect: true, Phase: "review", AnsweredAt: now},
		},
	}
	require.NoError(t, repo.Create(ctx, db, record))

	got, err := repo.FindByQuizID(ctx, db, quizID)
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 2}, got.CategoryIDs)
	assert.Equal(t, 1, got.CorrectedOnReview)
	require.Len(t, got.Answers, 3)
	assert.Equal(t, "review", got.Answers[2].Phase)
	assert.True(t, got.Answers[2].IsCorrect)

	_, err = repo.FindByQuizID(ctx, db, uuid.New())
	assert.ErrorIs(t, err, model.ErrNotFound)
}
