//go:generate mockery --name PerformanceRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"go_5_vocab_quiz/internal/middleware"
	"go_5_vocab_quiz/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PerformanceRepository interface {
	Create(ctx context.Context, tx *gorm.DB, record *model.PerformanceRecord) error
	FindByQuizID(ctx context.Context, db *gorm.DB, quizID uuid.UUID) (*model.PerformanceRecord, error)
}

type gormPerformanceRepository struct{}

func NewGormPerformanceRepository() PerformanceRepository {
	return &gormPerformanceRepository{}
}

// Create は成績と回答を保存します。回答は関連として同時に作成されます。
func (r *gormPerformanceRepository) Create(ctx context.Context, tx *gorm.DB, record *model.PerformanceRecord) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(record)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return fmt.Errorf("gormPerformanceRepository.Create: %w", model.ErrConflict)
		}
		logger.Error("Error creating performance record in DB", "error", result.Error, "quiz_id", record.QuizID.String())
		return fmt.Errorf("gormPerformanceRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormPerformanceRepository) FindByQuizID(ctx context.Context, db *gorm.DB, quizID uuid.UUID) (*model.PerformanceRecord, error) {
	logger := middleware.GetLogger(ctx)
	var record model.PerformanceRecord
	result := db.WithContext(ctx).
		Preload("Answers", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("quiz_id = ?", quizID).
		First(&record)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding performance record in DB", "error", result.Error, "quiz_id", quizID.String())
		return nil, fmt.Errorf("gormPerformanceRepository.FindByQuizID: %w", result.Error)
	}
	return &record, nil
}
