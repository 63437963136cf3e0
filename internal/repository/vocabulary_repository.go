//go:generate mockery --name VocabularyRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"go_5_vocab_quiz/internal/middleware"
	"go_5_vocab_quiz/internal/model"

	"gorm.io/gorm"
)

type VocabularyRepository interface {
	FindByCategoryIDs(ctx context.Context, db *gorm.DB, categoryIDs []uint) ([]model.Vocabulary, error)
	FindByID(ctx context.Context, db *gorm.DB, id uint) (*model.Vocabulary, error)
	FindBySourceText(ctx context.Context, db *gorm.DB, sourceText string) (*model.Vocabulary, error)
	Create(ctx context.Context, tx *gorm.DB, vocab *model.Vocabulary) error
	Update(ctx context.Context, tx *gorm.DB, id uint, updates map[string]interface{}) error
}

type gormVocabularyRepository struct{}

func NewGormVocabularyRepository() VocabularyRepository {
	return &gormVocabularyRepository{}
}

// FindByCategoryIDs はカテゴリ名を埋めた語彙を返します。
func (r *gormVocabularyRepository) FindByCategoryIDs(ctx context.Context, db *gorm.DB, categoryIDs []uint) ([]model.Vocabulary, error) {
	logger := middleware.GetLogger(ctx)
	var vocab []model.Vocabulary
	result := db.WithContext(ctx).
		Preload("Category").
		Where("category_id IN ?", categoryIDs).
		Order("id ASC").
		Find(&vocab)
	if result.Error != nil {
		logger.Error("Error finding vocabulary by categories in DB", "error", result.Error, "category_ids", categoryIDs)
		return nil, fmt.Errorf("gormVocabularyRepository.FindByCategoryIDs: %w", result.Error)
	}
	for i := range vocab {
		if vocab[i].Category != nil {
			vocab[i].CategoryName = vocab[i].Category.Name
		}
	}
	return vocab, nil
}

func (r *gormVocabularyRepository) FindByID(ctx context.Context, db *gorm.DB, id uint) (*model.Vocabulary, error) {
	logger := middleware.GetLogger(ctx)
	var vocab model.Vocabulary
	result := db.WithContext(ctx).First(&vocab, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding vocabulary by ID in DB", "error", result.Error, "vocabulary_id", id)
		return nil, fmt.Errorf("gormVocabularyRepository.FindByID: %w", result.Error)
	}
	return &vocab, nil
}

func (r *gormVocabularyRepository) FindBySourceText(ctx context.Context, db *gorm.DB, sourceText string) (*model.Vocabulary, error) {
	logger := middleware.GetLogger(ctx)
	var vocab model.Vocabulary
	result := db.WithContext(ctx).Where("french_word = ?", sourceText).First(&vocab)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding vocabulary by source text in DB", "error", result.Error, "source_text", sourceText)
		return nil, fmt.Errorf("gormVocabularyRepository.FindBySourceText: %w", result.Error)
	}
	return &vocab, nil
}

func (r *gormVocabularyRepository) Create(ctx context.Context, tx *gorm.DB, vocab *model.Vocabulary) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Omit("Category").Create(vocab)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return fmt.Errorf("gormVocabularyRepository.Create: %w", model.ErrConflict)
		}
		logger.Error("Error creating vocabulary in DB", "error", result.Error, "source_text", vocab.SourceText)
		return fmt.Errorf("gormVocabularyRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormVocabularyRepository) Update(ctx context.Context, tx *gorm.DB, id uint, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Model(&model.Vocabulary{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating vocabulary in DB", "error", result.Error, "vocabulary_id", id)
		return fmt.Errorf("gormVocabularyRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
