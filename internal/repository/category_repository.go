//go:generate mockery --name CategoryRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"go_5_vocab_quiz/internal/middleware"
	"go_5_vocab_quiz/internal/model"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	FindAll(ctx context.Context, db *gorm.DB) ([]model.Category, error)
	FindByName(ctx context.Context, db *gorm.DB, name string) (*model.Category, error)
	Create(ctx context.Context, tx *gorm.DB, category *model.Category) error
}

type gormCategoryRepository struct{}

func NewGormCategoryRepository() CategoryRepository {
	return &gormCategoryRepository{}
}

func (r *gormCategoryRepository) FindAll(ctx context.Context, db *gorm.DB) ([]model.Category, error) {
	logger := middleware.GetLogger(ctx)
	var categories []model.Category
	result := db.WithContext(ctx).Order("name ASC").Find(&categories)
	if result.Error != nil {
		logger.Error("Error finding categories in DB", "error", result.Error)
		return nil, fmt.Errorf("gormCategoryRepository.FindAll: %w", result.Error)
	}
	return categories, nil
}

func (r *gormCategoryRepository) FindByName(ctx context.Context, db *gorm.DB, name string) (*model.Category, error) {
	logger := middleware.GetLogger(ctx)
	var category model.Category
	result := db.WithContext(ctx).Where("name = ?", name).First(&category)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding category by name in DB", "error", result.Error, "name", name)
		return nil, fmt.Errorf("gormCategoryRepository.FindByName: %w", result.Error)
	}
	return &category, nil
}

func (r *gormCategoryRepository) Create(ctx context.Context, tx *gorm.DB, category *model.Category) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(category)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return fmt.Errorf("gormCategoryRepository.Create: %w", model.ErrConflict)
		}
		logger.Error("Error creating category in DB", "error", result.Error, "name", category.Name)
		return fmt.Errorf("gormCategoryRepository.Create: %w", result.Error)
	}
	return nil
}
