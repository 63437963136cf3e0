// internal/service/import_service.go
package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"go_5_vocab_quiz/internal/middleware"
	"go_5_vocab_quiz/internal/model"
	"go_5_vocab_quiz/internal/repository"

	"gorm.io/gorm"
)

// CSV の列名
const (
	ColumnSource   = "Französisch"
	ColumnTarget   = "Deutsch"
	ColumnCategory = "Kategorie"
)

// ImportService は CSV から語彙をローカルDBに取り込みます。
type ImportService interface {
	ImportCSV(ctx context.Context, r io.Reader) (*model.ImportResult, error)
}

type importService struct {
	db           *gorm.DB
	categoryRepo repository.CategoryRepository
	vocabRepo    repository.VocabularyRepository
}

func NewImportService(db *gorm.DB, categoryRepo repository.CategoryRepository, vocabRepo repository.VocabularyRepository) ImportService {
	return &importService{
		db:           db,
		categoryRepo: categoryRepo,
		vocabRepo:    vocabRepo,
	}
}

// ImportCSV は1トランザクションで取り込みます。
// 出題語・訳・カテゴリのいずれかが空の行はスキップして Errors に数えます。
// 語は出題語をキーに作成または更新します。
func (s *importService) ImportCSV(ctx context.Context, r io.Reader) (*model.ImportResult, error) {
	logger := middleware.GetLogger(ctx)

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, model.NewAppError("EMPTY_CSV", "CSVが空です。", "", model.ErrInvalidInput)
		}
		return nil, model.NewAppError("INVALID_CSV", "CSVを読み込めません。", "", fmt.Errorf("%w: %w", model.ErrInvalidInput, err))
	}
	columns := indexColumns(header)
	for _, name := range []string{ColumnSource, ColumnTarget, ColumnCategory} {
		if _, ok := columns[name]; !ok {
			return nil, model.NewAppError("MISSING_COLUMN", fmt.Sprintf("列 %s がありません。", name), name, model.ErrInvalidInput)
		}
	}

	result := &model.ImportResult{}
	categoryCache := map[string]uint{}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		line := 1
		for {
			record, err := reader.Read()
			if errors.Is(err, io.EOF) {
				return nil
			}
			line++
			if err != nil {
				logger.Warn("Skipping unreadable CSV row", "line", line, "error", err)
				result.Errors++
				continue
			}

			source := field(record, columns, ColumnSource)
			target := field(record, columns, ColumnTarget)
			categoryName := field(record, columns, ColumnCategory)
			if source == "" || target == "" || categoryName == "" {
				result.Errors++
				continue
			}

			categoryID, ok := categoryCache[categoryName]
			if !ok {
				id, created, err := s.getOrCreateCategory(ctx, tx, categoryName)
				if err != nil {
					return err
				}
				if created {
					result.CategoriesCreated++
				}
				categoryCache[categoryName] = id
				categoryID = id
			}

			created, err := s.upsertVocabulary(ctx, tx, source, target, categoryID)
			if err != nil {
				return err
			}
			if created {
				result.WordsCreated++
			} else {
				result.WordsUpdated++
			}
		}
	})
	if err != nil {
		logger.Error("Vocabulary import failed", "error", err)
		return nil, fmt.Errorf("importService.ImportCSV: %w", err)
	}

	logger.Info("Vocabulary import completed",
		"categories_created", result.CategoriesCreated,
		"words_created", result.WordsCreated,
		"words_updated", result.WordsUpdated,
		"errors", result.Errors,
	)
	return result, nil
}

func (s *importService) getOrCreateCategory(ctx context.Context, tx *gorm.DB, name string) (uint, bool, error) {
	existing, err := s.categoryRepo.FindByName(ctx, tx, name)
	if err == nil {
		return existing.ID, false, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return 0, false, err
	}
	category := &model.Category{Name: name}
	if err := s.categoryRepo.Create(ctx, tx, category); err != nil {
		return 0, false, err
	}
	return category.ID, true, nil
}

func (s *importService) upsertVocabulary(ctx context.Context, tx *gorm.DB, source, target string, categoryID uint) (bool, error) {
	existing, err := s.vocabRepo.FindBySourceText(ctx, tx, source)
	if err == nil {
		updates := map[string]interface{}{
			"german_word": target,
			"category_id": categoryID,
		}
		return false, s.vocabRepo.Update(ctx, tx, existing.ID, updates)
	}
	if !errors.Is(err, model.ErrNotFound) {
		return false, err
	}
	vocab := &model.Vocabulary{SourceText: source, TargetText: target, CategoryID: categoryID}
	if err := s.vocabRepo.Create(ctx, tx, vocab); err != nil {
		return false, err
	}
	return true, nil
}

func indexColumns(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		// Excel 由来の BOM を除く
		name = strings.TrimPrefix(name, "\ufeff")
		columns[strings.TrimSpace(name)] = i
	}
	return columns
}

func field(record []string, columns map[string]int, name string) string {
	i, ok := columns[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
