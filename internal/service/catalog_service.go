// internal/service/catalog_service.go
package service

import (
	"context"
	"errors"
	"fmt"

	"go_5_vocab_quiz/internal/middleware"
	"go_5_vocab_quiz/internal/model"
	"go_5_vocab_quiz/internal/repository"

	"gorm.io/gorm"
)

// Synthesizer はテキストを音声に変換します (tts.Client が実装)。
type Synthesizer interface {
	Synthesize(ctx context.Context, text, lang string) ([]byte, error)
}

// CatalogService はローカルDBの語彙を VocabularyProvider / AudioSource として提供します。
type CatalogService struct {
	db           *gorm.DB
	categoryRepo repository.CategoryRepository
	vocabRepo    repository.VocabularyRepository
	synth        Synthesizer // nil なら音声なし
	language     string
}

func NewCatalogService(db *gorm.DB, categoryRepo repository.CategoryRepository, vocabRepo repository.VocabularyRepository, synth Synthesizer, language string) *CatalogService {
	return &CatalogService{
		db:           db,
		categoryRepo: categoryRepo,
		vocabRepo:    vocabRepo,
		synth:        synth,
		language:     language,
	}
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categoryRepo.FindAll(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrTransport, err)
	}
	if categories == nil {
		categories = []model.Category{}
	}
	return categories, nil
}

func (s *CatalogService) ListVocabulary(ctx context.Context, categoryIDs []uint) ([]model.Vocabulary, error) {
	vocab, err := s.vocabRepo.FindByCategoryIDs(ctx, s.db, categoryIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrTransport, err)
	}
	return vocab, nil
}

// FetchAudio は語の出題側テキストを読み上げます。
func (s *CatalogService) FetchAudio(ctx context.Context, wordID uint) (*model.Audio, error) {
	logger := middleware.GetLogger(ctx)
	if s.synth == nil {
		return nil, fmt.Errorf("%w: tts disabled", model.ErrAudioUnavailable)
	}

	vocab, err := s.vocabRepo.FindByID(ctx, s.db, wordID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, fmt.Errorf("%w: vocabulary %d not found", model.ErrAudioUnavailable, wordID)
		}
		return nil, fmt.Errorf("%w: %w", model.ErrTransport, err)
	}

	data, err := s.synth.Synthesize(ctx, vocab.SourceText, s.language)
	if err != nil {
		logger.Warn("Speech synthesis failed", "vocabulary_id", wordID, "error", err)
		return nil, fmt.Errorf("%w: %v", model.ErrAudioUnavailable, err)
	}
	return &model.Audio{Data: data, ContentType: "audio/mpeg", Text: vocab.SourceText}, nil
}
