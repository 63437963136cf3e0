//go:generate mockery --name VocabularyProvider --output ./mocks --outpkg mocks --case=underscore
//go:generate mockery --name AudioSource --output ./mocks --outpkg mocks --case=underscore
//go:generate mockery --name PerformanceRecorder --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"

	"go_5_vocab_quiz/internal/model"
)

// VocabularyProvider はカテゴリと語彙の取得元です (バックエンドAPIまたはローカルDB)。
// 取得失敗は model.ErrTransport として判定できるエラーで返します。
type VocabularyProvider interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	ListVocabulary(ctx context.Context, categoryIDs []uint) ([]model.Vocabulary, error)
}

// AudioSource は語の発音音声の取得元です。
type AudioSource interface {
	FetchAudio(ctx context.Context, wordID uint) (*model.Audio, error)
}

// PerformanceRecorder は終了したクイズの成績の送信先です。
type PerformanceRecorder interface {
	RecordPerformance(ctx context.Context, record *model.PerformanceRecord) error
}
