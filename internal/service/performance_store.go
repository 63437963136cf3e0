// internal/service/performance_store.go
package service

import (
	"context"
	"fmt"

	"go_5_vocab_quiz/internal/model"
	"go_5_vocab_quiz/internal/repository"

	"gorm.io/gorm"
)

// PerformanceStore は成績をローカルDBに保存する PerformanceRecorder です。
type PerformanceStore struct {
	db   *gorm.DB
	repo repository.PerformanceRepository
}

func NewPerformanceStore(db *gorm.DB, repo repository.PerformanceRepository) *PerformanceStore {
	return &PerformanceStore{db: db, repo: repo}
}

func (s *PerformanceStore) RecordPerformance(ctx context.Context, record *model.PerformanceRecord) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.Create(ctx, tx, record)
	})
	if err != nil {
		return fmt.Errorf("PerformanceStore.RecordPerformance: %w", err)
	}
	return nil
}
