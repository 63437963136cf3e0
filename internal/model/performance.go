// internal/model/performance.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// DirectionSourceToTarget は出題方向 (仏 -> 独) です。
const DirectionSourceToTarget = "fr_de"

// PerformanceRecord は終了したクイズ1回分の成績です。
type PerformanceRecord struct {
	ID                uint           `gorm:"primaryKey" json:"-"`
	QuizID            uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"quiz_id"`
	CategoryIDs       []uint         `gorm:"serializer:json" json:"category_ids"`
	TotalQuestions    int            `json:"total_questions"`
	CorrectFirstTry   int            `json:"correct_first_try"`
	CorrectedOnReview int            `json:"corrected_on_review"`
	StillIncorrect    int            `json:"still_incorrect"`
	CompletedAt       time.Time      `json:"completed_at"`
	Answers           []AnswerRecord `gorm:"foreignKey:PerformanceRecordID" json:"answers"`
}

func (PerformanceRecord) TableName() string {
	return "performance_records"
}

// AnswerRecord は1回の回答です。JSON 名はバックエンドの UserPerformance に合わせています。
type AnswerRecord struct {
	ID                  uint      `gorm:"primaryKey" json:"-"`
	PerformanceRecordID uint      `gorm:"not null;index" json:"-"`
	VocabularyID        uint      `gorm:"not null" json:"vocabulary"`
	Direction           string    `gorm:"size:10;not null" json:"direction"`
	UserAnswer          string    `json:"user_answer"`
	IsCorrect           bool      `json:"is_correct"`
	Phase               string    `gorm:"size:20" json:"phase"`
	AnsweredAt          time.Time `json:"timestamp"`
}

func (AnswerRecord) TableName() string {
	return "performance_answers"
}
