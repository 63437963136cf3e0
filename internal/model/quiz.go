// internal/model/quiz.go
package model

import "github.com/google/uuid"

// クイズ開始リクエストDTO
type StartQuizRequest struct {
	CategoryIDs   []uint `json:"category_ids" validate:"required,min=1,dive,gt=0"`
	QuestionCount *int   `json:"question_count,omitempty" validate:"omitempty,gt=0"` // 省略時は設定値
}

// 回答送信リクエストDTO
type SubmitAnswerRequest struct {
	Answer *string `json:"answer" validate:"required"` // 空文字の判定はクイズ側で行う
}

// QuestionResponse は出題中の1語です。正解は含めません。
type QuestionResponse struct {
	VocabularyID uint   `json:"vocabulary_id"`
	Prompt       string `json:"prompt"`
	CategoryID   uint   `json:"category_id"`
}

type TallyResponse struct {
	Correct           int `json:"correct"`
	Incorrect         int `json:"incorrect"`
	CorrectedOnReview int `json:"corrected_on_review"`
}

// QuizResponse はクイズの現在の状態です。
type QuizResponse struct {
	QuizID         uuid.UUID         `json:"quiz_id"`
	Phase          string            `json:"phase"`
	Position       int               `json:"position"`
	Length         int               `json:"length"`
	TotalQuestions int               `json:"total_questions"`
	Answered       bool              `json:"answered"`
	Question       *QuestionResponse `json:"question,omitempty"`
	Tally          TallyResponse     `json:"tally"`
}

// AnswerResponse は採点結果です。
type AnswerResponse struct {
	Correct   bool          `json:"correct"`
	Expected  string        `json:"expected"`
	Submitted string        `json:"submitted"`
	Quiz      *QuizResponse `json:"quiz"`
}

type MissedWordResponse struct {
	VocabularyID uint   `json:"vocabulary_id"`
	SourceText   string `json:"source_text"`
	TargetText   string `json:"target_text"`
}

// SummaryResponse は終了したクイズの集計です。
type SummaryResponse struct {
	QuizID            uuid.UUID            `json:"quiz_id"`
	TotalQuestions    int                  `json:"total_questions"`
	CorrectFirstTry   int                  `json:"correct_first_try"`
	CorrectedOnReview int                  `json:"corrected_on_review"`
	StillIncorrect    int                  `json:"still_incorrect"`
	MissedWords       []MissedWordResponse `json:"missed_words"`
}

// ImportResult は CSV 取り込みの件数です。
type ImportResult struct {
	CategoriesCreated int `json:"categories_created"`
	WordsCreated      int `json:"words_created"`
	WordsUpdated      int `json:"words_updated"`
	Errors            int `json:"errors"`
}
