// internal/model/vocabulary.go
package model

import "time"

// Category は単語のトピック分類です。
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"-"`
}

func (Category) TableName() string {
	return "categories"
}

// Vocabulary は出題される1語です。SourceText が問題、TargetText が正解になります。
// JSON 名はバックエンド API (french_word / german_word) に合わせています。
type Vocabulary struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SourceText string    `gorm:"column:french_word;size:200;not null;uniqueIndex" json:"french_word"`
	TargetText string    `gorm:"column:german_word;size:200;not null" json:"german_word"`
	CategoryID uint      `gorm:"not null;index" json:"category"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`

	// 関連 (Preload用)
	Category     *Category `gorm:"foreignKey:CategoryID" json:"-"`
	CategoryName string    `gorm:"-" json:"category_name,omitempty"`
}

func (Vocabulary) TableName() string {
	return "vocabulary"
}

// Audio は1語分の発音音声です。
type Audio struct {
	Data        []byte
	ContentType string
	Text        string
}
