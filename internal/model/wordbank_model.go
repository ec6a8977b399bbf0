package model

import (
	"time"

	"github.com/google/uuid"
)

type WordbankEntry struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_wordbank_user_term;index"`
	TermId       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_wordbank_user_term"`
	Status       string    `gorm:"type:varchar(16);not null;default:'LEARNING'"`
	Bucket       int       `gorm:"not null;default:1"`
	ReviewCount  int       `gorm:"not null;default:0"`
	LastReviewed *time.Time
	NextReview   *time.Time `gorm:"index"`
	CreatedAt    time.Time  `gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime"`
}

func (WordbankEntry) TableName() string {
	return "wordbank_entries"
}
