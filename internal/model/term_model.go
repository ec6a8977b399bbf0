package model

import (
	"time"

	"github.com/google/uuid"
)

type Term struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey"`
	CanonicalSetId   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_terms_set_key;index"`
	TopicId          uuid.UUID `gorm:"type:uuid;not null;index"`
	Text             string    `gorm:"type:varchar(255);not null"`
	NormalizedKey    string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_terms_set_key"`
	Definition       string    `gorm:"type:text;not null"`
	Examples         []string  `gorm:"serializer:json"`
	Source           string    `gorm:"type:varchar(64)"`
	SourceURL        string    `gorm:"type:varchar(512)"`
	Verified         bool      `gorm:"not null;default:false"`
	AIGenerated      bool      `gorm:"not null;default:false"`
	ConfidenceScore  float64   `gorm:"not null;default:0"`
	ComplexityLevel  string    `gorm:"type:varchar(16);not null;default:'beginner'"`
	Category         string    `gorm:"type:varchar(64)"`
	ModerationStatus string    `gorm:"type:varchar(16);not null;default:'pending';index"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
}

func (Term) TableName() string {
	return "terms"
}
