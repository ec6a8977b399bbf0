package model

import (
	"time"

	"github.com/google/uuid"
)

type Topic struct {
	Id             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name           string     `gorm:"type:varchar(255);not null"`
	NormalizedName string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	CanonicalSetId *uuid.UUID `gorm:"type:uuid;index"`
	UsageCount     int        `gorm:"not null;default:0"`
	CreatedAt      time.Time  `gorm:"autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime"`
}

func (Topic) TableName() string {
	return "topics"
}
