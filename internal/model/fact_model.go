package model

import (
	"time"

	"github.com/google/uuid"
)

type Fact struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey"`
	TopicId       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_facts_topic_key;index"`
	Text          string    `gorm:"type:text;not null"`
	NormalizedKey string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_facts_topic_key"`
	Source        string    `gorm:"type:varchar(64)"`
	Category      string    `gorm:"type:varchar(64)"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (Fact) TableName() string {
	return "facts"
}
