package model

import (
	"time"

	"github.com/google/uuid"
)

type UserTopic struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_topics_pair"`
	TopicId   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_topics_pair"`
	Weight    int       `gorm:"not null;default:1"`
	Enabled   bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (UserTopic) TableName() string {
	return "user_topics"
}
