package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserTopic links a user to a topic with a delivery preference weight.
type UserTopic struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	TopicId   uuid.UUID
	Weight    int
	Enabled   bool
	CreatedAt time.Time
}
