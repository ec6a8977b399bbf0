package dto

import (
	"time"

	"github.com/google/uuid"
)

type AdoptTopicRequest struct {
	TopicName string `json:"topic_name" validate:"required,min=2,max=100"`
	Weight    int    `json:"weight" validate:"omitempty,min=1,max=10"`

	UserId uuid.UUID `json:"-"`
}

type AdoptTopicResponse struct {
	UserTopicId uuid.UUID `json:"user_topic_id"`
	TopicId     uuid.UUID `json:"topic_id"`
	TopicName   string    `json:"topic_name"`
}

type UserTopicItem struct {
	Id        uuid.UUID `json:"id"`
	TopicId   uuid.UUID `json:"topic_id"`
	TopicName string    `json:"topic_name"`
	Weight    int       `json:"weight"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"created_at"`
}

type UpdateUserTopicRequest struct {
	Id      uuid.UUID `json:"-"`
	Weight  *int      `json:"weight" validate:"omitempty,min=1,max=10"`
	Enabled *bool     `json:"enabled"`

	UserId uuid.UUID `json:"-"`
}
