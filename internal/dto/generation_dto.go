package dto

import (
	"github.com/google/uuid"
)

type GenerateRequest struct {
	TopicName  string `json:"topic_name" validate:"required,min=2,max=100"`
	Count      int    `json:"count" validate:"omitempty,min=1,max=25"`
	Complexity string `json:"complexity" validate:"omitempty,oneof=beginner intermediate advanced"`

	// Set from headers by the gateway, not part of the JSON body.
	UserId uuid.UUID `json:"-"`
	Tier   string    `json:"-"`
}

// GenerationJobMessage is the queue payload for one asynchronous
// generation run.
type GenerationJobMessage struct {
	JobId      uuid.UUID `json:"job_id"`
	UserId     uuid.UUID `json:"user_id"`
	TopicName  string    `json:"topic_name"`
	Tier       string    `json:"tier"`
	Count      int       `json:"count"`
	Complexity string    `json:"complexity"`
}

type GenerateResponse struct {
	JobId     uuid.UUID `json:"job_id"`
	TopicName string    `json:"topic_name"`
	Status    string    `json:"status"`
}

// PipelineStats summarizes one generation run for logging and the admin
// surface.
type PipelineStats struct {
	TopicName      string `json:"topic_name"`
	Requested      int    `json:"requested"`
	Acquired       int    `json:"acquired"`
	Rejected       int    `json:"rejected"`
	Duplicates     int    `json:"duplicates"`
	DuplicateFacts int    `json:"duplicate_facts"`
	PersistedTerms int    `json:"persisted_terms"`
	PersistedFacts int    `json:"persisted_facts"`
}

type ModerateTermRequest struct {
	TermId uuid.UUID `json:"term_id" validate:"required"`
	Status string    `json:"status" validate:"required,oneof=approved rejected"`
}

type ModerateTermResponse struct {
	TermId uuid.UUID `json:"term_id"`
	Status string    `json:"status"`
}
