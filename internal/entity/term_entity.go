package entity

import (
	"time"

	"github.com/google/uuid"
)

type ModerationStatus string

const (
	ModerationPending  ModerationStatus = "pending"
	ModerationApproved ModerationStatus = "approved"
	ModerationRejected ModerationStatus = "rejected"
)

type Term struct {
	Id               uuid.UUID
	CanonicalSetId   uuid.UUID
	TopicId          uuid.UUID
	Text             string // normalized, title-cased
	NormalizedKey    string // lowercase of Text, the in-set uniqueness key
	Definition       string
	Examples         []string // at most 3
	Source           string
	SourceURL        string
	Verified         bool
	AIGenerated      bool
	ConfidenceScore  float64 // [0,1]
	ComplexityLevel  string  // beginner / intermediate / advanced
	Category         string
	ModerationStatus ModerationStatus
	CreatedAt        time.Time
	UpdatedAt        *time.Time
}

type Fact struct {
	Id            uuid.UUID
	TopicId       uuid.UUID
	Text          string
	NormalizedKey string
	Source        string
	Category      string
	CreatedAt     time.Time
}
