package entity

import (
	"time"

	"github.com/google/uuid"
)

// Topic is a user-facing subject. NormalizedName is the case-insensitive
// lookup key; Name keeps the casing of the first submission.
type Topic struct {
	Id             uuid.UUID
	Name           string
	NormalizedName string
	CanonicalSetId *uuid.UUID
	UsageCount     int
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}

// CanonicalSet owns the shared terms and facts for one normalized topic
// name. At most one set exists per normalized name over the system lifetime.
type CanonicalSet struct {
	Id        uuid.UUID
	CreatedAt time.Time
}
