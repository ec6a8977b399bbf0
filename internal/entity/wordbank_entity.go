package entity

import (
	"time"

	"github.com/google/uuid"
)

type WordStatus string

const (
	WordStatusLearning WordStatus = "LEARNING"
	WordStatusMastered WordStatus = "MASTERED"
)

type DeliveryAction string

const (
	ActionNone       DeliveryAction = "NONE"
	ActionFavorite   DeliveryAction = "FAVORITE"
	ActionLearnAgain DeliveryAction = "LEARN_AGAIN"
	ActionMastered   DeliveryAction = "MASTERED"
)

const (
	MinBucket = 1
	MaxBucket = 5
)

// WordbankEntry is the per-user spaced-repetition state of one term.
// Invariant: Status == MASTERED exactly when NextReview is nil.
type WordbankEntry struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	TermId       uuid.UUID
	Status       WordStatus
	Bucket       int // 1..5
	ReviewCount  int
	LastReviewed *time.Time
	NextReview   *time.Time
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// Delivery is one surfacing of a term to a user, append-only.
type Delivery struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	TermId      uuid.UUID
	DeliveredAt time.Time
	Action      DeliveryAction
	OpenedAt    *time.Time
}
