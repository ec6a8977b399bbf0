package dto

import (
	"time"

	"github.com/google/uuid"
)

type DeliveryInfo struct {
	Id          uuid.UUID `json:"id"`
	DeliveredAt time.Time `json:"delivered_at"`
}

type WordbankInfo struct {
	Id     uuid.UUID `json:"id"`
	Bucket int       `json:"bucket"`
	Status string    `json:"status"`
}

// NextWordResponse is the delivery payload handed to the client layer.
// Empty is true when the user has nothing due and no unseen terms yet.
type NextWordResponse struct {
	Empty      bool          `json:"empty"`
	Term       string        `json:"term,omitempty"`
	Definition string        `json:"definition,omitempty"`
	Example    string        `json:"example,omitempty"`
	Facts      []string      `json:"facts,omitempty"`
	Delivery   *DeliveryInfo `json:"delivery,omitempty"`
	Wordbank   *WordbankInfo `json:"wordbank,omitempty"`
}

type RecordActionRequest struct {
	DeliveryId uuid.UUID  `json:"delivery_id" validate:"required"`
	Action     string     `json:"action" validate:"required,oneof=NONE FAVORITE LEARN_AGAIN MASTERED"`
	WordbankId *uuid.UUID `json:"wordbank_id"`

	UserId uuid.UUID `json:"-"`
}

type RecordActionResponse struct {
	DeliveryId uuid.UUID     `json:"delivery_id"`
	Action     string        `json:"action"`
	Wordbank   *WordbankInfo `json:"wordbank,omitempty"`
}
