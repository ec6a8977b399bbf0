package model

import (
	"time"

	"github.com/google/uuid"
)

type CanonicalSet struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (CanonicalSet) TableName() string {
	return "canonical_sets"
}
