package model

import (
	"time"

	"github.com/google/uuid"
)

type Delivery struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId      uuid.UUID `gorm:"type:uuid;not null;index"`
	TermId      uuid.UUID `gorm:"type:uuid;not null;index"`
	DeliveredAt time.Time `gorm:"not null"`
	Action      string    `gorm:"type:varchar(16);not null;default:'NONE'"`
	OpenedAt    *time.Time
}

func (Delivery) TableName() string {
	return "deliveries"
}
