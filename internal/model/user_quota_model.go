package model

import (
	"time"

	"github.com/google/uuid"
)

type UserQuota struct {
	UserId       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Tier         string    `gorm:"type:varchar(16);not null;default:'free';index"`
	CurrentUsage int       `gorm:"not null;default:0"`
	PeriodStart  time.Time `gorm:"not null"`
	LastReset    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (UserQuota) TableName() string {
	return "user_quotas"
}
