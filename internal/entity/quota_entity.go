package entity

import (
	"time"

	"github.com/google/uuid"
)

type QuotaTier string

const (
	TierFree       QuotaTier = "free"
	TierBasic      QuotaTier = "basic"
	TierPremium    QuotaTier = "premium"
	TierEnterprise QuotaTier = "enterprise"
)

// QuotaRecord tracks one user's generation-request budget for the current
// period.
type QuotaRecord struct {
	UserId       uuid.UUID
	Tier         QuotaTier
	CurrentUsage int
	PeriodStart  time.Time
	LastReset    time.Time
	UpdatedAt    *time.Time
}
