package quota

import (
	"context"
	"fmt"
	"sort"
	"time"

	"vocabforge-be/internal/entity"
	"vocabforge-be/internal/pkg/logger"
	"vocabforge-be/internal/repository/specification"
	"vocabforge-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// TierBudget is the request allowance for one subscription tier within its
// rolling reset window.
type TierBudget struct {
	MaxRequests int
	ResetWindow time.Duration
}

var tierBudgets = map[entity.QuotaTier]TierBudget{
	entity.TierFree:       {MaxRequests: 10, ResetWindow: 24 * time.Hour},
	entity.TierBasic:      {MaxRequests: 50, ResetWindow: 24 * time.Hour},
	entity.TierPremium:    {MaxRequests: 200, ResetWindow: 24 * time.Hour},
	entity.TierEnterprise: {MaxRequests: 1000, ResetWindow: 24 * time.Hour},
}

// BudgetFor returns the budget for a tier. Unknown tiers fall back to the
// free budget rather than erroring, so a bad tier string never grants more.
func BudgetFor(tier entity.QuotaTier) TierBudget {
	if b, ok := tierBudgets[tier]; ok {
		return b
	}
	return tierBudgets[entity.TierFree]
}

// UsageEntry is one row of the admin usage report.
type UsageEntry struct {
	UserId           uuid.UUID        `json:"user_id"`
	Tier             entity.QuotaTier `json:"tier"`
	CurrentUsage     int              `json:"current_usage"`
	MaxRequests      int              `json:"max_requests"`
	Utilization      float64          `json:"utilization"`
	RecommendUpgrade bool             `json:"recommend_upgrade"`
}

type Governor struct {
	logger logger.ILogger
	now    func() time.Time
}

func NewGovernor(logger logger.ILogger) *Governor {
	return &Governor{
		logger: logger,
		now:    time.Now,
	}
}

// rollover resets the counter when the record's window has elapsed. Returns
// true when the record was mutated and needs saving.
func (g *Governor) rollover(record *entity.QuotaRecord, budget TierBudget) bool {
	now := g.now()
	if now.Sub(record.LastReset) < budget.ResetWindow {
		return false
	}
	record.CurrentUsage = 0
	record.PeriodStart = now
	record.LastReset = now
	return true
}

// CheckAndConsume reports whether the user may run one more generation
// request, consuming one unit of their budget when allowed. Denial never
// consumes.
func (g *Governor) CheckAndConsume(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, tier entity.QuotaTier) (bool, error) {
	repo := uow.QuotaRepository()
	budget := BudgetFor(tier)

	record, err := repo.FindByUser(ctx, userId)
	if err != nil {
		return false, fmt.Errorf("failed to load quota record: %w", err)
	}
	if record == nil {
		now := g.now()
		record = &entity.QuotaRecord{
			UserId:       userId,
			Tier:         tier,
			CurrentUsage: 0,
			PeriodStart:  now,
			LastReset:    now,
		}
		if err := repo.Create(ctx, record); err != nil {
			return false, fmt.Errorf("failed to create quota record: %w", err)
		}
	}

	rolled := g.rollover(record, budget)

	if record.CurrentUsage >= budget.MaxRequests {
		if rolled {
			if err := repo.Update(ctx, record); err != nil {
				return false, fmt.Errorf("failed to save quota rollover: %w", err)
			}
		}
		g.logger.Warn("quota", "Generation request denied", map[string]interface{}{
			"user_id": userId.String(),
			"tier":    string(tier),
			"usage":   record.CurrentUsage,
			"max":     budget.MaxRequests,
		})
		return false, nil
	}

	record.CurrentUsage++
	if err := repo.Update(ctx, record); err != nil {
		return false, fmt.Errorf("failed to consume quota: %w", err)
	}
	return true, nil
}

// ResetUser zeroes one user's counter immediately.
func (g *Governor) ResetUser(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) error {
	repo := uow.QuotaRepository()
	record, err := repo.FindByUser(ctx, userId)
	if err != nil {
		return fmt.Errorf("failed to load quota record: %w", err)
	}
	if record == nil {
		return nil
	}
	now := g.now()
	record.CurrentUsage = 0
	record.PeriodStart = now
	record.LastReset = now
	if err := repo.Update(ctx, record); err != nil {
		return fmt.Errorf("failed to reset quota: %w", err)
	}
	g.logger.Info("quota", "Quota reset for user", map[string]interface{}{
		"user_id": userId.String(),
	})
	return nil
}

// BulkResetTier zeroes every counter on the given tier and returns how many
// records were touched.
func (g *Governor) BulkResetTier(ctx context.Context, uow unitofwork.UnitOfWork, tier entity.QuotaTier) (int, error) {
	repo := uow.QuotaRepository()
	records, err := repo.FindAll(ctx, specification.TierIs{Tier: string(tier)})
	if err != nil {
		return 0, fmt.Errorf("failed to list quota records: %w", err)
	}
	now := g.now()
	reset := 0
	for _, record := range records {
		record.CurrentUsage = 0
		record.PeriodStart = now
		record.LastReset = now
		if err := repo.Update(ctx, record); err != nil {
			return reset, fmt.Errorf("failed to reset quota for user %s: %w", record.UserId, err)
		}
		reset++
	}
	g.logger.Info("quota", "Bulk quota reset", map[string]interface{}{
		"tier":  string(tier),
		"reset": reset,
	})
	return reset, nil
}

// ChangeTier moves a user onto a new tier and resets their counter so the
// new budget starts clean.
func (g *Governor) ChangeTier(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, tier entity.QuotaTier) error {
	repo := uow.QuotaRepository()
	record, err := repo.FindByUser(ctx, userId)
	if err != nil {
		return fmt.Errorf("failed to load quota record: %w", err)
	}
	now := g.now()
	if record == nil {
		record = &entity.QuotaRecord{
			UserId:      userId,
			Tier:        tier,
			PeriodStart: now,
			LastReset:   now,
		}
		if err := repo.Create(ctx, record); err != nil {
			return fmt.Errorf("failed to create quota record: %w", err)
		}
		return nil
	}
	record.Tier = tier
	record.CurrentUsage = 0
	record.PeriodStart = now
	record.LastReset = now
	if err := repo.Update(ctx, record); err != nil {
		return fmt.Errorf("failed to change tier: %w", err)
	}
	g.logger.Info("quota", "Tier changed", map[string]interface{}{
		"user_id": userId.String(),
		"tier":    string(tier),
	})
	return nil
}

// UsageReport lists the top users by utilization of their tier budget,
// flagging anyone above 80% for a tier upgrade.
func (g *Governor) UsageReport(ctx context.Context, uow unitofwork.UnitOfWork, limit int) ([]UsageEntry, error) {
	repo := uow.QuotaRepository()
	records, err := repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list quota records: %w", err)
	}

	entries := make([]UsageEntry, 0, len(records))
	for _, record := range records {
		budget := BudgetFor(record.Tier)
		utilization := float64(record.CurrentUsage) / float64(budget.MaxRequests)
		entries = append(entries, UsageEntry{
			UserId:           record.UserId,
			Tier:             record.Tier,
			CurrentUsage:     record.CurrentUsage,
			MaxRequests:      budget.MaxRequests,
			Utilization:      utilization,
			RecommendUpgrade: utilization > 0.8 && record.Tier != entity.TierEnterprise,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Utilization > entries[j].Utilization
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
