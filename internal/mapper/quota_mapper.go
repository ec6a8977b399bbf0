package mapper

import (
	"time"

	"vocabforge-be/internal/entity"
	"vocabforge-be/internal/model"
)

type QuotaMapper struct{}

func NewQuotaMapper() *QuotaMapper {
	return &QuotaMapper{}
}

func (m *QuotaMapper) ToEntity(q *model.UserQuota) *entity.QuotaRecord {
	if q == nil {
		return nil
	}

	var updatedAt *time.Time
	if !q.UpdatedAt.IsZero() {
		u := q.UpdatedAt
		updatedAt = &u
	}

	return &entity.QuotaRecord{
		UserId:       q.UserId,
		Tier:         entity.QuotaTier(q.Tier),
		CurrentUsage: q.CurrentUsage,
		PeriodStart:  q.PeriodStart,
		LastReset:    q.LastReset,
		UpdatedAt:    updatedAt,
	}
}

func (m *QuotaMapper) ToModel(q *entity.QuotaRecord) *model.UserQuota {
	if q == nil {
		return nil
	}

	var updatedAt time.Time
	if q.UpdatedAt != nil {
		updatedAt = *q.UpdatedAt
	}

	return &model.UserQuota{
		UserId:       q.UserId,
		Tier:         string(q.Tier),
		CurrentUsage: q.CurrentUsage,
		PeriodStart:  q.PeriodStart,
		LastReset:    q.LastReset,
		UpdatedAt:    updatedAt,
	}
}

func (m *QuotaMapper) ToEntities(quotas []*model.UserQuota) []*entity.QuotaRecord {
	entities := make([]*entity.QuotaRecord, len(quotas))
	for i, q := range quotas {
		entities[i] = m.ToEntity(q)
	}
	return entities
}
