package mapper

import (
	"time"

	"vocabforge-be/internal/entity"
	"vocabforge-be/internal/model"
)

type WordbankMapper struct{}

func NewWordbankMapper() *WordbankMapper {
	return &WordbankMapper{}
}

func (m *WordbankMapper) ToEntity(w *model.WordbankEntry) *entity.WordbankEntry {
	if w == nil {
		return nil
	}

	var updatedAt *time.Time
	if !w.UpdatedAt.IsZero() {
		u := w.UpdatedAt
		updatedAt = &u
	}

	return &entity.WordbankEntry{
		Id:           w.Id,
		UserId:       w.UserId,
		TermId:       w.TermId,
		Status:       entity.WordStatus(w.Status),
		Bucket:       w.Bucket,
		ReviewCount:  w.ReviewCount,
		LastReviewed: w.LastReviewed,
		NextReview:   w.NextReview,
		CreatedAt:    w.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *WordbankMapper) ToModel(w *entity.WordbankEntry) *model.WordbankEntry {
	if w == nil {
		return nil
	}

	var updatedAt time.Time
	if w.UpdatedAt != nil {
		updatedAt = *w.UpdatedAt
	}

	return &model.WordbankEntry{
		Id:           w.Id,
		UserId:       w.UserId,
		TermId:       w.TermId,
		Status:       string(w.Status),
		Bucket:       w.Bucket,
		ReviewCount:  w.ReviewCount,
		LastReviewed: w.LastReviewed,
		NextReview:   w.NextReview,
		CreatedAt:    w.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *WordbankMapper) ToEntities(entries []*model.WordbankEntry) []*entity.WordbankEntry {
	entities := make([]*entity.WordbankEntry, len(entries))
	for i, w := range entries {
		entities[i] = m.ToEntity(w)
	}
	return entities
}

type DeliveryMapper struct{}

func NewDeliveryMapper() *DeliveryMapper {
	return &DeliveryMapper{}
}

func (m *DeliveryMapper) ToEntity(d *model.Delivery) *entity.Delivery {
	if d == nil {
		return nil
	}
	return &entity.Delivery{
		Id:          d.Id,
		UserId:      d.UserId,
		TermId:      d.TermId,
		DeliveredAt: d.DeliveredAt,
		Action:      entity.DeliveryAction(d.Action),
		OpenedAt:    d.OpenedAt,
	}
}

func (m *DeliveryMapper) ToModel(d *entity.Delivery) *model.Delivery {
	if d == nil {
		return nil
	}
	return &model.Delivery{
		Id:          d.Id,
		UserId:      d.UserId,
		TermId:      d.TermId,
		DeliveredAt: d.DeliveredAt,
		Action:      string(d.Action),
		OpenedAt:    d.OpenedAt,
	}
}

func (m *DeliveryMapper) ToEntities(deliveries []*model.Delivery) []*entity.Delivery {
	entities := make([]*entity.Delivery, len(deliveries))
	for i, d := range deliveries {
		entities[i] = m.ToEntity(d)
	}
	return entities
}
