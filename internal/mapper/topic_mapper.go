package mapper

import (
	"time"

	"vocabforge-be/internal/entity"
	"vocabforge-be/internal/model"
)

type TopicMapper struct{}

func NewTopicMapper() *TopicMapper {
	return &TopicMapper{}
}

func (m *TopicMapper) ToEntity(t *model.Topic) *entity.Topic {
	if t == nil {
		return nil
	}

	var updatedAt *time.Time
	if !t.UpdatedAt.IsZero() {
		u := t.UpdatedAt
		updatedAt = &u
	}

	return &entity.Topic{
		Id:             t.Id,
		Name:           t.Name,
		NormalizedName: t.NormalizedName,
		CanonicalSetId: t.CanonicalSetId,
		UsageCount:     t.UsageCount,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *TopicMapper) ToModel(t *entity.Topic) *model.Topic {
	if t == nil {
		return nil
	}

	var updatedAt time.Time
	if t.UpdatedAt != nil {
		updatedAt = *t.UpdatedAt
	}

	return &model.Topic{
		Id:             t.Id,
		Name:           t.Name,
		NormalizedName: t.NormalizedName,
		CanonicalSetId: t.CanonicalSetId,
		UsageCount:     t.UsageCount,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *TopicMapper) ToEntities(topics []*model.Topic) []*entity.Topic {
	entities := make([]*entity.Topic, len(topics))
	for i, t := range topics {
		entities[i] = m.ToEntity(t)
	}
	return entities
}

type CanonicalSetMapper struct{}

func NewCanonicalSetMapper() *CanonicalSetMapper {
	return &CanonicalSetMapper{}
}

func (m *CanonicalSetMapper) ToEntity(s *model.CanonicalSet) *entity.CanonicalSet {
	if s == nil {
		return nil
	}
	return &entity.CanonicalSet{
		Id:        s.Id,
		CreatedAt: s.CreatedAt,
	}
}

func (m *CanonicalSetMapper) ToModel(s *entity.CanonicalSet) *model.CanonicalSet {
	if s == nil {
		return nil
	}
	return &model.CanonicalSet{
		Id:        s.Id,
		CreatedAt: s.CreatedAt,
	}
}
