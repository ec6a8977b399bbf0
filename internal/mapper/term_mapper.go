package mapper

import (
	"time"

	"vocabforge-be/internal/entity"
	"vocabforge-be/internal/model"
)

type TermMapper struct{}

func NewTermMapper() *TermMapper {
	return &TermMapper{}
}

func (m *TermMapper) ToEntity(t *model.Term) *entity.Term {
	if t == nil {
		return nil
	}

	var updatedAt *time.Time
	if !t.UpdatedAt.IsZero() {
		u := t.UpdatedAt
		updatedAt = &u
	}

	return &entity.Term{
		Id:               t.Id,
		CanonicalSetId:   t.CanonicalSetId,
		TopicId:          t.TopicId,
		Text:             t.Text,
		NormalizedKey:    t.NormalizedKey,
		Definition:       t.Definition,
		Examples:         t.Examples,
		Source:           t.Source,
		SourceURL:        t.SourceURL,
		Verified:         t.Verified,
		AIGenerated:      t.AIGenerated,
		ConfidenceScore:  t.ConfidenceScore,
		ComplexityLevel:  t.ComplexityLevel,
		Category:         t.Category,
		ModerationStatus: entity.ModerationStatus(t.ModerationStatus),
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        updatedAt,
	}
}

func (m *TermMapper) ToModel(t *entity.Term) *model.Term {
	if t == nil {
		return nil
	}

	var updatedAt time.Time
	if t.UpdatedAt != nil {
		updatedAt = *t.UpdatedAt
	}

	return &model.Term{
		Id:               t.Id,
		CanonicalSetId:   t.CanonicalSetId,
		TopicId:          t.TopicId,
		Text:             t.Text,
		NormalizedKey:    t.NormalizedKey,
		Definition:       t.Definition,
		Examples:         t.Examples,
		Source:           t.Source,
		SourceURL:        t.SourceURL,
		Verified:         t.Verified,
		AIGenerated:      t.AIGenerated,
		ConfidenceScore:  t.ConfidenceScore,
		ComplexityLevel:  t.ComplexityLevel,
		Category:         t.Category,
		ModerationStatus: string(t.ModerationStatus),
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        updatedAt,
	}
}

func (m *TermMapper) ToEntities(terms []*model.Term) []*entity.Term {
	entities := make([]*entity.Term, len(terms))
	for i, t := range terms {
		entities[i] = m.ToEntity(t)
	}
	return entities
}

func (m *TermMapper) ToModels(terms []*entity.Term) []*model.Term {
	models := make([]*model.Term, len(terms))
	for i, t := range terms {
		models[i] = m.ToModel(t)
	}
	return models
}

type FactMapper struct{}

func NewFactMapper() *FactMapper {
	return &FactMapper{}
}

func (m *FactMapper) ToEntity(f *model.Fact) *entity.Fact {
	if f == nil {
		return nil
	}
	return &entity.Fact{
		Id:            f.Id,
		TopicId:       f.TopicId,
		Text:          f.Text,
		NormalizedKey: f.NormalizedKey,
		Source:        f.Source,
		Category:      f.Category,
		CreatedAt:     f.CreatedAt,
	}
}

func (m *FactMapper) ToModel(f *entity.Fact) *model.Fact {
	if f == nil {
		return nil
	}
	return &model.Fact{
		Id:            f.Id,
		TopicId:       f.TopicId,
		Text:          f.Text,
		NormalizedKey: f.NormalizedKey,
		Source:        f.Source,
		Category:      f.Category,
		CreatedAt:     f.CreatedAt,
	}
}

func (m *FactMapper) ToEntities(facts []*model.Fact) []*entity.Fact {
	entities := make([]*entity.Fact, len(facts))
	for i, f := range facts {
		entities[i] = m.ToEntity(f)
	}
	return entities
}

func (m *FactMapper) ToModels(facts []*entity.Fact) []*model.Fact {
	models := make([]*model.Fact, len(facts))
	for i, f := range facts {
		models[i] = m.ToModel(f)
	}
	return models
}
