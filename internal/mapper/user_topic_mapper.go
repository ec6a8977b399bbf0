package mapper

import (
	"vocabforge-be/internal/entity"
	"vocabforge-be/internal/model"
)

type UserTopicMapper struct{}

func NewUserTopicMapper() *UserTopicMapper {
	return &UserTopicMapper{}
}

func (m *UserTopicMapper) ToEntity(ut *model.UserTopic) *entity.UserTopic {
	if ut == nil {
		return nil
	}
	return &entity.UserTopic{
		Id:        ut.Id,
		UserId:    ut.UserId,
		TopicId:   ut.TopicId,
		Weight:    ut.Weight,
		Enabled:   ut.Enabled,
		CreatedAt: ut.CreatedAt,
	}
}

func (m *UserTopicMapper) ToModel(ut *entity.UserTopic) *model.UserTopic {
	if ut == nil {
		return nil
	}
	return &model.UserTopic{
		Id:        ut.Id,
		UserId:    ut.UserId,
		TopicId:   ut.TopicId,
		Weight:    ut.Weight,
		Enabled:   ut.Enabled,
		CreatedAt: ut.CreatedAt,
	}
}

func (m *UserTopicMapper) ToEntities(uts []*model.UserTopic) []*entity.UserTopic {
	entities := make([]*entity.UserTopic, len(uts))
	for i, ut := range uts {
		entities[i] = m.ToEntity(ut)
	}
	return entities
}
