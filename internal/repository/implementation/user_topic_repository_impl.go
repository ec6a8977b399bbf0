package implementation

import (
	"context"
	"errors"

	"vocabforge-be/internal/entity"
	"vocabforge-be/internal/mapper"
	"vocabforge-be/internal/model"
	"vocabforge-be/internal/repository/contract"
	"vocabforge-be/internal/repository/specification"

	"gorm.io/gorm"
)

type UserTopicRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UserTopicMapper
}

func NewUserTopicRepository(db *gorm.DB) contract.UserTopicRepository {
	return &UserTopicRepositoryImpl{
		db:     db,
		mapper: mapper.NewUserTopicMapper(),
	}
}

func (r *UserTopicRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *UserTopicRepositoryImpl) Create(ctx context.Context, userTopic *entity.UserTopic) error {
	m := r.mapper.ToModel(userTopic)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*userTopic = *r.mapper.ToEntity(m)
	return nil
}

func (r *UserTopicRepositoryImpl) Update(ctx context.Context, userTopic *entity.UserTopic) error {
	m := r.mapper.ToModel(userTopic)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*userTopic = *r.mapper.ToEntity(m)
	return nil
}

func (r *UserTopicRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.UserTopic, error) {
	var m model.UserTopic
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *UserTopicRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UserTopic, error) {
	var models []*model.UserTopic
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
