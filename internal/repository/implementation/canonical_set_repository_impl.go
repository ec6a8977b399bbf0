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

type CanonicalSetRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CanonicalSetMapper
}

func NewCanonicalSetRepository(db *gorm.DB) contract.CanonicalSetRepository {
	return &CanonicalSetRepositoryImpl{
		db:     db,
		mapper: mapper.NewCanonicalSetMapper(),
	}
}

func (r *CanonicalSetRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CanonicalSetRepositoryImpl) Create(ctx context.Context, set *entity.CanonicalSet) error {
	m := r.mapper.ToModel(set)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*set = *r.mapper.ToEntity(m)
	return nil
}

func (r *CanonicalSetRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CanonicalSet, error) {
	var m model.CanonicalSet
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *CanonicalSetRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.CanonicalSet{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
