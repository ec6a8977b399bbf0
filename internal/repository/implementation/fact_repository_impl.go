package implementation

import (
	"context"

	"vocabforge-be/internal/entity"
	"vocabforge-be/internal/mapper"
	"vocabforge-be/internal/model"
	"vocabforge-be/internal/repository/contract"
	"vocabforge-be/internal/repository/specification"

	"gorm.io/gorm"
)

type FactRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FactMapper
}

func NewFactRepository(db *gorm.DB) contract.FactRepository {
	return &FactRepositoryImpl{
		db:     db,
		mapper: mapper.NewFactMapper(),
	}
}

func (r *FactRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *FactRepositoryImpl) CreateBulk(ctx context.Context, facts []*entity.Fact) error {
	if len(facts) == 0 {
		return nil
	}
	models := r.mapper.ToModels(facts)
	if err := r.db.WithContext(ctx).CreateInBatches(models, 50).Error; err != nil {
		return err
	}
	for i, m := range models {
		*facts[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *FactRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Fact, error) {
	var models []*model.Fact
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *FactRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Fact{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
