package implementation

import (
	"context"
	"errors"

	"vocabforge-be/internal/entity"
	"vocabforge-be/internal/mapper"
	"vocabforge-be/internal/model"
	"vocabforge-be/internal/repository/contract"
	"vocabforge-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WordbankRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.WordbankMapper
}

func NewWordbankRepository(db *gorm.DB) contract.WordbankRepository {
	return &WordbankRepositoryImpl{
		db:     db,
		mapper: mapper.NewWordbankMapper(),
	}
}

func (r *WordbankRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *WordbankRepositoryImpl) Create(ctx context.Context, entry *entity.WordbankEntry) error {
	m := r.mapper.ToModel(entry)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*entry = *r.mapper.ToEntity(m)
	return nil
}

func (r *WordbankRepositoryImpl) Update(ctx context.Context, entry *entity.WordbankEntry) error {
	m := r.mapper.ToModel(entry)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*entry = *r.mapper.ToEntity(m)
	return nil
}

func (r *WordbankRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.WordbankEntry{}, "id = ?", id).Error
}

func (r *WordbankRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.WordbankEntry, error) {
	var m model.WordbankEntry
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *WordbankRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.WordbankEntry, error) {
	var models []*model.WordbankEntry
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *WordbankRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.WordbankEntry{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
