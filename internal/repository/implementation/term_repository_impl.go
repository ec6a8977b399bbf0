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

type TermRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TermMapper
}

func NewTermRepository(db *gorm.DB) contract.TermRepository {
	return &TermRepositoryImpl{
		db:     db,
		mapper: mapper.NewTermMapper(),
	}
}

func (r *TermRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *TermRepositoryImpl) Create(ctx context.Context, term *entity.Term) error {
	m := r.mapper.ToModel(term)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*term = *r.mapper.ToEntity(m)
	return nil
}

func (r *TermRepositoryImpl) CreateBulk(ctx context.Context, terms []*entity.Term) error {
	if len(terms) == 0 {
		return nil
	}
	models := r.mapper.ToModels(terms)
	if err := r.db.WithContext(ctx).CreateInBatches(models, 50).Error; err != nil {
		return err
	}
	for i, m := range models {
		*terms[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *TermRepositoryImpl) Update(ctx context.Context, term *entity.Term) error {
	m := r.mapper.ToModel(term)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*term = *r.mapper.ToEntity(m)
	return nil
}

func (r *TermRepositoryImpl) MigrateToSet(ctx context.Context, topicId, canonicalSetId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.Term{}).
		Where("topic_id = ?", topicId).
		UpdateColumn("canonical_set_id", canonicalSetId).Error
}

func (r *TermRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Term, error) {
	var m model.Term
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *TermRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Term, error) {
	var models []*model.Term
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *TermRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Term{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
