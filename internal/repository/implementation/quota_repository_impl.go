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

type QuotaRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.QuotaMapper
}

func NewQuotaRepository(db *gorm.DB) contract.QuotaRepository {
	return &QuotaRepositoryImpl{
		db:     db,
		mapper: mapper.NewQuotaMapper(),
	}
}

func (r *QuotaRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *QuotaRepositoryImpl) Create(ctx context.Context, record *entity.QuotaRecord) error {
	m := r.mapper.ToModel(record)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*record = *r.mapper.ToEntity(m)
	return nil
}

func (r *QuotaRepositoryImpl) Update(ctx context.Context, record *entity.QuotaRecord) error {
	m := r.mapper.ToModel(record)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*record = *r.mapper.ToEntity(m)
	return nil
}

func (r *QuotaRepositoryImpl) FindByUser(ctx context.Context, userId uuid.UUID) (*entity.QuotaRecord, error) {
	var m model.UserQuota
	if err := r.db.WithContext(ctx).First(&m, "user_id = ?", userId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *QuotaRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.QuotaRecord, error) {
	var models []*model.UserQuota
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *QuotaRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.UserQuota{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
