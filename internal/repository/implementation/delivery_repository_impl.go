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

type DeliveryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DeliveryMapper
}

func NewDeliveryRepository(db *gorm.DB) contract.DeliveryRepository {
	return &DeliveryRepositoryImpl{
		db:     db,
		mapper: mapper.NewDeliveryMapper(),
	}
}

func (r *DeliveryRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *DeliveryRepositoryImpl) Create(ctx context.Context, delivery *entity.Delivery) error {
	m := r.mapper.ToModel(delivery)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*delivery = *r.mapper.ToEntity(m)
	return nil
}

func (r *DeliveryRepositoryImpl) Update(ctx context.Context, delivery *entity.Delivery) error {
	m := r.mapper.ToModel(delivery)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*delivery = *r.mapper.ToEntity(m)
	return nil
}

func (r *DeliveryRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Delivery, error) {
	var m model.Delivery
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *DeliveryRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Delivery, error) {
	var models []*model.Delivery
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *DeliveryRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Delivery{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
