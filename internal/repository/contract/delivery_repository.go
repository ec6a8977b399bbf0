package contract

import (
	"context"

	"vocabforge-be/internal/entity"
	"vocabforge-be/internal/repository/specification"
)

type DeliveryRepository interface {
	Create(ctx context.Context, delivery *entity.Delivery) error
	Update(ctx context.Context, delivery *entity.Delivery) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Delivery, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Delivery, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
