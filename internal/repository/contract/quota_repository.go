package contract

import (
	"context"

	"vocabforge-be/internal/entity"
	"vocabforge-be/internal/repository/specification"

	"github.com/google/uuid"
)

type QuotaRepository interface {
	Create(ctx context.Context, record *entity.QuotaRecord) error
	Update(ctx context.Context, record *entity.QuotaRecord) error
	FindByUser(ctx context.Context, userId uuid.UUID) (*entity.QuotaRecord, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.QuotaRecord, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
