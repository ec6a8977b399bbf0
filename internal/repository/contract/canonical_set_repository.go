package contract

import (
	"context"

	"vocabforge-be/internal/entity"
	"vocabforge-be/internal/repository/specification"
)

type CanonicalSetRepository interface {
	Create(ctx context.Context, set *entity.CanonicalSet) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CanonicalSet, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
