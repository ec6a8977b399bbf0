package contract

import (
	"context"

	"vocabforge-be/internal/entity"
	"vocabforge-be/internal/repository/specification"

	"github.com/google/uuid"
)

type WordbankRepository interface {
	Create(ctx context.Context, entry *entity.WordbankEntry) error
	Update(ctx context.Context, entry *entity.WordbankEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.WordbankEntry, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.WordbankEntry, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
