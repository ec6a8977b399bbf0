package contract

import (
	"context"

	"vocabforge-be/internal/entity"
	"vocabforge-be/internal/repository/specification"

	"github.com/google/uuid"
)

type TermRepository interface {
	Create(ctx context.Context, term *entity.Term) error
	CreateBulk(ctx context.Context, terms []*entity.Term) error
	Update(ctx context.Context, term *entity.Term) error
	// MigrateToSet reattaches every term of a topic to the given canonical set.
	MigrateToSet(ctx context.Context, topicId, canonicalSetId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Term, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Term, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
