package contract

import (
	"context"

	"vocabforge-be/internal/entity"
	"vocabforge-be/internal/repository/specification"
)

type UserTopicRepository interface {
	Create(ctx context.Context, userTopic *entity.UserTopic) error
	Update(ctx context.Context, userTopic *entity.UserTopic) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.UserTopic, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UserTopic, error)
}
