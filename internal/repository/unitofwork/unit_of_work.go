package unitofwork

import (
	"context"

	"vocabforge-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	TopicRepository() contract.TopicRepository
	CanonicalSetRepository() contract.CanonicalSetRepository
	TermRepository() contract.TermRepository
	FactRepository() contract.FactRepository

	UserTopicRepository() contract.UserTopicRepository
	WordbankRepository() contract.WordbankRepository
	DeliveryRepository() contract.DeliveryRepository
	QuotaRepository() contract.QuotaRepository
}
