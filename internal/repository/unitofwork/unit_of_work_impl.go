package unitofwork

import (
	"context"
	"fmt"

	"vocabforge-be/internal/repository/contract"
	"vocabforge-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB // the active transaction, nil when outside one
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) TopicRepository() contract.TopicRepository {
	return implementation.NewTopicRepository(u.getDB())
}

func (u *UnitOfWorkImpl) CanonicalSetRepository() contract.CanonicalSetRepository {
	return implementation.NewCanonicalSetRepository(u.getDB())
}

func (u *UnitOfWorkImpl) TermRepository() contract.TermRepository {
	return implementation.NewTermRepository(u.getDB())
}

func (u *UnitOfWorkImpl) FactRepository() contract.FactRepository {
	return implementation.NewFactRepository(u.getDB())
}

func (u *UnitOfWorkImpl) UserTopicRepository() contract.UserTopicRepository {
	return implementation.NewUserTopicRepository(u.getDB())
}

func (u *UnitOfWorkImpl) WordbankRepository() contract.WordbankRepository {
	return implementation.NewWordbankRepository(u.getDB())
}

func (u *UnitOfWorkImpl) DeliveryRepository() contract.DeliveryRepository {
	return implementation.NewDeliveryRepository(u.getDB())
}

func (u *UnitOfWorkImpl) QuotaRepository() contract.QuotaRepository {
	return implementation.NewQuotaRepository(u.getDB())
}
