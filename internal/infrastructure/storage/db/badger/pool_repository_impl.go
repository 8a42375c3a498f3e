package dbbadger

import (
	"context"
	"errors"

	"github.com/timshannon/badgerhold/v4"

	"github.com/swapdex-network/swapdex-daemon/internal/core/domain"
)

type poolRepositoryImpl struct {
	store *badgerhold.Store
}

// NewPoolRepositoryImpl initialize a badger implementation of the
// domain.PoolRepository
func NewPoolRepositoryImpl(db *DbManager) domain.PoolRepository {
	return poolRepositoryImpl{db.Store}
}

func (p poolRepositoryImpl) AddPool(
	_ context.Context, pool *domain.Pool,
) error {
	if err := p.store.Insert(pool.Asset, pool); err != nil {
		if errors.Is(err, badgerhold.ErrKeyExists) {
			return domain.ErrPoolAlreadyExists
		}
		return err
	}
	return nil
}

func (p poolRepositoryImpl) GetPoolByAsset(
	_ context.Context, asset string,
) (*domain.Pool, error) {
	return p.getPool(asset)
}

func (p poolRepositoryImpl) GetAllPools(
	_ context.Context,
) ([]domain.Pool, error) {
	var pools []domain.Pool
	if err := p.store.Find(&pools, nil); err != nil {
		return nil, err
	}
	return pools, nil
}

func (p poolRepositoryImpl) UpdatePool(
	_ context.Context,
	asset string, updateFn func(pool *domain.Pool) (*domain.Pool, error),
) error {
	currentPool, err := p.getPool(asset)
	if err != nil {
		return err
	}

	updatedPool, err := updateFn(currentPool)
	if err != nil {
		return err
	}

	return p.store.Update(asset, updatedPool)
}

func (p poolRepositoryImpl) getPool(asset string) (*domain.Pool, error) {
	var pool domain.Pool
	if err := p.store.Get(asset, &pool); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrPoolNotFound
		}
		return nil, err
	}
	return &pool, nil
}
