package inmemory

import (
	"context"
	"sort"
	"sync"

	"github.com/swapdex-network/swapdex-daemon/internal/core/domain"
)

// PoolRepositoryImpl represents an in memory storage
type PoolRepositoryImpl struct {
	pools map[string]domain.Pool

	lock *sync.RWMutex
}

// NewPoolRepositoryImpl returns a new empty PoolRepositoryImpl
func NewPoolRepositoryImpl() domain.PoolRepository {
	return &PoolRepositoryImpl{
		pools: map[string]domain.Pool{},
		lock:  &sync.RWMutex{},
	}
}

func (r *PoolRepositoryImpl) AddPool(
	_ context.Context, pool *domain.Pool,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.pools[pool.Asset]; ok {
		return domain.ErrPoolAlreadyExists
	}

	r.pools[pool.Asset] = *pool.Copy()
	return nil
}

func (r *PoolRepositoryImpl) GetPoolByAsset(
	_ context.Context, asset string,
) (*domain.Pool, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	pool, ok := r.pools[asset]
	if !ok {
		return nil, domain.ErrPoolNotFound
	}

	return pool.Copy(), nil
}

func (r *PoolRepositoryImpl) GetAllPools(
	_ context.Context,
) ([]domain.Pool, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	pools := make([]domain.Pool, 0, len(r.pools))
	for _, pool := range r.pools {
		pools = append(pools, *pool.Copy())
	}
	sort.Slice(pools, func(i, j int) bool {
		return pools[i].Asset < pools[j].Asset
	})

	return pools, nil
}

func (r *PoolRepositoryImpl) UpdatePool(
	_ context.Context,
	asset string, updateFn func(p *domain.Pool) (*domain.Pool, error),
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	currentPool, ok := r.pools[asset]
	if !ok {
		return domain.ErrPoolNotFound
	}

	updatedPool, err := updateFn(currentPool.Copy())
	if err != nil {
		return err
	}

	r.pools[asset] = *updatedPool.Copy()
	return nil
}
