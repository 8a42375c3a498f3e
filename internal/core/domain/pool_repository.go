package domain

import "context"

// PoolRepository is the abstraction for any kind of database intended to
// persist pools. It doubles as the pool registry: entries are unique per
// asset, immutable once set and never removed.
type PoolRepository interface {
	// AddPool registers a new pool. It returns ErrPoolAlreadyExists if the
	// asset is already served by a pool.
	AddPool(ctx context.Context, pool *Pool) error
	// GetPoolByAsset resolves the pool serving the given asset, or
	// ErrPoolNotFound.
	GetPoolByAsset(ctx context.Context, asset string) (*Pool, error)
	// GetAllPools returns every registered pool.
	GetAllPools(ctx context.Context) ([]Pool, error)
	// UpdatePool commits the changes applied by updateFn to the pool serving
	// the given asset in a transactional way.
	UpdatePool(
		ctx context.Context,
		asset string, updateFn func(p *Pool) (*Pool, error),
	) error
}
