package application

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"

	"github.com/swapdex-network/swapdex-daemon/internal/core/domain"
)

// RegistryService gates the creation of pools: at most one pool exists per
// asset and an entry, once registered, is never re-pointed nor removed.
type RegistryService interface {
	// LaunchPool creates the pool serving the given asset on demand. A second
	// request for the same asset returns the existing pool.
	LaunchPool(ctx context.Context, asset string) (*domain.Pool, error)
	// GetPool resolves the pool serving the given asset.
	GetPool(ctx context.Context, asset string) (*domain.Pool, error)
	// ListPools returns every registered pool.
	ListPools(ctx context.Context) ([]domain.Pool, error)
}

type registryService struct {
	baseAsset      string
	feeBasisPoint  uint32
	poolRepository domain.PoolRepository
}

// NewRegistryService returns a RegistryService creating pools paired with
// the given base asset and charging the given percentage fee.
func NewRegistryService(
	baseAsset string, feeBasisPoint uint32,
	poolRepository domain.PoolRepository,
) (RegistryService, error) {
	if err := validateAssetString(baseAsset); err != nil {
		return nil, err
	}

	return &registryService{
		baseAsset:      baseAsset,
		feeBasisPoint:  feeBasisPoint,
		poolRepository: poolRepository,
	}, nil
}

func (r *registryService) LaunchPool(
	ctx context.Context, asset string,
) (*domain.Pool, error) {
	if err := validateAssetString(asset); err != nil {
		return nil, err
	}
	if asset == r.baseAsset {
		return nil, ErrInvalidAsset
	}

	if pool, err := r.poolRepository.GetPoolByAsset(ctx, asset); err == nil {
		return pool, nil
	} else if !errors.Is(err, domain.ErrPoolNotFound) {
		return nil, err
	}

	pool, err := domain.NewPool(r.baseAsset, asset, r.feeBasisPoint)
	if err != nil {
		return nil, err
	}

	if err := r.poolRepository.AddPool(ctx, pool); err != nil {
		// lost the race against a concurrent launch, the registered pool wins
		if errors.Is(err, domain.ErrPoolAlreadyExists) {
			return r.poolRepository.GetPoolByAsset(ctx, asset)
		}
		return nil, err
	}

	log.WithFields(log.Fields{
		"asset":   asset,
		"account": pool.AccountName,
	}).Info("pool launched")

	return pool, nil
}

func (r *registryService) GetPool(
	ctx context.Context, asset string,
) (*domain.Pool, error) {
	if err := validateAssetString(asset); err != nil {
		return nil, err
	}
	return r.poolRepository.GetPoolByAsset(ctx, asset)
}

func (r *registryService) ListPools(ctx context.Context) ([]domain.Pool, error) {
	return r.poolRepository.GetAllPools(ctx)
}
