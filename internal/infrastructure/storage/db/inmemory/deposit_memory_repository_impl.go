package inmemory

import (
	"context"
	"sync"

	"github.com/swapdex-network/swapdex-daemon/internal/core/domain"
)

// DepositRepositoryImpl represents an in memory storage
type DepositRepositoryImpl struct {
	deposits []domain.Deposit

	lock *sync.RWMutex
}

// NewDepositRepositoryImpl returns a new empty DepositRepositoryImpl
func NewDepositRepositoryImpl() domain.DepositRepository {
	return &DepositRepositoryImpl{
		deposits: make([]domain.Deposit, 0),
		lock:     &sync.RWMutex{},
	}
}

func (r *DepositRepositoryImpl) AddDeposit(
	_ context.Context, deposit *domain.Deposit,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.deposits = append(r.deposits, *deposit)
	return nil
}

func (r *DepositRepositoryImpl) GetAllDeposits(
	_ context.Context,
) ([]domain.Deposit, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	deposits := make([]domain.Deposit, len(r.deposits))
	copy(deposits, r.deposits)
	return deposits, nil
}

func (r *DepositRepositoryImpl) GetDepositsByProvider(
	_ context.Context, provider string,
) ([]domain.Deposit, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	deposits := make([]domain.Deposit, 0)
	for _, deposit := range r.deposits {
		if deposit.ProviderAccount == provider {
			deposits = append(deposits, deposit)
		}
	}
	return deposits, nil
}
