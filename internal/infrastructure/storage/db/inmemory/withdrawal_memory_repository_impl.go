package inmemory

import (
	"context"
	"sync"

	"github.com/swapdex-network/swapdex-daemon/internal/core/domain"
)

// WithdrawalRepositoryImpl represents an in memory storage
type WithdrawalRepositoryImpl struct {
	withdrawals []domain.Withdrawal

	lock *sync.RWMutex
}

// NewWithdrawalRepositoryImpl returns a new empty WithdrawalRepositoryImpl
func NewWithdrawalRepositoryImpl() domain.WithdrawalRepository {
	return &WithdrawalRepositoryImpl{
		withdrawals: make([]domain.Withdrawal, 0),
		lock:        &sync.RWMutex{},
	}
}

func (r *WithdrawalRepositoryImpl) AddWithdrawal(
	_ context.Context, withdrawal *domain.Withdrawal,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.withdrawals = append(r.withdrawals, *withdrawal)
	return nil
}

func (r *WithdrawalRepositoryImpl) GetAllWithdrawals(
	_ context.Context,
) ([]domain.Withdrawal, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	withdrawals := make([]domain.Withdrawal, len(r.withdrawals))
	copy(withdrawals, r.withdrawals)
	return withdrawals, nil
}

func (r *WithdrawalRepositoryImpl) GetWithdrawalsByProvider(
	_ context.Context, provider string,
) ([]domain.Withdrawal, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	withdrawals := make([]domain.Withdrawal, 0)
	for _, withdrawal := range r.withdrawals {
		if withdrawal.ProviderAccount == provider {
			withdrawals = append(withdrawals, withdrawal)
		}
	}
	return withdrawals, nil
}
