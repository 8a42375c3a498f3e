package dbbadger

import (
	"context"

	"github.com/timshannon/badgerhold/v4"

	"github.com/swapdex-network/swapdex-daemon/internal/core/domain"
)

type withdrawalRepositoryImpl struct {
	store *badgerhold.Store
}

// NewWithdrawalRepositoryImpl initialize a badger implementation of the
// domain.WithdrawalRepository
func NewWithdrawalRepositoryImpl(db *DbManager) domain.WithdrawalRepository {
	return withdrawalRepositoryImpl{db.HistoryStore}
}

func (w withdrawalRepositoryImpl) AddWithdrawal(
	_ context.Context, withdrawal *domain.Withdrawal,
) error {
	return w.store.Insert(withdrawal.Id, withdrawal)
}

func (w withdrawalRepositoryImpl) GetAllWithdrawals(
	_ context.Context,
) ([]domain.Withdrawal, error) {
	return w.findWithdrawals(nil)
}

func (w withdrawalRepositoryImpl) GetWithdrawalsByProvider(
	_ context.Context, provider string,
) ([]domain.Withdrawal, error) {
	return w.findWithdrawals(badgerhold.Where("ProviderAccount").Eq(provider))
}

func (w withdrawalRepositoryImpl) findWithdrawals(
	query *badgerhold.Query,
) ([]domain.Withdrawal, error) {
	var withdrawals []domain.Withdrawal
	if err := w.store.Find(&withdrawals, query); err != nil {
		return nil, err
	}
	return withdrawals, nil
}
