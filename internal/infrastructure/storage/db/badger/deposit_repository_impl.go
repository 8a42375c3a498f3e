package dbbadger

import (
	"context"

	"github.com/timshannon/badgerhold/v4"

	"github.com/swapdex-network/swapdex-daemon/internal/core/domain"
)

type depositRepositoryImpl struct {
	store *badgerhold.Store
}

// NewDepositRepositoryImpl initialize a badger implementation of the
// domain.DepositRepository
func NewDepositRepositoryImpl(db *DbManager) domain.DepositRepository {
	return depositRepositoryImpl{db.HistoryStore}
}

func (d depositRepositoryImpl) AddDeposit(
	_ context.Context, deposit *domain.Deposit,
) error {
	return d.store.Insert(deposit.Id, deposit)
}

func (d depositRepositoryImpl) GetAllDeposits(
	_ context.Context,
) ([]domain.Deposit, error) {
	return d.findDeposits(nil)
}

func (d depositRepositoryImpl) GetDepositsByProvider(
	_ context.Context, provider string,
) ([]domain.Deposit, error) {
	return d.findDeposits(badgerhold.Where("ProviderAccount").Eq(provider))
}

func (d depositRepositoryImpl) findDeposits(
	query *badgerhold.Query,
) ([]domain.Deposit, error) {
	var deposits []domain.Deposit
	if err := d.store.Find(&deposits, query); err != nil {
		return nil, err
	}
	return deposits, nil
}
