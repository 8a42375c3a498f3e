package inmemory

import (
	"github.com/swapdex-network/swapdex-daemon/internal/core/domain"
	"github.com/swapdex-network/swapdex-daemon/internal/core/ports"
)

// DbManager groups the in-memory implementations of all the repositories.
// Nothing survives a restart, it serves tests and ephemeral deployments.
type DbManager struct {
	poolRepository       domain.PoolRepository
	tradeRepository      domain.TradeRepository
	depositRepository    domain.DepositRepository
	withdrawalRepository domain.WithdrawalRepository
}

// NewDbManager returns an empty in-memory DbManager.
func NewDbManager() ports.DbManager {
	return &DbManager{
		poolRepository:       NewPoolRepositoryImpl(),
		tradeRepository:      NewTradeRepositoryImpl(),
		depositRepository:    NewDepositRepositoryImpl(),
		withdrawalRepository: NewWithdrawalRepositoryImpl(),
	}
}

func (d *DbManager) PoolRepository() domain.PoolRepository {
	return d.poolRepository
}

func (d *DbManager) TradeRepository() domain.TradeRepository {
	return d.tradeRepository
}

func (d *DbManager) DepositRepository() domain.DepositRepository {
	return d.depositRepository
}

func (d *DbManager) WithdrawalRepository() domain.WithdrawalRepository {
	return d.withdrawalRepository
}

func (d *DbManager) Close() error {
	return nil
}
