package ports

import (
	"github.com/swapdex-network/swapdex-daemon/internal/core/domain"
)

// DbManager interface defines the grouped access to the repositories backed
// by the same store.
type DbManager interface {
	PoolRepository() domain.PoolRepository
	TradeRepository() domain.TradeRepository
	DepositRepository() domain.DepositRepository
	WithdrawalRepository() domain.WithdrawalRepository

	Close() error
}
