package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Withdrawal is the record of a liquidity redemption settled by a pool.
type Withdrawal struct {
	Id              string
	Asset           string
	ProviderAccount string
	SharesBurned    uint64
	BaseAmount      uint64
	AssetAmount     uint64
	Timestamp       time.Time
}

// NewWithdrawal returns a settled withdrawal record with a fresh id.
func NewWithdrawal(
	asset, provider string, sharesBurned, baseAmount, assetAmount uint64,
) *Withdrawal {
	return &Withdrawal{
		Id:              uuid.New().String(),
		Asset:           asset,
		ProviderAccount: provider,
		SharesBurned:    sharesBurned,
		BaseAmount:      baseAmount,
		AssetAmount:     assetAmount,
		Timestamp:       time.Now(),
	}
}

// WithdrawalRepository is the abstraction for any kind of database intended
// to persist withdrawals.
type WithdrawalRepository interface {
	AddWithdrawal(ctx context.Context, withdrawal *Withdrawal) error
	GetAllWithdrawals(ctx context.Context) ([]Withdrawal, error)
	GetWithdrawalsByProvider(
		ctx context.Context, provider string,
	) ([]Withdrawal, error)
}
