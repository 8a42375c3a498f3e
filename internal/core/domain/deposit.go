package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Deposit is the record of a liquidity provision settled by a pool.
type Deposit struct {
	Id              string
	Asset           string
	ProviderAccount string
	BaseAmount      uint64
	AssetAmount     uint64
	SharesMinted    uint64
	Timestamp       time.Time
}

// NewDeposit returns a settled deposit record with a fresh id.
func NewDeposit(
	asset, provider string, baseAmount, assetAmount, sharesMinted uint64,
) *Deposit {
	return &Deposit{
		Id:              uuid.New().String(),
		Asset:           asset,
		ProviderAccount: provider,
		BaseAmount:      baseAmount,
		AssetAmount:     assetAmount,
		SharesMinted:    sharesMinted,
		Timestamp:       time.Now(),
	}
}

// DepositRepository is the abstraction for any kind of database intended to
// persist deposits.
type DepositRepository interface {
	AddDeposit(ctx context.Context, deposit *Deposit) error
	GetAllDeposits(ctx context.Context) ([]Deposit, error)
	GetDepositsByProvider(
		ctx context.Context, provider string,
	) ([]Deposit, error)
}
