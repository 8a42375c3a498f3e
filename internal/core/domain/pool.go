package domain

import (
	"encoding/hex"
	"math"

	"github.com/btcsuite/btcd/btcutil"
)

// Pool defines the entity holding the liquidity-share ledger of an asset
// pair. The reserves themselves are not stored here: they are the balances
// of the pool's ledger account and must always be read live from the asset
// ledger.
type Pool struct {
	// Asset is the paired asset in hex format. The base asset of the pair is
	// a daemon-wide setting.
	Asset string
	// AccountName is the ledger account custodying the pool's reserves.
	AccountName string
	// FeeBasisPoint is the percentage trading fee of the pool.
	FeeBasisPoint uint32
	// TotalShares is the outstanding liquidity-share supply.
	TotalShares uint64
	// SharesByProvider maps a provider account to its share balance. It is
	// owned exclusively by this entity, sum(SharesByProvider) == TotalShares
	// at all times.
	SharesByProvider map[string]uint64
}

// NewPool returns a new dormant pool for the given asset pair with the
// percentage fee set. The pool account name is derived from the pair so that
// an asset always maps to the same custody account.
func NewPool(baseAsset, asset string, feeBasisPoint uint32) (*Pool, error) {
	if !isValidAsset(baseAsset) || !isValidAsset(asset) || baseAsset == asset {
		return nil, ErrPoolInvalidAsset
	}
	if !isValidPercentageFee(feeBasisPoint) {
		return nil, ErrPoolInvalidFee
	}

	return &Pool{
		Asset:            asset,
		AccountName:      makeAccountName(baseAsset, asset),
		FeeBasisPoint:    feeBasisPoint,
		SharesByProvider: map[string]uint64{},
	}, nil
}

// SharesOf returns the share balance recorded for the given provider.
func (p *Pool) SharesOf(provider string) uint64 {
	return p.SharesByProvider[provider]
}

// MintShares credits the provider with newly issued shares and grows the
// total supply accordingly.
func (p *Pool) MintShares(provider string, amount uint64) error {
	if amount == 0 {
		return ErrPoolInvalidShareAmount
	}
	if p.TotalShares > math.MaxUint64-amount {
		return ErrPoolShareSupplyOverflow
	}

	if p.SharesByProvider == nil {
		p.SharesByProvider = map[string]uint64{}
	}
	p.SharesByProvider[provider] += amount
	p.TotalShares += amount
	return nil
}

// BurnShares debits the provider's share balance and shrinks the total
// supply. Entries burned down to zero are removed from the mapping.
func (p *Pool) BurnShares(provider string, amount uint64) error {
	if amount == 0 {
		return ErrPoolInvalidShareAmount
	}
	balance := p.SharesByProvider[provider]
	if amount > balance {
		return ErrPoolInsufficientShareBalance
	}

	if balance == amount {
		delete(p.SharesByProvider, provider)
	} else {
		p.SharesByProvider[provider] = balance - amount
	}
	p.TotalShares -= amount
	return nil
}

// IsDormant returns whether the pool has no outstanding shares. A dormant
// pool is not destroyed, the next deposit fixes a fresh exchange rate.
func (p *Pool) IsDormant() bool {
	return p.TotalShares == 0
}

// Copy returns a deep copy of the pool, detaching the share mapping.
func (p *Pool) Copy() *Pool {
	shares := make(map[string]uint64, len(p.SharesByProvider))
	for provider, amount := range p.SharesByProvider {
		shares[provider] = amount
	}

	return &Pool{
		Asset:            p.Asset,
		AccountName:      p.AccountName,
		FeeBasisPoint:    p.FeeBasisPoint,
		TotalShares:      p.TotalShares,
		SharesByProvider: shares,
	}
}

func makeAccountName(baseAsset, asset string) string {
	buf, _ := hex.DecodeString(baseAsset + asset)
	return hex.EncodeToString(btcutil.Hash160(buf))
}

func isValidAsset(asset string) bool {
	buf, err := hex.DecodeString(asset)
	if err != nil {
		return false
	}
	return len(buf) == 32
}

func isValidPercentageFee(basisPoint uint32) bool {
	return basisPoint <= 9999
}
