package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	// TradeBaseForAsset is a purchase of the paired asset with base asset.
	TradeBaseForAsset = iota
	// TradeAssetForBase is a purchase of base asset with the paired asset.
	TradeAssetForBase
	// TradeAssetForAsset is a composite purchase routed through two pools.
	TradeAssetForAsset
)

// Trade is the record of a settled swap.
type Trade struct {
	Id               string
	Type             int
	TraderAccount    string
	RecipientAccount string
	AssetSent        string
	AssetReceived    string
	AmountSent       uint64
	AmountReceived   uint64
	FeeBasisPoint    uint32
	Timestamp        time.Time
}

// NewTrade returns a settled trade record with a fresh id.
func NewTrade(
	tradeType int, trader, recipient string,
	assetSent, assetReceived string, amountSent, amountReceived uint64,
	feeBasisPoint uint32,
) *Trade {
	return &Trade{
		Id:               uuid.New().String(),
		Type:             tradeType,
		TraderAccount:    trader,
		RecipientAccount: recipient,
		AssetSent:        assetSent,
		AssetReceived:    assetReceived,
		AmountSent:       amountSent,
		AmountReceived:   amountReceived,
		FeeBasisPoint:    feeBasisPoint,
		Timestamp:        time.Now(),
	}
}
