package application

// AddLiquidityResult reports the outcome of a settled deposit.
type AddLiquidityResult struct {
	// SharesMinted credited to the provider.
	SharesMinted uint64
	// AssetAmountDebited is the paired-asset amount actually debited. On
	// subsequent deposits it is the computed proportional requirement, any
	// excess of the desired amount is left untouched.
	AssetAmountDebited uint64
}

// RemoveLiquidityResult reports the amounts redeemed by burning shares.
type RemoveLiquidityResult struct {
	BaseAmount  uint64
	AssetAmount uint64
}

// SwapResult reports the settled legs of a swap.
type SwapResult struct {
	AssetSent      string
	AssetReceived  string
	AmountSent     uint64
	AmountReceived uint64
}

// TradeEvent is the payload published on ports.TopicTrade.
type TradeEvent struct {
	Type             string `json:"type"`
	TraderAccount    string `json:"trader_account"`
	RecipientAccount string `json:"recipient_account"`
	AssetSent        string `json:"asset_sent"`
	AssetReceived    string `json:"asset_received"`
	AmountSent       uint64 `json:"amount_sent"`
	AmountReceived   uint64 `json:"amount_received"`
}

// LiquidityEvent is the payload published on ports.TopicLiquidity.
type LiquidityEvent struct {
	Type            string `json:"type"`
	ProviderAccount string `json:"provider_account"`
	Asset           string `json:"asset"`
	BaseAmount      uint64 `json:"base_amount"`
	AssetAmount     uint64 `json:"asset_amount"`
	Shares          uint64 `json:"shares"`
}

const (
	eventTypeBaseForAsset  = "purchase_base_for_asset"
	eventTypeAssetForBase  = "purchase_asset_for_base"
	eventTypeAssetForAsset = "purchase_asset_for_asset"
	eventTypeInvestment    = "investment"
	eventTypeDivestment    = "divestment"
)
