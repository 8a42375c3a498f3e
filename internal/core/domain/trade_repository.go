package domain

import "context"

// TradeRepository is the abstraction for any kind of database intended to
// persist the history of settled trades.
type TradeRepository interface {
	// AddTrade appends a settled trade to the history.
	AddTrade(ctx context.Context, trade *Trade) error
	// GetAllTrades returns the whole trade history.
	GetAllTrades(ctx context.Context) ([]Trade, error)
	// GetTradesByAsset returns the trades where the given asset was either
	// sent or received.
	GetTradesByAsset(ctx context.Context, asset string) ([]Trade, error)
}
