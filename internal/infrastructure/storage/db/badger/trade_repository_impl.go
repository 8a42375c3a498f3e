package dbbadger

import (
	"context"

	"github.com/timshannon/badgerhold/v4"

	"github.com/swapdex-network/swapdex-daemon/internal/core/domain"
)

type tradeRepositoryImpl struct {
	store *badgerhold.Store
}

// NewTradeRepositoryImpl initialize a badger implementation of the
// domain.TradeRepository
func NewTradeRepositoryImpl(db *DbManager) domain.TradeRepository {
	return tradeRepositoryImpl{db.HistoryStore}
}

func (t tradeRepositoryImpl) AddTrade(
	_ context.Context, trade *domain.Trade,
) error {
	return t.store.Insert(trade.Id, trade)
}

func (t tradeRepositoryImpl) GetAllTrades(
	_ context.Context,
) ([]domain.Trade, error) {
	return t.findTrades(nil)
}

func (t tradeRepositoryImpl) GetTradesByAsset(
	_ context.Context, asset string,
) ([]domain.Trade, error) {
	query := badgerhold.Where("AssetSent").Eq(asset).
		Or(badgerhold.Where("AssetReceived").Eq(asset))
	return t.findTrades(query)
}

func (t tradeRepositoryImpl) findTrades(
	query *badgerhold.Query,
) ([]domain.Trade, error) {
	var trades []domain.Trade
	if err := t.store.Find(&trades, query); err != nil {
		return nil, err
	}
	return trades, nil
}
