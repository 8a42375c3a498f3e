package dbbadger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"

	"github.com/swapdex-network/swapdex-daemon/internal/core/domain"
	"github.com/swapdex-network/swapdex-daemon/internal/core/ports"
)

// DbManager holds all the badgerhold stores in a single data structure.
// Pools live in their own store, the append-only records of trades, deposits
// and withdrawals share a second one.
type DbManager struct {
	Store        *badgerhold.Store
	HistoryStore *badgerhold.Store

	poolRepository       domain.PoolRepository
	tradeRepository      domain.TradeRepository
	depositRepository    domain.DepositRepository
	withdrawalRepository domain.WithdrawalRepository
}

// NewDbManager opens (or creates if not exists) the badger stores on disk.
// It expects a base data dir and an optional logger.
func NewDbManager(baseDbDir string, logger badger.Logger) (*DbManager, error) {
	poolDb, err := createDb(filepath.Join(baseDbDir, "pools"), logger)
	if err != nil {
		return nil, fmt.Errorf("opening pools db: %w", err)
	}

	historyDb, err := createDb(filepath.Join(baseDbDir, "history"), logger)
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}

	db := &DbManager{
		Store:        poolDb,
		HistoryStore: historyDb,
	}
	db.poolRepository = NewPoolRepositoryImpl(db)
	db.tradeRepository = NewTradeRepositoryImpl(db)
	db.depositRepository = NewDepositRepositoryImpl(db)
	db.withdrawalRepository = NewWithdrawalRepositoryImpl(db)

	return db, nil
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
	if err := d.Store.Close(); err != nil {
		return err
	}
	return d.HistoryStore.Close()
}

var _ ports.DbManager = (*DbManager)(nil)

// JSONEncode is a custom JSON based encoder for badger
func JSONEncode(value interface{}) ([]byte, error) {
	var buff bytes.Buffer

	en := json.NewEncoder(&buff)

	err := en.Encode(value)
	if err != nil {
		return nil, err
	}

	return buff.Bytes(), nil
}

// JSONDecode is a custom JSON based decoder for badger
func JSONDecode(data []byte, value interface{}) error {
	var buff bytes.Buffer
	de := json.NewDecoder(&buff)

	_, err := buff.Write(data)
	if err != nil {
		return err
	}

	return de.Decode(value)
}

func createDb(dbDir string, logger badger.Logger) (db *badgerhold.Store, err error) {
	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	db, err = badgerhold.Open(badgerhold.Options{
		Encoder:          JSONEncode,
		Decoder:          JSONDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})

	return
}
