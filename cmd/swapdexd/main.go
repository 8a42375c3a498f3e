package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/swapdex-network/swapdex-daemon/config"
	"github.com/swapdex-network/swapdex-daemon/internal/core/application"
	"github.com/swapdex-network/swapdex-daemon/internal/core/ports"
	ledgerinmemory "github.com/swapdex-network/swapdex-daemon/internal/infrastructure/ledger/inmemory"
	pubsubinmemory "github.com/swapdex-network/swapdex-daemon/internal/infrastructure/pubsub/inmemory"
	dbbadger "github.com/swapdex-network/swapdex-daemon/internal/infrastructure/storage/db/badger"
	dbinmemory "github.com/swapdex-network/swapdex-daemon/internal/infrastructure/storage/db/inmemory"
)

func main() {
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	dbManager := openDb()
	defer dbManager.Close()

	ledger := ledgerinmemory.NewLedger()
	pubsubSvc := pubsubinmemory.NewService()

	baseAsset := config.GetString(config.BaseAssetKey)
	feeBasisPoint := uint32(config.GetInt(config.TradeFeeBasisPointKey))

	registrySvc, err := application.NewRegistryService(
		baseAsset, feeBasisPoint, dbManager.PoolRepository(),
	)
	if err != nil {
		log.WithError(err).Panic("error while creating registry service")
	}
	poolSvc, err := application.NewPoolService(
		baseAsset, dbManager, ledger, pubsubSvc,
	)
	if err != nil {
		log.WithError(err).Panic("error while creating pool service")
	}

	ctx := context.Background()
	pools, err := registrySvc.ListPools(ctx)
	if err != nil {
		log.WithError(err).Panic("error while reading registered pools")
	}
	log.Infof("daemon started with %d registered pool(s)", len(pools))
	for _, pool := range pools {
		reserve, err := poolSvc.GetReserve(ctx, pool.Asset)
		if err != nil {
			log.WithError(err).WithField("asset", pool.Asset).
				Warn("could not read pool reserve")
			continue
		}
		log.WithFields(log.Fields{
			"asset":   pool.Asset,
			"account": pool.AccountName,
			"reserve": reserve,
			"shares":  pool.TotalShares,
		}).Info("pool loaded")
	}

	// echo every notification published by the engine
	go logNotifications(pubsubSvc, ports.TopicTrade)
	go logNotifications(pubsubSvc, ports.TopicLiquidity)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	<-sigChan

	log.Debug("exiting")
}

func openDb() ports.DbManager {
	if config.GetString(config.DbTypeKey) == config.DbTypeInMemory {
		return dbinmemory.NewDbManager()
	}

	dbDir := filepath.Join(config.GetDatadir(), config.DbLocation)
	dbManager, err := dbbadger.NewDbManager(dbDir, log.New())
	if err != nil {
		log.WithError(err).Panic("error while opening db")
	}
	return dbManager
}

func logNotifications(pubsubSvc ports.PubSubService, topic string) {
	sub, err := pubsubSvc.Subscribe(topic)
	if err != nil {
		log.WithError(err).WithField("topic", topic).
			Warn("could not subscribe to topic")
		return
	}

	for message := range sub.Channel() {
		log.WithField("topic", topic).Info(message)
	}
}
