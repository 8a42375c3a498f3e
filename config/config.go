package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/btcsuite/btcd/btcutil"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	// DatadirKey is the local data directory to store the internal state of daemon
	DatadirKey = "DATA_DIR_PATH"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// DbTypeKey is the storage backend to use. Either "badger" or "inmemory"
	DbTypeKey = "DB_TYPE"
	// BaseAssetKey is the asset hash to be used as base asset for all pools
	BaseAssetKey = "BASE_ASSET"
	// TradeFeeBasisPointKey is the percentage fee in basis points charged by every pool on each swap
	TradeFeeBasisPointKey = "TRADE_FEE_BASIS_POINT"

	DbLocation = "db"

	DbTypeBadger   = "badger"
	DbTypeInMemory = "inmemory"

	// MaxTradeFeeBasisPoint caps the fee strictly below 100%
	MaxTradeFeeBasisPoint = 9999
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("swapdex-daemon", false)

// 32 zero bytes, the conventional hash of the native asset
var defaultBaseAsset = "0000000000000000000000000000000000000000000000000000000000000000"

func init() {
	vip = viper.New()
	vip.SetEnvPrefix("SWAPDEX")
	vip.AutomaticEnv()

	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(DbTypeKey, DbTypeBadger)
	vip.SetDefault(BaseAssetKey, defaultBaseAsset)
	vip.SetDefault(TradeFeeBasisPointKey, 25)

	if err := validate(); err != nil {
		log.WithError(err).Panic("error while validating config")
	}

	if err := initDatadir(); err != nil {
		log.WithError(err).Panic("error while creating datadir")
	}
}

//GetString ...
func GetString(key string) string {
	return vip.GetString(key)
}

//GetInt ...
func GetInt(key string) int {
	return vip.GetInt(key)
}

//GetBool ...
func GetBool(key string) bool {
	return vip.GetBool(key)
}

//GetDatadir ...
func GetDatadir() string {
	return GetString(DatadirKey)
}

// Set a value for the given key
func Set(key string, value interface{}) {
	vip.Set(key, value)
}

// IsSet returns whether the give key is set
func IsSet(key string) bool {
	return vip.IsSet(key)
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("datadir must not be null")
	}

	dbType := GetString(DbTypeKey)
	if dbType != DbTypeBadger && dbType != DbTypeInMemory {
		return fmt.Errorf(
			"db type must be either '%s' or '%s'",
			DbTypeBadger, DbTypeInMemory,
		)
	}

	baseAsset := GetString(BaseAssetKey)
	buf, err := hex.DecodeString(baseAsset)
	if err != nil || len(buf) != 32 {
		return fmt.Errorf("base asset must be a 32-byte hash in hex format")
	}

	basisPoint := GetInt(TradeFeeBasisPointKey)
	if basisPoint < 0 || basisPoint > MaxTradeFeeBasisPoint {
		return fmt.Errorf(
			"trade fee must be in range [0, %d] basis points",
			MaxTradeFeeBasisPoint,
		)
	}

	return nil
}

func initDatadir() error {
	datadir := GetDatadir()
	return makeDirectoryIfNotExists(filepath.Join(datadir, DbLocation))
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
