package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/urfave/cli/v2"

	dbbadger "github.com/swapdex-network/swapdex-daemon/internal/infrastructure/storage/db/badger"
)

var defaultDatadir = btcutil.AppDataDir("swapdex-daemon", false)

func main() {
	app := cli.NewApp()

	app.Version = "0.0.1"
	app.Name = "swapdex operator CLI"
	app.Usage = "Command line interface for swapdexd daemon operators"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  "datadir",
			Usage: "the daemon datadir holding the on-disk state",
			Value: defaultDatadir,
		},
	}
	app.Commands = append(
		app.Commands,
		&listpools,
		&pool,
		&listtrades,
		&listdeposits,
		&listwithdrawals,
	)

	err := app.Run(os.Args)
	if err != nil {
		fatal(err)
	}
}

// getDbManager opens the daemon's badger store. The daemon must not be
// running against the same datadir, badger holds an exclusive lock on it.
func getDbManager(ctx *cli.Context) (*dbbadger.DbManager, func(), error) {
	dbDir := filepath.Join(ctx.String("datadir"), "db")
	dbManager, err := dbbadger.NewDbManager(dbDir, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("opening db at %s: %w", dbDir, err)
	}
	cleanup := func() { _ = dbManager.Close() }

	return dbManager, cleanup, nil
}

type invalidUsageError struct {
	ctx     *cli.Context
	command string
}

func (e *invalidUsageError) Error() string {
	return fmt.Sprintf("invalid usage of command %s", e.command)
}

func fatal(err error) {
	var e *invalidUsageError
	if errors.As(err, &e) {
		_ = cli.ShowCommandHelp(e.ctx, e.command)
	} else {
		_, _ = fmt.Fprintf(os.Stderr, "[swapdex] %v\n", err)
	}
	os.Exit(1)
}
