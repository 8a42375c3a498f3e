package main

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/swapdex-network/swapdex-daemon/internal/core/domain"
)

var listpools = cli.Command{
	Name:   "pools",
	Usage:  "list all the registered pools",
	Action: listPoolsAction,
}

var pool = cli.Command{
	Name:  "pool",
	Usage: "show the pool serving the given asset, share balances included",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "asset",
			Usage:    "the asset served by the pool in hex format",
			Required: true,
		},
	},
	Action: poolAction,
}

var listtrades = cli.Command{
	Name:  "trades",
	Usage: "list the settled trades, optionally filtered by asset",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "asset",
			Usage: "only the trades where the asset was sent or received",
		},
	},
	Action: listTradesAction,
}

var listdeposits = cli.Command{
	Name:  "deposits",
	Usage: "list the settled deposits, optionally filtered by provider",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "provider",
			Usage: "only the deposits made by the provider account",
		},
	},
	Action: listDepositsAction,
}

var listwithdrawals = cli.Command{
	Name:  "withdrawals",
	Usage: "list the settled withdrawals, optionally filtered by provider",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "provider",
			Usage: "only the withdrawals made by the provider account",
		},
	},
	Action: listWithdrawalsAction,
}

func listPoolsAction(ctx *cli.Context) error {
	dbManager, cleanup, err := getDbManager(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	pools, err := dbManager.PoolRepository().GetAllPools(ctx.Context)
	if err != nil {
		return err
	}

	printRespJSON(pools)
	return nil
}

func poolAction(ctx *cli.Context) error {
	dbManager, cleanup, err := getDbManager(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	pool, err := dbManager.PoolRepository().GetPoolByAsset(
		ctx.Context, ctx.String("asset"),
	)
	if err != nil {
		return err
	}

	printRespJSON(pool)
	return nil
}

func listTradesAction(ctx *cli.Context) error {
	dbManager, cleanup, err := getDbManager(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	var trades []domain.Trade
	if asset := ctx.String("asset"); asset != "" {
		trades, err = dbManager.TradeRepository().GetTradesByAsset(
			ctx.Context, asset,
		)
	} else {
		trades, err = dbManager.TradeRepository().GetAllTrades(ctx.Context)
	}
	if err != nil {
		return err
	}

	printRespJSON(trades)
	return nil
}

func listDepositsAction(ctx *cli.Context) error {
	dbManager, cleanup, err := getDbManager(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	var deposits []domain.Deposit
	if provider := ctx.String("provider"); provider != "" {
		deposits, err = dbManager.DepositRepository().GetDepositsByProvider(
			ctx.Context, provider,
		)
	} else {
		deposits, err = dbManager.DepositRepository().GetAllDeposits(ctx.Context)
	}
	if err != nil {
		return err
	}

	printRespJSON(deposits)
	return nil
}

func listWithdrawalsAction(ctx *cli.Context) error {
	dbManager, cleanup, err := getDbManager(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	var withdrawals []domain.Withdrawal
	if provider := ctx.String("provider"); provider != "" {
		withdrawals, err = dbManager.WithdrawalRepository().
			GetWithdrawalsByProvider(ctx.Context, provider)
	} else {
		withdrawals, err = dbManager.WithdrawalRepository().
			GetAllWithdrawals(ctx.Context)
	}
	if err != nil {
		return err
	}

	printRespJSON(withdrawals)
	return nil
}

func printRespJSON(resp interface{}) {
	jsonStr, err := json.MarshalIndent(resp, "", "\t")
	if err != nil {
		fmt.Println("unable to decode response: ", err)
		return
	}

	fmt.Println(string(jsonStr))
}
