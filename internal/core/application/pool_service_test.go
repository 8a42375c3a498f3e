package application_test

import (
	"context"
	"encoding/json"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swapdex-network/swapdex-daemon/internal/core/application"
	"github.com/swapdex-network/swapdex-daemon/internal/core/domain"
	"github.com/swapdex-network/swapdex-daemon/internal/core/ports"
	ledgerinmemory "github.com/swapdex-network/swapdex-daemon/internal/infrastructure/ledger/inmemory"
	pubsubinmemory "github.com/swapdex-network/swapdex-daemon/internal/infrastructure/pubsub/inmemory"
	"github.com/swapdex-network/swapdex-daemon/internal/infrastructure/storage/db/inmemory"
	"github.com/swapdex-network/swapdex-daemon/pkg/pricing/formula"
)

type testEnv struct {
	ledger      *ledgerinmemory.Ledger
	dbManager   ports.DbManager
	pubsubSvc   ports.PubSubService
	registrySvc application.RegistryService
	poolSvc     application.PoolService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	ledger := ledgerinmemory.NewLedger()
	dbManager := inmemory.NewDbManager()
	pubsubSvc := pubsubinmemory.NewService()

	registrySvc, err := application.NewRegistryService(
		baseAsset, 25, dbManager.PoolRepository(),
	)
	require.NoError(t, err)
	poolSvc, err := application.NewPoolService(
		baseAsset, dbManager, ledger, pubsubSvc,
	)
	require.NoError(t, err)

	return &testEnv{ledger, dbManager, pubsubSvc, registrySvc, poolSvc}
}

func (e *testEnv) fundAndApprove(account, asset string, amount uint64) {
	e.ledger.Fund(account, asset, amount)
	e.ledger.Approve(account, asset, amount)
}

func (e *testEnv) balance(t *testing.T, account, asset string) uint64 {
	t.Helper()
	balance, err := e.ledger.BalanceOf(context.Background(), account, asset)
	require.NoError(t, err)
	return balance
}

func TestPoolService_EndToEnd(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	pool, err := env.registrySvc.LaunchPool(ctx, assetA)
	require.NoError(t, err)

	// two providers invest the same amounts
	env.fundAndApprove("provider1", baseAsset, 5000000000)
	env.fundAndApprove("provider1", assetA, 250000000000)
	addRes, err := env.poolSvc.AddLiquidity(
		ctx, "provider1", assetA, 5000000000, 250000000000,
	)
	require.NoError(t, err)
	assert.Equal(t, uint64(5000000000), addRes.SharesMinted)
	assert.Equal(t, uint64(250000000000), addRes.AssetAmountDebited)

	env.fundAndApprove("provider2", baseAsset, 5000000000)
	env.fundAndApprove("provider2", assetA, 250000000000)
	addRes, err = env.poolSvc.AddLiquidity(
		ctx, "provider2", assetA, 5000000000, 250000000000,
	)
	require.NoError(t, err)
	assert.Equal(t, uint64(5000000000), addRes.SharesMinted)
	assert.Equal(t, uint64(250000000000), addRes.AssetAmountDebited)

	reserve, err := env.poolSvc.GetReserve(ctx, assetA)
	require.NoError(t, err)
	assert.Equal(t, uint64(500000000000), reserve)
	assert.Equal(
		t, uint64(10000000000), env.balance(t, pool.AccountName, baseAsset),
	)

	// a trader buys the asset with base asset
	sub, err := env.pubsubSvc.Subscribe(ports.TopicTrade)
	require.NoError(t, err)

	quoted, err := env.poolSvc.PreviewSwap(ctx, assetA, 1000000000, true)
	require.NoError(t, err)
	assert.Equal(t, uint64(45351216185), quoted)

	env.fundAndApprove("trader", baseAsset, 1000000000)
	swapRes, err := env.poolSvc.SwapBaseForAsset(
		ctx, "trader", assetA, 1000000000, 45000000000, "",
	)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000000000), swapRes.AmountSent)
	assert.Equal(t, uint64(45351216185), swapRes.AmountReceived)
	assert.Equal(t, baseAsset, swapRes.AssetSent)
	assert.Equal(t, assetA, swapRes.AssetReceived)

	assert.Zero(t, env.balance(t, "trader", baseAsset))
	assert.Equal(t, uint64(45351216185), env.balance(t, "trader", assetA))

	// fees stay in the reserves, the product of the reserves grew
	baseReserve := env.balance(t, pool.AccountName, baseAsset)
	assetReserve := env.balance(t, pool.AccountName, assetA)
	assert.Equal(t, uint64(11000000000), baseReserve)
	assert.Equal(t, uint64(454648783815), assetReserve)

	oldProduct := new(big.Int).Mul(
		new(big.Int).SetUint64(10000000000),
		new(big.Int).SetUint64(500000000000),
	)
	newProduct := new(big.Int).Mul(
		new(big.Int).SetUint64(baseReserve),
		new(big.Int).SetUint64(assetReserve),
	)
	assert.True(t, newProduct.Cmp(oldProduct) >= 0)

	// the settlement got notified
	require.NotEmpty(t, sub.Channel())
	var event application.TradeEvent
	require.NoError(t, json.Unmarshal([]byte(<-sub.Channel()), &event))
	assert.Equal(t, "trader", event.TraderAccount)
	assert.Equal(t, uint64(45351216185), event.AmountReceived)

	// and recorded
	trades, err := env.dbManager.TradeRepository().GetTradesByAsset(ctx, assetA)
	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.Equal(t, domain.TradeBaseForAsset, trades[0].Type)

	deposits, err := env.dbManager.DepositRepository().GetAllDeposits(ctx)
	require.NoError(t, err)
	assert.Len(t, deposits, 2)

	// provider1 divests its whole position, half of the supply
	removeRes, err := env.poolSvc.RemoveLiquidity(
		ctx, "provider1", assetA, 5000000000,
	)
	require.NoError(t, err)
	assert.Equal(t, uint64(5500000000), removeRes.BaseAmount)
	assert.Equal(t, uint64(227324391907), removeRes.AssetAmount)
	assert.Equal(
		t, uint64(5500000000), env.balance(t, "provider1", baseAsset),
	)
	assert.Equal(
		t, uint64(227324391907), env.balance(t, "provider1", assetA),
	)

	// provider2 drains the pool, the rounding remainder goes to the last one out
	removeRes, err = env.poolSvc.RemoveLiquidity(
		ctx, "provider2", assetA, 5000000000,
	)
	require.NoError(t, err)
	assert.Equal(t, uint64(5500000000), removeRes.BaseAmount)
	assert.Equal(t, uint64(227324391908), removeRes.AssetAmount)

	assert.Zero(t, env.balance(t, pool.AccountName, baseAsset))
	assert.Zero(t, env.balance(t, pool.AccountName, assetA))

	drained, err := env.registrySvc.GetPool(ctx, assetA)
	require.NoError(t, err)
	assert.True(t, drained.IsDormant())

	withdrawals, err := env.dbManager.WithdrawalRepository().
		GetWithdrawalsByProvider(ctx, "provider1")
	require.NoError(t, err)
	assert.Len(t, withdrawals, 1)
}

func TestPoolService_SwapAssetForBase(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	seedPool(t, env, assetA, 10000000000, 500000000000)

	env.fundAndApprove("trader", assetA, 1000000000)
	expected, err := formula.OutGivenIn(
		1000000000, 500000000000, 10000000000, 25,
	)
	require.NoError(t, err)

	swapRes, err := env.poolSvc.SwapAssetForBase(
		ctx, "trader", assetA, 1000000000, expected, "recipient",
	)
	require.NoError(t, err)
	assert.Equal(t, expected, swapRes.AmountReceived)

	// the proceeds went to the third-party recipient
	assert.Equal(t, expected, env.balance(t, "recipient", baseAsset))
	assert.Zero(t, env.balance(t, "trader", baseAsset))
	assert.Zero(t, env.balance(t, "trader", assetA))
}

func TestPoolService_SlippageRefund(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	pool := seedPool(t, env, assetA, 10000000000, 500000000000)

	env.fundAndApprove("trader", baseAsset, 1000000000)

	_, err := env.poolSvc.SwapBaseForAsset(
		ctx, "trader", assetA, 1000000000, math.MaxUint64, "",
	)
	require.EqualError(t, err, application.ErrSlippageExceeded.Error())

	// the staged input got refunded, nothing else moved
	assert.Equal(t, uint64(1000000000), env.balance(t, "trader", baseAsset))
	assert.Equal(
		t, uint64(10000000000), env.balance(t, pool.AccountName, baseAsset),
	)
	assert.Equal(
		t, uint64(500000000000), env.balance(t, pool.AccountName, assetA),
	)

	trades, err := env.dbManager.TradeRepository().GetAllTrades(ctx)
	require.NoError(t, err)
	assert.Empty(t, trades)
}

func TestPoolService_InsufficientContribution(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	seedPool(t, env, assetA, 10000000000, 500000000000)

	env.fundAndApprove("provider2", baseAsset, 1000000000)
	env.fundAndApprove("provider2", assetA, 1000000000)

	// the proportional requirement for 1 base is 50 asset
	_, err := env.poolSvc.AddLiquidity(
		ctx, "provider2", assetA, 1000000000, 1000000000,
	)
	require.EqualError(t, err, application.ErrInsufficientContribution.Error())

	assert.Equal(t, uint64(1000000000), env.balance(t, "provider2", baseAsset))
	assert.Equal(t, uint64(1000000000), env.balance(t, "provider2", assetA))

	// a first deposit without any paired asset is rejected as well. The
	// refund restored the balance but not the spent authorization
	env.ledger.Approve("provider2", baseAsset, 1000000000)
	_, err = env.registrySvc.LaunchPool(ctx, assetB)
	require.NoError(t, err)
	_, err = env.poolSvc.AddLiquidity(ctx, "provider2", assetB, 1000000000, 0)
	require.EqualError(t, err, application.ErrInsufficientContribution.Error())
	assert.Equal(t, uint64(1000000000), env.balance(t, "provider2", baseAsset))
}

func TestFailingPoolService_InvalidInputs(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	seedPool(t, env, assetA, 10000000000, 500000000000)

	_, err := env.poolSvc.AddLiquidity(ctx, "", assetA, 1000, 1000)
	require.EqualError(t, err, application.ErrInvalidAccount.Error())

	_, err = env.poolSvc.AddLiquidity(ctx, "provider1", "bad", 1000, 1000)
	require.EqualError(t, err, application.ErrInvalidAsset.Error())

	_, err = env.poolSvc.AddLiquidity(ctx, "provider1", assetA, 0, 1000)
	require.EqualError(t, err, application.ErrInsufficientContribution.Error())

	_, err = env.poolSvc.SwapBaseForAsset(ctx, "trader", assetA, 0, 0, "")
	require.EqualError(t, err, application.ErrInvalidAmount.Error())

	_, err = env.poolSvc.SwapBaseForAsset(ctx, "trader", assetB, 1000, 0, "")
	require.EqualError(t, err, domain.ErrPoolNotFound.Error())

	_, err = env.poolSvc.RemoveLiquidity(ctx, "provider1", assetA, 0)
	require.EqualError(t, err, domain.ErrPoolInvalidShareAmount.Error())

	_, err = env.poolSvc.RemoveLiquidity(ctx, "stranger", assetA, 1000)
	require.EqualError(t, err, domain.ErrPoolInsufficientShareBalance.Error())
}

func TestPoolService_SwapAssetForAsset(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	srcPool := seedPool(t, env, assetA, 10000000000, 500000000000)
	destPool := seedPool(t, env, assetB, 10000000000, 500000000000)

	env.fundAndApprove("trader", assetA, 1000000000)

	// the expected output is the two pool legs composed
	baseOut, err := formula.OutGivenIn(
		1000000000, 500000000000, 10000000000, 25,
	)
	require.NoError(t, err)
	expected, err := formula.OutGivenIn(
		baseOut, 10000000000, 500000000000, 25,
	)
	require.NoError(t, err)

	swapRes, err := env.poolSvc.SwapAssetForAsset(
		ctx, "trader", assetA, 1000000000, expected, assetB, "",
	)
	require.NoError(t, err)
	assert.Equal(t, assetA, swapRes.AssetSent)
	assert.Equal(t, assetB, swapRes.AssetReceived)
	assert.Equal(t, uint64(1000000000), swapRes.AmountSent)
	assert.Equal(t, expected, swapRes.AmountReceived)

	assert.Zero(t, env.balance(t, "trader", assetA))
	assert.Equal(t, expected, env.balance(t, "trader", assetB))

	// the intermediate base amount moved from one pool to the other
	assert.Equal(
		t, 10000000000-baseOut, env.balance(t, srcPool.AccountName, baseAsset),
	)
	assert.Equal(
		t, 10000000000+baseOut, env.balance(t, destPool.AccountName, baseAsset),
	)

	trades, err := env.dbManager.TradeRepository().GetTradesByAsset(ctx, assetB)
	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.Equal(t, domain.TradeAssetForAsset, trades[0].Type)
}

func TestPoolService_SwapAssetForAssetAtomicity(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	srcPool := seedPool(t, env, assetA, 10000000000, 500000000000)
	destPool := seedPool(t, env, assetB, 10000000000, 500000000000)

	env.fundAndApprove("trader", assetA, 1000000000)

	_, err := env.poolSvc.SwapAssetForAsset(
		ctx, "trader", assetA, 1000000000, math.MaxUint64, assetB, "",
	)
	require.EqualError(t, err, application.ErrSlippageExceeded.Error())

	// both legs got unwound, every balance is back to the pre-call state
	assert.Equal(t, uint64(1000000000), env.balance(t, "trader", assetA))
	assert.Zero(t, env.balance(t, "trader", assetB))
	assert.Equal(
		t, uint64(10000000000), env.balance(t, srcPool.AccountName, baseAsset),
	)
	assert.Equal(
		t, uint64(500000000000), env.balance(t, srcPool.AccountName, assetA),
	)
	assert.Equal(
		t, uint64(10000000000), env.balance(t, destPool.AccountName, baseAsset),
	)
	assert.Equal(
		t, uint64(500000000000), env.balance(t, destPool.AccountName, assetB),
	)

	trades, err := env.dbManager.TradeRepository().GetAllTrades(ctx)
	require.NoError(t, err)
	assert.Empty(t, trades)
}

func TestFailingPoolService_SwapAssetForAsset(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	seedPool(t, env, assetA, 10000000000, 500000000000)

	env.fundAndApprove("trader", assetA, 1000000000)

	// base asset on either end is not a routed trade
	_, err := env.poolSvc.SwapAssetForAsset(
		ctx, "trader", assetA, 1000000000, 0, baseAsset, "",
	)
	require.EqualError(t, err, application.ErrInvalidDestination.Error())

	_, err = env.poolSvc.SwapAssetForAsset(
		ctx, "trader", assetA, 1000000000, 0, assetA, "",
	)
	require.EqualError(t, err, application.ErrInvalidDestination.Error())

	// unregistered destination
	_, err = env.poolSvc.SwapAssetForAsset(
		ctx, "trader", assetA, 1000000000, 0, assetB, "",
	)
	require.EqualError(t, err, application.ErrInvalidDestination.Error())

	assert.Equal(t, uint64(1000000000), env.balance(t, "trader", assetA))
}

func seedPool(
	t *testing.T, env *testEnv, asset string, baseAmount, assetAmount uint64,
) *domain.Pool {
	t.Helper()
	ctx := context.Background()

	pool, err := env.registrySvc.LaunchPool(ctx, asset)
	require.NoError(t, err)

	env.fundAndApprove("provider1", baseAsset, baseAmount)
	env.fundAndApprove("provider1", asset, assetAmount)
	_, err = env.poolSvc.AddLiquidity(
		ctx, "provider1", asset, baseAmount, assetAmount,
	)
	require.NoError(t, err)

	return pool
}
