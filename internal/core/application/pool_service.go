package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/swapdex-network/swapdex-daemon/internal/core/domain"
	"github.com/swapdex-network/swapdex-daemon/internal/core/ports"
	"github.com/swapdex-network/swapdex-daemon/pkg/circuitbreaker"
	"github.com/swapdex-network/swapdex-daemon/pkg/mathutil"
	"github.com/swapdex-network/swapdex-daemon/pkg/pricing/formula"
)

// PoolService exposes the operation set of the pools: liquidity
// provision/redemption and the three swap directions. Calls are strictly
// serialized, every operation is a single synchronous unit of work that
// either fully completes or leaves reserves, shares and ledger balances
// exactly as they were.
type PoolService interface {
	// GetReserve returns the paired-asset balance custodied by the pool,
	// read live from the asset ledger.
	GetReserve(ctx context.Context, asset string) (uint64, error)
	// PreviewSwap quotes the output of a swap against the current reserves
	// without touching any state.
	PreviewSwap(
		ctx context.Context, asset string, amountIn uint64, baseIn bool,
	) (uint64, error)
	// AddLiquidity deposits baseAmount of base asset plus the proportional
	// paired-asset amount (capped by desiredAssetAmount) and mints liquidity
	// shares for the provider.
	AddLiquidity(
		ctx context.Context, provider, asset string,
		baseAmount, desiredAssetAmount uint64,
	) (*AddLiquidityResult, error)
	// RemoveLiquidity burns shareAmount of the provider's shares and redeems
	// the proportional slice of both reserves.
	RemoveLiquidity(
		ctx context.Context, provider, asset string, shareAmount uint64,
	) (*RemoveLiquidityResult, error)
	// SwapBaseForAsset sells base asset to the pool for its paired asset.
	SwapBaseForAsset(
		ctx context.Context, trader, asset string,
		amountIn, minAmountOut uint64, recipient string,
	) (*SwapResult, error)
	// SwapAssetForBase sells the paired asset to the pool for base asset.
	SwapAssetForBase(
		ctx context.Context, trader, asset string,
		amountIn, minAmountOut uint64, recipient string,
	) (*SwapResult, error)
	// SwapAssetForAsset routes a trade through two pools via the base asset.
	// minAmountOut is denominated in the destination asset. The two legs are
	// settled all-or-nothing.
	SwapAssetForAsset(
		ctx context.Context, trader, sourceAsset string,
		amountIn, minAmountOut uint64, destAsset, recipient string,
	) (*SwapResult, error)
}

type poolService struct {
	baseAsset            string
	poolRepository       domain.PoolRepository
	tradeRepository      domain.TradeRepository
	depositRepository    domain.DepositRepository
	withdrawalRepository domain.WithdrawalRepository
	ledger               ports.AssetLedger
	cb                   *gobreaker.CircuitBreaker
	pubsub               ports.PubSubService

	lock sync.Mutex
}

// NewPoolService returns a PoolService backed by the given repositories,
// asset ledger and notification service.
func NewPoolService(
	baseAsset string,
	dbManager ports.DbManager,
	ledger ports.AssetLedger,
	pubsub ports.PubSubService,
) (PoolService, error) {
	if err := validateAssetString(baseAsset); err != nil {
		return nil, err
	}

	return &poolService{
		baseAsset:            baseAsset,
		poolRepository:       dbManager.PoolRepository(),
		tradeRepository:      dbManager.TradeRepository(),
		depositRepository:    dbManager.DepositRepository(),
		withdrawalRepository: dbManager.WithdrawalRepository(),
		ledger:               ledger,
		cb:                   circuitbreaker.NewCircuitBreaker(),
		pubsub:               pubsub,
	}, nil
}

func (s *poolService) GetReserve(
	ctx context.Context, asset string,
) (uint64, error) {
	if err := validateAssetString(asset); err != nil {
		return 0, err
	}

	pool, err := s.poolRepository.GetPoolByAsset(ctx, asset)
	if err != nil {
		return 0, err
	}

	return s.balanceOf(ctx, pool.AccountName, asset)
}

func (s *poolService) PreviewSwap(
	ctx context.Context, asset string, amountIn uint64, baseIn bool,
) (uint64, error) {
	if err := validateAssetString(asset); err != nil {
		return 0, err
	}

	pool, err := s.poolRepository.GetPoolByAsset(ctx, asset)
	if err != nil {
		return 0, err
	}

	baseReserve, err := s.balanceOf(ctx, pool.AccountName, s.baseAsset)
	if err != nil {
		return 0, err
	}
	assetReserve, err := s.balanceOf(ctx, pool.AccountName, asset)
	if err != nil {
		return 0, err
	}

	if baseIn {
		return formula.OutGivenIn(
			amountIn, baseReserve, assetReserve, pool.FeeBasisPoint,
		)
	}
	return formula.OutGivenIn(
		amountIn, assetReserve, baseReserve, pool.FeeBasisPoint,
	)
}

func (s *poolService) AddLiquidity(
	ctx context.Context, provider, asset string,
	baseAmount, desiredAssetAmount uint64,
) (*AddLiquidityResult, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if err := validateAccountString(provider); err != nil {
		return nil, err
	}
	if err := validateAssetString(asset); err != nil {
		return nil, err
	}
	if baseAmount == 0 {
		return nil, ErrInsufficientContribution
	}

	pool, err := s.poolRepository.GetPoolByAsset(ctx, asset)
	if err != nil {
		return nil, err
	}

	// The base contribution is credited first, like the ledger does with the
	// amount attached to the call. The pre-call reserve is always derived
	// explicitly from the known incoming amount right after.
	if err := s.transferFrom(
		ctx, provider, pool.AccountName, s.baseAsset, baseAmount,
	); err != nil {
		return nil, err
	}
	refundBase := func() {
		s.compensate(ctx, pool.AccountName, provider, s.baseAsset, baseAmount)
	}

	baseBalance, err := s.balanceOf(ctx, pool.AccountName, s.baseAsset)
	if err != nil {
		refundBase()
		return nil, err
	}
	baseReserveBefore := baseBalance - baseAmount

	assetReserve, err := s.balanceOf(ctx, pool.AccountName, asset)
	if err != nil {
		refundBase()
		return nil, err
	}

	var assetToDebit, sharesToMint uint64
	if pool.IsDormant() {
		// first deposit, the provider fixes the initial exchange rate and
		// one share is worth one unit of base asset
		if desiredAssetAmount == 0 {
			refundBase()
			return nil, ErrInsufficientContribution
		}
		assetToDebit = desiredAssetAmount
		sharesToMint = baseAmount
	} else {
		required, err := mathutil.MulDiv(
			baseAmount, assetReserve, baseReserveBefore,
		)
		if err != nil || required == 0 || desiredAssetAmount < required {
			refundBase()
			return nil, ErrInsufficientContribution
		}

		minted, err := mathutil.MulDiv(
			baseAmount, pool.TotalShares, baseReserveBefore,
		)
		if err != nil || minted == 0 {
			refundBase()
			return nil, ErrInsufficientContribution
		}

		assetToDebit = required
		sharesToMint = minted
	}

	if err := s.transferFrom(
		ctx, provider, pool.AccountName, asset, assetToDebit,
	); err != nil {
		refundBase()
		return nil, err
	}

	if err := s.poolRepository.UpdatePool(
		ctx, asset, func(p *domain.Pool) (*domain.Pool, error) {
			if err := p.MintShares(provider, sharesToMint); err != nil {
				return nil, err
			}
			return p, nil
		},
	); err != nil {
		s.compensate(ctx, pool.AccountName, provider, asset, assetToDebit)
		refundBase()
		return nil, err
	}

	deposit := domain.NewDeposit(
		asset, provider, baseAmount, assetToDebit, sharesToMint,
	)
	if err := s.depositRepository.AddDeposit(ctx, deposit); err != nil {
		log.WithError(err).Warn("failed to persist deposit record")
	}
	s.publishLiquidityEvent(
		eventTypeInvestment, provider, asset,
		baseAmount, assetToDebit, sharesToMint,
	)

	log.WithFields(log.Fields{
		"asset":    asset,
		"provider": provider,
		"shares":   sharesToMint,
	}).Info("liquidity added")

	return &AddLiquidityResult{
		SharesMinted:       sharesToMint,
		AssetAmountDebited: assetToDebit,
	}, nil
}

func (s *poolService) RemoveLiquidity(
	ctx context.Context, provider, asset string, shareAmount uint64,
) (*RemoveLiquidityResult, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if err := validateAccountString(provider); err != nil {
		return nil, err
	}
	if err := validateAssetString(asset); err != nil {
		return nil, err
	}
	if shareAmount == 0 {
		return nil, domain.ErrPoolInvalidShareAmount
	}

	pool, err := s.poolRepository.GetPoolByAsset(ctx, asset)
	if err != nil {
		return nil, err
	}
	if pool.SharesOf(provider) < shareAmount {
		return nil, domain.ErrPoolInsufficientShareBalance
	}

	baseBalance, err := s.balanceOf(ctx, pool.AccountName, s.baseAsset)
	if err != nil {
		return nil, err
	}
	assetBalance, err := s.balanceOf(ctx, pool.AccountName, asset)
	if err != nil {
		return nil, err
	}

	// proportional redemption, both computed from pre-burn balances and the
	// pre-burn share supply
	baseOut, err := mathutil.MulDiv(baseBalance, shareAmount, pool.TotalShares)
	if err != nil {
		return nil, err
	}
	assetOut, err := mathutil.MulDiv(assetBalance, shareAmount, pool.TotalShares)
	if err != nil {
		return nil, err
	}

	if err := s.poolRepository.UpdatePool(
		ctx, asset, func(p *domain.Pool) (*domain.Pool, error) {
			if err := p.BurnShares(provider, shareAmount); err != nil {
				return nil, err
			}
			return p, nil
		},
	); err != nil {
		return nil, err
	}

	if err := s.transfer(
		ctx, pool.AccountName, provider, s.baseAsset, baseOut,
	); err != nil {
		s.remintShares(ctx, asset, provider, shareAmount)
		return nil, err
	}
	if err := s.transfer(
		ctx, pool.AccountName, provider, asset, assetOut,
	); err != nil {
		s.compensate(ctx, provider, pool.AccountName, s.baseAsset, baseOut)
		s.remintShares(ctx, asset, provider, shareAmount)
		return nil, err
	}

	withdrawal := domain.NewWithdrawal(
		asset, provider, shareAmount, baseOut, assetOut,
	)
	if err := s.withdrawalRepository.AddWithdrawal(ctx, withdrawal); err != nil {
		log.WithError(err).Warn("failed to persist withdrawal record")
	}
	s.publishLiquidityEvent(
		eventTypeDivestment, provider, asset, baseOut, assetOut, shareAmount,
	)

	log.WithFields(log.Fields{
		"asset":    asset,
		"provider": provider,
		"shares":   shareAmount,
	}).Info("liquidity removed")

	return &RemoveLiquidityResult{
		BaseAmount:  baseOut,
		AssetAmount: assetOut,
	}, nil
}

func (s *poolService) SwapBaseForAsset(
	ctx context.Context, trader, asset string,
	amountIn, minAmountOut uint64, recipient string,
) (*SwapResult, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.swapWithPool(
		ctx, trader, asset, amountIn, minAmountOut, recipient, true,
	)
}

func (s *poolService) SwapAssetForBase(
	ctx context.Context, trader, asset string,
	amountIn, minAmountOut uint64, recipient string,
) (*SwapResult, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.swapWithPool(
		ctx, trader, asset, amountIn, minAmountOut, recipient, false,
	)
}

func (s *poolService) SwapAssetForAsset(
	ctx context.Context, trader, sourceAsset string,
	amountIn, minAmountOut uint64, destAsset, recipient string,
) (*SwapResult, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if err := validateAccountString(trader); err != nil {
		return nil, err
	}
	if err := validateAssetString(sourceAsset); err != nil {
		return nil, err
	}
	if err := validateAssetString(destAsset); err != nil {
		return nil, err
	}
	if amountIn == 0 {
		return nil, ErrInvalidAmount
	}
	if sourceAsset == s.baseAsset || destAsset == s.baseAsset ||
		sourceAsset == destAsset {
		return nil, ErrInvalidDestination
	}
	if recipient == "" {
		recipient = trader
	}

	srcPool, err := s.poolRepository.GetPoolByAsset(ctx, sourceAsset)
	if err != nil {
		return nil, err
	}
	destPool, err := s.poolRepository.GetPoolByAsset(ctx, destAsset)
	if err != nil {
		if errors.Is(err, domain.ErrPoolNotFound) {
			return nil, ErrInvalidDestination
		}
		return nil, err
	}

	// leg 1: stage the input on the source pool and price the intermediate
	// base amount
	if err := s.transferFrom(
		ctx, trader, srcPool.AccountName, sourceAsset, amountIn,
	); err != nil {
		return nil, err
	}
	refundInput := func() {
		s.compensate(ctx, srcPool.AccountName, trader, sourceAsset, amountIn)
	}

	srcAssetBalance, err := s.balanceOf(ctx, srcPool.AccountName, sourceAsset)
	if err != nil {
		refundInput()
		return nil, err
	}
	srcAssetReserveBefore := srcAssetBalance - amountIn

	srcBaseReserve, err := s.balanceOf(ctx, srcPool.AccountName, s.baseAsset)
	if err != nil {
		refundInput()
		return nil, err
	}

	baseOut, err := formula.OutGivenIn(
		amountIn, srcAssetReserveBefore, srcBaseReserve, srcPool.FeeBasisPoint,
	)
	if err != nil {
		refundInput()
		return nil, err
	}

	// forward the intermediate amount into the destination pool as a
	// simulated base deposit
	if err := s.transfer(
		ctx, srcPool.AccountName, destPool.AccountName, s.baseAsset, baseOut,
	); err != nil {
		refundInput()
		return nil, err
	}
	unwind := func() {
		s.compensate(
			ctx, destPool.AccountName, srcPool.AccountName, s.baseAsset, baseOut,
		)
		refundInput()
	}

	// leg 2: price and settle against the destination pool with the caller's
	// minimum as slippage bound
	destBaseBalance, err := s.balanceOf(ctx, destPool.AccountName, s.baseAsset)
	if err != nil {
		unwind()
		return nil, err
	}
	destBaseReserveBefore := destBaseBalance - baseOut

	destAssetReserve, err := s.balanceOf(ctx, destPool.AccountName, destAsset)
	if err != nil {
		unwind()
		return nil, err
	}

	destOut, err := formula.OutGivenIn(
		baseOut, destBaseReserveBefore, destAssetReserve, destPool.FeeBasisPoint,
	)
	if err != nil {
		unwind()
		return nil, err
	}
	if destOut < minAmountOut {
		unwind()
		return nil, ErrSlippageExceeded
	}

	if err := s.transfer(
		ctx, destPool.AccountName, recipient, destAsset, destOut,
	); err != nil {
		unwind()
		return nil, err
	}

	trade := domain.NewTrade(
		domain.TradeAssetForAsset, trader, recipient,
		sourceAsset, destAsset, amountIn, destOut, srcPool.FeeBasisPoint,
	)
	if err := s.tradeRepository.AddTrade(ctx, trade); err != nil {
		log.WithError(err).Warn("failed to persist trade record")
	}
	s.publishTradeEvent(eventTypeAssetForAsset, trade)

	log.WithFields(log.Fields{
		"source_asset":      sourceAsset,
		"destination_asset": destAsset,
		"amount_in":         amountIn,
		"amount_out":        destOut,
	}).Info("token-to-token swap settled")

	return &SwapResult{
		AssetSent:      sourceAsset,
		AssetReceived:  destAsset,
		AmountSent:     amountIn,
		AmountReceived: destOut,
	}, nil
}

// swapWithPool settles a single-pool swap in either direction. Callers must
// hold the service lock.
func (s *poolService) swapWithPool(
	ctx context.Context, trader, asset string,
	amountIn, minAmountOut uint64, recipient string, baseIn bool,
) (*SwapResult, error) {
	if err := validateAccountString(trader); err != nil {
		return nil, err
	}
	if err := validateAssetString(asset); err != nil {
		return nil, err
	}
	if amountIn == 0 {
		return nil, ErrInvalidAmount
	}
	if recipient == "" {
		recipient = trader
	}

	pool, err := s.poolRepository.GetPoolByAsset(ctx, asset)
	if err != nil {
		return nil, err
	}

	assetIn, assetOut := s.baseAsset, asset
	if !baseIn {
		assetIn, assetOut = asset, s.baseAsset
	}

	if err := s.transferFrom(
		ctx, trader, pool.AccountName, assetIn, amountIn,
	); err != nil {
		return nil, err
	}
	refund := func() {
		s.compensate(ctx, pool.AccountName, trader, assetIn, amountIn)
	}

	// the input is already credited to the pool account at this point, the
	// pre-call input reserve is derived explicitly from the known incoming
	// amount
	inBalance, err := s.balanceOf(ctx, pool.AccountName, assetIn)
	if err != nil {
		refund()
		return nil, err
	}
	reserveInBefore := inBalance - amountIn

	reserveOut, err := s.balanceOf(ctx, pool.AccountName, assetOut)
	if err != nil {
		refund()
		return nil, err
	}

	out, err := formula.OutGivenIn(
		amountIn, reserveInBefore, reserveOut, pool.FeeBasisPoint,
	)
	if err != nil {
		refund()
		return nil, err
	}
	if out < minAmountOut {
		refund()
		return nil, ErrSlippageExceeded
	}

	if err := s.transfer(
		ctx, pool.AccountName, recipient, assetOut, out,
	); err != nil {
		refund()
		return nil, err
	}

	tradeType := domain.TradeBaseForAsset
	eventType := eventTypeBaseForAsset
	if !baseIn {
		tradeType = domain.TradeAssetForBase
		eventType = eventTypeAssetForBase
	}
	trade := domain.NewTrade(
		tradeType, trader, recipient,
		assetIn, assetOut, amountIn, out, pool.FeeBasisPoint,
	)
	if err := s.tradeRepository.AddTrade(ctx, trade); err != nil {
		log.WithError(err).Warn("failed to persist trade record")
	}
	s.publishTradeEvent(eventType, trade)

	log.WithFields(log.Fields{
		"asset":      asset,
		"amount_in":  amountIn,
		"amount_out": out,
	}).Info("swap settled")

	return &SwapResult{
		AssetSent:      assetIn,
		AssetReceived:  assetOut,
		AmountSent:     amountIn,
		AmountReceived: out,
	}, nil
}

func (s *poolService) balanceOf(
	ctx context.Context, account, asset string,
) (uint64, error) {
	res, err := s.cb.Execute(func() (interface{}, error) {
		return s.ledger.BalanceOf(ctx, account, asset)
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrLedgerUnavailable, err)
	}
	return res.(uint64), nil
}

func (s *poolService) transfer(
	ctx context.Context, from, to, asset string, amount uint64,
) error {
	if amount == 0 {
		return nil
	}
	if _, err := s.cb.Execute(func() (interface{}, error) {
		return nil, s.ledger.Transfer(ctx, from, to, asset, amount)
	}); err != nil {
		return fmt.Errorf("%w: %v", ErrLedgerTransferFailed, err)
	}
	return nil
}

func (s *poolService) transferFrom(
	ctx context.Context, authorizer, to, asset string, amount uint64,
) error {
	if amount == 0 {
		return nil
	}
	if _, err := s.cb.Execute(func() (interface{}, error) {
		return nil, s.ledger.TransferFrom(ctx, authorizer, to, asset, amount)
	}); err != nil {
		return fmt.Errorf("%w: %v", ErrLedgerTransferFailed, err)
	}
	return nil
}

// compensate undoes an already settled transfer while aborting an operation.
// A failure here cannot be recovered from within the engine, it is logged
// loudly instead.
func (s *poolService) compensate(
	ctx context.Context, from, to, asset string, amount uint64,
) {
	if err := s.transfer(ctx, from, to, asset, amount); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"from":   from,
			"to":     to,
			"asset":  asset,
			"amount": amount,
		}).Error("failed to compensate transfer, ledger may be inconsistent")
	}
}

func (s *poolService) remintShares(
	ctx context.Context, asset, provider string, amount uint64,
) {
	if err := s.poolRepository.UpdatePool(
		ctx, asset, func(p *domain.Pool) (*domain.Pool, error) {
			if err := p.MintShares(provider, amount); err != nil {
				return nil, err
			}
			return p, nil
		},
	); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"asset":    asset,
			"provider": provider,
			"amount":   amount,
		}).Error("failed to restore burned shares")
	}
}

func (s *poolService) publishTradeEvent(eventType string, trade *domain.Trade) {
	payload, _ := json.Marshal(TradeEvent{
		Type:             eventType,
		TraderAccount:    trade.TraderAccount,
		RecipientAccount: trade.RecipientAccount,
		AssetSent:        trade.AssetSent,
		AssetReceived:    trade.AssetReceived,
		AmountSent:       trade.AmountSent,
		AmountReceived:   trade.AmountReceived,
	})
	if err := s.pubsub.Publish(ports.TopicTrade, string(payload)); err != nil {
		log.WithError(err).Warn("failed to publish trade notification")
	}
}

func (s *poolService) publishLiquidityEvent(
	eventType, provider, asset string,
	baseAmount, assetAmount, shares uint64,
) {
	payload, _ := json.Marshal(LiquidityEvent{
		Type:            eventType,
		ProviderAccount: provider,
		Asset:           asset,
		BaseAmount:      baseAmount,
		AssetAmount:     assetAmount,
		Shares:          shares,
	})
	if err := s.pubsub.Publish(ports.TopicLiquidity, string(payload)); err != nil {
		log.WithError(err).Warn("failed to publish liquidity notification")
	}
}
