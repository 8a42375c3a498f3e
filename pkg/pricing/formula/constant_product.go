// Package formula implements the constant product pricing rule used by every
// pool: (x + Δx)(y − Δy) = xy, with a proportional fee subtracted from the
// effective Δx before solving for Δy.
package formula

import (
	"errors"
	"math/big"

	"github.com/shopspring/decimal"
)

// FeeDenominator is the fixed scale of the percentage fee. A fee of 25 basis
// points makes the fee-adjusted input amountIn * 9975 / 10000. The numeric
// effect of these constants is part of the pricing contract and must not
// change.
const FeeDenominator = 10000

// DefaultFeeBasisPoint is the fee applied to pools created without an
// explicit fee policy.
const DefaultFeeBasisPoint = 25

var (
	// ErrInvalidReserves is returned when pricing is attempted against a
	// drained reserve.
	ErrInvalidReserves = errors.New("reserves must be positive")
	// ErrAmountTooLow is returned when the input amount is zero or the
	// computed output truncates to zero.
	ErrAmountTooLow = errors.New("provided amount is too low")
	// ErrAmountTooBig is returned when the computed output would not leave any
	// liquidity on the output side.
	ErrAmountTooBig = errors.New("provided amount is too big")
	// ErrInvalidFee is returned for a fee outside the [0, 9999] range.
	ErrInvalidFee = errors.New("fee basis point is out of range")
)

// OutGivenIn returns the amount of the output reserve exchanged for amountIn
// under the constant product rule:
//
//	out = (amountIn * (FeeDenominator - feeBasisPoint) * reserveOut) /
//	      (reserveIn * FeeDenominator + amountIn * (FeeDenominator - feeBasisPoint))
//
// All arithmetic is integer with truncating division, carried on big.Int
// since both products exceed 64 bits at reserve scale. Truncation always
// rounds in favour of the pool, so the product of the reserves never
// decreases across a trade.
func OutGivenIn(
	amountIn, reserveIn, reserveOut uint64, feeBasisPoint uint32,
) (uint64, error) {
	if feeBasisPoint >= FeeDenominator {
		return 0, ErrInvalidFee
	}
	if reserveIn == 0 || reserveOut == 0 {
		return 0, ErrInvalidReserves
	}
	if amountIn == 0 {
		return 0, ErrAmountTooLow
	}

	feeMultiplier := new(big.Int).SetUint64(FeeDenominator - uint64(feeBasisPoint))
	adjustedIn := new(big.Int).Mul(new(big.Int).SetUint64(amountIn), feeMultiplier)

	numerator := new(big.Int).Mul(adjustedIn, new(big.Int).SetUint64(reserveOut))
	denominator := new(big.Int).Mul(
		new(big.Int).SetUint64(reserveIn),
		big.NewInt(FeeDenominator),
	)
	denominator.Add(denominator, adjustedIn)

	out := new(big.Int).Quo(numerator, denominator)
	if out.Sign() <= 0 {
		return 0, ErrAmountTooLow
	}
	if out.Cmp(new(big.Int).SetUint64(reserveOut)) >= 0 {
		return 0, ErrAmountTooBig
	}

	return out.Uint64(), nil
}

// SpotPrice returns how much of the output reserve one unit of the input
// reserve is worth at the current balances, without fees. It is meant for
// quoting only, trades settle through OutGivenIn.
func SpotPrice(reserveIn, reserveOut uint64) (decimal.Decimal, error) {
	if reserveIn == 0 || reserveOut == 0 {
		return decimal.Zero, ErrInvalidReserves
	}

	in := decimal.NewFromBigInt(new(big.Int).SetUint64(reserveIn), 0)
	out := decimal.NewFromBigInt(new(big.Int).SetUint64(reserveOut), 0)
	return out.Div(in), nil
}
