// Package mathutil collects the integer helpers shared by the share
// accounting code paths.
package mathutil

import (
	"errors"
	"math/big"
)

// ErrDivisionByZero ...
var ErrDivisionByZero = errors.New("division by zero")

// MulDiv returns floor(a * b / c), computing the intermediate product on
// big.Int so that reserve-scale operands cannot overflow.
func MulDiv(a, b, c uint64) (uint64, error) {
	if c == 0 {
		return 0, ErrDivisionByZero
	}

	product := new(big.Int).Mul(
		new(big.Int).SetUint64(a),
		new(big.Int).SetUint64(b),
	)
	quotient := product.Quo(product, new(big.Int).SetUint64(c))
	if !quotient.IsUint64() {
		return 0, errors.New("quotient overflows uint64")
	}

	return quotient.Uint64(), nil
}
