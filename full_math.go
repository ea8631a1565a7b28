package uniswap_v3_router

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// MulDiv computes floor(a * b / denominator) without intermediate precision
// loss.
func MulDiv(a, b, denominator decimal.Decimal) (decimal.Decimal, error) {
	if denominator.IsZero() {
		return decimal.Zero, DIVISION_BY_ZERO
	}
	product := new(big.Int).Mul(a.BigInt(), b.BigInt())
	result := product.Div(product, denominator.BigInt())
	return decimal.NewFromBigInt(result, 0), nil
}

// MulDivRoundingUp computes ceil(a * b / denominator).
func MulDivRoundingUp(a, b, denominator decimal.Decimal) (decimal.Decimal, error) {
	if denominator.IsZero() {
		return decimal.Zero, DIVISION_BY_ZERO
	}
	product := new(big.Int).Mul(a.BigInt(), b.BigInt())
	result, remainder := new(big.Int).DivMod(product, denominator.BigInt(), new(big.Int))
	if remainder.Sign() != 0 {
		result.Add(result, big.NewInt(1))
	}
	return decimal.NewFromBigInt(result, 0), nil
}

// MultiplyIn256 multiplies with wrap-around at 2^256, matching EVM uint256
// semantics for the overflow probes in sqrt price math.
func MultiplyIn256(x, y decimal.Decimal) decimal.Decimal {
	product := new(big.Int).Mul(x.BigInt(), y.BigInt())
	product.And(product, MaxUint256.BigInt())
	return decimal.NewFromBigInt(product, 0)
}

// AddIn256 adds with wrap-around at 2^256.
func AddIn256(x, y decimal.Decimal) decimal.Decimal {
	sum := new(big.Int).Add(x.BigInt(), y.BigInt())
	sum.And(sum, MaxUint256.BigInt())
	return decimal.NewFromBigInt(sum, 0)
}
