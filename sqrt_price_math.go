package uniswap_v3_router

import (
	"errors"
	"math/big"

	"github.com/shopspring/decimal"
)

var SQRT_PRICE_INVARIANT = errors.New("SQRT_PRICE_INVARIANT")

func sortRatios(sqrtRatioAX96, sqrtRatioBX96 decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	if sqrtRatioAX96.GreaterThan(sqrtRatioBX96) {
		return sqrtRatioBX96, sqrtRatioAX96
	}
	return sqrtRatioAX96, sqrtRatioBX96
}

// GetAmount0Delta returns the token0 amount covered by liquidity between two
// sqrt prices. Positive liquidity rounds up (amount owed to the pool),
// negative rounds down (amount owed to the caller).
func GetAmount0Delta(
	sqrtRatioAX96 decimal.Decimal,
	sqrtRatioBX96 decimal.Decimal,
	liquidity decimal.Decimal,
) (decimal.Decimal, error) {
	if liquidity.IsNegative() {
		r, err := GetAmount0DeltaWithRoundUp(sqrtRatioAX96, sqrtRatioBX96, liquidity.Neg(), false)
		if err != nil {
			return decimal.Zero, err
		}
		return r.Neg(), nil
	}
	return GetAmount0DeltaWithRoundUp(sqrtRatioAX96, sqrtRatioBX96, liquidity, true)
}

// GetAmount1Delta is the token1 counterpart of GetAmount0Delta.
func GetAmount1Delta(
	sqrtRatioAX96 decimal.Decimal,
	sqrtRatioBX96 decimal.Decimal,
	liquidity decimal.Decimal,
) (decimal.Decimal, error) {
	if liquidity.IsNegative() {
		r, err := GetAmount1DeltaWithRoundUp(sqrtRatioAX96, sqrtRatioBX96, liquidity.Neg(), false)
		if err != nil {
			return decimal.Zero, err
		}
		return r.Neg(), nil
	}
	return GetAmount1DeltaWithRoundUp(sqrtRatioAX96, sqrtRatioBX96, liquidity, true)
}

func GetAmount0DeltaWithRoundUp(
	sqrtRatioAX96 decimal.Decimal,
	sqrtRatioBX96 decimal.Decimal,
	liquidity decimal.Decimal,
	roundUp bool,
) (decimal.Decimal, error) {
	sqrtRatioAX96, sqrtRatioBX96 = sortRatios(sqrtRatioAX96, sqrtRatioBX96)
	if sqrtRatioAX96.IsZero() {
		return decimal.Zero, DIVISION_BY_ZERO
	}
	numerator1 := decimal.NewFromBigInt(new(big.Int).Lsh(liquidity.BigInt(), 96), 0)
	numerator2 := sqrtRatioBX96.Sub(sqrtRatioAX96)

	if roundUp {
		tmp, err := MulDivRoundingUp(numerator1, numerator2, sqrtRatioBX96)
		if err != nil {
			return decimal.Zero, err
		}
		return MulDivRoundingUp(tmp, ONE, sqrtRatioAX96)
	}
	tmp, err := MulDiv(numerator1, numerator2, sqrtRatioBX96)
	if err != nil {
		return decimal.Zero, err
	}
	return MulDiv(tmp, ONE, sqrtRatioAX96)
}

func GetAmount1DeltaWithRoundUp(
	sqrtRatioAX96 decimal.Decimal,
	sqrtRatioBX96 decimal.Decimal,
	liquidity decimal.Decimal,
	roundUp bool,
) (decimal.Decimal, error) {
	sqrtRatioAX96, sqrtRatioBX96 = sortRatios(sqrtRatioAX96, sqrtRatioBX96)
	if roundUp {
		return MulDivRoundingUp(liquidity, sqrtRatioBX96.Sub(sqrtRatioAX96), Q96)
	}
	return MulDiv(liquidity, sqrtRatioBX96.Sub(sqrtRatioAX96), Q96)
}

// GetNextSqrtPriceFromInput returns the price after swapping amountIn,
// rounding in the direction that cannot underpay the pool.
func GetNextSqrtPriceFromInput(
	sqrtPX96 decimal.Decimal,
	liquidity decimal.Decimal,
	amountIn decimal.Decimal,
	zeroForOne bool,
) (decimal.Decimal, error) {
	if !sqrtPX96.IsPositive() || !liquidity.IsPositive() {
		return decimal.Zero, SQRT_PRICE_INVARIANT
	}
	if zeroForOne {
		return getNextSqrtPriceFromAmount0RoundingUp(sqrtPX96, liquidity, amountIn, true)
	}
	return getNextSqrtPriceFromAmount1RoundingDown(sqrtPX96, liquidity, amountIn, true)
}

// GetNextSqrtPriceFromOutput returns the price after the pool pays out
// amountOut.
func GetNextSqrtPriceFromOutput(
	sqrtPX96 decimal.Decimal,
	liquidity decimal.Decimal,
	amountOut decimal.Decimal,
	zeroForOne bool,
) (decimal.Decimal, error) {
	if !sqrtPX96.IsPositive() || !liquidity.IsPositive() {
		return decimal.Zero, SQRT_PRICE_INVARIANT
	}
	if zeroForOne {
		return getNextSqrtPriceFromAmount1RoundingDown(sqrtPX96, liquidity, amountOut, false)
	}
	return getNextSqrtPriceFromAmount0RoundingUp(sqrtPX96, liquidity, amountOut, false)
}

func getNextSqrtPriceFromAmount0RoundingUp(
	sqrtPX96 decimal.Decimal,
	liquidity decimal.Decimal,
	amount decimal.Decimal,
	add bool,
) (decimal.Decimal, error) {
	if amount.IsZero() {
		return sqrtPX96, nil
	}
	numerator1 := decimal.NewFromBigInt(new(big.Int).Lsh(liquidity.BigInt(), 96), 0)

	if add {
		product := MultiplyIn256(amount, sqrtPX96)
		check := new(big.Int).Div(product.BigInt(), amount.BigInt())
		if check.Cmp(sqrtPX96.BigInt()) == 0 {
			denominator := AddIn256(numerator1, product)
			if denominator.GreaterThanOrEqual(numerator1) {
				return MulDivRoundingUp(numerator1, sqrtPX96, denominator)
			}
		}
		base := decimal.NewFromBigInt(new(big.Int).Div(numerator1.BigInt(), sqrtPX96.BigInt()), 0)
		return MulDivRoundingUp(numerator1, ONE, base.Add(amount))
	}

	product := MultiplyIn256(amount, sqrtPX96)
	check := new(big.Int).Div(product.BigInt(), amount.BigInt())
	if check.Cmp(sqrtPX96.BigInt()) != 0 {
		return decimal.Zero, SQRT_PRICE_INVARIANT
	}
	if numerator1.LessThanOrEqual(product) {
		return decimal.Zero, SQRT_PRICE_INVARIANT
	}
	denominator := numerator1.Sub(product)
	return MulDivRoundingUp(numerator1, sqrtPX96, denominator)
}

func getNextSqrtPriceFromAmount1RoundingDown(
	sqrtPX96 decimal.Decimal,
	liquidity decimal.Decimal,
	amount decimal.Decimal,
	add bool,
) (decimal.Decimal, error) {
	if add {
		var quotient decimal.Decimal
		if amount.LessThanOrEqual(MaxUint160) {
			shifted := decimal.NewFromBigInt(new(big.Int).Lsh(amount.BigInt(), 96), 0)
			quotient = decimal.NewFromBigInt(new(big.Int).Div(shifted.BigInt(), liquidity.BigInt()), 0)
		} else {
			var err error
			quotient, err = MulDiv(amount, Q96, liquidity)
			if err != nil {
				return decimal.Zero, err
			}
		}
		return sqrtPX96.Add(quotient), nil
	}

	quotient, err := MulDivRoundingUp(amount, Q96, liquidity)
	if err != nil {
		return decimal.Zero, err
	}
	if sqrtPX96.LessThanOrEqual(quotient) {
		return decimal.Zero, SQRT_PRICE_INVARIANT
	}
	return sqrtPX96.Sub(quotient), nil
}
