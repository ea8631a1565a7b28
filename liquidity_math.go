package uniswap_v3_router

import (
	"errors"
	"math/big"

	"github.com/shopspring/decimal"
)

var OVERFLOW = errors.New("OVERFLOW")
var UNDERFLOW = errors.New("UNDERFLOW")

func LiquidityAddDelta(x decimal.Decimal, y decimal.Decimal) (decimal.Decimal, error) {
	if x.GreaterThan(MaxUint128) {
		return decimal.Zero, OVERFLOW
	}
	if y.GreaterThan(MaxUint128) {
		return decimal.Zero, OVERFLOW
	}
	if y.IsNegative() {
		negy := y.Neg()
		if negy.GreaterThan(x) {
			return decimal.Zero, UNDERFLOW
		}
		return x.Sub(negy), nil
	}
	if x.Add(y).GreaterThan(MaxUint128) {
		return decimal.Zero, OVERFLOW
	}
	return x.Add(y), nil
}

// TickSpacingToMaxLiquidityPerTick matches the venue contract, which
// truncates the tick division toward zero.
func TickSpacingToMaxLiquidityPerTick(tickSpacing int64) decimal.Decimal {
	minTick := int64(MIN_TICK) / tickSpacing * tickSpacing
	maxTick := int64(MAX_TICK) / tickSpacing * tickSpacing
	numTicks := (maxTick-minTick)/tickSpacing + 1
	q := new(big.Int).Div(MaxUint128.BigInt(), big.NewInt(numTicks))
	return decimal.NewFromBigInt(q, 0)
}

// GetAmountsForLiquidity returns how much token0/token1 the given liquidity
// represents between two range boundaries at the current price. Rounds down:
// these are amounts returned to the caller on burn.
func GetAmountsForLiquidity(
	sqrtRatioX96 decimal.Decimal,
	sqrtRatioAX96 decimal.Decimal,
	sqrtRatioBX96 decimal.Decimal,
	liquidity decimal.Decimal,
) (decimal.Decimal, decimal.Decimal, error) {
	sqrtRatioAX96, sqrtRatioBX96 = sortRatios(sqrtRatioAX96, sqrtRatioBX96)

	if sqrtRatioX96.LessThanOrEqual(sqrtRatioAX96) {
		// price below range: position is entirely token0
		amount0, err := GetAmount0DeltaWithRoundUp(sqrtRatioAX96, sqrtRatioBX96, liquidity, false)
		if err != nil {
			return decimal.Zero, decimal.Zero, err
		}
		return amount0, decimal.Zero, nil
	}
	if sqrtRatioX96.LessThan(sqrtRatioBX96) {
		amount0, err := GetAmount0DeltaWithRoundUp(sqrtRatioX96, sqrtRatioBX96, liquidity, false)
		if err != nil {
			return decimal.Zero, decimal.Zero, err
		}
		amount1, err := GetAmount1DeltaWithRoundUp(sqrtRatioAX96, sqrtRatioX96, liquidity, false)
		if err != nil {
			return decimal.Zero, decimal.Zero, err
		}
		return amount0, amount1, nil
	}
	// price above range: position is entirely token1
	amount1, err := GetAmount1DeltaWithRoundUp(sqrtRatioAX96, sqrtRatioBX96, liquidity, false)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return decimal.Zero, amount1, nil
}

// MaxLiquidityForAmount0 is the largest liquidity amount0 can fund between
// two boundaries. The full precision path keeps the intermediate product in
// 512 bits instead of truncating at Q96.
func MaxLiquidityForAmount0(
	sqrtRatioAX96 decimal.Decimal,
	sqrtRatioBX96 decimal.Decimal,
	amount0 decimal.Decimal,
	useFullPrecision bool,
) (decimal.Decimal, error) {
	sqrtRatioAX96, sqrtRatioBX96 = sortRatios(sqrtRatioAX96, sqrtRatioBX96)
	diff := sqrtRatioBX96.Sub(sqrtRatioAX96)
	if diff.IsZero() {
		return decimal.Zero, DIVISION_BY_ZERO
	}

	if useFullPrecision {
		numerator := new(big.Int).Mul(amount0.BigInt(), sqrtRatioAX96.BigInt())
		numerator.Mul(numerator, sqrtRatioBX96.BigInt())
		denominator := new(big.Int).Mul(Q96.BigInt(), diff.BigInt())
		return decimal.NewFromBigInt(numerator.Div(numerator, denominator), 0), nil
	}
	intermediate, err := MulDiv(sqrtRatioAX96, sqrtRatioBX96, Q96)
	if err != nil {
		return decimal.Zero, err
	}
	return MulDiv(amount0, intermediate, diff)
}

// MaxLiquidityForAmount1 is the largest liquidity amount1 can fund between
// two boundaries.
func MaxLiquidityForAmount1(
	sqrtRatioAX96 decimal.Decimal,
	sqrtRatioBX96 decimal.Decimal,
	amount1 decimal.Decimal,
) (decimal.Decimal, error) {
	sqrtRatioAX96, sqrtRatioBX96 = sortRatios(sqrtRatioAX96, sqrtRatioBX96)
	diff := sqrtRatioBX96.Sub(sqrtRatioAX96)
	if diff.IsZero() {
		return decimal.Zero, DIVISION_BY_ZERO
	}
	return MulDiv(amount1, Q96, diff)
}

// GetLiquidityForAmounts inverts GetAmountsForLiquidity: the maximal
// liquidity fundable by the two available amounts. In range it takes the
// minimum of the per-token liquidities, so the resulting position never
// requires more than either amount. Rounds down throughout.
func GetLiquidityForAmounts(
	sqrtRatioX96 decimal.Decimal,
	sqrtRatioAX96 decimal.Decimal,
	sqrtRatioBX96 decimal.Decimal,
	amount0 decimal.Decimal,
	amount1 decimal.Decimal,
	useFullPrecision bool,
) (decimal.Decimal, error) {
	sqrtRatioAX96, sqrtRatioBX96 = sortRatios(sqrtRatioAX96, sqrtRatioBX96)

	if sqrtRatioX96.LessThanOrEqual(sqrtRatioAX96) {
		return MaxLiquidityForAmount0(sqrtRatioAX96, sqrtRatioBX96, amount0, useFullPrecision)
	}
	if sqrtRatioX96.LessThan(sqrtRatioBX96) {
		liquidity0, err := MaxLiquidityForAmount0(sqrtRatioX96, sqrtRatioBX96, amount0, useFullPrecision)
		if err != nil {
			return decimal.Zero, err
		}
		liquidity1, err := MaxLiquidityForAmount1(sqrtRatioAX96, sqrtRatioX96, amount1)
		if err != nil {
			return decimal.Zero, err
		}
		if liquidity0.LessThan(liquidity1) {
			return liquidity0, nil
		}
		return liquidity1, nil
	}
	return MaxLiquidityForAmount1(sqrtRatioAX96, sqrtRatioBX96, amount1)
}
