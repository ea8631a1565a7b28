package uniswap_v3_router

import (
	"errors"

	"github.com/shopspring/decimal"
)

var INVALID_TICK_RANGE = errors.New("INVALID_TICK_RANGE")

// Position is a concentrated-liquidity range on one pool. Like the pool it
// references, it is a value, never mutated after construction.
type Position struct {
	Pool      *CorePool
	TickLower int
	TickUpper int
	Liquidity decimal.Decimal
}

func NewPosition(pool *CorePool, tickLower int, tickUpper int, liquidity decimal.Decimal) (*Position, error) {
	if err := checkTickRange(pool, tickLower, tickUpper); err != nil {
		return nil, err
	}
	if liquidity.IsNegative() {
		return nil, UNDERFLOW
	}
	return &Position{
		Pool:      pool,
		TickLower: tickLower,
		TickUpper: tickUpper,
		Liquidity: liquidity,
	}, nil
}

// NewPositionFromAmounts derives the maximal liquidity the desired amounts
// can fund over [tickLower, tickUpper] at the pool's current price.
func NewPositionFromAmounts(
	pool *CorePool,
	tickLower int,
	tickUpper int,
	amount0Desired decimal.Decimal,
	amount1Desired decimal.Decimal,
	useFullPrecision bool,
) (*Position, error) {
	if err := checkTickRange(pool, tickLower, tickUpper); err != nil {
		return nil, err
	}
	sqrtRatioAX96, err := GetSqrtRatioAtTick(tickLower)
	if err != nil {
		return nil, err
	}
	sqrtRatioBX96, err := GetSqrtRatioAtTick(tickUpper)
	if err != nil {
		return nil, err
	}
	liquidity, err := GetLiquidityForAmounts(
		pool.SqrtPriceX96, sqrtRatioAX96, sqrtRatioBX96,
		amount0Desired, amount1Desired, useFullPrecision)
	if err != nil {
		return nil, err
	}
	return &Position{
		Pool:      pool,
		TickLower: tickLower,
		TickUpper: tickUpper,
		Liquidity: liquidity,
	}, nil
}

func checkTickRange(pool *CorePool, tickLower int, tickUpper int) error {
	if tickLower >= tickUpper {
		return INVALID_TICK_RANGE
	}
	if tickLower < MIN_TICK || tickLower%pool.TickSpacing != 0 {
		return INVALID_TICK_RANGE
	}
	if tickUpper > MAX_TICK || tickUpper%pool.TickSpacing != 0 {
		return INVALID_TICK_RANGE
	}
	return nil
}

// AmountsAtCurrentPrice quotes the position's current value at the pool's
// live price, rounding down as amounts returned to the caller do.
func (p *Position) AmountsAtCurrentPrice() (decimal.Decimal, decimal.Decimal, error) {
	sqrtRatioAX96, err := GetSqrtRatioAtTick(p.TickLower)
	if err != nil {
		return ZERO, ZERO, err
	}
	sqrtRatioBX96, err := GetSqrtRatioAtTick(p.TickUpper)
	if err != nil {
		return ZERO, ZERO, err
	}
	return GetAmountsForLiquidity(p.Pool.SqrtPriceX96, sqrtRatioAX96, sqrtRatioBX96, p.Liquidity)
}

// MintAmounts is what the caller must deposit to create the position,
// rounding up so the deposit is never insufficient.
func (p *Position) MintAmounts() (decimal.Decimal, decimal.Decimal, error) {
	sqrtRatioAX96, err := GetSqrtRatioAtTick(p.TickLower)
	if err != nil {
		return ZERO, ZERO, err
	}
	sqrtRatioBX96, err := GetSqrtRatioAtTick(p.TickUpper)
	if err != nil {
		return ZERO, ZERO, err
	}
	current := p.Pool.SqrtPriceX96
	if current.LessThan(sqrtRatioAX96) {
		amount0, err := GetAmount0DeltaWithRoundUp(sqrtRatioAX96, sqrtRatioBX96, p.Liquidity, true)
		if err != nil {
			return ZERO, ZERO, err
		}
		return amount0, ZERO, nil
	}
	if current.LessThan(sqrtRatioBX96) {
		amount0, err := GetAmount0DeltaWithRoundUp(current, sqrtRatioBX96, p.Liquidity, true)
		if err != nil {
			return ZERO, ZERO, err
		}
		amount1, err := GetAmount1DeltaWithRoundUp(sqrtRatioAX96, current, p.Liquidity, true)
		if err != nil {
			return ZERO, ZERO, err
		}
		return amount0, amount1, nil
	}
	amount1, err := GetAmount1DeltaWithRoundUp(sqrtRatioAX96, sqrtRatioBX96, p.Liquidity, true)
	if err != nil {
		return ZERO, ZERO, err
	}
	return ZERO, amount1, nil
}

// MintAmountsWithSlippage returns the amount0Min/amount1Min pair for mint
// calldata. The bounds come from re-deriving the position against
// counterfactual pools whose price moved by the tolerance in each
// direction, then taking that position's mint amounts.
func (p *Position) MintAmountsWithSlippage(tolerance *Fraction) (decimal.Decimal, decimal.Decimal, error) {
	if err := checkTolerance(tolerance); err != nil {
		return ZERO, ZERO, err
	}
	priceLower, priceUpper, err := p.ratiosAfterSlippage(tolerance)
	if err != nil {
		return ZERO, ZERO, err
	}

	// a position minted at the worst acceptable upper price needs the
	// least token0, and at the worst lower price the least token1
	poolUpper, err := p.counterfactualPool(priceUpper)
	if err != nil {
		return ZERO, ZERO, err
	}
	poolLower, err := p.counterfactualPool(priceLower)
	if err != nil {
		return ZERO, ZERO, err
	}

	mint0, mint1, err := p.MintAmounts()
	if err != nil {
		return ZERO, ZERO, err
	}
	positionThatWillBeCreated, err := NewPositionFromAmounts(
		p.Pool, p.TickLower, p.TickUpper, mint0, mint1, false)
	if err != nil {
		return ZERO, ZERO, err
	}
	atUpper := &Position{
		Pool:      poolUpper,
		TickLower: p.TickLower,
		TickUpper: p.TickUpper,
		Liquidity: positionThatWillBeCreated.Liquidity,
	}
	atLower := &Position{
		Pool:      poolLower,
		TickLower: p.TickLower,
		TickUpper: p.TickUpper,
		Liquidity: positionThatWillBeCreated.Liquidity,
	}
	amount0, _, err := atUpper.MintAmounts()
	if err != nil {
		return ZERO, ZERO, err
	}
	_, amount1, err := atLower.MintAmounts()
	if err != nil {
		return ZERO, ZERO, err
	}
	return amount0, amount1, nil
}

// BurnAmountsWithSlippage returns the amount0Min/amount1Min pair for
// decrease-liquidity calldata, rounding down as amounts owed to the caller.
func (p *Position) BurnAmountsWithSlippage(tolerance *Fraction) (decimal.Decimal, decimal.Decimal, error) {
	if err := checkTolerance(tolerance); err != nil {
		return ZERO, ZERO, err
	}
	priceLower, priceUpper, err := p.ratiosAfterSlippage(tolerance)
	if err != nil {
		return ZERO, ZERO, err
	}
	poolUpper, err := p.counterfactualPool(priceUpper)
	if err != nil {
		return ZERO, ZERO, err
	}
	poolLower, err := p.counterfactualPool(priceLower)
	if err != nil {
		return ZERO, ZERO, err
	}
	sqrtRatioAX96, err := GetSqrtRatioAtTick(p.TickLower)
	if err != nil {
		return ZERO, ZERO, err
	}
	sqrtRatioBX96, err := GetSqrtRatioAtTick(p.TickUpper)
	if err != nil {
		return ZERO, ZERO, err
	}
	amount0, _, err := GetAmountsForLiquidity(poolUpper.SqrtPriceX96, sqrtRatioAX96, sqrtRatioBX96, p.Liquidity)
	if err != nil {
		return ZERO, ZERO, err
	}
	_, amount1, err := GetAmountsForLiquidity(poolLower.SqrtPriceX96, sqrtRatioAX96, sqrtRatioBX96, p.Liquidity)
	if err != nil {
		return ZERO, ZERO, err
	}
	return amount0, amount1, nil
}

// ratiosAfterSlippage bounds the pool price by the tolerance in both
// directions, clamped to the representable sqrt-price range.
func (p *Position) ratiosAfterSlippage(tolerance *Fraction) (decimal.Decimal, decimal.Decimal, error) {
	price := p.Pool.Token0Price()
	one := NewFractionFromInt(1)
	lowerBound := price.Mul(one.Sub(tolerance))
	upperBound := price.Mul(one.Add(tolerance))

	sqrtLower, err := EncodeSqrtRatioX96(
		decimal.NewFromBigInt(lowerBound.Num, 0), decimal.NewFromBigInt(lowerBound.Den, 0))
	if err != nil {
		return ZERO, ZERO, err
	}
	sqrtUpper, err := EncodeSqrtRatioX96(
		decimal.NewFromBigInt(upperBound.Num, 0), decimal.NewFromBigInt(upperBound.Den, 0))
	if err != nil {
		return ZERO, ZERO, err
	}
	if sqrtLower.LessThanOrEqual(MIN_SQRT_RATIO) {
		sqrtLower = MIN_SQRT_RATIO.Add(ONE)
	}
	if sqrtUpper.GreaterThanOrEqual(MAX_SQRT_RATIO) {
		sqrtUpper = MAX_SQRT_RATIO.Sub(ONE)
	}
	return sqrtLower, sqrtUpper, nil
}

// counterfactualPool rebuilds the position's pool at a hypothetical price.
// Liquidity does not matter for amount math here, only the price does.
func (p *Position) counterfactualPool(sqrtPriceX96 decimal.Decimal) (*CorePool, error) {
	tick, err := GetTickAtSqrtRatio(sqrtPriceX96)
	if err != nil {
		return nil, err
	}
	return NewCorePool(
		p.Pool.Token0, p.Pool.Token1, p.Pool.Fee, p.Pool.TickSpacing,
		sqrtPriceX96, ZERO, tick, nil)
}
