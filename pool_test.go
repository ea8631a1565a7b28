package uniswap_v3_router

import (
	"testing"

	"github.com/daoleno/uniswapv3-sdk/constants"
	"github.com/daoleno/uniswapv3-sdk/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComputeSwapStepExactIn(t *testing.T) {
	priceTarget, err := EncodeSqrtRatioX96(decimal.NewFromInt(101), decimal.NewFromInt(100))
	assert.NoError(t, err)
	liquidity := decimal.New(2, 18)
	amount := decimal.New(1, 18)

	next, amountIn, amountOut, feeAmount, err := ComputeSwapStep(priceOne, priceTarget, liquidity, amount, 600)
	assert.NoError(t, err)
	assert.Equal(t, "9975124224178055", amountIn.String())
	assert.Equal(t, "5988667735148", feeAmount.String())
	assert.Equal(t, "9925619580021728", amountOut.String())
	assert.True(t, next.Equal(priceTarget), "whole amount is not enough to reach the target")
	assert.True(t, amountIn.Add(amountOut).LessThan(amount))
}

func TestComputeSwapStepMatchesReference(t *testing.T) {
	priceTarget, err := EncodeSqrtRatioX96(decimal.NewFromInt(101), decimal.NewFromInt(100))
	assert.NoError(t, err)
	liquidity := decimal.New(2, 18)

	cases := []struct {
		name   string
		amount decimal.Decimal
		fee    FeeAmount
	}{
		{"partial exact in", decimal.New(1, 15), FeeAmountMedium},
		{"exact in to target", decimal.New(1, 18), FeeAmountLow},
		{"exact out", decimal.New(-1, 15), FeeAmountMedium},
		{"exact out beyond target", decimal.New(-1, 18), FeeAmountHigh},
	}
	for _, c := range cases {
		next, amountIn, amountOut, feeAmount, err := ComputeSwapStep(priceOne, priceTarget, liquidity, c.amount, c.fee)
		assert.NoError(t, err, c.name)
		refNext, refIn, refOut, refFee, err := utils.ComputeSwapStep(
			priceOne.BigInt(), priceTarget.BigInt(), liquidity.BigInt(), c.amount.BigInt(), constants.FeeAmount(c.fee))
		assert.NoError(t, err, c.name)
		assert.Equal(t, 0, next.BigInt().Cmp(refNext), "%s: next price", c.name)
		assert.Equal(t, 0, amountIn.BigInt().Cmp(refIn), "%s: amount in", c.name)
		assert.Equal(t, 0, amountOut.BigInt().Cmp(refOut), "%s: amount out", c.name)
		assert.Equal(t, 0, feeAmount.BigInt().Cmp(refFee), "%s: fee", c.name)
	}
}

func newTestPool(t *testing.T, liquidity decimal.Decimal, ticks []*Tick) *CorePool {
	t.Helper()
	token0 := NewToken("0x0000000000000000000000000000000000000001", "USDC", 6)
	token1 := NewToken("0x0000000000000000000000000000000000000002", "WETH", 18)
	pool, err := NewCorePool(token0, token1, FeeAmountMedium, 60, priceOne, liquidity, 0, ticks)
	assert.NoError(t, err)
	return pool
}

func mustTick(t *testing.T, index int, gross, net decimal.Decimal) *Tick {
	t.Helper()
	tick, err := NewTick(index, gross, net)
	assert.NoError(t, err)
	return tick
}

func singlePositionTicks(t *testing.T, liquidity decimal.Decimal) []*Tick {
	return []*Tick{
		mustTick(t, -60, liquidity, liquidity),
		mustTick(t, 60, liquidity, liquidity.Neg()),
	}
}

func TestNewCorePoolValidation(t *testing.T) {
	token0 := NewToken("0x0000000000000000000000000000000000000001", "USDC", 6)
	token1 := NewToken("0x0000000000000000000000000000000000000002", "WETH", 18)

	_, err := NewCorePool(token1, token0, FeeAmountMedium, 60, priceOne, ZERO, 0, nil)
	assert.ErrorIs(t, err, UNSORTED_TOKENS)

	_, err = NewCorePool(token0, token1, FeeAmountMedium, 60, priceOne, ZERO, 100, nil)
	assert.ErrorIs(t, err, PRICE_TICK_MISMATCH, "price below the tick's ratio")

	_, err = NewCorePool(token0, token1, FeeAmountMedium, 60, priceOne, ZERO, -1, nil)
	assert.ErrorIs(t, err, PRICE_TICK_MISMATCH, "price at or above the next tick's ratio")

	_, err = NewCorePool(token0, token1, FeeAmountMedium, 60, ONE, ZERO, 0, nil)
	assert.ErrorIs(t, err, PRICE_OUT_OF_BOUNDS)

	_, err = NewCorePool(token0, token1, FeeAmountMedium, 60, priceOne, ONE.Neg(), 0, nil)
	assert.ErrorIs(t, err, UNDERFLOW)

	pool, err := NewCorePool(token0, token1, FeeAmountMedium, 0, priceOne, ZERO, 0, nil)
	assert.NoError(t, err)
	assert.Equal(t, 60, pool.TickSpacing, "spacing defaults from the fee tier")
}

func TestPoolPrices(t *testing.T) {
	pool := newTestPool(t, ZERO, nil)
	product := pool.Token0Price().Mul(pool.Token1Price())
	assert.True(t, product.Equal(NewFractionFromInt(1)), "prices are exact inverses")
}

func TestSimulateStep(t *testing.T) {
	liquidity := decimal.New(2, 18)
	pool := newTestPool(t, liquidity, singlePositionTicks(t, liquidity))

	// zero amount is a no-op
	step, err := pool.SimulateStep(ZERO, true, ZERO)
	assert.NoError(t, err)
	assert.True(t, step.AmountIn.IsZero())
	assert.True(t, step.AmountOut.IsZero())
	assert.True(t, step.SqrtPriceX96.Equal(pool.SqrtPriceX96))

	// a small exact input stays inside the current tick range
	step, err = pool.SimulateStep(decimal.New(1, 15), true, ZERO)
	assert.NoError(t, err)
	assert.False(t, step.CrossedTick)
	assert.True(t, step.AmountOut.IsPositive())
	assert.True(t, step.SqrtPriceX96.LessThan(pool.SqrtPriceX96))
	assert.True(t, step.Liquidity.Equal(liquidity))

	// a large exact input stops at the initialized boundary and sheds its
	// liquidity
	step, err = pool.SimulateStep(decimal.New(1, 18), true, ZERO)
	assert.NoError(t, err)
	assert.True(t, step.CrossedTick)
	assert.Equal(t, -61, step.TickCurrent)
	assert.True(t, step.Liquidity.IsZero())
	boundary, err := GetSqrtRatioAtTick(-60)
	assert.NoError(t, err)
	assert.True(t, step.SqrtPriceX96.Equal(boundary))

	// zero active liquidity cannot fill anything
	empty := newTestPool(t, ZERO, nil)
	_, err = empty.SimulateStep(decimal.New(1, 15), true, ZERO)
	assert.ErrorIs(t, err, INSUFFICIENT_LIQUIDITY)
}

func TestSwapPriceLimits(t *testing.T) {
	liquidity := decimal.New(2, 18)
	pool := newTestPool(t, liquidity, singlePositionTicks(t, liquidity))

	_, _, _, err := pool.Swap(true, decimal.New(1, 15), pool.SqrtPriceX96.Add(ONE))
	assert.ErrorIs(t, err, INVALID_PRICE_LIMIT, "limit on the wrong side")

	_, _, _, err = pool.Swap(true, decimal.New(1, 15), MIN_SQRT_RATIO)
	assert.ErrorIs(t, err, PRICE_OUT_OF_BOUNDS)

	// the limit cuts the swap short, the remainder comes back unconsumed
	limit, err := GetSqrtRatioAtTick(-30)
	assert.NoError(t, err)
	_, remaining, next, err := pool.Swap(true, decimal.New(1, 18), limit)
	assert.NoError(t, err)
	assert.True(t, remaining.IsPositive())
	assert.True(t, next.SqrtPriceX96.Equal(limit))

	// the original snapshot is untouched
	assert.True(t, pool.SqrtPriceX96.Equal(priceOne))
	assert.Equal(t, 0, pool.TickCurrent)
}

func TestGetOutputAmount(t *testing.T) {
	liquidity := decimal.New(2, 18)
	pool := newTestPool(t, liquidity, singlePositionTicks(t, liquidity))
	amountIn := decimal.New(1, 15)

	amountOut, next, err := pool.GetOutputAmount(pool.Token0, amountIn)
	assert.NoError(t, err)
	assert.True(t, amountOut.IsPositive())
	assert.True(t, amountOut.LessThan(amountIn), "price 1 plus fee means out < in")
	assert.True(t, next.SqrtPriceX96.LessThan(pool.SqrtPriceX96))

	other := NewToken("0x00000000000000000000000000000000000000aa", "DAI", 18)
	_, _, err = pool.GetOutputAmount(other, amountIn)
	assert.ErrorIs(t, err, TOKEN_NOT_IN_POOL)

	// more output than the whole tick range can provide
	_, _, err = pool.GetInputAmount(pool.Token1, decimal.New(1, 19))
	assert.ErrorIs(t, err, INSUFFICIENT_LIQUIDITY)
}

func TestGetOutputAmountDustInput(t *testing.T) {
	liquidity := decimal.New(2, 18)
	pool := newTestPool(t, liquidity, singlePositionTicks(t, liquidity))

	// an input so small the fee eats all of it still fills, with zero out
	amountOut, next, err := pool.GetOutputAmount(pool.Token0, decimal.NewFromInt(1))
	assert.NoError(t, err)
	assert.True(t, amountOut.IsZero())
	assert.True(t, next.SqrtPriceX96.Equal(pool.SqrtPriceX96))
}

func TestGetInputAmountRoundTrip(t *testing.T) {
	liquidity := decimal.New(2, 18)
	pool := newTestPool(t, liquidity, singlePositionTicks(t, liquidity))
	amountIn := decimal.New(1, 15)

	amountOut, _, err := pool.GetOutputAmount(pool.Token0, amountIn)
	assert.NoError(t, err)

	backIn, _, err := pool.GetInputAmount(pool.Token1, amountOut)
	assert.NoError(t, err)
	assert.True(t, backIn.IsPositive())
	assert.True(t, backIn.LessThanOrEqual(amountIn), "round-down output never costs more to buy back")
}

func TestSwapCrossesInitializedTick(t *testing.T) {
	inner := decimal.New(2, 18)
	outer := decimal.New(1, 18)
	// nested ranges: [-120, 120] with 1e18 under [-60, 60] with 2e18 on top
	ticks := []*Tick{
		mustTick(t, -120, outer, outer),
		mustTick(t, -60, inner, inner),
		mustTick(t, 60, inner, inner.Neg()),
		mustTick(t, 120, outer, outer.Neg()),
	}
	pool := newTestPool(t, inner.Add(outer), ticks)

	// spend enough token0 to push the price through the -60 boundary but
	// not through -120
	amountIn := decimal.New(11, 15)
	amountOut, next, err := pool.GetOutputAmount(pool.Token0, amountIn)
	assert.NoError(t, err)
	assert.True(t, amountOut.IsPositive())
	assert.Less(t, next.TickCurrent, -60)
	assert.True(t, next.Liquidity.Equal(outer), "inner range liquidity dropped off")
}

func TestSwapAgainstReferenceSingleTick(t *testing.T) {
	liquidity := decimal.New(2, 18)
	pool := newTestPool(t, liquidity, singlePositionTicks(t, liquidity))
	amountIn := decimal.New(1, 15)

	amountOut, _, err := pool.GetOutputAmount(pool.Token0, amountIn)
	assert.NoError(t, err)

	// within a single tick the whole swap is one step against the boundary
	boundary, err := GetSqrtRatioAtTick(-60)
	assert.NoError(t, err)
	_, _, refOut, _, err := utils.ComputeSwapStep(
		priceOne.BigInt(), boundary.BigInt(), liquidity.BigInt(), amountIn.BigInt(),
		constants.FeeAmount(FeeAmountMedium))
	assert.NoError(t, err)
	assert.Equal(t, 0, amountOut.BigInt().Cmp(refOut))
}

func TestPoolSnapshotRoundTrip(t *testing.T) {
	liquidity := decimal.New(2, 18)
	pool := newTestPool(t, liquidity, singlePositionTicks(t, liquidity))

	snapshot, err := pool.Snapshot("unit test")
	assert.NoError(t, err)
	assert.NotEmpty(t, snapshot.Id)

	restored, err := NewCorePoolFromSnapshot(*snapshot)
	assert.NoError(t, err)
	assert.True(t, restored.SqrtPriceX96.Equal(pool.SqrtPriceX96))
	assert.True(t, restored.Liquidity.Equal(pool.Liquidity))
	assert.Equal(t, pool.TickCurrent, restored.TickCurrent)
	assert.Equal(t, pool.Ticks.Len(), restored.Ticks.Len())
}
