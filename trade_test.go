package uniswap_v3_router

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func newTradeTestRoute(t *testing.T) *Route {
	t.Helper()
	liquidity := decimal.New(2, 18)
	token0 := NewToken("0x0000000000000000000000000000000000000001", "USDC", 6)
	token1 := NewToken("0x0000000000000000000000000000000000000002", "WETH", 18)
	pool, err := NewCorePool(token0, token1, FeeAmountMedium, 60, priceOne, liquidity,
		0, singlePositionTicks(t, liquidity))
	assert.NoError(t, err)
	route, err := NewRoute([]*CorePool{pool}, token0, token1)
	assert.NoError(t, err)
	return route
}

func TestTradeFromRouteExactInput(t *testing.T) {
	route := newTradeTestRoute(t)
	amountIn := decimal.New(1, 15)

	trade, err := TradeFromRoute(route, amountIn, EXACT_INPUT)
	assert.NoError(t, err)
	assert.True(t, trade.InputAmount.Equal(amountIn))
	assert.True(t, trade.OutputAmount.IsPositive())
	assert.True(t, trade.OutputAmount.LessThan(amountIn), "fee is taken from the input")
}

func TestTradeFromRouteExactOutput(t *testing.T) {
	route := newTradeTestRoute(t)
	amountOut := decimal.New(1, 15)

	trade, err := TradeFromRoute(route, amountOut, EXACT_OUTPUT)
	assert.NoError(t, err)
	assert.True(t, trade.OutputAmount.Equal(amountOut))
	assert.True(t, trade.InputAmount.GreaterThan(amountOut), "input covers the fee")
}

func TestTradeFromRouteExactRoundTrip(t *testing.T) {
	route := newTradeTestRoute(t)
	amountIn := decimal.New(1, 15)

	forward, err := TradeFromRoute(route, amountIn, EXACT_INPUT)
	assert.NoError(t, err)
	backward, err := TradeFromRoute(route, forward.OutputAmount, EXACT_OUTPUT)
	assert.NoError(t, err)
	assert.True(t, backward.InputAmount.LessThanOrEqual(amountIn),
		"buying back the floored output never costs more")
}

func TestTradeFromRouteInsufficientLiquidity(t *testing.T) {
	route := newTradeTestRoute(t)
	_, err := TradeFromRoute(route, decimal.New(1, 19), EXACT_OUTPUT)
	assert.ErrorIs(t, err, INSUFFICIENT_LIQUIDITY)
}

func TestSlippageBounds(t *testing.T) {
	route := newTradeTestRoute(t)
	tolerance, err := NewFractionFromInts(5, 1000)
	assert.NoError(t, err)

	exactIn := &Trade{
		Route:        route,
		TradeType:    EXACT_INPUT,
		InputAmount:  decimal.NewFromInt(1000),
		OutputAmount: decimal.NewFromInt(1000),
	}
	minOut, err := exactIn.MinimumAmountOut(tolerance)
	assert.NoError(t, err)
	assert.True(t, minOut.Equal(decimal.NewFromInt(995)), "1000 x 0.995 rounded down")
	maxIn, err := exactIn.MaximumAmountIn(tolerance)
	assert.NoError(t, err)
	assert.True(t, maxIn.Equal(exactIn.InputAmount), "exact input is already fixed")

	exactOut := &Trade{
		Route:        route,
		TradeType:    EXACT_OUTPUT,
		InputAmount:  decimal.NewFromInt(1000),
		OutputAmount: decimal.NewFromInt(1000),
	}
	maxIn, err = exactOut.MaximumAmountIn(tolerance)
	assert.NoError(t, err)
	assert.True(t, maxIn.Equal(decimal.NewFromInt(1005)), "1000 x 1.005 rounded up")
	minOut, err = exactOut.MinimumAmountOut(tolerance)
	assert.NoError(t, err)
	assert.True(t, minOut.Equal(exactOut.OutputAmount), "exact output is already fixed")
}

func TestSlippageRounding(t *testing.T) {
	route := newTradeTestRoute(t)
	tolerance, err := NewFractionFromInts(1, 3)
	assert.NoError(t, err)

	exactIn := &Trade{
		Route:        route,
		TradeType:    EXACT_INPUT,
		InputAmount:  decimal.NewFromInt(100),
		OutputAmount: decimal.NewFromInt(100),
	}
	minOut, err := exactIn.MinimumAmountOut(tolerance)
	assert.NoError(t, err)
	assert.True(t, minOut.Equal(decimal.NewFromInt(66)), "100 x 2/3 floors to 66")

	exactOut := &Trade{
		Route:        route,
		TradeType:    EXACT_OUTPUT,
		InputAmount:  decimal.NewFromInt(100),
		OutputAmount: decimal.NewFromInt(100),
	}
	maxIn, err := exactOut.MaximumAmountIn(tolerance)
	assert.NoError(t, err)
	assert.True(t, maxIn.Equal(decimal.NewFromInt(134)), "100 x 4/3 ceils to 134")
}

func TestInvalidTolerance(t *testing.T) {
	route := newTradeTestRoute(t)
	trade := &Trade{
		Route:        route,
		TradeType:    EXACT_INPUT,
		InputAmount:  decimal.NewFromInt(1000),
		OutputAmount: decimal.NewFromInt(1000),
	}

	negative, err := NewFractionFromInts(-1, 100)
	assert.NoError(t, err)
	_, err = trade.MinimumAmountOut(negative)
	assert.ErrorIs(t, err, INVALID_TOLERANCE)

	tooBig, err := NewFractionFromInts(6, 5)
	assert.NoError(t, err)
	_, err = trade.MinimumAmountOut(tooBig)
	assert.ErrorIs(t, err, INVALID_TOLERANCE)

	one := NewFractionFromInt(1)
	_, err = trade.MaximumAmountIn(one)
	assert.ErrorIs(t, err, INVALID_TOLERANCE, "tolerance must be strictly below one")

	_, err = trade.MinimumAmountOut(nil)
	assert.ErrorIs(t, err, INVALID_TOLERANCE)
}

func TestExecutionPrice(t *testing.T) {
	route := newTradeTestRoute(t)
	trade := &Trade{
		Route:        route,
		TradeType:    EXACT_INPUT,
		InputAmount:  decimal.NewFromInt(1000),
		OutputAmount: decimal.NewFromInt(900),
	}

	price, err := trade.ExecutionPrice()
	assert.NoError(t, err)
	expected, err := NewFractionFromInts(9, 10)
	assert.NoError(t, err)
	assert.True(t, price.Equal(expected))

	tolerance, err := NewFractionFromInts(1, 10)
	assert.NoError(t, err)
	worst, err := trade.WorstExecutionPrice(tolerance)
	assert.NoError(t, err)
	assert.True(t, worst.LessThan(price))
}
