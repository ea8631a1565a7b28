package uniswap_v3_router

import (
	"errors"

	"github.com/shopspring/decimal"
)

type TradeType string

const (
	EXACT_INPUT  TradeType = "exactInput"
	EXACT_OUTPUT TradeType = "exactOutput"
)

var INVALID_TOLERANCE = errors.New("INVALID_TOLERANCE")

// Trade is a simulated fill of a route. The simulated counter-amount is
// informational only, it goes stale the moment any pool in the route
// changes on chain. The slippage-bounded amount is what submission code
// must use.
type Trade struct {
	Route        *Route
	TradeType    TradeType
	InputAmount  decimal.Decimal
	OutputAmount decimal.Decimal
}

// TradeFromRoute simulates amount through the route. For EXACT_INPUT it
// walks the pools forward, feeding each hop's output into the next. For
// EXACT_OUTPUT it walks backward from the last pool, solving for the
// required input of each hop.
func TradeFromRoute(route *Route, amount decimal.Decimal, tradeType TradeType) (*Trade, error) {
	if !amount.IsPositive() {
		return nil, UNDERFLOW
	}
	if tradeType == EXACT_INPUT {
		carried := amount
		token := route.Input
		for _, pool := range route.Pools {
			amountOut, _, err := pool.GetOutputAmount(token, carried)
			if err != nil {
				return nil, err
			}
			if token.Equals(pool.Token0) {
				token = pool.Token1
			} else {
				token = pool.Token0
			}
			carried = amountOut
		}
		return &Trade{
			Route:        route,
			TradeType:    tradeType,
			InputAmount:  amount,
			OutputAmount: carried,
		}, nil
	}

	carried := amount
	token := route.Output
	for i := len(route.Pools) - 1; i >= 0; i-- {
		pool := route.Pools[i]
		amountIn, _, err := pool.GetInputAmount(token, carried)
		if err != nil {
			return nil, err
		}
		if token.Equals(pool.Token0) {
			token = pool.Token1
		} else {
			token = pool.Token0
		}
		carried = amountIn
	}
	return &Trade{
		Route:        route,
		TradeType:    tradeType,
		InputAmount:  carried,
		OutputAmount: amount,
	}, nil
}

func checkTolerance(tolerance *Fraction) error {
	if tolerance == nil || tolerance.IsNegative() {
		return INVALID_TOLERANCE
	}
	if tolerance.Cmp(NewFractionFromInt(1)) >= 0 {
		return INVALID_TOLERANCE
	}
	return nil
}

// MinimumAmountOut bounds the simulated output by the slippage tolerance:
// output x (1 - tolerance), rounded down against the trader. For exact
// output trades the output is already fixed and returned unchanged.
func (t *Trade) MinimumAmountOut(tolerance *Fraction) (decimal.Decimal, error) {
	if err := checkTolerance(tolerance); err != nil {
		return ZERO, err
	}
	if t.TradeType == EXACT_OUTPUT {
		return t.OutputAmount, nil
	}
	out := NewFractionFromDecimal(t.OutputAmount)
	bounded := out.Mul(NewFractionFromInt(1).Sub(tolerance))
	return bounded.Floor(), nil
}

// MaximumAmountIn bounds the required input by the slippage tolerance:
// input x (1 + tolerance), rounded up against the trader. For exact input
// trades the input is already fixed and returned unchanged.
func (t *Trade) MaximumAmountIn(tolerance *Fraction) (decimal.Decimal, error) {
	if err := checkTolerance(tolerance); err != nil {
		return ZERO, err
	}
	if t.TradeType == EXACT_INPUT {
		return t.InputAmount, nil
	}
	in := NewFractionFromDecimal(t.InputAmount)
	bounded := in.Mul(NewFractionFromInt(1).Add(tolerance))
	return bounded.Ceil(), nil
}

// ExecutionPrice is output per input as actually simulated, before any
// slippage bound is applied.
func (t *Trade) ExecutionPrice() (*Fraction, error) {
	if t.InputAmount.IsZero() {
		return nil, DIVISION_BY_ZERO
	}
	f, err := NewFraction(t.OutputAmount.BigInt(), t.InputAmount.BigInt())
	if err != nil {
		return nil, err
	}
	return f.Reduce(), nil
}

// WorstExecutionPrice is the execution price at the slippage bound.
func (t *Trade) WorstExecutionPrice(tolerance *Fraction) (*Fraction, error) {
	if err := checkTolerance(tolerance); err != nil {
		return nil, err
	}
	if t.TradeType == EXACT_INPUT {
		minOut, err := t.MinimumAmountOut(tolerance)
		if err != nil {
			return nil, err
		}
		if t.InputAmount.IsZero() {
			return nil, DIVISION_BY_ZERO
		}
		f, err := NewFraction(minOut.BigInt(), t.InputAmount.BigInt())
		if err != nil {
			return nil, err
		}
		return f.Reduce(), nil
	}
	maxIn, err := t.MaximumAmountIn(tolerance)
	if err != nil {
		return nil, err
	}
	if maxIn.IsZero() {
		return nil, DIVISION_BY_ZERO
	}
	f, err := NewFraction(t.OutputAmount.BigInt(), maxIn.BigInt())
	if err != nil {
		return nil, err
	}
	return f.Reduce(), nil
}
