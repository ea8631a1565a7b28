package uniswap_v3_router

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type FeeAmount int

const (
	FeeAmountLow    FeeAmount = 500
	FeeAmountMedium FeeAmount = 3000
	FeeAmountHigh   FeeAmount = 10000
)

var (
	INSUFFICIENT_LIQUIDITY = errors.New("INSUFFICIENT_LIQUIDITY")
	UNSORTED_TOKENS        = errors.New("UNSORTED_TOKENS")
	PRICE_TICK_MISMATCH    = errors.New("PRICE_TICK_MISMATCH")
	INVALID_PRICE_LIMIT    = errors.New("INVALID_PRICE_LIMIT")
	TOKEN_NOT_IN_POOL      = errors.New("TOKEN_NOT_IN_POOL")
)

// pool config
type PoolConfig struct {
	Id          string
	TickSpacing int
	Token0      Token
	Token1      Token
	Fee         FeeAmount
}

func NewPoolConfig(
	tickSpacing int,
	token0 Token,
	token1 Token,
	fee FeeAmount,
) (*PoolConfig, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}
	return &PoolConfig{
		Id:          id.String(),
		TickSpacing: tickSpacing,
		Token0:      token0,
		Token1:      token1,
		Fee:         fee,
	}, nil
}

// Snapshot is one observed instant of a venue's state, as delivered by the
// on-chain-state collaborator.
type Snapshot struct {
	Id           string
	Description  string
	PoolConfig   *PoolConfig
	SqrtPriceX96 decimal.Decimal
	Liquidity    decimal.Decimal
	TickCurrent  int
	Ticks        []*Tick
	Timestamp    time.Time
}

// CorePool is an immutable snapshot of one pool. Swap simulation returns a
// successor pool, the receiver is never written after construction.
type CorePool struct {
	Token0              Token
	Token1              Token
	Fee                 FeeAmount
	TickSpacing         int
	MaxLiquidityPerTick decimal.Decimal
	SqrtPriceX96        decimal.Decimal
	Liquidity           decimal.Decimal
	TickCurrent         int
	Ticks               *TickList
}

func NewCorePool(
	token0 Token,
	token1 Token,
	fee FeeAmount,
	tickSpacing int,
	sqrtPriceX96 decimal.Decimal,
	liquidity decimal.Decimal,
	tickCurrent int,
	ticks []*Tick,
) (*CorePool, error) {
	if !token0.SortsBefore(token1) {
		return nil, UNSORTED_TOKENS
	}
	if tickSpacing <= 0 {
		spacing, ok := TICK_SPACINGS[fee]
		if !ok {
			return nil, errors.New("unknown fee tier, tick spacing required")
		}
		tickSpacing = spacing
	}
	if liquidity.IsNegative() {
		return nil, UNDERFLOW
	}
	if sqrtPriceX96.LessThan(MIN_SQRT_RATIO) || sqrtPriceX96.GreaterThan(MAX_SQRT_RATIO) {
		return nil, PRICE_OUT_OF_BOUNDS
	}
	ratioAtTick, err := GetSqrtRatioAtTick(tickCurrent)
	if err != nil {
		return nil, err
	}
	if sqrtPriceX96.LessThan(ratioAtTick) {
		return nil, PRICE_TICK_MISMATCH
	}
	if tickCurrent < MAX_TICK {
		ratioAtNextTick, err := GetSqrtRatioAtTick(tickCurrent + 1)
		if err != nil {
			return nil, err
		}
		if sqrtPriceX96.GreaterThanOrEqual(ratioAtNextTick) {
			return nil, PRICE_TICK_MISMATCH
		}
	}
	return &CorePool{
		Token0:              token0,
		Token1:              token1,
		Fee:                 fee,
		TickSpacing:         tickSpacing,
		MaxLiquidityPerTick: TickSpacingToMaxLiquidityPerTick(int64(tickSpacing)),
		SqrtPriceX96:        sqrtPriceX96,
		Liquidity:           liquidity,
		TickCurrent:         tickCurrent,
		Ticks:               NewTickList(ticks),
	}, nil
}

func NewCorePoolFromSnapshot(snapshot Snapshot) (*CorePool, error) {
	return NewCorePool(
		snapshot.PoolConfig.Token0,
		snapshot.PoolConfig.Token1,
		snapshot.PoolConfig.Fee,
		snapshot.PoolConfig.TickSpacing,
		snapshot.SqrtPriceX96,
		snapshot.Liquidity,
		snapshot.TickCurrent,
		snapshot.Ticks,
	)
}

// Snapshot captures the pool for hand-off or later reconstruction.
func (p *CorePool) Snapshot(description string) (*Snapshot, error) {
	config, err := NewPoolConfig(p.TickSpacing, p.Token0, p.Token1, p.Fee)
	if err != nil {
		return nil, err
	}
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}
	return &Snapshot{
		Id:           id.String(),
		Description:  description,
		PoolConfig:   config,
		SqrtPriceX96: p.SqrtPriceX96,
		Liquidity:    p.Liquidity,
		TickCurrent:  p.TickCurrent,
		Ticks:        p.Ticks.Clone().ticks,
		Timestamp:    time.Now(),
	}, nil
}

func (p *CorePool) ContainsToken(token Token) bool {
	return token.Equals(p.Token0) || token.Equals(p.Token1)
}

// Token0Price is the price of token0 denominated in token1.
func (p *CorePool) Token0Price() *Fraction {
	ratioX192 := p.SqrtPriceX96.Mul(p.SqrtPriceX96)
	f, _ := NewFraction(ratioX192.BigInt(), Q192.BigInt())
	return f
}

// Token1Price is the price of token1 denominated in token0.
func (p *CorePool) Token1Price() *Fraction {
	ratioX192 := p.SqrtPriceX96.Mul(p.SqrtPriceX96)
	f, _ := NewFraction(Q192.BigInt(), ratioX192.BigInt())
	return f
}

// withState derives the successor snapshot after a step or swap. The tick
// list is shared, it never changes during swaps.
func (p *CorePool) withState(sqrtPriceX96 decimal.Decimal, tickCurrent int, liquidity decimal.Decimal) *CorePool {
	next := *p
	next.SqrtPriceX96 = sqrtPriceX96
	next.TickCurrent = tickCurrent
	next.Liquidity = liquidity
	return &next
}

// StepResult is the outcome of advancing a swap by at most one initialized
// tick boundary.
type StepResult struct {
	AmountIn     decimal.Decimal
	AmountOut    decimal.Decimal
	FeeAmount    decimal.Decimal
	SqrtPriceX96 decimal.Decimal
	TickCurrent  int
	Liquidity    decimal.Decimal
	CrossedTick  bool
}

func (p *CorePool) defaultPriceLimit(zeroForOne bool) decimal.Decimal {
	if zeroForOne {
		return MIN_SQRT_RATIO.Add(ONE)
	}
	return MAX_SQRT_RATIO.Sub(ONE)
}

func (p *CorePool) checkPriceLimit(sqrtPriceLimitX96 decimal.Decimal, zeroForOne bool) error {
	if zeroForOne {
		if sqrtPriceLimitX96.LessThanOrEqual(MIN_SQRT_RATIO) {
			return PRICE_OUT_OF_BOUNDS
		}
		if sqrtPriceLimitX96.GreaterThan(p.SqrtPriceX96) {
			return INVALID_PRICE_LIMIT
		}
		return nil
	}
	if sqrtPriceLimitX96.GreaterThanOrEqual(MAX_SQRT_RATIO) {
		return PRICE_OUT_OF_BOUNDS
	}
	if sqrtPriceLimitX96.LessThan(p.SqrtPriceX96) {
		return INVALID_PRICE_LIMIT
	}
	return nil
}

// SimulateStep swaps up to amountRemaining (negative for exact output) in
// one direction, stopping at the nearer of: amount exhausted, the price
// limit, or the next initialized tick boundary. Multi-boundary swaps repeat
// the call on the successor state, see Swap.
func (p *CorePool) SimulateStep(
	amountRemaining decimal.Decimal,
	zeroForOne bool,
	sqrtPriceLimitX96 decimal.Decimal,
) (*StepResult, error) {
	if sqrtPriceLimitX96.IsZero() {
		sqrtPriceLimitX96 = p.defaultPriceLimit(zeroForOne)
	}
	if err := p.checkPriceLimit(sqrtPriceLimitX96, zeroForOne); err != nil {
		return nil, err
	}
	if amountRemaining.IsZero() {
		return &StepResult{
			AmountIn:     ZERO,
			AmountOut:    ZERO,
			FeeAmount:    ZERO,
			SqrtPriceX96: p.SqrtPriceX96,
			TickCurrent:  p.TickCurrent,
			Liquidity:    p.Liquidity,
		}, nil
	}
	if p.Liquidity.IsZero() {
		return nil, INSUFFICIENT_LIQUIDITY
	}

	tickNext, initialized, err := p.Ticks.NextInitializedTickWithinWord(p.TickCurrent, p.TickSpacing, zeroForOne)
	if err != nil {
		return nil, err
	}
	if tickNext < MIN_TICK {
		tickNext = MIN_TICK
	} else if tickNext > MAX_TICK {
		tickNext = MAX_TICK
	}
	sqrtPriceNextX96, err := GetSqrtRatioAtTick(tickNext)
	if err != nil {
		return nil, err
	}

	var targetPrice decimal.Decimal
	if zeroForOne && sqrtPriceNextX96.LessThan(sqrtPriceLimitX96) ||
		!zeroForOne && sqrtPriceNextX96.GreaterThan(sqrtPriceLimitX96) {
		targetPrice = sqrtPriceLimitX96
	} else {
		targetPrice = sqrtPriceNextX96
	}

	sqrtPriceX96, amountIn, amountOut, feeAmount, err := ComputeSwapStep(
		p.SqrtPriceX96, targetPrice, p.Liquidity, amountRemaining, p.Fee)
	if err != nil {
		return nil, err
	}

	result := &StepResult{
		AmountIn:     amountIn,
		AmountOut:    amountOut,
		FeeAmount:    feeAmount,
		SqrtPriceX96: sqrtPriceX96,
		TickCurrent:  p.TickCurrent,
		Liquidity:    p.Liquidity,
	}
	if sqrtPriceX96.Equal(sqrtPriceNextX96) {
		result.CrossedTick = true
		if initialized {
			tick, err := p.Ticks.Get(tickNext)
			if err != nil {
				return nil, err
			}
			liquidityNet := tick.LiquidityNet
			if zeroForOne {
				liquidityNet = liquidityNet.Neg()
			}
			result.Liquidity, err = LiquidityAddDelta(p.Liquidity, liquidityNet)
			if err != nil {
				return nil, err
			}
		}
		if zeroForOne {
			result.TickCurrent = tickNext - 1
		} else {
			result.TickCurrent = tickNext
		}
	} else if !sqrtPriceX96.Equal(p.SqrtPriceX96) {
		result.TickCurrent, err = GetTickAtSqrtRatio(sqrtPriceX96)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// Swap simulates a full swap by iterating SimulateStep on successor states.
// amountSpecified is positive for exact input, negative for exact output.
// It returns the calculated counter-amount (negative output for exact
// input, positive input for exact output), the unconsumed remainder when
// the price limit cut the swap short, and the successor pool.
func (p *CorePool) Swap(
	zeroForOne bool,
	amountSpecified decimal.Decimal,
	sqrtPriceLimitX96 decimal.Decimal,
) (decimal.Decimal, decimal.Decimal, *CorePool, error) {
	if sqrtPriceLimitX96.IsZero() {
		sqrtPriceLimitX96 = p.defaultPriceLimit(zeroForOne)
	}
	if err := p.checkPriceLimit(sqrtPriceLimitX96, zeroForOne); err != nil {
		return ZERO, ZERO, nil, err
	}

	exactInput := !amountSpecified.IsNegative()
	remaining := amountSpecified
	calculated := ZERO
	current := p

	for !remaining.IsZero() && !current.SqrtPriceX96.Equal(sqrtPriceLimitX96) {
		step, err := current.SimulateStep(remaining, zeroForOne, sqrtPriceLimitX96)
		if err != nil {
			return ZERO, ZERO, nil, err
		}
		if exactInput {
			remaining = remaining.Sub(step.AmountIn.Add(step.FeeAmount))
			calculated = calculated.Sub(step.AmountOut)
		} else {
			remaining = remaining.Add(step.AmountOut)
			calculated = calculated.Add(step.AmountIn.Add(step.FeeAmount))
		}
		if step.SqrtPriceX96.Equal(current.SqrtPriceX96) &&
			step.AmountIn.IsZero() && step.AmountOut.IsZero() && step.FeeAmount.IsZero() {
			// no progress is possible, the remaining amount cannot be filled.
			// A dust input fully eaten by the fee is still progress.
			return ZERO, ZERO, nil, INSUFFICIENT_LIQUIDITY
		}
		current = current.withState(step.SqrtPriceX96, step.TickCurrent, step.Liquidity)
	}
	return calculated, remaining, current, nil
}

// GetOutputAmount answers "how much comes out for amountIn of inputToken",
// returning the successor pool the fill would leave behind.
func (p *CorePool) GetOutputAmount(inputToken Token, amountIn decimal.Decimal) (decimal.Decimal, *CorePool, error) {
	if !p.ContainsToken(inputToken) {
		return ZERO, nil, TOKEN_NOT_IN_POOL
	}
	zeroForOne := inputToken.Equals(p.Token0)
	calculated, remaining, next, err := p.Swap(zeroForOne, amountIn, ZERO)
	if err != nil {
		return ZERO, nil, err
	}
	if !remaining.IsZero() {
		return ZERO, nil, INSUFFICIENT_LIQUIDITY
	}
	return calculated.Neg(), next, nil
}

// GetInputAmount answers "how much of the opposite token must go in to take
// amountOut of outputToken out".
func (p *CorePool) GetInputAmount(outputToken Token, amountOut decimal.Decimal) (decimal.Decimal, *CorePool, error) {
	if !p.ContainsToken(outputToken) {
		return ZERO, nil, TOKEN_NOT_IN_POOL
	}
	zeroForOne := outputToken.Equals(p.Token1)
	calculated, remaining, next, err := p.Swap(zeroForOne, amountOut.Neg(), ZERO)
	if err != nil {
		return ZERO, nil, err
	}
	if !remaining.IsZero() {
		return ZERO, nil, INSUFFICIENT_LIQUIDITY
	}
	return calculated, next, nil
}
