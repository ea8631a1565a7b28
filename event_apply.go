package uniswap_v3_router

import (
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Event application keeps a pool snapshot in step with on-chain logs.
// Every application returns a successor pool, the input snapshot is left
// untouched so older trades computed from it stay self-consistent.

// NewCorePoolFromInitializeEvent builds the pool's first snapshot from the
// venue's Initialize log. Liquidity and tick data start empty, Mint events
// fill them in.
func NewCorePoolFromInitializeEvent(config *PoolConfig, log *types.Log) (*CorePool, error) {
	initialize, err := parseUniv3InitializeEvent(log)
	if err != nil {
		return nil, err
	}
	return NewCorePool(
		config.Token0, config.Token1, config.Fee, config.TickSpacing,
		initialize.SqrtPriceX96, ZERO, initialize.Tick, nil)
}

// ApplyEvent replays one Swap/Mint/Burn log against the pool and returns
// the successor snapshot. Unknown topics are skipped with a warning and
// the pool is returned as-is.
func (p *CorePool) ApplyEvent(log *types.Log) (*CorePool, error) {
	if len(log.Topics) == 0 {
		logrus.Warnf("log without topics, tx: %s", log.TxHash)
		return p, nil
	}
	switch log.Topics[0] {
	case TOPIC_SWAP:
		swap, err := parseUniv3SwapEvent(log)
		if err != nil {
			return nil, err
		}
		return p.applySwapEvent(swap)
	case TOPIC_MINT:
		mint, err := parseUniv3MintEvent(log)
		if err != nil {
			return nil, err
		}
		return p.withLiquidityChange(mint.TickLower, mint.TickUpper, mint.Amount)
	case TOPIC_BURN:
		burn, err := parseUniv3BurnEvent(log)
		if err != nil {
			return nil, err
		}
		return p.withLiquidityChange(burn.TickLower, burn.TickUpper, burn.Amount.Neg())
	default:
		logrus.Warnf("unhandled topic %s, tx: %s", log.Topics[0], log.TxHash)
		return p, nil
	}
}

// ApplyEvents folds a block's logs in order.
func (p *CorePool) ApplyEvents(logs []types.Log) (*CorePool, error) {
	current := p
	for i := range logs {
		next, err := current.ApplyEvent(&logs[i])
		if err != nil {
			return nil, err
		}
		current = next
	}
	return current, nil
}

// applySwapEvent replays the swap amount-driven: the positive amount of the
// pair is the exact input actually paid. The event's post-swap price is
// only used to flag replay divergence, which would mean the snapshot's
// tick data disagrees with the venue.
func (p *CorePool) applySwapEvent(swap *UniV3SwapEvent) (*CorePool, error) {
	zeroForOne := swap.Amount0.IsPositive()
	amountSpecified := swap.Amount0
	if !zeroForOne {
		amountSpecified = swap.Amount1
	}
	_, remaining, next, err := p.Swap(zeroForOne, amountSpecified, ZERO)
	if err != nil {
		return nil, err
	}
	if !remaining.IsZero() {
		logrus.Warnf("swap replay left %s unconsumed, tx: %s", remaining, swap.RawEvent.TxHash)
	}
	if !next.SqrtPriceX96.Equal(swap.SqrtPriceX96) {
		logrus.Warnf("swap replay price %s diverges from event %s, tx: %s",
			next.SqrtPriceX96, swap.SqrtPriceX96, swap.RawEvent.TxHash)
	}
	return next, nil
}

// withLiquidityChange applies a mint (positive delta) or burn (negative)
// over [tickLower, tickUpper], updating active liquidity when the pool's
// current tick sits inside the range.
func (p *CorePool) withLiquidityChange(tickLower, tickUpper int, delta decimal.Decimal) (*CorePool, error) {
	if tickLower >= tickUpper || tickLower < MIN_TICK || tickUpper > MAX_TICK {
		return nil, INVALID_TICK_RANGE
	}
	ticks, err := p.Ticks.WithLiquidityDelta(tickLower, tickUpper, delta)
	if err != nil {
		return nil, err
	}
	liquidity := p.Liquidity
	if p.TickCurrent >= tickLower && p.TickCurrent < tickUpper {
		liquidity, err = LiquidityAddDelta(p.Liquidity, delta)
		if err != nil {
			return nil, err
		}
	}
	next := *p
	next.Ticks = ticks
	next.Liquidity = liquidity
	return &next, nil
}
