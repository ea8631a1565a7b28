package uniswap_v3_router

import (
	"errors"
	"sort"

	"github.com/shopspring/decimal"
)

var TICK_NOT_INITIALIZED = errors.New("TICK_NOT_INITIALIZED")

// Tick is one initialized boundary of the pool's liquidity map. The
// liquidity-net feed comes from the on-chain-state collaborator, it is never
// recomputed here.
type Tick struct {
	Index          int
	LiquidityGross decimal.Decimal
	LiquidityNet   decimal.Decimal
}

func NewTick(index int, liquidityGross, liquidityNet decimal.Decimal) (*Tick, error) {
	if index < MIN_TICK || index > MAX_TICK {
		return nil, TICK_OUT_OF_BOUNDS
	}
	return &Tick{
		Index:          index,
		LiquidityGross: liquidityGross,
		LiquidityNet:   liquidityNet,
	}, nil
}

func (t *Tick) Clone() *Tick {
	return &Tick{
		Index:          t.Index,
		LiquidityGross: t.LiquidityGross,
		LiquidityNet:   t.LiquidityNet,
	}
}

func (t *Tick) Initialized() bool {
	return !t.LiquidityGross.IsZero()
}

// TickList is the sorted set of initialized ticks for one pool snapshot.
// Like the snapshot itself it is never mutated; updates produce a new list.
type TickList struct {
	ticks []*Tick
}

func NewTickList(ticks []*Tick) *TickList {
	sorted := make([]*Tick, len(ticks))
	copy(sorted, ticks)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Index < sorted[j].Index
	})
	return &TickList{ticks: sorted}
}

func (tl *TickList) Len() int {
	return len(tl.ticks)
}

func (tl *TickList) Clone() *TickList {
	ticks := make([]*Tick, len(tl.ticks))
	for i, t := range tl.ticks {
		ticks[i] = t.Clone()
	}
	return &TickList{ticks: ticks}
}

func (tl *TickList) Get(index int) (*Tick, error) {
	if len(tl.ticks) == 0 || tl.isBelowSmallest(index) {
		return nil, TICK_NOT_INITIALIZED
	}
	i, err := tl.binarySearch(index)
	if err != nil {
		return nil, err
	}
	if tl.ticks[i].Index != index {
		return nil, TICK_NOT_INITIALIZED
	}
	return tl.ticks[i], nil
}

func (tl *TickList) isBelowSmallest(tick int) bool {
	if len(tl.ticks) == 0 {
		return false
	}
	return tick < tl.ticks[0].Index
}

func (tl *TickList) isAtOrAboveLargest(tick int) bool {
	if len(tl.ticks) == 0 {
		return false
	}
	return tick >= tl.ticks[len(tl.ticks)-1].Index
}

// binarySearch returns the index of the largest tick <= the given tick.
func (tl *TickList) binarySearch(tick int) (int, error) {
	if tl.isBelowSmallest(tick) {
		return 0, errors.New("tick is below smallest tick")
	}
	l := 0
	r := len(tl.ticks) - 1
	for {
		i := (l + r) / 2
		if tl.ticks[i].Index <= tick && (i == len(tl.ticks)-1 || tl.ticks[i+1].Index > tick) {
			return i, nil
		}
		if tl.ticks[i].Index < tick {
			l = i + 1
		} else {
			r = i - 1
		}
	}
}

func (tl *TickList) NextInitializedTick(tick int, lte bool) (*Tick, error) {
	if len(tl.ticks) == 0 {
		return nil, TICK_NOT_INITIALIZED
	}
	if lte {
		if tl.isBelowSmallest(tick) {
			return nil, errors.New("BELOW_SMALLEST")
		}
		if tl.isAtOrAboveLargest(tick) {
			return tl.ticks[len(tl.ticks)-1], nil
		}
		i, err := tl.binarySearch(tick)
		if err != nil {
			return nil, err
		}
		return tl.ticks[i], nil
	}
	if tl.isAtOrAboveLargest(tick) {
		return nil, errors.New("AT_OR_ABOVE_LARGEST")
	}
	if tl.isBelowSmallest(tick) {
		return tl.ticks[0], nil
	}
	i, err := tl.binarySearch(tick)
	if err != nil {
		return nil, err
	}
	return tl.ticks[i+1], nil
}

// NextInitializedTickWithinWord mirrors the tick bitmap lookup: the next
// initialized tick in the swap direction, capped at the edge of the current
// 256-tick word. The bool reports whether the returned tick is initialized.
func (tl *TickList) NextInitializedTickWithinWord(tick, tickSpacing int, lte bool) (int, bool, error) {
	compressed := tick / tickSpacing
	if tick < 0 && tick%tickSpacing != 0 {
		compressed--
	}

	if lte {
		wordPos := compressed >> 8
		minimum := (wordPos << 8) * tickSpacing
		if len(tl.ticks) == 0 || tl.isBelowSmallest(tick) {
			return minimum, false, nil
		}
		next, err := tl.NextInitializedTick(tick, lte)
		if err != nil {
			return 0, false, err
		}
		if next.Index < minimum {
			return minimum, false, nil
		}
		return next.Index, true, nil
	}

	wordPos := (compressed + 1) >> 8
	maximum := (((wordPos + 1) << 8) - 1) * tickSpacing
	if len(tl.ticks) == 0 || tl.isAtOrAboveLargest(tick) {
		return maximum, false, nil
	}
	next, err := tl.NextInitializedTick(tick, lte)
	if err != nil {
		return 0, false, err
	}
	if next.Index > maximum {
		return maximum, false, nil
	}
	return next.Index, true, nil
}

// WithLiquidityDelta returns a new list with the range boundaries adjusted
// by delta (negative for burn). Ticks whose gross liquidity drops to zero
// are cleared.
func (tl *TickList) WithLiquidityDelta(tickLower, tickUpper int, delta decimal.Decimal) (*TickList, error) {
	next := tl.Clone()
	if err := next.update(tickLower, delta, false); err != nil {
		return nil, err
	}
	if err := next.update(tickUpper, delta, true); err != nil {
		return nil, err
	}
	return next, nil
}

func (tl *TickList) update(index int, delta decimal.Decimal, upper bool) error {
	var tick *Tick
	pos := -1
	if len(tl.ticks) > 0 && !tl.isBelowSmallest(index) {
		i, err := tl.binarySearch(index)
		if err != nil {
			return err
		}
		if tl.ticks[i].Index == index {
			tick = tl.ticks[i]
			pos = i
		}
	}
	if tick == nil {
		var err error
		tick, err = NewTick(index, ZERO, ZERO)
		if err != nil {
			return err
		}
	}

	gross, err := LiquidityAddDelta(tick.LiquidityGross, delta)
	if err != nil {
		return err
	}
	tick.LiquidityGross = gross
	if upper {
		tick.LiquidityNet = tick.LiquidityNet.Sub(delta)
	} else {
		tick.LiquidityNet = tick.LiquidityNet.Add(delta)
	}
	if tick.LiquidityNet.GreaterThan(MaxInt128) {
		return OVERFLOW
	}
	if tick.LiquidityNet.LessThan(MinInt128) {
		return UNDERFLOW
	}

	switch {
	case pos >= 0 && !tick.Initialized():
		tl.ticks = append(tl.ticks[:pos], tl.ticks[pos+1:]...)
	case pos < 0 && tick.Initialized():
		tl.ticks = append(tl.ticks, tick)
		sort.Slice(tl.ticks, func(i, j int) bool {
			return tl.ticks[i].Index < tl.ticks[j].Index
		})
	}
	return nil
}
