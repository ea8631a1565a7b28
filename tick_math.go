package uniswap_v3_router

import (
	"errors"
	"math/big"

	"github.com/shopspring/decimal"
)

var (
	TICK_OUT_OF_BOUNDS  = errors.New("TICK_OUT_OF_BOUNDS")
	PRICE_OUT_OF_BOUNDS = errors.New("PRICE_OUT_OF_BOUNDS")
)

// sqrt(1.0001^(2^i)) * 2^128 for i = 0..19, the TickMath.sol ladder.
var tickRatioMagic = [...]string{
	"fffcb933bd6fad37aa2d162d1a594001",
	"fff97272373d413259a46990580e213a",
	"fff2e50f5f656932ef12357cf3c7fdcc",
	"ffe5caca7e10e4e61c3624eaa0941cd0",
	"ffcb9843d60f6159c9db58835c926644",
	"ff973b41fa98c081472e6896dfb254c0",
	"ff2ea16466c96a3843ec78b326b52861",
	"fe5dee046a99a2a811c461f1969c3053",
	"fcbe86c7900a88aedcffc83b479aa3a4",
	"f987a7253ac413176f2b074cf7815e54",
	"f3392b0822b70005940c7a398e4b70f3",
	"e7159475a2c29b7443b29c7fa6e889d9",
	"d097f3bdfd2022b8845ad8f792aa5825",
	"a9f746462d870fdf8a65dc1f90e061e5",
	"70d869a156d2a1b890bb3df62baf32f7",
	"31be135f97d08fd981231505542fcfa6",
	"9aa508b5b7a84e1c677de54f3e99bc9",
	"5d6af8dedb81196699c329225ee604",
	"2216e584f5fa1ea926041bedfe98",
	"48a170391f7dc42444e8fa2",
}

func mulShift(value *big.Int, multiplier string) *big.Int {
	m, _ := new(big.Int).SetString(multiplier, 16)
	r := new(big.Int).Mul(value, m)
	return r.Rsh(r, 128)
}

// GetSqrtRatioAtTick converts a tick index to the Q64.96 sqrt price at its
// left boundary.
func GetSqrtRatioAtTick(tick int) (decimal.Decimal, error) {
	if tick < MIN_TICK || tick > MAX_TICK {
		return decimal.Zero, TICK_OUT_OF_BOUNDS
	}
	absTick := tick
	if absTick < 0 {
		absTick = -absTick
	}

	var ratio *big.Int
	if absTick&0x1 != 0 {
		ratio, _ = new(big.Int).SetString(tickRatioMagic[0], 16)
	} else {
		ratio = new(big.Int).Lsh(big.NewInt(1), 128)
	}
	for i := 1; i < len(tickRatioMagic); i++ {
		if absTick&(1<<uint(i)) != 0 {
			ratio = mulShift(ratio, tickRatioMagic[i])
		}
	}
	if tick > 0 {
		ratio = new(big.Int).Div(MaxUint256.BigInt(), ratio)
	}

	// Q128 -> Q64.96, rounding up toward the tick boundary.
	q, r := new(big.Int).DivMod(ratio, Q32.BigInt(), new(big.Int))
	if r.Sign() != 0 {
		q.Add(q, big.NewInt(1))
	}
	return decimal.NewFromBigInt(q, 0), nil
}

// GetTickAtSqrtRatio returns the greatest tick whose sqrt price is less than
// or equal to sqrtRatioX96. Ticks are left-closed boundaries, hence the floor
// semantics.
func GetTickAtSqrtRatio(sqrtRatioX96 decimal.Decimal) (int, error) {
	if sqrtRatioX96.LessThan(MIN_SQRT_RATIO) || sqrtRatioX96.GreaterThanOrEqual(MAX_SQRT_RATIO) {
		return 0, PRICE_OUT_OF_BOUNDS
	}

	ratio := sqrtRatioX96.BigInt()
	ratioX128 := new(big.Int).Lsh(ratio, 32)
	msb := ratioX128.BitLen() - 1

	r := new(big.Int)
	if msb >= 128 {
		r.Rsh(ratioX128, uint(msb-127))
	} else {
		r.Lsh(ratioX128, uint(127-msb))
	}

	log2 := new(big.Int).Lsh(big.NewInt(int64(msb-128)), 64)
	for i := 0; i < 14; i++ {
		r.Mul(r, r)
		r.Rsh(r, 127)
		f := new(big.Int).Rsh(r, 128)
		log2.Or(log2, new(big.Int).Lsh(f, uint(63-i)))
		r.Rsh(r, uint(f.Int64()))
	}

	logSqrt10001 := new(big.Int).Mul(log2, mustBigInt("255738958999603826347141"))

	tickLow := new(big.Int).Sub(logSqrt10001, mustBigInt("3402992956809132418596140100660247210"))
	tickLow.Rsh(tickLow, 128)
	tickHigh := new(big.Int).Add(logSqrt10001, mustBigInt("291339464771989622907027621153398088495"))
	tickHigh.Rsh(tickHigh, 128)

	low := int(tickLow.Int64())
	high := int(tickHigh.Int64())
	if low == high {
		return low, nil
	}
	ratioAtHigh, err := GetSqrtRatioAtTick(high)
	if err != nil {
		return 0, err
	}
	if ratioAtHigh.LessThanOrEqual(sqrtRatioX96) {
		return high, nil
	}
	return low, nil
}

// NearestUsableTick rounds to the closest multiple of tickSpacing, ties
// toward zero, clamped inside the valid tick range.
func NearestUsableTick(tick int, tickSpacing int) int {
	q := tick / tickSpacing
	r := tick % tickSpacing
	if r < 0 {
		r += tickSpacing
		q--
	}
	var rounded int
	switch {
	case 2*r > tickSpacing:
		rounded = (q + 1) * tickSpacing
	case 2*r < tickSpacing:
		rounded = q * tickSpacing
	case tick > 0:
		rounded = q * tickSpacing
	default:
		rounded = (q + 1) * tickSpacing
	}
	if rounded < MIN_TICK {
		rounded += tickSpacing
	} else if rounded > MAX_TICK {
		rounded -= tickSpacing
	}
	return rounded
}

// EncodeSqrtRatioX96 builds the Q64.96 sqrt price from an amount1/amount0
// ratio. Amounts are assumed decimal-normalized already.
func EncodeSqrtRatioX96(amount1, amount0 decimal.Decimal) (decimal.Decimal, error) {
	if amount0.IsZero() {
		return decimal.Zero, DIVISION_BY_ZERO
	}
	numerator := new(big.Int).Lsh(amount1.BigInt(), 192)
	ratioX192 := numerator.Div(numerator, amount0.BigInt())
	return decimal.NewFromBigInt(new(big.Int).Sqrt(ratioX192), 0), nil
}

func mustBigInt(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("bad integer literal: " + s)
	}
	return n
}
