package uniswap_v3_router

import (
	"github.com/shopspring/decimal"
)

// ComputeSwapStep advances the price from sqrtRatioCurrentX96 toward
// sqrtRatioTargetX96, consuming at most amountRemaining (negative for exact
// output). Fees are taken from the input side. Amounts owed to the pool
// round up, amounts owed to the trader round down.
func ComputeSwapStep(
	sqrtRatioCurrentX96 decimal.Decimal,
	sqrtRatioTargetX96 decimal.Decimal,
	liquidity decimal.Decimal,
	amountRemaining decimal.Decimal,
	feePips FeeAmount,
) (sqrtRatioNextX96, amountIn, amountOut, feeAmount decimal.Decimal, err error) {
	zeroForOne := sqrtRatioCurrentX96.GreaterThanOrEqual(sqrtRatioTargetX96)
	exactIn := !amountRemaining.IsNegative()
	fee := decimal.NewFromInt(int64(feePips))

	if exactIn {
		// dividing by 10^6 is exact in decimal representation
		amountRemainingLessFee := amountRemaining.Mul(MAX_FEE.Sub(fee)).Div(MAX_FEE).Floor()
		if zeroForOne {
			amountIn, err = GetAmount0DeltaWithRoundUp(sqrtRatioTargetX96, sqrtRatioCurrentX96, liquidity, true)
		} else {
			amountIn, err = GetAmount1DeltaWithRoundUp(sqrtRatioCurrentX96, sqrtRatioTargetX96, liquidity, true)
		}
		if err != nil {
			return
		}
		if amountRemainingLessFee.GreaterThanOrEqual(amountIn) {
			sqrtRatioNextX96 = sqrtRatioTargetX96
		} else {
			sqrtRatioNextX96, err = GetNextSqrtPriceFromInput(sqrtRatioCurrentX96, liquidity, amountRemainingLessFee, zeroForOne)
			if err != nil {
				return
			}
		}
	} else {
		if zeroForOne {
			amountOut, err = GetAmount1DeltaWithRoundUp(sqrtRatioTargetX96, sqrtRatioCurrentX96, liquidity, false)
		} else {
			amountOut, err = GetAmount0DeltaWithRoundUp(sqrtRatioCurrentX96, sqrtRatioTargetX96, liquidity, false)
		}
		if err != nil {
			return
		}
		if amountRemaining.Neg().GreaterThanOrEqual(amountOut) {
			sqrtRatioNextX96 = sqrtRatioTargetX96
		} else {
			sqrtRatioNextX96, err = GetNextSqrtPriceFromOutput(sqrtRatioCurrentX96, liquidity, amountRemaining.Neg(), zeroForOne)
			if err != nil {
				return
			}
		}
	}

	max := sqrtRatioTargetX96.Equal(sqrtRatioNextX96)
	if zeroForOne {
		if !(max && exactIn) {
			amountIn, err = GetAmount0DeltaWithRoundUp(sqrtRatioNextX96, sqrtRatioCurrentX96, liquidity, true)
			if err != nil {
				return
			}
		}
		if !(max && !exactIn) {
			amountOut, err = GetAmount1DeltaWithRoundUp(sqrtRatioNextX96, sqrtRatioCurrentX96, liquidity, false)
			if err != nil {
				return
			}
		}
	} else {
		if !(max && exactIn) {
			amountIn, err = GetAmount1DeltaWithRoundUp(sqrtRatioCurrentX96, sqrtRatioNextX96, liquidity, true)
			if err != nil {
				return
			}
		}
		if !(max && !exactIn) {
			amountOut, err = GetAmount0DeltaWithRoundUp(sqrtRatioCurrentX96, sqrtRatioNextX96, liquidity, false)
			if err != nil {
				return
			}
		}
	}

	if !exactIn && amountOut.GreaterThan(amountRemaining.Neg()) {
		amountOut = amountRemaining.Neg()
	}

	if exactIn && !sqrtRatioNextX96.Equal(sqrtRatioTargetX96) {
		// partial step: everything left over after amountIn is fee
		feeAmount = amountRemaining.Sub(amountIn)
	} else {
		feeAmount, err = MulDivRoundingUp(amountIn, fee, MAX_FEE.Sub(fee))
		if err != nil {
			return
		}
	}
	return
}
