package uniswap_v3_router

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// Calldata parameter structs handed to the transaction-submission layer.
// The router never signs or sends anything, it only produces the bounded
// numbers these carry.

const defaultDeadlineWindow = 1000 * time.Second

// DefaultDeadline is the transaction deadline used when the caller does
// not supply one.
func DefaultDeadline(now time.Time) int64 {
	return now.Add(defaultDeadlineWindow).Unix()
}

type MintParams struct {
	Token0         common.Address
	Token1         common.Address
	Fee            FeeAmount
	TickLower      int
	TickUpper      int
	Amount0Desired decimal.Decimal
	Amount1Desired decimal.Decimal
	Amount0Min     decimal.Decimal
	Amount1Min     decimal.Decimal
	Recipient      common.Address
	Deadline       int64
}

type IncreaseLiquidityParams struct {
	TokenId        decimal.Decimal
	Amount0Desired decimal.Decimal
	Amount1Desired decimal.Decimal
	Amount0Min     decimal.Decimal
	Amount1Min     decimal.Decimal
	Deadline       int64
}

type DecreaseLiquidityParams struct {
	TokenId    decimal.Decimal
	Liquidity  decimal.Decimal
	Amount0Min decimal.Decimal
	Amount1Min decimal.Decimal
	Deadline   int64
}

type CollectParams struct {
	TokenId    decimal.Decimal
	Recipient  common.Address
	Amount0Max decimal.Decimal
	Amount1Max decimal.Decimal
}

type BurnParams struct {
	TokenId decimal.Decimal
}

type ExactInputSingleParams struct {
	TokenIn           common.Address
	TokenOut          common.Address
	Fee               FeeAmount
	Recipient         common.Address
	Deadline          int64
	AmountIn          decimal.Decimal
	AmountOutMinimum  decimal.Decimal
	SqrtPriceLimitX96 decimal.Decimal
}

type ExactInputParams struct {
	Path             []byte
	Recipient        common.Address
	Deadline         int64
	AmountIn         decimal.Decimal
	AmountOutMinimum decimal.Decimal
}

type ExactOutputSingleParams struct {
	TokenIn           common.Address
	TokenOut          common.Address
	Fee               FeeAmount
	Recipient         common.Address
	Deadline          int64
	AmountOut         decimal.Decimal
	AmountInMaximum   decimal.Decimal
	SqrtPriceLimitX96 decimal.Decimal
}

type ExactOutputParams struct {
	Path            []byte
	Recipient       common.Address
	Deadline        int64
	AmountOut       decimal.Decimal
	AmountInMaximum decimal.Decimal
}

// MintParamsFor builds the position-manager mint calldata for this
// position: desired amounts rounded up so the deposit covers the
// liquidity, minimum amounts bounded by the slippage tolerance.
func (p *Position) MintParamsFor(recipient common.Address, tolerance *Fraction, now time.Time) (*MintParams, error) {
	amount0Desired, amount1Desired, err := p.MintAmounts()
	if err != nil {
		return nil, err
	}
	amount0Min, amount1Min, err := p.MintAmountsWithSlippage(tolerance)
	if err != nil {
		return nil, err
	}
	return &MintParams{
		Token0:         p.Pool.Token0.Address,
		Token1:         p.Pool.Token1.Address,
		Fee:            p.Pool.Fee,
		TickLower:      p.TickLower,
		TickUpper:      p.TickUpper,
		Amount0Desired: amount0Desired,
		Amount1Desired: amount1Desired,
		Amount0Min:     amount0Min,
		Amount1Min:     amount1Min,
		Recipient:      recipient,
		Deadline:       DefaultDeadline(now),
	}, nil
}

// SwapParams builds the router calldata for a trade at the given slippage
// tolerance. Single-hop routes use the single variants, multi-hop routes
// the packed-path variants.
func SwapParams(trade *Trade, tolerance *Fraction, recipient common.Address, now time.Time) (interface{}, error) {
	deadline := DefaultDeadline(now)
	if trade.TradeType == EXACT_INPUT {
		minOut, err := trade.MinimumAmountOut(tolerance)
		if err != nil {
			return nil, err
		}
		if len(trade.Route.Pools) == 1 {
			return &ExactInputSingleParams{
				TokenIn:          trade.Route.Input.Address,
				TokenOut:         trade.Route.Output.Address,
				Fee:              trade.Route.Pools[0].Fee,
				Recipient:        recipient,
				Deadline:         deadline,
				AmountIn:         trade.InputAmount,
				AmountOutMinimum: minOut,
			}, nil
		}
		return &ExactInputParams{
			Path:             trade.Route.EncodePath(false),
			Recipient:        recipient,
			Deadline:         deadline,
			AmountIn:         trade.InputAmount,
			AmountOutMinimum: minOut,
		}, nil
	}
	maxIn, err := trade.MaximumAmountIn(tolerance)
	if err != nil {
		return nil, err
	}
	if len(trade.Route.Pools) == 1 {
		return &ExactOutputSingleParams{
			TokenIn:         trade.Route.Input.Address,
			TokenOut:        trade.Route.Output.Address,
			Fee:             trade.Route.Pools[0].Fee,
			Recipient:       recipient,
			Deadline:        deadline,
			AmountOut:       trade.OutputAmount,
			AmountInMaximum: maxIn,
		}, nil
	}
	return &ExactOutputParams{
		Path:            trade.Route.EncodePath(true),
		Recipient:       recipient,
		Deadline:        deadline,
		AmountOut:       trade.OutputAmount,
		AmountInMaximum: maxIn,
	}, nil
}
