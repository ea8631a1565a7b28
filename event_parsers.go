package uniswap_v3_router

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/shopspring/decimal"
)

var (
	TOPIC_INITIALIZE = common.HexToHash("0x98636036cb66a9c19a37435efc1e90142190214e8abeb821bdba3f2990dd4c95")
	TOPIC_BURN       = common.HexToHash("0x0c396cd989a39f4459b5fa1aed6a9a8dcdbc45908acfd67e028cd568da98982c")
	TOPIC_SWAP       = common.HexToHash("0xc42079f94a6350d7e6235f29174924f928cc2ac818eb64fed8004e115fbcca67")
	TOPIC_MINT       = common.HexToHash("0x7a53080ba414158be7ec69b987b5fb7d07dee101fe85488f0853ae16239d0bde")
)

var (
	int24Type, _   = abi.NewType("int24", "", nil)
	int256Type, _  = abi.NewType("int256", "", nil)
	uint160Type, _ = abi.NewType("uint160", "", nil)
	uint128Type, _ = abi.NewType("uint128", "", nil)
)

type UniV3InitializeEvent struct {
	RawEvent     *types.Log      `json:"raw_event"`
	SqrtPriceX96 decimal.Decimal `json:"sqrt_price_x96"`
	Tick         int             `json:"tick"`
}

type UniV3SwapEvent struct {
	RawEvent     *types.Log      `json:"raw_event"`
	Sender       string          `json:"sender"`
	Recipient    string          `json:"recipient"`
	Amount0      decimal.Decimal `json:"amount0"`
	Amount1      decimal.Decimal `json:"amount1"`
	SqrtPriceX96 decimal.Decimal `json:"sqrt_price_x96"`
	Liquidity    decimal.Decimal `json:"liquidity"`
}

type UniV3MintEvent struct {
	RawEvent  *types.Log      `json:"raw_event"`
	Sender    string          `json:"sender"`
	Owner     string          `json:"owner"`
	TickLower int             `json:"tick_lower"`
	TickUpper int             `json:"tick_upper"`
	Amount    decimal.Decimal `json:"amount"`
	Amount0   decimal.Decimal `json:"amount0"`
	Amount1   decimal.Decimal `json:"amount1"`
}

type UniV3BurnEvent struct {
	RawEvent  *types.Log      `json:"raw_event"`
	Owner     string          `json:"owner"`
	TickLower int             `json:"tick_lower"`
	TickUpper int             `json:"tick_upper"`
	Amount    decimal.Decimal `json:"amount"`
	Amount0   decimal.Decimal `json:"amount0"`
	Amount1   decimal.Decimal `json:"amount1"`
}

func parseUniv3SwapEvent(log *types.Log) (*UniV3SwapEvent, error) {
	data := log.Data
	if len(log.Topics) != 3 {
		return nil, fmt.Errorf("topic count not match, expect %d, got %d", 3, len(log.Topics))
	}
	amount0, ok := abi.ReadInteger(int256Type, data[0:32]).(*big.Int)
	if !ok {
		return nil, fmt.Errorf("parse swap: amount0 not an int, tx: %s", log.TxHash)
	}
	amount1, ok := abi.ReadInteger(int256Type, data[32:32*2]).(*big.Int)
	if !ok {
		return nil, fmt.Errorf("parse swap: amount1 not an int, tx: %s", log.TxHash)
	}
	sqrtPriceX96, ok := abi.ReadInteger(uint160Type, data[32*2:32*3]).(*big.Int)
	if !ok {
		return nil, fmt.Errorf("parse swap: sqrtPriceX96 not an int, tx: %s", log.TxHash)
	}
	liquidity, ok := abi.ReadInteger(uint128Type, data[32*3:32*4]).(*big.Int)
	if !ok {
		return nil, fmt.Errorf("parse swap: liquidity not an int, tx: %s", log.TxHash)
	}
	parsed := &UniV3SwapEvent{
		RawEvent:     log,
		Sender:       hash2Addr(log.Topics[1]),
		Recipient:    hash2Addr(log.Topics[2]),
		Amount0:      decimal.NewFromBigInt(amount0, 0),
		Amount1:      decimal.NewFromBigInt(amount1, 0),
		SqrtPriceX96: decimal.NewFromBigInt(sqrtPriceX96, 0),
		Liquidity:    decimal.NewFromBigInt(liquidity, 0),
	}
	if parsed.Amount0.IsZero() && parsed.Amount1.IsZero() {
		return nil, fmt.Errorf("swap amount is 0, tx: %s", log.TxHash)
	}
	return parsed, nil
}

func parseUniv3MintEvent(log *types.Log) (*UniV3MintEvent, error) {
	data := log.Data
	if len(log.Topics) != 4 {
		return nil, fmt.Errorf("topic count not match, expect %d, got %d", 4, len(log.Topics))
	}
	tickLower, ok := abi.ReadInteger(int24Type, log.Topics[2].Bytes()).(*big.Int)
	if !ok {
		return nil, fmt.Errorf("failed read mint.tick_lower, tx: %s", log.TxHash)
	}
	tickUpper, ok := abi.ReadInteger(int24Type, log.Topics[3].Bytes()).(*big.Int)
	if !ok {
		return nil, fmt.Errorf("failed read mint.tick_upper, tx: %s", log.TxHash)
	}
	return &UniV3MintEvent{
		RawEvent:  log,
		Owner:     hash2Addr(log.Topics[1]),
		Sender:    common.BytesToAddress(data[:32]).Hex(),
		TickLower: int(tickLower.Int64()),
		TickUpper: int(tickUpper.Int64()),
		Amount:    decimal.NewFromBigInt(new(big.Int).SetBytes(data[32:32*2]), 0),
		Amount0:   decimal.NewFromBigInt(new(big.Int).SetBytes(data[32*2:32*3]), 0),
		Amount1:   decimal.NewFromBigInt(new(big.Int).SetBytes(data[32*3:32*4]), 0),
	}, nil
}

func parseUniv3BurnEvent(log *types.Log) (*UniV3BurnEvent, error) {
	data := log.Data
	if len(log.Topics) != 4 {
		return nil, fmt.Errorf("topic count not match, expect %d, got %d", 4, len(log.Topics))
	}
	tickLower, ok := abi.ReadInteger(int24Type, log.Topics[2].Bytes()).(*big.Int)
	if !ok {
		return nil, fmt.Errorf("failed read burn.tick_lower, tx: %s", log.TxHash)
	}
	tickUpper, ok := abi.ReadInteger(int24Type, log.Topics[3].Bytes()).(*big.Int)
	if !ok {
		return nil, fmt.Errorf("failed read burn.tick_upper, tx: %s", log.TxHash)
	}
	return &UniV3BurnEvent{
		RawEvent:  log,
		Owner:     hash2Addr(log.Topics[1]),
		TickLower: int(tickLower.Int64()),
		TickUpper: int(tickUpper.Int64()),
		Amount:    decimal.NewFromBigInt(new(big.Int).SetBytes(data[:32]), 0),
		Amount0:   decimal.NewFromBigInt(new(big.Int).SetBytes(data[32*1:32*2]), 0),
		Amount1:   decimal.NewFromBigInt(new(big.Int).SetBytes(data[32*2:32*3]), 0),
	}, nil
}

func parseUniv3InitializeEvent(log *types.Log) (*UniV3InitializeEvent, error) {
	data := log.Data
	if len(log.Topics) != 1 {
		return nil, fmt.Errorf("topic count not match, expect %d, got %d", 1, len(log.Topics))
	}
	tick, ok := abi.ReadInteger(int24Type, data[32:32*2]).(*big.Int)
	if !ok {
		return nil, fmt.Errorf("parse initialize: tick not an int, tx: %s", log.TxHash)
	}
	return &UniV3InitializeEvent{
		RawEvent:     log,
		SqrtPriceX96: decimal.NewFromBigInt(new(big.Int).SetBytes(data[:32]), 0),
		Tick:         int(tick.Int64()),
	}, nil
}

func hash2Addr(hs common.Hash) string {
	return strings.ToLower(common.BytesToAddress(hs[12:]).Hex())
}
