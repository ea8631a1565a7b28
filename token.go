package uniswap_v3_router

import (
	"bytes"

	"github.com/ethereum/go-ethereum/common"
)

// Token identifies an ERC20 by address. Amounts handled by this package are
// raw integer quantities already scaled by Decimals.
type Token struct {
	Address  common.Address
	Symbol   string
	Decimals int
}

func NewToken(address string, symbol string, decimals int) Token {
	return Token{
		Address:  common.HexToAddress(address),
		Symbol:   symbol,
		Decimals: decimals,
	}
}

func (t Token) Equals(other Token) bool {
	return t.Address == other.Address
}

// SortsBefore reports the canonical pool ordering: token0 is the token with
// the numerically smaller address.
func (t Token) SortsBefore(other Token) bool {
	return bytes.Compare(t.Address.Bytes(), other.Address.Bytes()) < 0
}
