package uniswap_v3_router

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var (
	priceOne = decimal.RequireFromString("79228162514264337593543950336") // 2^96, price 1:1
	oneEther = decimal.New(1, 18)
	tenthEther = decimal.New(1, 17)
)

func TestGetNextSqrtPriceFromInput(t *testing.T) {
	_, err := GetNextSqrtPriceFromInput(ZERO, oneEther, tenthEther, false)
	assert.ErrorIs(t, err, SQRT_PRICE_INVARIANT, "zero price")

	_, err = GetNextSqrtPriceFromInput(priceOne, ZERO, tenthEther, false)
	assert.ErrorIs(t, err, SQRT_PRICE_INVARIANT, "zero liquidity")

	unchanged, err := GetNextSqrtPriceFromInput(priceOne, tenthEther, ZERO, true)
	assert.NoError(t, err)
	assert.True(t, unchanged.Equal(priceOne), "zero amount in leaves price unchanged")

	p, err := GetNextSqrtPriceFromInput(priceOne, oneEther, tenthEther, false)
	assert.NoError(t, err)
	assert.Equal(t, "87150978765690771352898345369", p.String(), "0.1 token1 in")

	p, err = GetNextSqrtPriceFromInput(priceOne, oneEther, tenthEther, true)
	assert.NoError(t, err)
	assert.Equal(t, "72025602285694852357767227579", p.String(), "0.1 token0 in")
}

func TestGetNextSqrtPriceFromOutput(t *testing.T) {
	p, err := GetNextSqrtPriceFromOutput(priceOne, oneEther, tenthEther, true)
	assert.NoError(t, err)
	assert.Equal(t, "71305346262837903834189555302", p.String(), "0.1 token1 out")

	p, err = GetNextSqrtPriceFromOutput(priceOne, oneEther, tenthEther, false)
	assert.NoError(t, err)
	assert.Equal(t, "88031291682515930659493278152", p.String(), "0.1 token0 out")
}

func TestGetAmount0Delta(t *testing.T) {
	priceUpper, err := EncodeSqrtRatioX96(decimal.NewFromInt(121), decimal.NewFromInt(100))
	assert.NoError(t, err)

	up, err := GetAmount0DeltaWithRoundUp(priceOne, priceUpper, oneEther, true)
	assert.NoError(t, err)
	assert.Equal(t, "90909090909090910", up.String())

	down, err := GetAmount0DeltaWithRoundUp(priceOne, priceUpper, oneEther, false)
	assert.NoError(t, err)
	assert.Equal(t, "90909090909090909", down.String(), "round down is one less")

	zero, err := GetAmount0DeltaWithRoundUp(priceOne, priceUpper, ZERO, true)
	assert.NoError(t, err)
	assert.True(t, zero.IsZero())
}

func TestGetAmount1Delta(t *testing.T) {
	priceUpper, err := EncodeSqrtRatioX96(decimal.NewFromInt(121), decimal.NewFromInt(100))
	assert.NoError(t, err)

	up, err := GetAmount1DeltaWithRoundUp(priceOne, priceUpper, oneEther, true)
	assert.NoError(t, err)
	assert.Equal(t, "100000000000000000", up.String())

	down, err := GetAmount1DeltaWithRoundUp(priceOne, priceUpper, oneEther, false)
	assert.NoError(t, err)
	assert.Equal(t, "99999999999999999", down.String(), "round down is one less")
}

func TestSignedDeltas(t *testing.T) {
	priceUpper, err := EncodeSqrtRatioX96(decimal.NewFromInt(121), decimal.NewFromInt(100))
	assert.NoError(t, err)

	pos, err := GetAmount0Delta(priceOne, priceUpper, oneEther)
	assert.NoError(t, err)
	assert.Equal(t, "90909090909090910", pos.String(), "positive liquidity rounds up")

	neg, err := GetAmount0Delta(priceOne, priceUpper, oneEther.Neg())
	assert.NoError(t, err)
	assert.Equal(t, "-90909090909090909", neg.String(), "negative liquidity rounds down, negated")

	pos1, err := GetAmount1Delta(priceOne, priceUpper, oneEther)
	assert.NoError(t, err)
	assert.Equal(t, "100000000000000000", pos1.String())

	neg1, err := GetAmount1Delta(priceOne, priceUpper, oneEther.Neg())
	assert.NoError(t, err)
	assert.Equal(t, "-99999999999999999", neg1.String())
}
