package uniswap_v3_router

import (
	"errors"
	"math/big"

	"github.com/shopspring/decimal"
)

var DIVISION_BY_ZERO = errors.New("DIVISION_BY_ZERO")

// Fraction is an exact rational number. Den is always strictly positive, the
// sign lives on Num. Values are immutable, every operation returns a new
// Fraction. Comparisons cross-multiply, they never go through a quotient.
type Fraction struct {
	Num *big.Int
	Den *big.Int
}

func NewFraction(num, den *big.Int) (*Fraction, error) {
	if den.Sign() == 0 {
		return nil, DIVISION_BY_ZERO
	}
	n := new(big.Int).Set(num)
	d := new(big.Int).Set(den)
	if d.Sign() < 0 {
		n.Neg(n)
		d.Neg(d)
	}
	return &Fraction{Num: n, Den: d}, nil
}

func NewFractionFromInt(num int64) *Fraction {
	return &Fraction{Num: big.NewInt(num), Den: big.NewInt(1)}
}

func NewFractionFromInts(num, den int64) (*Fraction, error) {
	return NewFraction(big.NewInt(num), big.NewInt(den))
}

// NewFractionFromDecimal is exact for any decimal, including non-integers:
// 0.005 becomes 5/1000.
func NewFractionFromDecimal(d decimal.Decimal) *Fraction {
	r := d.Rat()
	f, _ := NewFraction(r.Num(), r.Denom())
	return f
}

func (f *Fraction) Add(other *Fraction) *Fraction {
	if f.Den.Cmp(other.Den) == 0 {
		return &Fraction{
			Num: new(big.Int).Add(f.Num, other.Num),
			Den: new(big.Int).Set(f.Den),
		}
	}
	num := new(big.Int).Mul(f.Num, other.Den)
	num.Add(num, new(big.Int).Mul(other.Num, f.Den))
	return &Fraction{Num: num, Den: new(big.Int).Mul(f.Den, other.Den)}
}

func (f *Fraction) Sub(other *Fraction) *Fraction {
	if f.Den.Cmp(other.Den) == 0 {
		return &Fraction{
			Num: new(big.Int).Sub(f.Num, other.Num),
			Den: new(big.Int).Set(f.Den),
		}
	}
	num := new(big.Int).Mul(f.Num, other.Den)
	num.Sub(num, new(big.Int).Mul(other.Num, f.Den))
	return &Fraction{Num: num, Den: new(big.Int).Mul(f.Den, other.Den)}
}

func (f *Fraction) Mul(other *Fraction) *Fraction {
	return &Fraction{
		Num: new(big.Int).Mul(f.Num, other.Num),
		Den: new(big.Int).Mul(f.Den, other.Den),
	}
}

func (f *Fraction) Div(other *Fraction) (*Fraction, error) {
	if other.Num.Sign() == 0 {
		return nil, DIVISION_BY_ZERO
	}
	return NewFraction(
		new(big.Int).Mul(f.Num, other.Den),
		new(big.Int).Mul(f.Den, other.Num),
	)
}

func (f *Fraction) Invert() (*Fraction, error) {
	if f.Num.Sign() == 0 {
		return nil, DIVISION_BY_ZERO
	}
	return NewFraction(f.Den, f.Num)
}

func (f *Fraction) Cmp(other *Fraction) int {
	left := new(big.Int).Mul(f.Num, other.Den)
	right := new(big.Int).Mul(other.Num, f.Den)
	return left.Cmp(right)
}

func (f *Fraction) LessThan(other *Fraction) bool {
	return f.Cmp(other) < 0
}

func (f *Fraction) GreaterThan(other *Fraction) bool {
	return f.Cmp(other) > 0
}

func (f *Fraction) Equal(other *Fraction) bool {
	return f.Cmp(other) == 0
}

func (f *Fraction) IsNegative() bool {
	return f.Num.Sign() < 0
}

func (f *Fraction) IsZero() bool {
	return f.Num.Sign() == 0
}

// Reduce returns the gcd-normalized form. Equal values reduce to an
// identical Num/Den pair.
func (f *Fraction) Reduce() *Fraction {
	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(f.Num), f.Den)
	if g.Cmp(big.NewInt(1)) == 0 {
		return &Fraction{Num: new(big.Int).Set(f.Num), Den: new(big.Int).Set(f.Den)}
	}
	return &Fraction{
		Num: new(big.Int).Quo(f.Num, g),
		Den: new(big.Int).Quo(f.Den, g),
	}
}

// Floor rounds toward negative infinity. Used for amounts owed to the
// trader.
func (f *Fraction) Floor() decimal.Decimal {
	q := new(big.Int).Div(f.Num, f.Den)
	return decimal.NewFromBigInt(q, 0)
}

// Ceil rounds toward positive infinity. Used for amounts owed to the pool.
func (f *Fraction) Ceil() decimal.Decimal {
	q, r := new(big.Int).DivMod(f.Num, f.Den, new(big.Int))
	if r.Sign() != 0 {
		q.Add(q, big.NewInt(1))
	}
	return decimal.NewFromBigInt(q, 0)
}

// Round rounds to the nearest integer, ties toward positive infinity.
func (f *Fraction) Round() decimal.Decimal {
	doubled := new(big.Int).Lsh(f.Num, 1)
	doubled.Add(doubled, f.Den)
	q := doubled.Div(doubled, new(big.Int).Lsh(f.Den, 1))
	return decimal.NewFromBigInt(q, 0)
}

func (f *Fraction) String() string {
	return f.Num.String() + "/" + f.Den.String()
}
