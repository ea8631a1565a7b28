package uniswap_v3_router

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"
)

var (
	EMPTY_ROUTE    = errors.New("EMPTY_ROUTE")
	DISJOINT_ROUTE = errors.New("DISJOINT_ROUTE")
	CYCLIC_ROUTE   = errors.New("CYCLIC_ROUTE")
)

// Route is an ordered chain of pools from an input token to an output
// token, each adjacent pair sharing the token that carries the trade over.
type Route struct {
	Pools     []*CorePool
	Input     Token
	Output    Token
	TokenPath []Token
}

func NewRoute(pools []*CorePool, input Token, output Token) (*Route, error) {
	if len(pools) == 0 {
		return nil, EMPTY_ROUTE
	}
	if !pools[0].ContainsToken(input) {
		return nil, DISJOINT_ROUTE
	}
	if !pools[len(pools)-1].ContainsToken(output) {
		return nil, DISJOINT_ROUTE
	}

	tokenPath := make([]Token, 0, len(pools)+1)
	tokenPath = append(tokenPath, input)
	seenTokens := map[common.Address]bool{input.Address: true}
	current := input
	for _, pool := range pools {
		if !pool.ContainsToken(current) {
			return nil, DISJOINT_ROUTE
		}
		var next Token
		if current.Equals(pool.Token0) {
			next = pool.Token1
		} else {
			next = pool.Token0
		}
		if seenTokens[next.Address] {
			return nil, CYCLIC_ROUTE
		}
		seenTokens[next.Address] = true
		tokenPath = append(tokenPath, next)
		current = next
	}
	if !current.Equals(output) {
		return nil, DISJOINT_ROUTE
	}
	return &Route{
		Pools:     pools,
		Input:     input,
		Output:    output,
		TokenPath: tokenPath,
	}, nil
}

// PathSegment is one (token, fee) hop of the encoded path.
type PathSegment struct {
	Token Token
	Fee   FeeAmount
}

// PathSegments lists the route as (token, feeTier) tuples in traversal
// order, reversed for exact-output calls which walk the path backwards.
func (r *Route) PathSegments(exactOutput bool) []PathSegment {
	segments := make([]PathSegment, 0, len(r.TokenPath))
	for i, token := range r.TokenPath {
		var fee FeeAmount
		if i < len(r.Pools) {
			fee = r.Pools[i].Fee
		}
		segments = append(segments, PathSegment{Token: token, Fee: fee})
	}
	if exactOutput {
		for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
			segments[i], segments[j] = segments[j], segments[i]
		}
		// fees shift: each fee belongs to the pool after the token it
		// precedes in the reversed walk
		for i := 0; i < len(segments); i++ {
			if i < len(r.Pools) {
				segments[i].Fee = r.Pools[len(r.Pools)-1-i].Fee
			} else {
				segments[i].Fee = 0
			}
		}
	}
	return segments
}

// EncodePath packs the route the way the periphery router consumes it:
// address ++ uint24 fee ++ address ++ ... with the terminal token bare.
func (r *Route) EncodePath(exactOutput bool) []byte {
	segments := r.PathSegments(exactOutput)
	path := make([]byte, 0, len(segments)*23)
	for i, segment := range segments {
		path = append(path, segment.Token.Address.Bytes()...)
		if i < len(segments)-1 {
			fee := uint32(segment.Fee)
			path = append(path, byte(fee>>16), byte(fee>>8), byte(fee))
		}
	}
	return path
}

// MidPrice is the spot price of the route's output in terms of its input,
// the product of each hop's pool price with no amount simulated.
func (r *Route) MidPrice() *Fraction {
	price := NewFractionFromInt(1)
	current := r.Input
	for _, pool := range r.Pools {
		if current.Equals(pool.Token0) {
			price = price.Mul(pool.Token0Price())
			current = pool.Token1
		} else {
			price = price.Mul(pool.Token1Price())
			current = pool.Token0
		}
	}
	return price.Reduce()
}
