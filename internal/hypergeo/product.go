// Package hypergeo computes exact hypergeometric split probabilities.
//
// Every quantity is built from short products of consecutive integers rather
// than full factorials, and results are kept as unreduced big-integer
// fractions until a caller asks for a float.
package hypergeo

import (
	"fmt"
	"math/big"
)

// RangeProduct returns the product of every integer in [begin, end].
// An empty range (begin > end) yields 1.
func RangeProduct(begin, end uint64) *big.Int {
	out := big.NewInt(1)
	if begin > end {
		return out
	}
	if begin == 0 {
		return out.SetUint64(0)
	}
	// MulRange works on int64; deck-sized inputs never come close to the limit.
	if end <= 1<<62 {
		return out.MulRange(int64(begin), int64(end))
	}
	var factor big.Int
	for i := begin; ; i++ {
		out.Mul(out, factor.SetUint64(i))
		if i == end {
			break
		}
	}
	return out
}

// DownBy returns begin × (begin-1) × … × (begin-down+1), the number of
// ordered ways to draw down items from a supply of begin.
//
// down == 0 is the empty product and yields 1 for any begin, including 0.
// When down exceeds begin the product runs through zero and the result is 0.
func DownBy(begin, down uint64) *big.Int {
	if down == 0 {
		return big.NewInt(1)
	}
	if down > begin {
		return new(big.Int)
	}
	return RangeProduct(begin-down+1, begin)
}

// Choose returns the binomial coefficient n choose k. It panics if k > n.
func Choose(n, k uint64) *big.Int {
	if k > n {
		panic(fmt.Sprintf("hypergeo: choose %d from %d", k, n))
	}
	num := DownBy(n, k)
	// The quotient is exact: k! always divides n!/(n-k)!.
	return num.Quo(num, RangeProduct(1, k))
}
