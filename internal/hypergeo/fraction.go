package hypergeo

import (
	"fmt"
	"math/big"
)

// Fraction is an unreduced probability num/den. The zero value is 0/1.
type Fraction struct {
	num *big.Int
	den *big.Int
}

func newFraction(num, den *big.Int) Fraction {
	if den.Sign() <= 0 {
		panic("hypergeo: non-positive denominator")
	}
	return Fraction{num: num, den: den}
}

// NewFraction builds a fraction from copies of num and den.
// It panics if den is not positive or num is negative.
func NewFraction(num, den *big.Int) Fraction {
	if num.Sign() < 0 {
		panic("hypergeo: negative numerator")
	}
	return newFraction(new(big.Int).Set(num), new(big.Int).Set(den))
}

// parts returns the stored numerator and denominator, or 0 and 1 for the
// zero value. Callers must not modify them.
func (f Fraction) parts() (*big.Int, *big.Int) {
	if f.num == nil || f.den == nil {
		return new(big.Int), big.NewInt(1)
	}
	return f.num, f.den
}

// Num returns a copy of the numerator.
func (f Fraction) Num() *big.Int {
	num, _ := f.parts()
	return new(big.Int).Set(num)
}

// Den returns a copy of the denominator.
func (f Fraction) Den() *big.Int {
	_, den := f.parts()
	return new(big.Int).Set(den)
}

// Rat returns the exact, reduced value.
func (f Fraction) Rat() *big.Rat {
	num, den := f.parts()
	return new(big.Rat).SetFrac(num, den)
}

// Probability converts the fraction to the nearest float64. This is the only
// lossy step.
func (f Fraction) Probability() float64 {
	v, _ := f.Rat().Float64()
	return v
}

// Percent is Probability scaled to 0-100.
func (f Fraction) Percent() float64 {
	return f.Probability() * 100
}

// String returns "num/den".
func (f Fraction) String() string {
	num, den := f.parts()
	return fmt.Sprintf("%s/%s", num.String(), den.String())
}

// Sum adds fractions exactly. Splits of a single query share a denominator,
// so in the common case only numerators are added. Sum of nothing is 0/1.
func Sum(fracs ...Fraction) Fraction {
	if len(fracs) == 0 {
		return newFraction(new(big.Int), big.NewInt(1))
	}
	num, den := fracs[0].Num(), fracs[0].Den()
	var tmp big.Int
	for _, f := range fracs[1:] {
		fn, fd := f.parts()
		if fd.Cmp(den) == 0 {
			num.Add(num, fn)
			continue
		}
		// a/b + c/d = (a*d + c*b) / (b*d)
		num.Mul(num, fd)
		num.Add(num, tmp.Mul(fn, den))
		den.Mul(den, fd)
	}
	return newFraction(num, den)
}
