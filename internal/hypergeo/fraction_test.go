package hypergeo

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSumMixedDenominators(t *testing.T) {
	half := NewFraction(big.NewInt(1), big.NewInt(2))
	third := NewFraction(big.NewInt(1), big.NewInt(3))
	sixth := NewFraction(big.NewInt(1), big.NewInt(6))

	total := Sum(half, third, sixth)
	require.Equal(t, 0, total.Rat().Cmp(big.NewRat(1, 1)))
	require.Equal(t, 1.0, total.Probability())
}

func TestSumSharedDenominatorStaysUnreduced(t *testing.T) {
	a := NewFraction(big.NewInt(2), big.NewInt(10))
	b := NewFraction(big.NewInt(3), big.NewInt(10))
	require.Equal(t, "5/10", Sum(a, b).String())
}

func TestSumEmpty(t *testing.T) {
	require.Equal(t, "0/1", Sum().String())
	require.Equal(t, 0.0, Sum().Probability())
}

func TestFractionAccessorsReturnCopies(t *testing.T) {
	f := NewFraction(big.NewInt(3), big.NewInt(8))
	f.Num().SetInt64(100)
	f.Den().SetInt64(100)
	require.Equal(t, "3/8", f.String())
}

func TestNewFractionCopiesInputs(t *testing.T) {
	num := big.NewInt(1)
	f := NewFraction(num, big.NewInt(4))
	num.SetInt64(3)
	require.Equal(t, "1/4", f.String())
}

func TestNewFractionRejectsBadDenominator(t *testing.T) {
	require.Panics(t, func() { NewFraction(big.NewInt(1), big.NewInt(0)) })
	require.Panics(t, func() { NewFraction(big.NewInt(-1), big.NewInt(2)) })
}

func TestProbabilityOfTinyFraction(t *testing.T) {
	// Far below what a float64 numerator/denominator pair could represent
	// if both were converted before dividing.
	den := new(big.Int).Exp(big.NewInt(10), big.NewInt(400), nil)
	num := new(big.Int).Exp(big.NewInt(10), big.NewInt(399), nil)
	f := NewFraction(num, den)
	require.InDelta(t, 0.1, f.Probability(), 1e-15)
}

func TestZeroFractionIsZero(t *testing.T) {
	var zero Fraction
	require.Equal(t, "0/1", zero.String())
	require.Equal(t, 0.0, zero.Probability())
	require.Equal(t, 0.0, zero.Percent())
	require.Equal(t, 0, zero.Rat().Sign())
	require.Zero(t, zero.Num().Sign())
	require.Equal(t, int64(1), zero.Den().Int64())

	third := NewFraction(big.NewInt(1), big.NewInt(3))
	require.Equal(t, 0, Sum(zero, third).Rat().Cmp(big.NewRat(1, 3)))
	require.Equal(t, 0, Sum(third, zero).Rat().Cmp(big.NewRat(1, 3)))
	require.Equal(t, "0/1", Sum(zero, zero).String())
}
