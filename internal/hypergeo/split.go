package hypergeo

import (
	"context"
	"math/big"

	"golang.org/x/sync/errgroup"
)

// EvaluateSplit returns the exact probability of drawing exactly target
// lands in a hand of handSize cards from a deckSize-card deck holding lands
// lands.
//
// The numerator counts ordered hands with that split: the positions of the
// lands within the hand, times ordered draws of the lands, times ordered
// draws of the other cards. The denominator counts all ordered hands.
func EvaluateSplit(handSize, target, lands, deckSize int) (Fraction, error) {
	if err := CheckSplit(handSize, target, lands, deckSize); err != nil {
		return Fraction{}, err
	}
	h, t := uint64(handSize), uint64(target)
	l, n := uint64(lands), uint64(deckSize)

	otherInHand := h - t
	otherInDeck := n - l

	num := Choose(h, t)
	num.Mul(num, DownBy(l, t))
	num.Mul(num, DownBy(otherInDeck, otherInHand))
	den := DownBy(n, h)

	return newFraction(num, den), nil
}

// EvaluateSplits evaluates every target independently and returns the results
// in input order. The first contract violation aborts the batch.
func EvaluateSplits(handSize int, targets []int, lands, deckSize int) ([]Fraction, error) {
	out := make([]Fraction, len(targets))
	for i, target := range targets {
		f, err := EvaluateSplit(handSize, target, lands, deckSize)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

// EvaluateSplitsConcurrent is EvaluateSplits spread over at most workers
// goroutines. workers <= 0 means no limit. Output order matches input order.
func EvaluateSplitsConcurrent(ctx context.Context, handSize int, targets []int, lands, deckSize, workers int) ([]Fraction, error) {
	out := make([]Fraction, len(targets))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, target := range targets {
		i, target := i, target
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := EvaluateSplit(handSize, target, lands, deckSize)
			if err != nil {
				return err
			}
			out[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Distribution evaluates every target from 0 through handSize.
func Distribution(handSize, lands, deckSize int) ([]Fraction, error) {
	if handSize < 0 {
		return nil, CheckSplit(handSize, 0, lands, deckSize)
	}
	targets := make([]int, handSize+1)
	for i := range targets {
		targets[i] = i
	}
	return EvaluateSplits(handSize, targets, lands, deckSize)
}

// Hands returns C(deckSize, handSize), the number of distinct hands.
func Hands(handSize, deckSize int) (*big.Int, error) {
	if err := CheckSplit(handSize, 0, 0, deckSize); err != nil {
		return nil, err
	}
	return Choose(uint64(deckSize), uint64(handSize)), nil
}
