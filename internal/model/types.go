// Package model defines shared data structures.
package model

import (
	"time"

	"github.com/verte-zerg/handodds/internal/hypergeo"
)

// Config defines the deck and output settings for one query.
type Config struct {
	DeckSize  int
	HandSize  int
	Lands     int
	Precision int
	Chart     bool
	History   bool
}

// Result holds the evaluated splits for a query, one per target, in the
// order the targets were given.
type Result struct {
	DeckSize int
	HandSize int
	Lands    int
	Targets  []int
	Splits   []hypergeo.Fraction
}

// Combined returns the exact sum of all splits.
func (r Result) Combined() hypergeo.Fraction {
	return hypergeo.Sum(r.Splits...)
}

// QueryRecord is a stored query from the history database.
type QueryRecord struct {
	ID        int64
	CreatedAt time.Time
	DeckSize  int
	HandSize  int
	Lands     int
	Targets   []int
	// Combined is the exact summed probability; CombinedFloat is its
	// evaluated value kept for sorting and display.
	Combined      hypergeo.Fraction
	CombinedFloat float64
}
