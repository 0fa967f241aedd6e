package hypergeo

import (
	"errors"
	"fmt"
)

// ErrContract reports inputs outside 0 <= target <= hand <= deck and lands <= deck.
var ErrContract = errors.New("split contract violated")

// ContractError describes which bound an evaluation request broke.
type ContractError struct {
	HandSize int
	Target   int
	Lands    int
	DeckSize int
	Msg      string
}

func (e *ContractError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s (hand=%d target=%d lands=%d deck=%d)",
		ErrContract.Error(), e.Msg, e.HandSize, e.Target, e.Lands, e.DeckSize)
}

func (e *ContractError) Unwrap() error { return ErrContract }

// CheckSplit validates one split request without evaluating it.
func CheckSplit(handSize, target, lands, deckSize int) error {
	violation := func(format string, args ...any) error {
		return &ContractError{
			HandSize: handSize,
			Target:   target,
			Lands:    lands,
			DeckSize: deckSize,
			Msg:      fmt.Sprintf(format, args...),
		}
	}
	switch {
	case deckSize <= 0:
		return violation("deck size must be positive")
	case handSize < 0:
		return violation("hand size must not be negative")
	case target < 0:
		return violation("target count must not be negative")
	case lands < 0:
		return violation("land count must not be negative")
	case handSize > deckSize:
		return violation("hand size %d exceeds deck size %d", handSize, deckSize)
	case lands > deckSize:
		return violation("land count %d exceeds deck size %d", lands, deckSize)
	case target > handSize:
		return violation("target count %d exceeds hand size %d", target, handSize)
	}
	return nil
}
