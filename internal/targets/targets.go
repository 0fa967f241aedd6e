// Package targets expands land-count arguments into an ordered list.
package targets

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// All is the sentinel token for every count from 0 through the hand size.
const All = "all"

// ErrInvalidTarget is wrapped by every parse failure.
var ErrInvalidTarget = errors.New("invalid target count")

// Parse expands tokens into target counts, keeping the order given.
// Accepted forms: "3", "2,3", "2-4", "3+" (3 through handSize) and "all".
// Counts above handSize and repeated counts are rejected.
func Parse(tokens []string, handSize int) ([]int, error) {
	if handSize < 0 {
		return nil, fmt.Errorf("%w: hand size %d is negative", ErrInvalidTarget, handSize)
	}
	var out []int
	seen := map[int]struct{}{}
	add := func(n int) error {
		if n > handSize {
			return fmt.Errorf("%w: %d exceeds hand size %d", ErrInvalidTarget, n, handSize)
		}
		if _, ok := seen[n]; ok {
			return fmt.Errorf("%w: %d given more than once", ErrInvalidTarget, n)
		}
		seen[n] = struct{}{}
		out = append(out, n)
		return nil
	}

	for _, token := range tokens {
		for _, part := range strings.Split(token, ",") {
			part = strings.TrimSpace(strings.ToLower(part))
			if part == "" {
				continue
			}
			lo, hi, err := parseSpan(part, handSize)
			if err != nil {
				return nil, err
			}
			for n := lo; n <= hi; n++ {
				if err := add(n); err != nil {
					return nil, err
				}
			}
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no target counts given", ErrInvalidTarget)
	}
	return out, nil
}

func parseSpan(part string, handSize int) (int, int, error) {
	switch {
	case part == All:
		return 0, handSize, nil
	case strings.HasSuffix(part, "+"):
		lo, err := parseCount(strings.TrimSuffix(part, "+"))
		if err != nil {
			return 0, 0, err
		}
		if lo > handSize {
			return 0, 0, fmt.Errorf("%w: %d exceeds hand size %d", ErrInvalidTarget, lo, handSize)
		}
		return lo, handSize, nil
	case strings.Contains(part, "-"):
		loStr, hiStr, _ := strings.Cut(part, "-")
		lo, err := parseCount(loStr)
		if err != nil {
			return 0, 0, err
		}
		hi, err := parseCount(hiStr)
		if err != nil {
			return 0, 0, err
		}
		if lo > hi {
			return 0, 0, fmt.Errorf("%w: range %q is reversed", ErrInvalidTarget, part)
		}
		return lo, hi, nil
	default:
		n, err := parseCount(part)
		if err != nil {
			return 0, 0, err
		}
		return n, n, nil
	}
}

func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidTarget, s)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %d is negative", ErrInvalidTarget, n)
	}
	return n, nil
}
