// Package report renders query results for the terminal.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/verte-zerg/handodds/internal/hypergeo"
	"github.com/verte-zerg/handodds/internal/model"
)

// DefaultPrecision is the number of decimals printed for percentages.
const DefaultPrecision = 3

const ruleWidth = 69

// FormatCounts joins counts as "2", "2 or 3" or "2, 3, or 4".
func FormatCounts(counts []int) string {
	parts := make([]string, len(counts))
	for i, c := range counts {
		parts[i] = strconv.Itoa(c)
	}
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	case 2:
		return parts[0] + " or " + parts[1]
	}
	return strings.Join(parts[:len(parts)-1], ", ") + ", or " + parts[len(parts)-1]
}

// RenderChances prints one line per target followed by the combined chance.
// The combined line is the exact sum of the splits, evaluated once.
func RenderChances(w io.Writer, res model.Result, precision int) error {
	line := func(counts string, f hypergeo.Fraction) error {
		_, err := fmt.Fprintf(w, "chance of %s lands in a %d card hand from a deck with %d lands: %s\n",
			counts, res.HandSize, res.Lands, formatPercent(f.Probability(), precision))
		return err
	}
	for i, target := range res.Targets {
		if err := line(strconv.Itoa(target), res.Splits[i]); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("-", ruleWidth)); err != nil {
		return err
	}
	return line(FormatCounts(res.Targets), res.Combined())
}

// RenderHistory prints stored queries as a table.
func RenderHistory(w io.Writer, records []model.QueryRecord, precision int) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No queries found.")
		return err
	}
	headers := []string{"ID", "When", "Deck", "Hand", "Lands", "Targets", "Chance"}
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			strconv.FormatInt(rec.ID, 10),
			rec.CreatedAt.Local().Format("2006-01-02 15:04"),
			strconv.Itoa(rec.DeckSize),
			strconv.Itoa(rec.HandSize),
			strconv.Itoa(rec.Lands),
			FormatCounts(rec.Targets),
			formatPercent(rec.CombinedFloat, precision),
		})
	}
	rightAlign := map[int]bool{0: true, 2: true, 3: true, 4: true, 6: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
