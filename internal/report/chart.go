package report

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/verte-zerg/handodds/internal/hypergeo"
)

const (
	minBarWidth         = 10
	terminalWidthBackup = 80
	barChar             = "█"
)

var barColor = lipgloss.Color("#C89A3A")

// RenderDistribution prints a horizontal bar chart of P(exactly k lands) for
// k = 0..len(fracs)-1. Bars are scaled to the most likely count. A width of
// zero or less uses the terminal width.
func RenderDistribution(w io.Writer, fracs []hypergeo.Fraction, width, precision int) error {
	if len(fracs) == 0 {
		return nil
	}
	if precision < 0 {
		precision = DefaultPrecision
	}
	if width <= 0 {
		width = terminalWidth()
	}

	probs := make([]float64, len(fracs))
	maxProb := 0.0
	for i, f := range fracs {
		probs[i] = f.Probability()
		maxProb = math.Max(maxProb, probs[i])
	}
	rows := columns(countColumn(len(fracs)), percentColumn(probs, precision))
	lines := formatTable(nil, rows, map[int]bool{0: true, 1: true})

	barWidth := width - displayWidth(lines[0]) - 3
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	}
	style := lipgloss.NewRenderer(w).NewStyle().Foreground(barColor)

	if _, err := fmt.Fprintln(w, "Distribution"); err != nil {
		return err
	}
	for i, line := range lines {
		bar := ""
		if maxProb > 0 {
			bar = strings.Repeat(barChar, barLength(probs[i], maxProb, barWidth))
		}
		if _, err := fmt.Fprintf(w, "%s │ %s\n", line, style.Render(bar)); err != nil {
			return err
		}
	}
	return nil
}

func barLength(p, maxProb float64, width int) int {
	n := int(math.Round(p / maxProb * float64(width)))
	if n == 0 && p > 0 {
		n = 1
	}
	return n
}

func columns(cols ...[]string) [][]string {
	if len(cols) == 0 {
		return nil
	}
	rows := make([][]string, len(cols[0]))
	for i := range rows {
		row := make([]string, len(cols))
		for j, col := range cols {
			row[j] = col[i]
		}
		rows[i] = row
	}
	return rows
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
