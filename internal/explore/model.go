// Package explore provides the Bubble Tea deck explorer.
package explore

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/handodds/internal/hypergeo"
	"github.com/verte-zerg/handodds/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

const barWidth = 24

type keyMap struct {
	MoreLands   key.Binding
	FewerLands  key.Binding
	BiggerHand  key.Binding
	SmallerHand key.Binding
	BiggerDeck  key.Binding
	SmallerDeck key.Binding
	Quit        key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.MoreLands, k.FewerLands, k.BiggerHand, k.SmallerHand, k.BiggerDeck, k.SmallerDeck, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func defaultKeyMap() keyMap {
	return keyMap{
		MoreLands:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "+land")),
		FewerLands:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "-land")),
		BiggerHand:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "+hand")),
		SmallerHand: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "-hand")),
		BiggerDeck:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "+deck")),
		SmallerDeck: key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "-deck")),
		Quit:        key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Model implements the Bubble Tea explorer UI.
type Model struct {
	deckSize int
	handSize int
	lands    int

	splits []hypergeo.Fraction
	errMsg string

	table table.Model
	help  help.Model
	keys  keyMap

	width  int
	height int
}

// NewModel constructs an explorer starting from the given deck settings.
func NewModel(cfg model.Config) *Model {
	m := &Model{
		deckSize: maxInt(1, cfg.DeckSize),
		handSize: cfg.HandSize,
		lands:    cfg.Lands,
		help:     help.New(),
		keys:     defaultKeyMap(),
	}
	m.table = table.New(
		table.WithColumns([]table.Column{
			{Title: "Lands", Width: 5},
			{Title: "Exactly", Width: 9},
			{Title: "At least", Width: 9},
			{Title: "", Width: barWidth},
		}),
		table.WithStyles(tableStyles()),
	)
	m.clamp()
	m.recompute()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.MoreLands):
			m.lands++
		case key.Matches(msg, m.keys.FewerLands):
			m.lands--
		case key.Matches(msg, m.keys.BiggerHand):
			m.handSize++
		case key.Matches(msg, m.keys.SmallerHand):
			m.handSize--
		case key.Matches(msg, m.keys.BiggerDeck):
			m.deckSize++
		case key.Matches(msg, m.keys.SmallerDeck):
			m.deckSize--
		default:
			return m, nil
		}
		m.clamp()
		m.recompute()
		return m, nil
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Deck %d · Hand %d · Lands %d", m.deckSize, m.handSize, m.lands)))
	b.WriteString("\n")
	if hands, err := hypergeo.Hands(m.handSize, m.deckSize); err == nil {
		b.WriteString(headerStyle.Render(fmt.Sprintf("%s possible hands", hands.String())))
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	} else {
		b.WriteString(m.table.View())
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// Splits returns the current distribution, indexed by land count.
func (m *Model) Splits() []hypergeo.Fraction {
	return m.splits
}

// Settings returns the current deck, hand and land counts.
func (m *Model) Settings() (deckSize, handSize, lands int) {
	return m.deckSize, m.handSize, m.lands
}

func (m *Model) clamp() {
	m.deckSize = maxInt(1, m.deckSize)
	m.handSize = clampInt(m.handSize, 0, m.deckSize)
	m.lands = clampInt(m.lands, 0, m.deckSize)
}

func (m *Model) recompute() {
	splits, err := hypergeo.Distribution(m.handSize, m.lands, m.deckSize)
	if err != nil {
		m.splits = nil
		m.errMsg = err.Error()
		m.table.SetRows(nil)
		return
	}
	m.splits = splits
	m.errMsg = ""
	m.table.SetRows(buildRows(splits))
	m.table.SetHeight(len(splits) + 1)
}

func buildRows(splits []hypergeo.Fraction) []table.Row {
	maxProb := 0.0
	probs := make([]float64, len(splits))
	for i, f := range splits {
		probs[i] = f.Probability()
		if probs[i] > maxProb {
			maxProb = probs[i]
		}
	}
	rows := make([]table.Row, 0, len(splits))
	for i := range splits {
		// At least i lands: exact tail sum, evaluated once.
		atLeast := hypergeo.Sum(splits[i:]...).Percent()
		bar := ""
		if maxProb > 0 {
			// Plain text: table cells are truncated by rune width.
			bar = strings.Repeat("█", int(probs[i]/maxProb*barWidth+0.5))
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i),
			fmt.Sprintf("%.2f%%", probs[i]*100),
			fmt.Sprintf("%.2f%%", atLeast),
			bar,
		})
	}
	return rows
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell
	return styles
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
