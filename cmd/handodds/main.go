// Package main provides the CLI entrypoint for handodds.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/verte-zerg/handodds/internal/config"
	"github.com/verte-zerg/handodds/internal/explore"
	"github.com/verte-zerg/handodds/internal/hypergeo"
	"github.com/verte-zerg/handodds/internal/model"
	"github.com/verte-zerg/handodds/internal/report"
	"github.com/verte-zerg/handodds/internal/store"
	"github.com/verte-zerg/handodds/internal/targets"
)

const (
	defaultDeckSize    = 60
	defaultHandSize    = 7
	defaultHistoryLast = 20
	maxPrecision       = 20
	unsetLands         = -1
)

var (
	deckSize  int
	handSize  int
	lands     int
	precision int
	chart     bool
	noHistory bool
	verbose   bool

	historyLast  int
	historyClear bool

	logger = zap.NewNop()
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "handodds [targets...]",
		Short: "Chance of drawing a number of lands in a hand",
		Long: `handodds computes the exact chance of drawing a given number of lands
in a hand drawn without replacement from a deck.

Targets may be counts (2), lists (2,3), ranges (2-4), open ranges (3+)
or "all". The last line is the chance of any of the given counts.

Example: chance of 2-3 lands in a six card hand with 20 lands in 60 cards
  handodds -s 6 -l 20 2 3`,
		Args:              cobra.MinimumNArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     false,
		PersistentPreRunE: initLogger,
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = logger.Sync()
		},
		RunE: runChanceCmd,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	addDeckFlags(rootCmd)
	rootCmd.Flags().IntVarP(&precision, "precision", "p", report.DefaultPrecision, "decimals shown for percentages")
	rootCmd.Flags().BoolVar(&chart, "chart", false, "also print the full distribution as a bar chart")
	rootCmd.Flags().BoolVar(&noHistory, "no-history", false, "do not record this query")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newExploreCmd())
	rootCmd.AddCommand(newHistoryCmd())

	return rootCmd
}

func addDeckFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&deckSize, "deck-size", "d", defaultDeckSize, "cards in the deck")
	cmd.Flags().IntVarP(&handSize, "hand-size", "s", defaultHandSize, "cards in the hand")
	cmd.Flags().IntVarP(&lands, "lands", "l", unsetLands, "lands in the deck")
}

func initLogger(_ *cobra.Command, _ []string) error {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = l
	return nil
}

func runChanceCmd(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Lands == unsetLands {
		return fmt.Errorf("--lands is required (or set lands in %s)", config.DefaultConfigPath())
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}
	counts, err := targets.Parse(args, cfg.HandSize)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	splits, err := hypergeo.EvaluateSplitsConcurrent(ctx, cfg.HandSize, counts, cfg.Lands, cfg.DeckSize, runtime.GOMAXPROCS(0))
	if err != nil {
		return err
	}
	res := model.Result{
		DeckSize: cfg.DeckSize,
		HandSize: cfg.HandSize,
		Lands:    cfg.Lands,
		Targets:  counts,
		Splits:   splits,
	}
	logger.Debug("evaluated splits",
		zap.Int("deck", cfg.DeckSize),
		zap.Int("hand", cfg.HandSize),
		zap.Int("lands", cfg.Lands),
		zap.Ints("targets", counts),
		zap.Stringer("combined", res.Combined()))

	out := cmd.OutOrStdout()
	if err := report.RenderChances(out, res, cfg.Precision); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if cfg.Chart {
		dist, err := hypergeo.Distribution(cfg.HandSize, cfg.Lands, cfg.DeckSize)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(out); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		if err := report.RenderDistribution(out, dist, 0, cfg.Precision); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if cfg.History {
		recordQuery(ctx, res)
	}
	return nil
}

// recordQuery stores the query in history. Failures are reported but do
// not fail the command; the answer has already been printed.
func recordQuery(ctx context.Context, res model.Result) {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		logger.Warn("failed to open history", zap.Error(err))
		return
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	id, err := st.InsertQuery(ctx, model.QueryRecord{
		CreatedAt: time.Now(),
		DeckSize:  res.DeckSize,
		HandSize:  res.HandSize,
		Lands:     res.Lands,
		Targets:   res.Targets,
		Combined:  res.Combined(),
	})
	if err != nil {
		logger.Warn("failed to record query", zap.Error(err))
		return
	}
	logger.Debug("recorded query", zap.Int64("id", id))
}

func resolveConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "deck-size", &deckSize, fileCfg.Deck.Size)
	applyIntConfig(cmd, "hand-size", &handSize, fileCfg.Deck.HandSize)
	applyIntConfig(cmd, "lands", &lands, fileCfg.Deck.Lands)
	applyIntConfig(cmd, "precision", &precision, fileCfg.Output.Precision)
	applyBoolConfig(cmd, "chart", &chart, fileCfg.Output.Chart)

	history := !noHistory
	if fileCfg.Output.History != nil && !cmd.Flags().Changed("no-history") {
		history = *fileCfg.Output.History
	}
	logger.Debug("resolved config", zap.String("path", config.DefaultConfigPath()))

	return model.Config{
		DeckSize:  deckSize,
		HandSize:  handSize,
		Lands:     lands,
		Precision: precision,
		Chart:     chart,
		History:   history,
	}, nil
}

func validateConfig(cfg model.Config) error {
	if cfg.DeckSize <= 0 {
		return fmt.Errorf("--deck-size must be > 0")
	}
	if cfg.HandSize < 0 || cfg.HandSize > cfg.DeckSize {
		return fmt.Errorf("--hand-size must be between 0 and the deck size (%d)", cfg.DeckSize)
	}
	if cfg.Lands < 0 || cfg.Lands > cfg.DeckSize {
		return fmt.Errorf("--lands must be between 0 and the deck size (%d)", cfg.DeckSize)
	}
	return validatePrecision(cfg.Precision)
}

func validatePrecision(p int) error {
	if p < 0 || p > maxPrecision {
		return fmt.Errorf("--precision must be between 0 and %d", maxPrecision)
	}
	return nil
}

func newExploreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Explore the land distribution interactively",
		Args:  cobra.NoArgs,
		RunE:  runExploreCmd,
	}
	addDeckFlags(cmd)
	return cmd
}

func runExploreCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Lands == unsetLands {
		cfg.Lands = cfg.DeckSize * 2 / 5
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}
	program := tea.NewProgram(explore.NewModel(cfg), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run explorer: %w", err)
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show previous queries",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().IntVar(&historyLast, "last", defaultHistoryLast, "number of queries to show (0 for all)")
	cmd.Flags().BoolVar(&historyClear, "clear", false, "delete all recorded queries")
	cmd.Flags().IntVarP(&precision, "precision", "p", report.DefaultPrecision, "decimals shown for percentages")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	if historyLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := validatePrecision(cfg.Precision); err != nil {
		return err
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if historyClear {
		n, err := st.ClearQueries(ctx)
		if err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d queries.\n", n)
		return err
	}
	recs, err := st.ListQueries(ctx, historyLast)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	return report.RenderHistory(cmd.OutOrStdout(), recs, cfg.Precision)
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := writeDefaultConfig(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// writeDefaultConfig creates the config file from the template unless it
// already exists.
func writeDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat config: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Lookup(name) == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Lookup(name) == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# handodds configuration
# Uncomment a value to enable it. CLI flags override config values.

[deck]
# size = %d               # Cards in the deck
# hand-size = %d           # Cards in the hand
# lands = 24              # Lands in the deck

[output]
# precision = %d           # Decimals shown for percentages
# chart = false           # Print the full distribution after each query
# history = true          # Record queries for 'handodds history'
`,
		defaultDeckSize,
		defaultHandSize,
		report.DefaultPrecision,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
