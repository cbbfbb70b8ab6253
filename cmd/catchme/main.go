// Package main provides the CLI entrypoint for catchme.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/catchme/internal/achievement"
	"github.com/verte-zerg/catchme/internal/clock"
	"github.com/verte-zerg/catchme/internal/config"
	"github.com/verte-zerg/catchme/internal/device"
	"github.com/verte-zerg/catchme/internal/geometry"
	"github.com/verte-zerg/catchme/internal/logging"
	"github.com/verte-zerg/catchme/internal/model"
	"github.com/verte-zerg/catchme/internal/share"
	"github.com/verte-zerg/catchme/internal/stats"
	"github.com/verte-zerg/catchme/internal/store"
	"github.com/verte-zerg/catchme/internal/tui"
)

const (
	defaultCellWidth  = 8.0
	defaultCellHeight = 16.0
	defaultLogLevel   = "info"

	// summaryChrome is the width taken by the trend row label.
	summaryChrome = 16
)

var logLevels = []string{"trace", "debug", "info", "warn", "error"}

var (
	playDifficulty string
	playTouch      bool
	playSeed       int64
	playCellWidth  float64
	playCellHeight float64
	playLogFile    string
	playLogLevel   string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "catchme",
		Short:         "Catch the button that runs away from your mouse",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	rootCmd.Flags().StringVar(&playDifficulty, "difficulty", model.DifficultyEasy, "difficulty preset (easy, medium, hard)")
	rootCmd.Flags().BoolVar(&playTouch, "touch", false, "treat the terminal as a touch device (default: detect)")
	rootCmd.Flags().Int64Var(&playSeed, "seed", 0, "random seed for target placement (0: time based)")
	rootCmd.Flags().Float64Var(&playCellWidth, "cell-width", defaultCellWidth, "arena units per terminal column")
	rootCmd.Flags().Float64Var(&playCellHeight, "cell-height", defaultCellHeight, "arena units per terminal row")
	rootCmd.Flags().StringVar(&playLogFile, "log-file", "", "log file path (default: state dir when a log level is set)")
	rootCmd.Flags().StringVar(&playLogLevel, "log-level", defaultLogLevel, "log level (trace, debug, info, warn, error)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newAchievementsCmd())
	rootCmd.AddCommand(newDifficultiesCmd())

	return rootCmd
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd, config.DefaultConfigPath())
	if err != nil {
		return err
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("catchme needs an interactive terminal")
	}

	logger, logCloser, err := logging.OpenFile(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := logCloser.Close(); cerr != nil {
			logErrf("failed to close log file: %v\n", cerr)
		}
	}()

	journal, err := store.Open(store.MemoryDSN)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer func() {
		if cerr := journal.Close(); cerr != nil {
			logErrf("failed to close journal: %v\n", cerr)
		}
	}()

	geo := geometry.New()
	if cfg.Seed != 0 {
		geo = geometry.NewWithSeed(cfg.Seed)
	}
	out := share.NewTerminal(os.Stdout)
	game := tui.NewModel(cfg, tui.Deps{
		Scheduler: clock.NewScheduler(clock.SystemClock{}),
		Geometry:  geo,
		Device:    device.Detector{Force: cfg.Touch},
		Sharer:    share.NewSink(out),
		Journal:   journal,
		Logger:    logger,
	})
	program := tea.NewProgram(game, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithOutput(out))
	_, runErr := program.Run()
	game.Close()
	if runErr != nil {
		logger.Error().Err(runErr).Msg("tui exited with error")
		return fmt.Errorf("failed to run TUI: %w", runErr)
	}
	logger.Info().Uint("attempts", game.Session().Stats().Attempts).Uint("catches", game.Session().Stats().Catches).Msg("session finished")
	return printSummary(cmd.OutOrStdout(), journal, game)
}

func printSummary(w io.Writer, journal *store.Store, game *tui.Model) error {
	ctx := context.Background()
	sums, err := journal.Summary(ctx)
	if err != nil {
		return fmt.Errorf("failed to summarize session: %w", err)
	}
	trend, err := journal.SuccessTrend(ctx)
	if err != nil {
		return fmt.Errorf("failed to load success trend: %w", err)
	}
	trend = fitTrend(trend, terminalWidth())
	session := game.Session()
	if err := stats.RenderSummary(w, session.Stats(), sums, trend); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	if len(session.UnlockedIDs()) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	if err := stats.RenderAchievements(w, achievement.Catalog(), session.Unlocked); err != nil {
		return fmt.Errorf("failed to write achievements: %w", err)
	}
	return nil
}

// fitTrend keeps the newest points that fit on one line.
func fitTrend(trend []float64, width int) []float64 {
	room := width - summaryChrome
	if width <= 0 || room <= 0 || len(trend) <= room {
		return trend
	}
	return trend[len(trend)-room:]
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0
	}
	return width
}

func resolveConfig(cmd *cobra.Command, path string) (model.Config, error) {
	fileCfg, err := config.LoadConfig(path)
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "difficulty", &playDifficulty, fileCfg.Game.Difficulty)
	applyInt64Config(cmd, "seed", &playSeed, fileCfg.Game.Seed)
	applyFloatConfig(cmd, "cell-width", &playCellWidth, fileCfg.Game.CellWidth)
	applyFloatConfig(cmd, "cell-height", &playCellHeight, fileCfg.Game.CellHeight)
	applyStringConfig(cmd, "log-file", &playLogFile, fileCfg.Log.File)
	applyStringConfig(cmd, "log-level", &playLogLevel, fileCfg.Log.Level)

	// Logging is off unless a level is asked for.
	if playLogFile == "" && !cmd.Flags().Changed("log-file") && fileCfg.Log.File == nil &&
		(cmd.Flags().Changed("log-level") || fileCfg.Log.Level != nil) {
		playLogFile = config.DefaultLogPath()
	}

	cfg := model.Config{
		Difficulty: strings.ToLower(strings.TrimSpace(playDifficulty)),
		Touch:      resolveTouch(cmd, playTouch, fileCfg.Game.Touch),
		Seed:       playSeed,
		CellWidth:  playCellWidth,
		CellHeight: playCellHeight,
		LogFile:    playLogFile,
		LogLevel:   strings.ToLower(strings.TrimSpace(playLogLevel)),
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
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
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
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

func newAchievementsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "achievements",
		Short: "List achievements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := stats.RenderAchievements(cmd.OutOrStdout(), achievement.Catalog(), nil); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			return nil
		},
	}
}

func newDifficultiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "difficulties",
		Short: "List difficulty presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := stats.RenderDifficulties(cmd.OutOrStdout(), model.Difficulties()); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			return nil
		},
	}
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

// resolveTouch returns nil when neither the flag nor the config decides,
// leaving the choice to device detection.
func resolveTouch(cmd *cobra.Command, flag bool, value *bool) *bool {
	if cmd.Flags().Changed("touch") {
		return &flag
	}
	if value != nil {
		v := *value
		return &v
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# catchme configuration
# Uncomment a value to enable it. CLI flags override config values.

[game]
# difficulty = %q       # easy, medium or hard
# touch = false            # Force touch mode (default: detect)
# seed = 0                 # Random seed for target placement (0: time based)
# cell-width = %.0f         # Arena units per terminal column
# cell-height = %.0f       # Arena units per terminal row

[log]
# file = %q
# level = %q
`,
		model.DifficultyEasy,
		defaultCellWidth,
		defaultCellHeight,
		config.DefaultLogPath(),
		defaultLogLevel,
	)
}

func validateConfig(cfg model.Config) error {
	if _, ok := model.LookupDifficulty(cfg.Difficulty); !ok {
		return fmt.Errorf("--difficulty must be one of easy, medium, hard")
	}
	if cfg.CellWidth <= 0 {
		return fmt.Errorf("--cell-width must be > 0")
	}
	if cfg.CellHeight <= 0 {
		return fmt.Errorf("--cell-height must be > 0")
	}
	valid := false
	for _, level := range logLevels {
		if cfg.LogLevel == level {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("--log-level must be one of %s", strings.Join(logLevels, ", "))
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
