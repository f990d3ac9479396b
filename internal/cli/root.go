// Package cli wires the command-line surface to the report and dashboard.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/codexmeter/codexmeter/internal/config"
	"github.com/codexmeter/codexmeter/internal/logger"
	"github.com/codexmeter/codexmeter/internal/models"
	"github.com/codexmeter/codexmeter/internal/notify"
	"github.com/codexmeter/codexmeter/internal/report"
	"github.com/codexmeter/codexmeter/internal/sessions"
	"github.com/codexmeter/codexmeter/internal/ui/dashboard"
	"github.com/codexmeter/codexmeter/internal/version"
	"github.com/codexmeter/codexmeter/internal/watch"
)

var (
	flagInputFolder string
	flagLive        bool
	flagInterval    int
	flagNotify      bool
	flagThreshold   float64
	flagVersion     bool
)

var rootCmd = &cobra.Command{
	Use:   "codexmeter",
	Short: "Codex session token usage and rate-limit monitor",
	Long: `Codexmeter finds the latest token_count event in your Codex session
logs and shows token usage plus 5-hour and weekly rate-limit state,
either as a one-shot report or as a live terminal dashboard.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagVersion {
			fmt.Println(version.Info())
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		applyFlags(cmd, cfg)

		if flagLive {
			return runLive(cfg)
		}
		return runReport(cfg, os.Stdout)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().StringVarP(&flagInputFolder, "input-folder", "i", "",
		"custom session folder path (default: ~/.codex/sessions)")
	rootCmd.Flags().BoolVar(&flagLive, "live", false, "show a continuously refreshing dashboard")
	rootCmd.Flags().IntVar(&flagInterval, "interval", 10, "dashboard refresh interval in seconds")
	rootCmd.Flags().BoolVar(&flagNotify, "notify", false, "desktop notification when usage crosses the threshold")
	rootCmd.Flags().Float64Var(&flagThreshold, "threshold", 90, "notification threshold in percent")
	rootCmd.Flags().BoolVarP(&flagVersion, "version", "v", false, "print version information")
}

// applyFlags overlays explicitly set flags onto the env-derived config.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("input-folder") {
		cfg.SessionsPath = config.ExpandUser(flagInputFolder)
	}
	if cmd.Flags().Changed("interval") {
		cfg.RefreshInterval = time.Duration(flagInterval) * time.Second
	}
	if cmd.Flags().Changed("notify") {
		cfg.Notify = flagNotify
	}
	if cmd.Flags().Changed("threshold") {
		cfg.NotifyThreshold = flagThreshold
	}
}

// runReport performs one discovery pass and prints the text report.
// Absence of data is a message and exit code 0, not a failure.
func runReport(cfg *config.Config, out io.Writer) error {
	fmt.Fprintf(out, "Using input folder: %s\n", cfg.SessionsPath)
	fmt.Fprintln(out, "Searching for latest token_count event...")

	res, err := sessions.FindLatest(cfg.SessionsPath, time.Now())
	if errors.Is(err, sessions.ErrNoRecords) {
		report.RenderNoData(out)
		return nil
	}
	if err != nil {
		return err
	}

	snap, err := models.BuildSnapshot(res.Path, res.Record)
	if err != nil {
		return err
	}

	report.Render(out, snap, time.Now())
	return nil
}

// runLive starts the dashboard and blocks until quit or signal.
func runLive(cfg *config.Config) error {
	watcher, err := watch.New()
	if err != nil {
		logger.Warn("session watcher unavailable, using interval refresh only", "error", err)
		watcher = nil
	}
	if watcher != nil {
		defer func() {
			if closeErr := watcher.Close(); closeErr != nil {
				logger.Warn("failed to close watcher", "error", closeErr)
			}
		}()
	}

	var notifier *notify.Notifier
	if cfg.Notify {
		notifier = notify.New(cfg.NotifyThreshold)
	}

	model := dashboard.New(cfg, watcher, notifier)
	p := tea.NewProgram(model, tea.WithAltScreen())

	// SIGINT/SIGTERM unwind through Bubble Tea so the terminal mode is
	// restored on every exit path.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		<-sigChan
		p.Send(tea.Quit())
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running dashboard: %w", err)
	}
	return nil
}
