// Package cmd implements the pledge CLI commands.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spendforprogress/pledge/internal/config"
	"github.com/spendforprogress/pledge/internal/ledger"
	"github.com/spendforprogress/pledge/internal/pledge"
	"github.com/spendforprogress/pledge/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagDataDir string
	flagQuiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "pledge",
	Short: "Track purchases and your pledged donations",
	Long:  "Log what you spend, see what you've pledged to donate, and track your progress toward the target.",
	RunE:  runStatus,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Directory holding the ledger database")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress warnings")
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if flagQuiet {
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// openEngine is the shared startup path used by all commands: load config,
// open (or degrade around) the store, restore the ledger, build the engine.
func openEngine() (*pledge.Engine, config.Config, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cfg, nil, err
	}

	logger := newLogger()

	dbPath := config.DBPath(cfg)
	if flagDataDir != "" {
		dbPath = filepath.Join(flagDataDir, "pledge.db")
	}

	var gw ledger.Gateway
	var values pledge.ValueStore
	closeFn := func() {}

	st, err := store.Open(dbPath)
	if err != nil {
		// Storage failure is never fatal: run memory-only for this session.
		logger.Warn("could not open ledger database, changes will not be saved", "path", dbPath, "err", err)
		gw = ledger.NewMemoryGateway()
	} else {
		gw = st
		values = st
		closeFn = func() { _ = st.Close() }
	}

	led := ledger.New(gw, logger)
	led.Restore()

	eng := pledge.NewEngine(led, pledge.Config{
		Rate:            cfg.Pledge.DonationRate,
		RequireCampaign: cfg.Pledge.RequireCampaign,
		RecordOnSubmit:  cfg.Pledge.RecordOnSubmit,
		Catalog:         config.Catalog(cfg),
	}, values, logger)

	return eng, cfg, closeFn, nil
}

func warnDegraded(eng *pledge.Engine) {
	if eng.Degraded() && !flagQuiet {
		fmt.Fprintln(os.Stderr, "  Warning: storage unavailable, this session is in-memory only.")
	}
}
