package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/NicolaLanata/math-arcade/internal/config"
	"github.com/NicolaLanata/math-arcade/internal/kvstore"
	"github.com/NicolaLanata/math-arcade/internal/profile"
	"github.com/NicolaLanata/math-arcade/internal/progress"
	"github.com/NicolaLanata/math-arcade/internal/scope"
	"github.com/NicolaLanata/math-arcade/internal/ui"
)

const version = "2.0.0"

// app holds the wired components behind every command.
type app struct {
	cfg      *config.Config
	log      *zap.Logger
	store    kvstore.Store
	scoped   *scope.Storage
	profiles *profile.Store
	tracker  *progress.Tracker
	closeFn  func()
}

// openApp wires config -> store -> profiles -> scoping -> progress.
// An unopenable device store degrades to in-memory state for this
// process, matching the storage-unavailable contract.
func openApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, log: log, closeFn: func() { _ = log.Sync() }}

	sqlite, err := kvstore.Open(cfg.DBPath, log)
	if err != nil {
		log.Warn("device store unavailable, progress will not persist",
			zap.String("path", cfg.DBPath), zap.Error(err))
		a.store = kvstore.NewMemoryStore()
	} else {
		a.store = sqlite
		a.closeFn = func() {
			_ = sqlite.Close()
			_ = log.Sync()
		}
	}

	a.profiles = profile.New(a.store, log)
	a.scoped = scope.New(a.store, a.profiles.ActiveUserID, log)
	a.tracker = progress.NewTracker(a.profiles, log)
	a.scoped.SetObserver(a.tracker)
	return a, nil
}

func (a *app) close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "arcade",
		Short:         "Offline arithmetic games for kids",
		Long:          "Math Arcade is a local-first collection of arithmetic learning games with per-player profiles and records.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Version = version
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	cmd.AddCommand(
		newPlayerCmd(),
		newRecordCmd(),
		newGamesCmd(),
		newPlayCmd(),
		newResetCmd(),
		newBackupCmd(),
		newPrecacheCmd(),
	)
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render("✗ "+err.Error()))
		os.Exit(1)
	}
}
