package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flood/internal/config"
	"github.com/vovakirdan/tui-flood/internal/core"
	"github.com/vovakirdan/tui-flood/internal/games/flood"
	"github.com/vovakirdan/tui-flood/internal/games/flood/levels"
	"github.com/vovakirdan/tui-flood/internal/progress"
	"github.com/vovakirdan/tui-flood/internal/remote"
	"github.com/vovakirdan/tui-flood/internal/storage"
)

// initTimeout bounds loading the profile list at startup.
const initTimeout = 5 * time.Second

// app is the wiring shared by every command.
type app struct {
	cfg      config.Config
	logger   *log.Logger
	logFile  *os.File
	catalog  *levels.Catalog
	local    *storage.Store
	client   *remote.Client
	store    progress.Store
	profiles *progress.Manager
}

// appMode selects where logs go.
type appMode int

const (
	// modeInteractive writes logs to the configured file, since the TUI owns the terminal.
	modeInteractive appMode = iota
	// modeServer writes logs to stderr.
	modeServer
	// modeBackend writes logs to stderr and never uses a remote store.
	modeBackend
)

// setupConfig loads the config and applies the global flag overrides.
func setupConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagRemote != "" {
		cfg.Remote.URL = flagRemote
	}
	if flagDifficulty != "" {
		preset, err := config.ParseDifficultyPreset(flagDifficulty)
		if err != nil {
			return cfg, err
		}
		cfg.Endless.Difficulty.ApplyPreset(preset)
	}
	return cfg, nil
}

// newApp loads config, levels and stores, then the profile list.
func newApp(mode appMode) (*app, error) {
	cfg, err := setupConfig()
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg}
	if err := a.setupLogger(mode); err != nil {
		return nil, err
	}

	catalog, err := levels.Load(flagLevels)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.catalog = catalog
	flood.SetCatalog(catalog)
	flood.SetConfig(cfg)

	local, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.local = local

	// An untyped nil keeps the fallback store local-only
	var remoteStore progress.Store
	if cfg.Remote.URL != "" && mode != modeBackend {
		a.client = remote.NewClient(cfg.Remote.URL, cfg.Remote.Timeout)
		remoteStore = a.client
	}
	a.store = progress.NewFallbackStore(remoteStore, local, a.logger)

	a.profiles = progress.NewManager(a.store)
	ctx, cancel := context.WithTimeout(context.Background(), initTimeout)
	defer cancel()
	if err := a.profiles.Init(ctx); err != nil {
		a.Close()
		return nil, err
	}

	a.logger.Debug("app ready", "levels", catalog.Len(), "db", cfg.Storage.DBPath, "remote", cfg.Remote.URL)
	return a, nil
}

// setupLogger builds the logger for the given mode.
func (a *app) setupLogger(mode appMode) error {
	level := log.InfoLevel
	if a.cfg.Logging.Level != "" {
		parsed, err := log.ParseLevel(a.cfg.Logging.Level)
		if err != nil {
			return fmt.Errorf("logging.level: %w", err)
		}
		level = parsed
	}

	var w io.Writer = os.Stderr
	if mode == modeInteractive {
		w = io.Discard
		if a.cfg.Logging.File != "" {
			f, err := openLogFile(a.cfg.Logging.File)
			if err != nil {
				return err
			}
			a.logFile = f
			w = f
		}
	}

	a.logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "flood",
	})
	return nil
}

func openLogFile(path string) (*os.File, error) {
	path, err := config.ExpandPath(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, nil
}

// Close releases the stores and the log file.
func (a *app) Close() {
	if a.client != nil {
		a.client.Close()
	}
	if a.local != nil {
		a.local.Close()
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
}

// runtimeConfig builds the runtime config from the terminal size and global flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// findProfile resolves a profile by name or id.
func (a *app) findProfile(nameOrID string) (progress.Profile, error) {
	if p, err := a.profiles.FindByName(nameOrID); err == nil {
		return p, nil
	}
	p, err := a.profiles.Find(nameOrID)
	if err != nil {
		return progress.Profile{}, fmt.Errorf("no player named %q (run 'flood profiles list')", nameOrID)
	}
	return p, nil
}
