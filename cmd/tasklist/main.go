package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/nhle/tasklist/internal/app"
	"github.com/nhle/tasklist/internal/logging"
	"github.com/nhle/tasklist/internal/model"
	"github.com/nhle/tasklist/internal/storage"
	"github.com/nhle/tasklist/internal/store"
)

func main() {
	configPath := flag.String("config", model.DefaultConfigPath(), "path to the YAML config file")
	ephemeral := flag.Bool("ephemeral", false, "keep tasks in memory only")
	flag.Parse()

	if err := run(*configPath, *ephemeral); err != nil {
		fmt.Fprintf(os.Stderr, "tasklist: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, ephemeral bool) error {
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return err
	}
	// The settings view edits the file as written, not the -ephemeral override.
	fileCfg := *cfg
	if ephemeral {
		cfg.Storage.Backend = model.BackendMemory
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	kv, err := storage.Open(cfg.Storage)
	if err != nil {
		return fmt.Errorf("opening %s storage: %w", cfg.Storage.Backend, err)
	}
	defer func() {
		if err := kv.Close(); err != nil {
			logger.Warn("closing storage", zap.Error(err))
		}
	}()

	ts := store.New(
		store.WithPersister(store.NewKVPersister(kv, cfg.Storage.Key)),
		store.WithLogger(logger),
	)
	if err := ts.Initialize(context.Background()); err != nil {
		return err
	}
	defer ts.Dispose()

	logger.Info("starting",
		zap.String("backend", cfg.Storage.Backend),
		zap.Int("tasks", ts.Count()),
	)

	p := tea.NewProgram(app.New(ts, fileCfg, configPath, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running UI: %w", err)
	}

	logger.Info("stopped", zap.Int("tasks", ts.Count()))
	return nil
}
