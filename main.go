package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/dexlog/internal/app"
	"github.com/llehouerou/dexlog/internal/config"
	"github.com/llehouerou/dexlog/internal/logging"
	"github.com/llehouerou/dexlog/internal/notify"
	"github.com/llehouerou/dexlog/internal/state"
	"github.com/llehouerou/dexlog/internal/stderr"
)

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(logging.FromConfig(cfg.GetLoggingConfig()))
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	// Keep stray library output from corrupting the terminal.
	if err := stderr.Start(logger.Named("stderr")); err != nil {
		logger.Warn("capture stderr", zap.Error(err))
	}
	defer stderr.Stop()

	stateMgr, err := state.Open(state.WithLogger(logger.Named("state")))
	if err != nil {
		return fmt.Errorf("open state: %w", err)
	}

	logger.Info("starting",
		zap.String("game", cfg.GameName),
		zap.String("log_dir", cfg.LogDir),
		zap.Bool("auto_detect", cfg.AutoDetectEnabled()),
	)

	m := app.New(cfg, stateMgr, logger)
	if cfg.Notify {
		if m.Notifier, err = notify.New(); err != nil {
			logger.Warn("desktop notifications", zap.Error(err))
			m.Notifier = notify.Nop()
		}
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		_ = stateMgr.Close()
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
