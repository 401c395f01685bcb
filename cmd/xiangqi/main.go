// Package main implements an interactive xiangqi game for the terminal,
// with optional SQLite persistence and a "db" maintenance sub-command.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/chzyer/readline"
	"go.uber.org/zap"
	"golang.org/x/term"

	dbcli "xiangqi/cmd/xiangqi/cli"
	"xiangqi/internal/cli"
	"xiangqi/internal/config"
	"xiangqi/internal/service"
	"xiangqi/internal/storage"
	clitransport "xiangqi/internal/transport/cli"
)

func main() {
	// Check for CLI database commands
	if len(os.Args) > 1 && os.Args[1] == "db" {
		if err := dbcli.Run(os.Args[2:], os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "CLI error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Flags override the environment
	flag.StringVar(&cfg.StoragePath, "storage-path", cfg.StoragePath, "Path to SQLite database file (disables persistence if empty)")
	flag.StringVar(&cfg.HistoryFile, "history-file", cfg.HistoryFile, "Readline history file (none if empty)")
	flag.StringVar(&cfg.Theme, "theme", cfg.Theme, "Board color theme: off, red, wood, gray")
	flag.BoolVar(&cfg.Dev, "dev", cfg.Dev, "Development mode (WAL journal, development logger)")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Error("xiangqi exited with error", zap.Error(err))
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Configuration, logger *zap.Logger) error {
	var store *storage.Store
	if cfg.StoragePath != "" {
		logger.Info("initializing persistent storage", zap.String("path", cfg.StoragePath))
		var err error
		store, err = storage.NewStore(cfg.StoragePath, cfg.Dev, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize storage: %w", err)
		}
		if err := store.InitDB(); err != nil {
			store.Close()
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	} else {
		logger.Info("persistent storage disabled (use -storage-path to enable)")
	}

	svc, err := service.New(store, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.Warn("failed to close service cleanly", zap.Error(err))
		}
	}()

	interactive := term.IsTerminal(int(os.Stdin.Fd()))

	var input cli.LineReader
	if interactive {
		rl, err := readline.NewEx(&readline.Config{
			Prompt:          "> ",
			HistoryFile:     cfg.HistoryFile,
			InterruptPrompt: "^C",
			EOFPrompt:       "exit",
		})
		if err != nil {
			return fmt.Errorf("failed to initialize readline: %w", err)
		}
		defer rl.Close()
		input = rl
	} else {
		input = cli.NewScannerReader(os.Stdin, nil)
	}

	view := cli.New(input, os.Stdout)
	theme := cli.ColorTheme(cfg.Theme)
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		theme = cli.ThemeOff
	}
	if err := view.SetTheme(theme); err != nil {
		return err
	}

	handler := clitransport.New(svc, view)

	view.ShowWelcome()
	logger.Debug("session started", zap.Bool("interactive", interactive), zap.String("storage", svc.GetStorageHealth()))
	handler.Run()

	if svc.GetStorageHealth() == "degraded" {
		logger.Warn("storage degraded during the session, some games were not saved")
	}
	return nil
}

func newLogger(cfg *config.Configuration) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	zc := zap.NewProductionConfig()
	if cfg.Dev {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = level
	// stdout belongs to the board
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}

	return zc.Build()
}
