package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flashcards/internal/cli"
	"flashcards/internal/config"
	"flashcards/internal/repository/postgres"
	"flashcards/internal/service"
	"flashcards/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	flags := cli.NewFlags()
	cmd := cli.NewRootCommand(flags, func(cmd *cobra.Command) error {
		return run(cmd, flags)
	})

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, flags *cli.Flags) error {
	logger, err := newFileLogger(flags.LogFile)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	cfg, err := config.LoadFlags(cmd.Flags())
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	connectCtx, connectCancel := context.WithTimeout(ctx, 5*time.Second)
	db, err := sqlx.ConnectContext(connectCtx, cfg.Database.Driver, cfg.DSN())
	connectCancel()
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", cfg.Database.Driver, err)
	}
	defer db.Close()

	logger.Info("Database connection established", zap.String("driver", cfg.Database.Driver))

	if cfg.ProbeEnabled() {
		probeDB, err := sqlx.Open("postgres", cfg.Probe.DSN)
		if err != nil {
			logger.Warn("Failed to open probe database, probe disabled", zap.Error(err))
		} else {
			defer probeDB.Close()
			probeService := service.NewProbeService(postgres.NewProbeRepo(probeDB), cfg.Probe.Table, logger)
			go func() {
				probeCtx, probeCancel := context.WithTimeout(ctx, 10*time.Second)
				defer probeCancel()
				_, _ = probeService.Check(probeCtx)
			}()
		}
	}

	cardService := service.NewCardService(postgres.NewCardRepo(db), logger)
	model := tui.New(ctx, cardService, logger)

	if _, err := tea.NewProgram(model, tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("card drill failed: %w", err)
	}
	return nil
}

// newFileLogger keeps log output away from the terminal the drill draws on
func newFileLogger(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}

	zcfg := zap.NewProductionConfig()
	zcfg.OutputPaths = []string{path}
	zcfg.ErrorOutputPaths = []string{path}
	return zcfg.Build()
}
