// Package cli implements dashboardctl, the maintenance tool for the
// invoice dashboard database.
package cli

import (
	"context"
	"fmt"

	"github.com/ridwanfathin/invoice-dashboard/internal/config"
	"github.com/ridwanfathin/invoice-dashboard/internal/database"
	"github.com/ridwanfathin/invoice-dashboard/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Execute runs the root command
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "dashboardctl",
		Short:         "Maintain the invoice dashboard database",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(newMigrateCmd())
	root.AddCommand(newSeedCmd())
	return root
}

// env is what every database command needs
type env struct {
	cfg *config.Config
	log *zap.Logger
	db  *database.PostgresDB
}

func (e *env) close() {
	e.db.Close()
	_ = e.log.Sync()
}

// openEnv loads configuration and connects to the database
func openEnv(ctx context.Context) (*env, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	db, err := database.NewPostgresDB(ctx, cfg.PostgresURL)
	if err != nil {
		return nil, err
	}

	return &env{cfg: cfg, log: log, db: db}, nil
}
