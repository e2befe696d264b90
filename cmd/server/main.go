package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmynk/ballotbox/internal/config"
	"github.com/mmynk/ballotbox/internal/storage/postgres"
	"github.com/mmynk/ballotbox/internal/storage/sqlite"
	"github.com/mmynk/ballotbox/internal/storage/sqlstore"
	"github.com/mmynk/ballotbox/pkg/logging"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "ballotbox",
	Short: "Ballotbox - online voting server",
	Long: `Ballotbox runs elections over Connect RPC. Voters register, see the
elections open to them and cast one vote per election; admins manage
elections and candidates and read the vote audit.

Settings come from the environment, optionally seeded by a .env file.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Environment file read before the process environment")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the configuration and sets up logging.
func loadConfig() (config.Config, *slog.Logger, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logging.Setup(cfg.LogLevel, cfg.LogFormat), nil
}

// openStore opens the configured backend and applies its schema.
func openStore(ctx context.Context, cfg config.Config) (*sqlstore.Store, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		return postgres.New(ctx, cfg.DatabaseURL)
	case config.DriverSQLite:
		return sqlite.New(ctx, cfg.DBPath)
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}
}
