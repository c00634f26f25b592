package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yungbote/recipebook-backend/internal/app"
	"github.com/yungbote/recipebook-backend/internal/platform/envutil"
	"github.com/yungbote/recipebook-backend/internal/platform/logger"
)

var (
	flagDBDriver   string
	flagSQLitePath string
)

var rootCmd = &cobra.Command{
	Use:   "recipebook",
	Short: "Recipe book service",
	Long: `Stores recipes and pantry inventory and builds shopping lists
from the ingredients of selected recipes minus what is on hand.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBDriver, "db-driver", "", "database driver: postgres or sqlite (overrides DB_DRIVER)")
	rootCmd.PersistentFlags().StringVar(&flagSQLitePath, "sqlite-path", "", "sqlite database file (overrides SQLITE_PATH)")
}

func Execute() error {
	return rootCmd.Execute()
}

// setup builds the logger and config shared by every subcommand.
func setup() (*logger.Logger, app.Config, error) {
	log, err := logger.New(envutil.String("LOG_MODE", "development"))
	if err != nil {
		return nil, app.Config{}, fmt.Errorf("init logger: %w", err)
	}
	cfg := app.LoadConfig(log)
	if flagDBDriver != "" {
		cfg.DB.Driver = flagDBDriver
	}
	if flagSQLitePath != "" {
		cfg.DB.SQLitePath = flagSQLitePath
	}
	return log, cfg, nil
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}
