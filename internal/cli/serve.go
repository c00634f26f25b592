package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yungbote/recipebook-backend/internal/app"
)

var flagPort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagPort, "port", "", "listen port (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	log, cfg, err := setup()
	if err != nil {
		return err
	}
	if flagPort != "" {
		cfg.Port = flagPort
	}

	a, err := app.New(log, cfg)
	if err != nil {
		log.Error("App init failed", "error", err)
		log.Sync()
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signalContext(ctx)
	defer stop()

	log.Info("Server starting", "port", cfg.Port, "db_driver", a.Store.Driver())
	if err := a.Run(ctx); err != nil {
		log.Error("Server exited with error", "error", err)
		return fmt.Errorf("serve: %w", err)
	}
	log.Info("Server stopped")
	return nil
}
