package cli

import (
	"github.com/spf13/cobra"

	"github.com/yungbote/recipebook-backend/internal/app"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	log, cfg, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	cfg.AutoMigrate = true
	store, err := app.OpenStore(log, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	cmd.Printf("Schema migrated (%s).\n", store.Driver())
	return nil
}
