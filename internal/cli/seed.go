package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/yungbote/recipebook-backend/internal/app"
	"github.com/yungbote/recipebook-backend/internal/data/repos"
	"github.com/yungbote/recipebook-backend/internal/data/seed"
	"github.com/yungbote/recipebook-backend/internal/platform/dbctx"
	"github.com/yungbote/recipebook-backend/internal/platform/envutil"
)

var flagSeedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load sample recipes and pantry items",
	Long: `Loads recipes and pantry items from a YAML file, or the bundled
sample data when no file is given. Recipes and pantry items that already
exist by name are left untouched, so the command can be re-run safely.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&flagSeedFile, "file", "", "seed YAML file (overrides "+seed.SeedFileEnv+")")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	log, cfg, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	path := flagSeedFile
	if path == "" {
		path = envutil.String(seed.SeedFileEnv, "")
	}
	data, err := seed.Load(path)
	if err != nil {
		return err
	}

	cfg.AutoMigrate = true
	store, err := app.OpenStore(log, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	theDB := store.DB()
	seeder := seed.NewSeeder(theDB, log, repos.NewRecipeRepo(theDB, log), repos.NewPantryRepo(theDB, log))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	report, err := seeder.Apply(dbctx.Context{Ctx: ctx}, data)
	if err != nil {
		return err
	}
	cmd.Printf("Recipes: %d created, %d skipped. Pantry: %d created, %d skipped.\n",
		report.RecipesCreated, report.RecipesSkipped, report.PantryCreated, report.PantrySkipped)
	return nil
}
