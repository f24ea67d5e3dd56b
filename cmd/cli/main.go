package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wolfxl/campbuddy/cmd/cli/commands"
	"github.com/wolfxl/campbuddy/internal/config"
	"github.com/wolfxl/campbuddy/pkg/clients/geocoder"
	"github.com/wolfxl/campbuddy/pkg/geocache"
	"github.com/wolfxl/campbuddy/pkg/postgres"
	"github.com/wolfxl/campbuddy/pkg/utils"
	"github.com/wolfxl/campbuddy/pkg/utils/logging"
)

var (
	env   string
	debug bool
	app   = &commands.AppContext{}

	pgDB  *postgres.DB
	cache *geocache.Cache
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "campbuddy",
		Short: "CampBuddy CLI - Plan summer camp schedules",
		Long:  `A CLI tool for building, comparing and adjusting summer camp schedules for a family.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			closeApp()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log debug output to the console")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.PlanCmd(app))
	rootCmd.AddCommand(commands.AlternativesCmd(app))
	rootCmd.AddCommand(commands.SwapCmd(app))
	rootCmd.AddCommand(commands.ImportCatalogCmd(app))
	rootCmd.AddCommand(commands.EmailPlanCmd(app))
	rootCmd.AddCommand(commands.MigrateCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		closeApp()
		os.Exit(1)
	}
}

// initApp sets up logger, config, database and geocoder.
// Google clients are created on first use.
func initApp() error {
	var err error
	app.Env = env
	app.Ctx = context.Background()

	app.Logger, err = logging.InitLogger(env, debug)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully")

	app.Tokens, err = utils.DefaultTokenStore()
	if err != nil {
		return fmt.Errorf("failed to locate token store: %w", err)
	}

	app.Logger.Info("Connecting to database")
	pgDB, err = postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.Database = pgDB
	app.Migrator = pgDB

	var store geocoder.PersistentCache
	if path := app.Cfg.Geocoder.CachePath; path != "" {
		cache, err = geocache.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open geocode cache: %w", err)
		}
		store = cache
		app.Logger.Debug("Geocode cache opened", zap.String("path", path))
	}

	app.Geocoder = geocoder.NewClient(geocoder.Config{
		BaseURL:           app.Cfg.Geocoder.BaseURL,
		UserAgent:         app.Cfg.Geocoder.UserAgent,
		RequestsPerSecond: app.Cfg.Geocoder.RequestsPerSecond,
		Burst:             app.Cfg.Geocoder.Burst,
	}, pgDB, store, app.Logger)

	app.Logger.Info("Application initialized")

	return nil
}

func closeApp() {
	if cache != nil {
		if err := cache.Close(); err != nil && app.Logger != nil {
			app.Logger.Warn("Failed to close geocode cache", zap.Error(err))
		}
		cache = nil
	}
	if pgDB != nil {
		pgDB.Close()
		pgDB = nil
	}
	if app.Logger != nil {
		_ = app.Logger.Sync()
	}
}
