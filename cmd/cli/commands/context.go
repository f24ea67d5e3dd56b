package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/wolfxl/campbuddy/internal/config"
	"github.com/wolfxl/campbuddy/pkg/clients/gmailclient"
	"github.com/wolfxl/campbuddy/pkg/clients/sheetsclient"
	"github.com/wolfxl/campbuddy/pkg/core/planner"
	"github.com/wolfxl/campbuddy/pkg/core/services"
	"github.com/wolfxl/campbuddy/pkg/db"
	"github.com/wolfxl/campbuddy/pkg/utils"
)

// Migrator applies database migrations
type Migrator interface {
	RunMigrations(ctx context.Context) ([]string, error)
}

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Env      string
	Cfg      *config.Config
	Database db.Database
	Migrator Migrator
	Geocoder planner.Geocoder
	Tokens   *utils.TokenStore
	Logger   *zap.Logger
	Ctx      context.Context

	oauthCfg     *config.OAuthClientConfig
	sheetsClient *sheetsclient.Client
	gmailClient  *gmailclient.Client
}

// PlannerEnv returns the planner settings derived from the configuration
func (app *AppContext) PlannerEnv() (services.PlannerEnv, error) {
	weeks, err := app.Cfg.Weeks()
	if err != nil {
		return services.PlannerEnv{}, fmt.Errorf("failed to build week calendar: %w", err)
	}

	return services.PlannerEnv{
		Weeks:           weeks,
		Options:         app.Cfg.PlannerOptions(),
		SuggestionCount: app.Cfg.Planner.SuggestionCount,
		Geocoder:        app.Geocoder,
	}, nil
}

// SheetsClient returns the Sheets client, authenticating on first use
func (app *AppContext) SheetsClient() (*sheetsclient.Client, error) {
	if app.sheetsClient != nil {
		return app.sheetsClient, nil
	}

	oauthCfg, err := app.loadOAuthClient()
	if err != nil {
		return nil, err
	}

	app.Logger.Info("Initializing sheets client")
	app.sheetsClient, err = sheetsclient.NewClient(app.Ctx, oauthCfg, app.Tokens, app.Env, app.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}

	return app.sheetsClient, nil
}

// GmailClient returns the Gmail client, sharing the Sheets client's token
func (app *AppContext) GmailClient() (*gmailclient.Client, error) {
	if app.gmailClient != nil {
		return app.gmailClient, nil
	}

	sheets, err := app.SheetsClient()
	if err != nil {
		return nil, err
	}

	app.Logger.Info("Initializing gmail client")
	app.gmailClient, err = gmailclient.NewClient(app.Ctx, app.oauthCfg, sheets.Token(), app.Cfg.GmailUserID, app.Cfg.GmailSender)
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail client: %w", err)
	}

	return app.gmailClient, nil
}

func (app *AppContext) loadOAuthClient() (*config.OAuthClientConfig, error) {
	if app.oauthCfg != nil {
		return app.oauthCfg, nil
	}

	app.Logger.Info("Loading OAuth client configuration")
	oauthCfg, err := config.LoadOAuthClientWithEnv(app.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to load OAuth client config: %w", err)
	}

	app.oauthCfg = oauthCfg
	return oauthCfg, nil
}
