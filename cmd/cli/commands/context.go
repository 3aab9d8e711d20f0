package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/weekly-roster/internal/config"
	"github.com/jakechorley/weekly-roster/pkg/clients/gmailclient"
	"github.com/jakechorley/weekly-roster/pkg/clients/preferencesfile"
	"github.com/jakechorley/weekly-roster/pkg/clients/sheetsclient"
	"github.com/jakechorley/weekly-roster/pkg/core/services"
	"github.com/jakechorley/weekly-roster/pkg/postgres"
)

// AppContext holds the application dependencies shared across all commands.
// Google and database clients are created on first use.
type AppContext struct {
	Env    string
	Cfg    *config.Config
	Logger *zap.Logger
	Ctx    context.Context

	oauthCfg     *config.OAuthClientConfig
	sheetsClient *sheetsclient.Client
	closers      []func()
}

// PreferenceSource returns the configured preference input.
// A preferences file takes priority over a preferences sheet.
func (app *AppContext) PreferenceSource() (services.PreferenceSource, error) {
	if app.Cfg.PreferencesFile != "" {
		app.Logger.Debug("Reading preferences from file", zap.String("path", app.Cfg.PreferencesFile))
		return preferencesfile.NewFile(app.Cfg.PreferencesFile, app.Logger), nil
	}

	client, err := app.SheetsClient()
	if err != nil {
		return nil, err
	}

	app.Logger.Debug("Reading preferences from sheet",
		zap.String("spreadsheet_id", app.Cfg.PreferencesSheetID),
		zap.String("tab", app.Cfg.PreferencesTab))
	return sheetsclient.NewPreferenceSheet(client, app.Cfg.PreferencesSheetID, app.Cfg.PreferencesTab), nil
}

// SheetsClient returns the Google Sheets client, running the OAuth flow if needed
func (app *AppContext) SheetsClient() (*sheetsclient.Client, error) {
	if app.sheetsClient != nil {
		return app.sheetsClient, nil
	}

	oauthCfg, err := app.oauthConfig()
	if err != nil {
		return nil, err
	}

	app.Logger.Info("Initializing sheets client")
	app.sheetsClient, err = sheetsclient.NewClient(app.Ctx, oauthCfg, app.Env, app.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}

	return app.sheetsClient, nil
}

// RosterSinks builds a sink for each publish target
func (app *AppContext) RosterSinks(targets []PublishTarget) ([]services.RosterSink, error) {
	sinks := make([]services.RosterSink, 0, len(targets))

	for _, target := range targets {
		sink, err := app.rosterSink(target)
		if err != nil {
			return nil, fmt.Errorf("failed to set up %s publishing: %w", target, err)
		}
		sinks = append(sinks, sink)
	}

	return sinks, nil
}

func (app *AppContext) rosterSink(target PublishTarget) (services.RosterSink, error) {
	switch target {
	case PublishSheets:
		if app.Cfg.RosterSheetID == "" {
			return nil, fmt.Errorf("rosterSheetID is not configured")
		}
		client, err := app.SheetsClient()
		if err != nil {
			return nil, err
		}
		return sheetsclient.NewRosterSheet(client, app.Cfg.RosterSheetID), nil

	case PublishPostgres:
		if app.Cfg.PostgresURL == "" {
			return nil, fmt.Errorf("postgresURL is not configured")
		}
		app.Logger.Info("Connecting to database")
		database, err := postgres.NewDB(app.Ctx, app.Cfg.PostgresURL, app.Logger)
		if err != nil {
			return nil, err
		}
		app.OnClose(database.Close)
		if err := database.RunMigrations(app.Ctx); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return postgres.NewRosterSink(database, app.Logger), nil

	case PublishEmail:
		if len(app.Cfg.EmailRecipients) == 0 {
			return nil, fmt.Errorf("emailRecipients is not configured")
		}
		// Gmail reuses the token granted to the sheets client
		client, err := app.SheetsClient()
		if err != nil {
			return nil, err
		}
		app.Logger.Info("Initializing gmail client")
		gmail, err := gmailclient.NewClient(app.Ctx, app.oauthCfg, client.Token(), app.Cfg.GmailUserID, app.Cfg.EmailRecipients, app.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create gmail client: %w", err)
		}
		return gmail, nil

	default:
		return nil, fmt.Errorf("unknown publish target %q", target)
	}
}

// OnClose registers a function to run when the app is closed
func (app *AppContext) OnClose(fn func()) {
	app.closers = append(app.closers, fn)
}

// Close releases any clients opened by the commands. Closers run once, in
// reverse registration order.
func (app *AppContext) Close() {
	for i := len(app.closers) - 1; i >= 0; i-- {
		app.closers[i]()
	}
	app.closers = nil
}

func (app *AppContext) oauthConfig() (*config.OAuthClientConfig, error) {
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
