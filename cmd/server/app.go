package main

import (
	"database/sql"
	"log/slog"

	"github.com/calebwray/flock-api/internal/api"
	"github.com/calebwray/flock-api/internal/config"
	"github.com/calebwray/flock-api/internal/platform/postgres"
	"github.com/calebwray/flock-api/internal/store"
)

// application bundles the long-lived dependencies of the server:
// configuration, the root logger, the database pool, and the stores
// the handlers are built on.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	memberStore   store.MemberStore
	offeringStore store.OfferingStore
}

// newApplication connects to the database and wires up the stores.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	db, err := openDatabase(cfg, logger)
	if err != nil {
		return nil, err
	}

	return &application{
		config:        cfg,
		logger:        logger,
		db:            db,
		memberStore:   postgres.NewMemberStore(db, logger),
		offeringStore: postgres.NewOfferingStore(db, logger),
	}, nil
}

// handlers constructs the API handlers from the application's stores.
func (app *application) handlers() (*api.MemberHandler, *api.OfferingHandler, *api.HealthHandler) {
	return api.NewMemberHandler(app.memberStore, app.logger),
		api.NewOfferingHandler(app.offeringStore, app.logger),
		api.NewHealthHandler(app.db, app.logger)
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database", slog.String("error", err.Error()))
		}
	}
}
