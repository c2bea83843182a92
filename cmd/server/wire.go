//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"dashboard-server/internal/config"
	"dashboard-server/internal/domain/assistant"
	"dashboard-server/internal/domain/conversation"
	"dashboard-server/internal/domain/widget"
	"dashboard-server/internal/infrastructure/auth"
	"dashboard-server/internal/infrastructure/crontab"
	"dashboard-server/internal/infrastructure/database"
	"dashboard-server/internal/infrastructure/inference"
	"dashboard-server/internal/infrastructure/logger"
	"dashboard-server/internal/infrastructure/pica"
	"dashboard-server/internal/infrastructure/realtime"
	widgetrepo "dashboard-server/internal/infrastructure/repository/widget"
	"dashboard-server/internal/infrastructure/salesforce"
	"dashboard-server/internal/infrastructure/speech"
	"dashboard-server/internal/interfaces/httpserver"
	"dashboard-server/internal/interfaces/httpserver/handlers"
)

var dashboardSet = wire.NewSet(
	realtime.NewHub,
	wire.Bind(new(widget.Publisher), new(*realtime.Hub)),
	widgetrepo.NewPostgresRepository,
	wire.Bind(new(widget.Repository), new(*widgetrepo.PostgresRepository)),
	widget.NewService,
	newSessionStore,
	inference.NewClient,
	wire.Bind(new(assistant.Completer), new(*inference.Client)),
	assistant.NewRouter,
	assistant.NewService,
	speech.NewClient,
	wire.Bind(new(handlers.Synthesizer), new(*speech.Client)),
	salesforce.NewClient,
	wire.Bind(new(handlers.CRMQuerier), new(*salesforce.Client)),
	pica.NewClient,
	wire.Bind(new(handlers.ToolRunner), new(*pica.Client)),
	handlers.NewProvider,
	crontab.NewCrontab,
)

// BuildApplication demonstrates how to assemble the dashboard service with Wire.
func BuildApplication(ctx context.Context) (*Application, error) {
	wire.Build(
		config.Load,
		logger.New,
		newDatabaseConfig,
		newGormDB,
		newAuthValidator,
		dashboardSet,
		httpserver.New,
		NewApplication,
	)
	return nil, nil
}

func newDatabaseConfig(cfg *config.Config) database.Config {
	return database.Config{
		DSN:             cfg.DatabaseURL,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	}
}

func newGormDB(cfg database.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db, log); err != nil {
		return nil, err
	}
	return db, nil
}

func newAuthValidator(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*auth.Validator, error) {
	return auth.NewValidator(ctx, cfg, log)
}

func newSessionStore(cfg *config.Config, log zerolog.Logger) *conversation.Store {
	return conversation.NewStore(cfg.SessionIdleTTL, log)
}
