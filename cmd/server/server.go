package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
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
	"dashboard-server/internal/infrastructure/observability"
	"dashboard-server/internal/infrastructure/pica"
	"dashboard-server/internal/infrastructure/realtime"
	widgetrepo "dashboard-server/internal/infrastructure/repository/widget"
	"dashboard-server/internal/infrastructure/salesforce"
	"dashboard-server/internal/infrastructure/speech"
	"dashboard-server/internal/interfaces/httpserver"
	"dashboard-server/internal/interfaces/httpserver/handlers"
)

// @title Dashboard API
// @version 1.0
// @description Chat-driven dashboard widget service: assistant turns, widget persistence, realtime change feed, speech and CRM proxies.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
type Application struct {
	httpServer *httpserver.HttpServer
	crontab    *crontab.Crontab
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, ctab *crontab.Crontab, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		crontab:    ctab,
		log:        log,
	}
}

func (a *Application) Start(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return a.crontab.Run(ctx)
	})
	eg.Go(func() error {
		return a.httpServer.Run(ctx)
	})
	return eg.Wait()
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	db, err := database.Connect(database.Config{
		DSN:             cfg.DatabaseURL,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}

	if err := database.Migrate(db, log); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	authValidator, err := auth.NewValidator(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize auth validator")
	}

	hub := realtime.NewHub(log)
	widgetRepository := widgetrepo.NewPostgresRepository(db)
	widgetService := widget.NewService(widgetRepository, hub, log)

	sessionStore := conversation.NewStore(cfg.SessionIdleTTL, log)
	completer := inference.NewClient(cfg)
	assistantService := assistant.NewService(completer, assistant.NewRouter(widgetService), widgetService, log)

	speechClient := speech.NewClient(cfg)
	crmClient := salesforce.NewClient(cfg)
	toolClient := pica.NewClient(cfg)

	handlerProvider := handlers.NewProvider(
		widgetService,
		sessionStore,
		assistantService,
		speechClient,
		crmClient,
		toolClient,
		hub,
		log,
	)

	httpServer := httpserver.New(cfg, log, handlerProvider, authValidator)
	ctab := crontab.NewCrontab(sessionStore, log)
	app := NewApplication(httpServer, ctab, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
