// Package server wires the TARDIS API server together: database, migrations,
// services, the REST API and the gRPC health service. It also handles
// graceful shutdown on SIGINT, SIGTERM and SIGQUIT.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/tardis/internal/logging"
	"github.com/dmitrijs2005/tardis/internal/server/config"
	"github.com/dmitrijs2005/tardis/internal/server/httpapi"
	"github.com/dmitrijs2005/tardis/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/tardis/internal/server/services"

	gs "github.com/dmitrijs2005/tardis/internal/server/grpc"
)

const dbPingTimeout = 5 * time.Second

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	http        *httpapi.HTTPServer
	health      *gs.HealthServer
}

func NewApp(c *config.Config) (*App, error) {

	logger := logging.NewJSON(os.Stdout, slog.LevelInfo)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()

	us := services.NewUserService(db, rm, c)
	cs := services.NewCharacterService(db, rm, services.NewS3PortraitStorage(c))
	js := services.NewJourneyService(db, rm)
	ms := services.NewMessageService(db, rm)

	return &App{
		config:      c,
		logger:      logger,
		db:          db,
		repomanager: rm,
		http:        httpapi.NewHTTPServer(c.HTTPAddr, logger, us, cs, js, ms),
		health:      gs.NewHealthServer(c.GRPCAddr, logger),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// prepareDB checks connectivity and applies pending migrations.
func (app *App) prepareDB(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()

	if err := app.db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("db ping error: %w", err)
	}

	if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}
	return nil
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.http.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.health.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until a shutdown signal arrives or one of the servers fails.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	defer func() {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "db close error", "error", err)
		}
	}()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	if err := app.prepareDB(ctx); err != nil {
		return err
	}

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	app.health.SetServing()

	<-ctx.Done()
	app.health.SetNotServing()
	app.logger.Info(ctx, "Shutting down...")

	wg.Wait()

	return nil
}
