// Package server initializes and runs the account backend: it opens the
// database, runs migrations, wires the services and keeps the HTTP API
// and the daily push scheduler going until shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/dmelo-dev/luzpalavra/internal/logging"
	"github.com/dmelo-dev/luzpalavra/internal/server/config"
	"github.com/dmelo-dev/luzpalavra/internal/server/httpapi"
	"github.com/dmelo-dev/luzpalavra/internal/server/payment"
	"github.com/dmelo-dev/luzpalavra/internal/server/push"
	"github.com/dmelo-dev/luzpalavra/internal/server/repositories/repomanager"
	"github.com/dmelo-dev/luzpalavra/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB

	httpServer  *httpapi.Server
	pushService *services.PushService
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	provider := payment.NewHTTPProvider(cfg.PaymentAPIURL, cfg.PaymentAPIToken)
	sender := push.NewHTTPSender(cfg.PushAPIURL, cfg.PushAPIKey)

	access := services.NewAccessService(db, rm)
	payments := services.NewPaymentService(cfg, provider, access, logger)
	promos := services.NewPromoService(db, rm, access, logger)
	pushes := services.NewPushService(db, rm, sender, logger)
	shares := services.NewShareService(cfg)

	handler := httpapi.NewHandler(access, payments, promos, pushes, shares, logger)
	httpServer := httpapi.NewServer(cfg.EndpointAddr, handler, logger)

	return &App{
		config:      cfg,
		logger:      logger,
		db:          db,
		httpServer:  httpServer,
		pushService: pushes,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app", "addr", app.config.EndpointAddr)

	app.initSignalHandler(cancelFunc)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return app.httpServer.Run(ctx)
	})

	g.Go(func() error {
		err := app.pushService.RunScheduler(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	err := g.Wait()

	if cerr := app.db.Close(); cerr != nil {
		app.logger.Warn(ctx, "db close error", "error", cerr)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	app.logger.Info(ctx, "app stopped")
	return nil
}
