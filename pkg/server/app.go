package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	drepo "MarketPulse/internal/domain/repository"
	"MarketPulse/internal/service/scoring"
	"MarketPulse/internal/service/stream"
	"MarketPulse/internal/usecase"
	"MarketPulse/pkg/config"
	xhttp "MarketPulse/pkg/http"
	applogger "MarketPulse/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg         *config.Config
	log         *applogger.Logger
	scanner     *usecase.Scanner
	trades      *usecase.TradeMemory
	pump        *stream.Pump
	publisher   drepo.Publisher
	model       *scoring.Model
	store       drepo.ModelStore
	httpServer  *xhttp.Server
	httpHandler xhttp.Handler
}

// New creates a new App instance with all dependencies. The pump and
// publisher may be nil when the stream or Kafka are disabled.
func New(
	cfg *config.Config,
	log *applogger.Logger,
	scanner *usecase.Scanner,
	trades *usecase.TradeMemory,
	pump *stream.Pump,
	publisher drepo.Publisher,
	model *scoring.Model,
	store drepo.ModelStore,
	handler xhttp.Handler,
) *App {
	return &App{
		cfg:         cfg,
		log:         log,
		scanner:     scanner,
		trades:      trades,
		pump:        pump,
		publisher:   publisher,
		model:       model,
		store:       store,
		httpHandler: handler,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.httpServer = xhttp.NewServer(a.httpHandler,
		xhttp.WithHost(a.cfg.Server.Host),
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	// Start scan loop
	go a.scanner.Run(ctx, a.cfg.Scanner.RefreshInterval)
	a.log.Info("scanner started",
		applogger.Strings("symbols", a.cfg.Scanner.Symbols),
		applogger.Duration("interval", a.cfg.Scanner.RefreshInterval))

	// Start stream pump if configured
	if a.pump != nil {
		go func() {
			if err := a.pump.Run(ctx); err != nil {
				a.log.Error("stream pump error", applogger.Error(err))
			}
		}()
		a.log.Info("stream pump started")
	}

	// Start HTTP server
	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	cancel()
	return a.shutdown(context.Background())
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
	}

	// Persist model state so training survives the restart
	if a.store != nil {
		state, err := a.model.State()
		if err == nil {
			err = a.store.Save(shutdownCtx, state)
		}
		if err != nil {
			a.log.Warn("model state save failed", applogger.Error(err))
		}
	}

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.log.Warn("publisher close error", applogger.Error(err))
		}
	}

	a.log.Info("shutdown complete")
	return nil
}
