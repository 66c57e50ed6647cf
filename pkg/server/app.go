package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	drepo "MarketMon/internal/domain/repository"
	"MarketMon/pkg/config"
	xhttp "MarketMon/pkg/http"
	applogger "MarketMon/pkg/logger"
)

// App encapsulates the application lifecycle: HTTP server plus the archive
// sink that must be flushed and closed on shutdown.
type App struct {
	cfg        *config.Config
	handler    xhttp.Handler
	sink       drepo.BarSink
	logger     *applogger.Logger
	httpServer *xhttp.Server
}

// New creates a new App instance.
func New(cfg *config.Config, handler xhttp.Handler, sink drepo.BarSink, l *applogger.Logger) *App {
	if l == nil {
		l = applogger.Nop()
	}
	return &App{cfg: cfg, handler: handler, sink: sink, logger: l}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("server started",
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("backend", a.cfg.Backend.Type),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(ctx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}
	if a.sink != nil {
		if err := a.sink.Close(); err != nil {
			a.logger.Warn("sink close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
