package server

import (
	"context"
	"os/signal"
	"syscall"

	xhttp "PairSignal/pkg/http"
	applogger "PairSignal/pkg/logger"
)

// App encapsulates the HTTP service lifecycle. Infrastructure clients are closed by
// the cleanup function returned alongside it from the DI layer.
type App struct {
	httpServer *xhttp.Server
	l          *applogger.Logger
}

// New creates a new App instance.
func New(srv *xhttp.Server, l *applogger.Logger) *App {
	if l == nil {
		l = applogger.Nop()
	}
	return &App{httpServer: srv, l: l}
}

// Run starts the HTTP server and blocks until ctx ends, SIGINT/SIGTERM arrives or the listener fails.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := a.httpServer.Start()

	var runErr error
	select {
	case <-ctx.Done():
		a.l.Info("shutdown signal received")
	case err, ok := <-errCh:
		if ok && err != nil {
			a.l.Error("http server error", applogger.Error(err))
			runErr = err
		}
	}

	// ctx may already be done here; shutdown gets its own budget
	if err := a.httpServer.Stop(context.Background()); err != nil {
		a.l.Error("http shutdown error", applogger.Error(err))
	}
	a.l.Info("shutdown complete")
	return runErr
}
