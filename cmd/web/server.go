package main

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/myrjola/checkpoint/internal/errors"
)

const defaultTimeout = 5 * time.Second

// configureAndStartServer serves the API on addr until ctx is done and then shuts down gracefully.
func (app *application) configureAndStartServer(ctx context.Context, addr string) error {
	var err error
	shutdownComplete := make(chan struct{})
	srv := &http.Server{ //nolint:exhaustruct // defaults are fine for the rest
		ErrorLog:          slog.NewLogLogger(app.logger.Handler(), slog.LevelError),
		Handler:           app.routes(),
		IdleTimeout:       time.Minute,
		ReadTimeout:       defaultTimeout,
		WriteTimeout:      defaultTimeout,
		ReadHeaderTimeout: time.Second,
	}

	var listener net.Listener
	if listener, err = net.Listen("tcp", addr); err != nil {
		return errors.Wrap(err, "TCP listen", slog.String("listen_addr", addr))
	}

	go func() {
		defer close(shutdownComplete)
		<-ctx.Done()
		app.logger.LogAttrs(context.Background(), slog.LevelInfo, "shutting down server")

		shutdownContext, cancel := context.WithTimeout(context.Background(), defaultTimeout)
		defer cancel()
		if shutdownErr := srv.Shutdown(shutdownContext); shutdownErr != nil {
			shutdownErr = errors.Wrap(shutdownErr, "shutdown server")
			app.logger.LogAttrs(context.Background(), slog.LevelError, "error shutting down server",
				errors.SlogError(shutdownErr))
		}
	}()

	app.logger.LogAttrs(ctx, slog.LevelInfo, "starting server",
		slog.String("addr", listener.Addr().String()))
	if err = srv.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server serve")
	}
	<-shutdownComplete

	return nil
}
