// Package pprofserver serves the runtime profiles on a separate listener that should only be reachable locally.
package pprofserver

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/myrjola/checkpoint/internal/errors"
)

// Handle registers the pprof handlers on mux.
func Handle(mux *http.ServeMux) {
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
}

// ListenAndServe serves pprof on addr until ctx is done.
func ListenAndServe(ctx context.Context, addr string, logger *slog.Logger) error {
	mux := http.NewServeMux()
	Handle(mux)
	srv := &http.Server{ //nolint:exhaustruct // profiles stream for longer than a normal write timeout
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrap(err, "pprof listen", slog.String("pprof_addr", addr))
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "starting pprof server", slog.String("pprof_addr", listener.Addr().String()))

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx) //nolint:contextcheck // ctx is already done
	}()

	if err = srv.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "pprof serve")
	}
	return nil
}
