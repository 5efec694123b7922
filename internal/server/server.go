package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/idilsaglam/taskboard/internal/service"
)

// Run serves the task API on addr until ctx is canceled, then drains
// in-flight requests for up to five seconds.
func Run(ctx context.Context, addr string, svc service.API, log *slog.Logger) error {
	if log == nil {
		log = slog.Default()
	}
	srv := &http.Server{
		Addr:    addr,
		Handler: NewRouter(svc, log),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	log.Info("listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Info("server stopped")
	return nil
}
