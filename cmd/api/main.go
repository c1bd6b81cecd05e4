// Package main is the entry point for the library API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/roguepikachu/libraryual/internal/app"
	"github.com/roguepikachu/libraryual/internal/config"
	"github.com/roguepikachu/libraryual/pkg/logger"
)

func main() {
	logger.InitLogging()
	config.InitConf()
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, config.Conf)
	stop()
	if err != nil {
		logger.Fatal(context.Background(), "%v", err)
	}
}

// run serves until ctx is cancelled or the listener fails. Connections are
// released before it returns on every path.
func run(ctx context.Context, c config.Config) error {
	a, err := app.New(ctx, c)
	if err != nil {
		return fmt.Errorf("failed to initialise: %w", err)
	}
	defer a.Close()

	port := c.LibraryPort
	if port == "" {
		logger.Info(ctx, "no port configured, falling back to default: 8080")
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           a.Engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx, "listening on %s (store=%s, cache=%t)", srv.Addr, c.StoreBackend, c.CacheEnabled)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info(context.Background(), "shutting down")
	timeout := c.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
