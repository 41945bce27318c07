// Command server runs the notes HTTP API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kuitang/swift-notes/internal/api"
	"github.com/kuitang/swift-notes/internal/config"
	"github.com/kuitang/swift-notes/internal/db"
	"github.com/kuitang/swift-notes/internal/notes"
	"github.com/kuitang/swift-notes/internal/obs"
	"github.com/kuitang/swift-notes/internal/ratelimit"
)

func main() {
	addr, dataDir := config.ParseFlags()
	cfg := config.MustLoadConfig(addr, dataDir)

	obs.Init()
	logger := obs.Pkg("server")
	cfg.PrintStartupSummary()

	notesDB, err := db.Open(cfg.DataDirectory, cfg.DatabaseKey)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer notesDB.Close()

	limiter := ratelimit.NewRateLimiter(cfg.RateLimitConfig)
	defer limiter.Stop()

	mux := http.NewServeMux()
	api.NewHandler(notes.NewService(notesDB)).RegisterRoutes(mux)

	// Outermost first: CORS answers preflights before rate limiting sees them.
	var handler http.Handler = mux
	handler = obs.AccessLogMiddleware("server", handler)
	handler = obs.RequestContextMiddleware(handler)
	handler = ratelimit.Middleware(limiter, handler)
	handler = api.CORSMiddleware(cfg.CORSAllowOrigin, handler)

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.ListenAddr, "encrypted", cfg.Encrypted())
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}
