// Package server runs the HTTP API and the periodic home feed refresh.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vmunix/homefeed/internal/feed"
)

// Loader reloads the home feed.
type Loader interface {
	Load(ctx context.Context, opts feed.LoadOptions) feed.State
}

// Config for the server runner.
type Config struct {
	Addr            string
	RefreshInterval time.Duration
	ShutdownTimeout time.Duration
	Load            feed.LoadOptions
}

// Runner manages the HTTP server and the refresh loop.
type Runner struct {
	feed    Loader
	handler http.Handler
	config  Config
	logger  *slog.Logger
}

// NewRunner creates a new runner.
func NewRunner(loader Loader, handler http.Handler, cfg Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	return &Runner{
		feed:    loader,
		handler: handler,
		config:  cfg,
		logger:  logger.With("component", "runner"),
	}
}

// Run listens on the configured address and serves until ctx is canceled.
func (r *Runner) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", r.config.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", r.config.Addr, err)
	}
	return r.Serve(ctx, ln)
}

// Serve serves on ln until ctx is canceled. A canceled context is a clean
// shutdown and returns nil.
func (r *Runner) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           r.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		r.logger.Info("listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), r.config.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		r.refreshLoop(gctx)
		return nil
	})

	err := g.Wait()
	if err == nil && ctx.Err() != nil {
		r.logger.Info("server stopped")
	}
	return err
}

// refreshLoop loads the feed once, then again every RefreshInterval.
// A non-positive interval disables periodic refresh.
func (r *Runner) refreshLoop(ctx context.Context) {
	r.refresh(ctx)
	if r.config.RefreshInterval <= 0 {
		return
	}

	ticker := time.NewTicker(r.config.RefreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

func (r *Runner) refresh(ctx context.Context) {
	start := time.Now()
	switch st := r.feed.Load(ctx, r.config.Load).(type) {
	case feed.Ready:
		r.logger.Debug("feed refreshed", "sections", len(st.Sections), "duration_ms", time.Since(start).Milliseconds())
	case feed.Failed:
		if ctx.Err() == nil {
			r.logger.Warn("feed refresh failed", "error", st.Err)
		}
	}
}
