package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	v1 "github.com/vmunix/homefeed/internal/api/v1"
	"github.com/vmunix/homefeed/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Serves the rendered home screen over HTTP and refreshes it on the
configured interval until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, os.Stdout)
	if err != nil {
		return err
	}
	defer a.Close()

	p := a.provider()
	defer func() { _ = p.Close() }()

	resolver := a.feedResolver(p)

	deps := v1.ServerDeps{
		Feed:     p,
		BaseURL:  a.client.BaseURL(),
		Items:    a.lookup(),
		Resolver: resolver,
	}
	if a.store != nil {
		deps.Offline = a.store
	}
	api, err := v1.New(deps, v1.Config{Version: version, Load: a.loadOptions()})
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	api.RegisterRoutes(mux)

	runner := server.NewRunner(p, v1.LogRequests(mux, a.logger.With("component", "http")), server.Config{
		Addr:            a.cfg.Addr(),
		RefreshInterval: a.cfg.Server.RefreshInterval.Duration,
		Load:            a.loadOptions(),
	}, a.logger)

	a.logger.Info("homefeed starting", "version", version, "jellyfin", a.client.BaseURL())
	if err := runner.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

