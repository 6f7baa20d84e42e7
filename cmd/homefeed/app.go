package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/vmunix/homefeed/internal/config"
	"github.com/vmunix/homefeed/internal/feed"
	"github.com/vmunix/homefeed/internal/jellyfin"
	"github.com/vmunix/homefeed/internal/offline"
	"github.com/vmunix/homefeed/pkg/imageref"
)

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// app holds the components shared by every command.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	client *jellyfin.Client
	db     *sql.DB
	store  *offline.Store
}

func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.Discover()
}

func loadConfig() (*config.Config, error) {
	path, err := resolveConfigPath()
	if err != nil {
		return nil, err
	}
	return config.Load(path)
}

// newApp loads config and connects to the media server. logOut receives
// structured logs.
func newApp(ctx context.Context, logOut io.Writer) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Server.LogLevel),
	}))

	opts := []jellyfin.Option{
		jellyfin.WithLogger(logger),
		jellyfin.WithToken(cfg.Jellyfin.Token),
		jellyfin.WithUserID(cfg.Jellyfin.UserID),
	}
	if cfg.Jellyfin.DeviceID != "" {
		opts = append(opts, jellyfin.WithDeviceID(cfg.Jellyfin.DeviceID))
	}
	client := jellyfin.New(cfg.Jellyfin.URL, opts...)

	if cfg.Jellyfin.Token == "" && cfg.Jellyfin.Username != "" {
		if _, err := client.Authenticate(ctx, cfg.Jellyfin.Username, cfg.Jellyfin.Password); err != nil {
			// Offline items can still be browsed without a session.
			logger.Warn("jellyfin login failed", "url", cfg.Jellyfin.URL, "error", err)
		}
	}

	a := &app{cfg: cfg, logger: logger, client: client}
	if cfg.Offline.Enabled {
		db, err := offline.Open(cfg.Offline.Database)
		if err != nil {
			return nil, fmt.Errorf("offline store: %w", err)
		}
		a.db = db
		a.store = offline.NewStore(db)
	}
	return a, nil
}

func (a *app) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *app) loadOptions() feed.LoadOptions {
	return feed.LoadOptions{
		IncludeLibraries: a.cfg.Home.IncludeLibraries,
		ResumeLimit:      a.cfg.Home.ResumeLimit,
		NextUpLimit:      a.cfg.Home.NextUpLimit,
		LatestLimit:      a.cfg.Home.LatestLimit,
	}
}

func (a *app) resolver() *imageref.Resolver {
	if a.cfg.Home.MemoizeImages {
		return imageref.NewResolver(imageref.WithMemo())
	}
	return imageref.NewResolver()
}

// feedResolver returns a resolver whose memoized references are dropped
// before each fresh feed state becomes visible.
func (a *app) feedResolver(p *feed.Provider) *imageref.Resolver {
	r := a.resolver()
	p.OnReady(func(feed.Ready) { r.Reset() })
	return r
}

func (a *app) provider() *feed.Provider {
	var off feed.OfflineSource
	if a.store != nil {
		off = a.store
	}
	return feed.NewProvider(feed.JellyfinSource(a.client), off, a.logger)
}

func (a *app) lookup() feed.Lookup {
	return feed.Lookup{Client: a.client, Offline: a.store}
}

func (a *app) requireOffline() error {
	if a.store == nil {
		return fmt.Errorf("offline storage is disabled in %s", configPathOrDiscovered())
	}
	return nil
}

func configPathOrDiscovered() string {
	if p, err := resolveConfigPath(); err == nil {
		return p
	}
	return "config"
}

// stderrApp builds an app that logs to stderr so stdout stays clean for output.
func stderrApp(ctx context.Context) (*app, error) {
	return newApp(ctx, os.Stderr)
}
