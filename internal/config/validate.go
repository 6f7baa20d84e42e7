package config

import (
	"fmt"
	"net/url"
	"time"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	// Server
	if c.Server.Port != 0 && (c.Server.Port < 1 || c.Server.Port > 65535) {
		errs = append(errs, fmt.Sprintf("server.port: must be between 1 and 65535, got %d", c.Server.Port))
	}
	if !validLogLevels[c.Server.LogLevel] {
		errs = append(errs, fmt.Sprintf("server.log_level: must be one of debug, info, warn, error; got %q", c.Server.LogLevel))
	}
	if d := c.Server.RefreshInterval.Duration; d != 0 && d < 10*time.Second {
		errs = append(errs, fmt.Sprintf("server.refresh_interval: must be at least 10s, got %s", d))
	}

	// Jellyfin
	if c.Jellyfin.URL == "" {
		errs = append(errs, "jellyfin.url: required")
	} else if u, err := url.Parse(c.Jellyfin.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Sprintf("jellyfin.url: must be an http(s) URL, got %q", c.Jellyfin.URL))
	}
	hasToken := c.Jellyfin.Token != "" && c.Jellyfin.UserID != ""
	hasLogin := c.Jellyfin.Username != ""
	if !hasToken && !hasLogin {
		errs = append(errs, "jellyfin: either token and user_id, or username, must be set")
	}
	if c.Jellyfin.Token != "" && c.Jellyfin.UserID == "" && !hasLogin {
		errs = append(errs, "jellyfin.user_id: required when token is set")
	}

	// Offline
	if c.Offline.Enabled && c.Offline.Database == "" {
		errs = append(errs, "offline.database: required when offline is enabled")
	}

	// Home
	limits := []struct {
		name  string
		value int
	}{
		{"home.resume_limit", c.Home.ResumeLimit},
		{"home.next_up_limit", c.Home.NextUpLimit},
		{"home.latest_limit", c.Home.LatestLimit},
	}
	for _, l := range limits {
		if l.value < 0 || l.value > 100 {
			errs = append(errs, fmt.Sprintf("%s: must be between 0 and 100, got %d", l.name, l.value))
		}
	}

	return errs
}
