// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Jellyfin JellyfinConfig `toml:"jellyfin"`
	Offline  OfflineConfig  `toml:"offline"`
	Home     HomeConfig     `toml:"home"`
}

type ServerConfig struct {
	Host            string   `toml:"host"`
	Port            int      `toml:"port"`
	LogLevel        string   `toml:"log_level"`
	RefreshInterval Duration `toml:"refresh_interval"`
}

type JellyfinConfig struct {
	URL      string `toml:"url"`
	Token    string `toml:"token"`
	UserID   string `toml:"user_id"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	DeviceID string `toml:"device_id"`
}

type OfflineConfig struct {
	Enabled  bool   `toml:"enabled"`
	Database string `toml:"database"`
}

type HomeConfig struct {
	IncludeLibraries bool `toml:"include_libraries"`
	ResumeLimit      int  `toml:"resume_limit"`
	NextUpLimit      int  `toml:"next_up_limit"`
	LatestLimit      int  `toml:"latest_limit"`
	MemoizeImages    bool `toml:"memoize_images"`
}

// Duration is a time.Duration that decodes from TOML strings like "5m".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Load reads, substitutes, parses, defaults and validates the configuration
// file. Errors from substitution and validation are returned together as a
// *ConfigError.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()

	cfgErr := &ConfigError{Path: path, Missing: missing, Errors: cfg.Validate()}
	if cfgErr.HasErrors() {
		return nil, cfgErr
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8585
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}
	if c.Server.RefreshInterval.Duration == 0 {
		c.Server.RefreshInterval.Duration = 5 * time.Minute
	}
	if c.Offline.Database == "" {
		c.Offline.Database = "./data/offline.db"
	}
	if c.Home.ResumeLimit == 0 {
		c.Home.ResumeLimit = 12
	}
	if c.Home.NextUpLimit == 0 {
		c.Home.NextUpLimit = 12
	}
	if c.Home.LatestLimit == 0 {
		c.Home.LatestLimit = 16
	}
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// envVarPattern matches ${VAR}, ${VAR:-default} and ${VAR:?message}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?:(:-|:\?)([^}]*))?\}`)

// substituteEnvVars replaces environment references in content. Unresolved
// references are left in place and reported in missing.
func substituteEnvVars(content string) (string, []string) {
	var missing []string
	out := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		parts := envVarPattern.FindStringSubmatch(match)
		name, op, arg := parts[1], parts[2], parts[3]
		value, ok := os.LookupEnv(name)

		switch op {
		case ":-":
			if !ok || value == "" {
				return arg
			}
			return value
		case ":?":
			if !ok || value == "" {
				missing = append(missing, fmt.Sprintf("%s: %s", name, arg))
				return match
			}
			return value
		default:
			if !ok {
				missing = append(missing, name)
				return match
			}
			return value
		}
	})
	return out, missing
}
