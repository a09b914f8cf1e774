// Package config assembles the runtime configuration. Sources are
// layered: built-in defaults, then a JSON file (-c/-config), then
// environment variables, then command-line flags. Later sources win.
package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/ifpr-pinhais/campusconnect/internal/filex"
)

// Backend selects the account directory implementation.
type Backend string

const (
	BackendLocal  Backend = "local"
	BackendRemote Backend = "remote"
)

// Config holds runtime settings for the campusconnect app.
type Config struct {
	// Backend is "local" (on-device store only) or "remote".
	Backend Backend `env:"CAMPUSCONNECT_BACKEND"`

	// DatabasePath is the sqlite file backing the on-device store.
	DatabasePath string `env:"CAMPUSCONNECT_DB_PATH"`

	Remote RemoteConfig `env:", prefix=CAMPUSCONNECT_REMOTE_"`
	Log    LogConfig    `env:", prefix=CAMPUSCONNECT_LOG_"`
}

// RemoteConfig configures the hosted identity backend.
type RemoteConfig struct {
	BaseURL string        `env:"BASE_URL"`
	Timeout time.Duration `env:"TIMEOUT"`
}

// LogConfig configures logging output.
type LogConfig struct {
	Level  string `env:"LEVEL"`
	Pretty bool   `env:"PRETTY"`
}

// LoadDefaults populates c with sensible defaults. The database lands in
// the per-user data directory.
func (c *Config) LoadDefaults() error {
	dataDir, err := filex.DefaultDataDir("campusconnect")
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}
	c.Backend = BackendLocal
	c.DatabasePath = filepath.Join(dataDir, "campusconnect.db")
	c.Remote.BaseURL = "http://127.0.0.1:8090"
	c.Remote.Timeout = 10 * time.Second
	c.Log.Level = "info"
	c.Log.Pretty = false
	return nil
}

// Validate rejects combinations the app cannot run with.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendLocal, BackendRemote:
	default:
		return fmt.Errorf("backend %q: want %q or %q", c.Backend, BackendLocal, BackendRemote)
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("database path required")
	}
	if c.Backend == BackendRemote && c.Remote.BaseURL == "" {
		return fmt.Errorf("remote backend needs a base url")
	}
	return nil
}

// Load constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment, and command-line flags. Later
// sources take precedence over earlier ones.
func Load(ctx context.Context) (*Config, error) {
	cfg := &Config{}
	if err := cfg.LoadDefaults(); err != nil {
		return nil, err
	}
	if err := parseJSON(cfg); err != nil {
		return nil, err
	}
	if err := envconfig.Process(ctx, cfg); err != nil {
		return nil, fmt.Errorf("env overlay: %w", err)
	}
	if err := parseFlags(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
