// Package config resolves matlog settings from defaults, an optional YAML
// file, and MATLOG_* environment variables, in that order.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/matlog/internal/db"
	"gopkg.in/yaml.v3"
)

type DBConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

type HTTPConfig struct {
	Addr        string `yaml:"addr"`
	OpTimeoutMs int    `yaml:"op_timeout_ms"`
}

type JWTConfig struct {
	Secret string `yaml:"secret"`
	Issuer string `yaml:"issuer"`
}

type LogConfig struct {
	Level    string `yaml:"level"`
	UseCases bool   `yaml:"use_cases"`
}

// Config holds all runtime settings.
type Config struct {
	DB   DBConfig   `yaml:"db"`
	HTTP HTTPConfig `yaml:"http"`
	JWT  JWTConfig  `yaml:"jwt"`
	Log  LogConfig  `yaml:"log"`

	// Owner is the owner id the CLI acts as.
	Owner string `yaml:"owner"`

	// Path is the file the settings were read from, if any.
	Path string `yaml:"-"`
}

// DefaultConfig returns a Config with sensible defaults: SQLite under
// ~/.matlog, a local owner, and use-case logging off.
func DefaultConfig() Config {
	return Config{
		DB: DBConfig{
			Driver: string(db.DriverSQLite),
			DSN:    filepath.Join(homeDir(), ".matlog", "matlog.db"),
		},
		HTTP: HTTPConfig{
			Addr:        "127.0.0.1:8080",
			OpTimeoutMs: 5000,
		},
		Log:   LogConfig{Level: "info"},
		Owner: "local",
	}
}

// DefaultPath is read when no file is named and it exists.
func DefaultPath() string {
	return filepath.Join(homeDir(), ".matlog", "config.yaml")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

// Load resolves the configuration. path, or MATLOG_CONFIG when path is empty,
// must exist; otherwise DefaultPath is used only if present.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = os.Getenv("MATLOG_CONFIG")
	}
	required := path != ""
	if !required {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decodeYAML(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
		cfg.Path = path
	case errors.Is(err, os.ErrNotExist) && !required:
	default:
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("MATLOG_DB_DRIVER"); v != "" {
		cfg.DB.Driver = v
	}
	if v := os.Getenv("MATLOG_DB_DSN"); v != "" {
		cfg.DB.DSN = v
	}
	if v := os.Getenv("MATLOG_OWNER"); v != "" {
		cfg.Owner = v
	}
	if v := os.Getenv("MATLOG_HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("MATLOG_JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("MATLOG_JWT_ISSUER"); v != "" {
		cfg.JWT.Issuer = v
	}
	if v := os.Getenv("MATLOG_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("MATLOG_LOG_USE_CASES"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("MATLOG_LOG_USE_CASES: %w", err)
		}
		cfg.Log.UseCases = b
	}
	if v := os.Getenv("MATLOG_OP_TIMEOUT_MS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("MATLOG_OP_TIMEOUT_MS: expected a positive integer, got %q", v)
		}
		cfg.HTTP.OpTimeoutMs = n
	}
	return nil
}

// Validate checks settings every command needs.
func (c Config) Validate() error {
	driver, err := db.ParseDriver(c.DB.Driver)
	if err != nil {
		return fmt.Errorf("db.driver: %w", err)
	}
	if strings.TrimSpace(c.DB.DSN) == "" {
		return fmt.Errorf("db.dsn is required for %s", driver)
	}
	if strings.TrimSpace(c.Owner) == "" {
		return fmt.Errorf("owner is required")
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.HTTP.OpTimeoutMs <= 0 {
		return fmt.Errorf("http.op_timeout_ms must be positive")
	}
	return nil
}

// ValidateServe additionally checks what the HTTP server needs.
func (c Config) ValidateServe() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt.secret is required to serve the HTTP API")
	}
	if strings.TrimSpace(c.HTTP.Addr) == "" {
		return fmt.Errorf("http.addr is required")
	}
	return nil
}

// Driver returns the parsed database driver.
func (c Config) Driver() db.Driver {
	d, err := db.ParseDriver(c.DB.Driver)
	if err != nil {
		return db.DriverSQLite
	}
	return d
}

// LogLevel returns the slog level, defaulting to info.
func (c Config) LogLevel() slog.Level {
	l, err := parseLevel(c.Log.Level)
	if err != nil {
		return slog.LevelInfo
	}
	return l
}

func (c Config) OpTimeout() time.Duration {
	return time.Duration(c.HTTP.OpTimeoutMs) * time.Millisecond
}

func parseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelInfo, nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return l, nil
}
