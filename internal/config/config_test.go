package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/matlog/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME at an empty dir and clears every MATLOG_ variable.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, k := range []string{
		"MATLOG_CONFIG", "MATLOG_DB_DRIVER", "MATLOG_DB_DSN", "MATLOG_OWNER", "MATLOG_HTTP_ADDR",
		"MATLOG_JWT_SECRET", "MATLOG_JWT_ISSUER", "MATLOG_LOG_LEVEL", "MATLOG_LOG_USE_CASES",
		"MATLOG_OP_TIMEOUT_MS",
	} {
		t.Setenv(k, "")
	}
	return home
}

func writeFile(t *testing.T, dir, body string) string {
	t.Helper()
	p := filepath.Join(dir, "matlog.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoad_Defaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, filepath.Join(home, ".matlog", "matlog.db"), cfg.DB.DSN)
	assert.Equal(t, "local", cfg.Owner)
	assert.Equal(t, 5*time.Second, cfg.OpTimeout())
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel())
	assert.Empty(t, cfg.Path)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	isolate(t)
	path := writeFile(t, t.TempDir(), `
db:
  driver: postgres
  dsn: postgres://matlog@localhost/matlog
owner: coach
jwt:
  secret: s3cret
log:
  level: debug
  use_cases: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, db.DriverPostgres, cfg.Driver())
	assert.Equal(t, "postgres://matlog@localhost/matlog", cfg.DB.DSN)
	assert.Equal(t, "coach", cfg.Owner)
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel())
	assert.True(t, cfg.Log.UseCases)
	assert.Equal(t, "127.0.0.1:8080", cfg.HTTP.Addr, "unset keys keep defaults")
	assert.Equal(t, path, cfg.Path)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolate(t)
	path := writeFile(t, t.TempDir(), "owner: from-file\nhttp:\n  addr: :9000\n")
	t.Setenv("MATLOG_CONFIG", path)
	t.Setenv("MATLOG_OWNER", "from-env")
	t.Setenv("MATLOG_OP_TIMEOUT_MS", "250")
	t.Setenv("MATLOG_LOG_USE_CASES", "true")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Owner)
	assert.Equal(t, ":9000", cfg.HTTP.Addr)
	assert.Equal(t, 250*time.Millisecond, cfg.OpTimeout())
	assert.True(t, cfg.Log.UseCases)
}

func TestLoad_DefaultPathUsedWhenPresent(t *testing.T) {
	home := isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".matlog"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".matlog", "config.yaml"), []byte("owner: me\n"), 0o600))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "me", cfg.Owner)
}

func TestLoad_EmptyFile(t *testing.T) {
	isolate(t)
	cfg, err := Load(writeFile(t, t.TempDir(), ""))
	require.NoError(t, err)
	assert.Equal(t, "local", cfg.Owner)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("named file missing", func(t *testing.T) {
		isolate(t)
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
	t.Run("unknown key", func(t *testing.T) {
		isolate(t)
		_, err := Load(writeFile(t, t.TempDir(), "ownr: typo\n"))
		assert.Error(t, err)
	})
	t.Run("bad timeout env", func(t *testing.T) {
		isolate(t)
		t.Setenv("MATLOG_OP_TIMEOUT_MS", "-5")
		_, err := Load("")
		assert.Error(t, err)
	})
	t.Run("bad bool env", func(t *testing.T) {
		isolate(t)
		t.Setenv("MATLOG_LOG_USE_CASES", "sometimes")
		_, err := Load("")
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	base := DefaultConfig()

	bad := base
	bad.DB.Driver = "mysql"
	assert.Error(t, bad.Validate())

	bad = base
	bad.Owner = " "
	assert.Error(t, bad.Validate())

	bad = base
	bad.Log.Level = "chatty"
	assert.Error(t, bad.Validate())

	bad = base
	bad.DB.Driver = "postgres"
	bad.DB.DSN = ""
	assert.Error(t, bad.Validate())
}

func TestValidateServe_RequiresSecret(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
	assert.Error(t, cfg.ValidateServe())

	cfg.JWT.Secret = "s3cret"
	assert.NoError(t, cfg.ValidateServe())
}
