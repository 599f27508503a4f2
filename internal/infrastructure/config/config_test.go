package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "revlo-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "revlo", cfg.Database.DBName)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 15*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, "USD", cfg.Report.DefaultCurrency)
	assert.Equal(t, 5000, cfg.Report.LedgerMaxRows)
}

func TestLoadFromFile(t *testing.T) {
	dir := chdirTemp(t)

	toml := `
[app]
name = "revlo-test"
env = "test"
port = "9090"

[database]
host = "db.internal"
dbname = "revlo_test"

[log]
level = "debug"
format = "json"

[report]
default_currency = "ETB"
ledger_max_rows = 100
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(toml), 0o600))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "revlo-test", cfg.App.Name)
	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "revlo_test", cfg.Database.DBName)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "ETB", cfg.Report.DefaultCurrency)
	assert.Equal(t, 100, cfg.Report.LedgerMaxRows)
	// Defaults still fill the gaps.
	assert.Equal(t, 5432, cfg.Database.Port)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)

	toml := `
[database]
password = "from-file"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(toml), 0o600))
	t.Setenv("REVLO_DATABASE_PASSWORD", "from-env")
	t.Setenv("REVLO_APP_PORT", "3000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "3000", cfg.App.Port)
}

func TestValidateProduction(t *testing.T) {
	chdirTemp(t)

	t.Run("requires database password", func(t *testing.T) {
		t.Setenv("REVLO_APP_ENV", "production")
		t.Setenv("REVLO_DATABASE_SSLMODE", "require")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password")
	})

	t.Run("rejects sslmode disable", func(t *testing.T) {
		t.Setenv("REVLO_APP_ENV", "production")
		t.Setenv("REVLO_DATABASE_PASSWORD", "secret")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sslmode")
	})
}

func TestValidatePoolSettings(t *testing.T) {
	chdirTemp(t)
	t.Setenv("REVLO_DATABASE_MAX_IDLE_CONNS", "50")
	t.Setenv("REVLO_DATABASE_MAX_OPEN_CONNS", "10")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_idle_conns")
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "revlo",
		Password: "p@ss/word",
		DBName:   "revlo",
		SSLMode:  "disable",
	}
	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "p%40ss%2Fword")
	assert.Contains(t, dsn, "sslmode=disable")
}
