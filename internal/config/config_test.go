package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: "9001"
  mode: "production"
database:
  host: "db.internal"
  dbname: "tutorhall_test"
jwt:
  secret: "test-secret"
  access_token_expiration: "30m"
logging:
  level: "debug"
  format: "text"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9001", cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Mode)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "tutorhall_test", cfg.Database.DBName)
	assert.Equal(t, "test-secret", cfg.JWT.Secret)
	assert.Equal(t, "30m", cfg.JWT.AccessTokenExpiration)
	assert.Equal(t, "debug", cfg.Logging.Level)

	// Fields absent from the file keep their defaults
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "720h", cfg.JWT.RefreshTokenExpiration)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: "9001"
jwt:
  secret: "file-secret"
`)

	t.Setenv("SERVER_PORT", "7777")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("DB_NAME", "overridden")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "7777", cfg.Server.Port)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, "overridden", cfg.Database.DBName)
}

func TestLoadConfigRequiresJWTSecret(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: "9001"
`)
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT secret")
}

func TestLoadConfigRejectsBadExpiration(t *testing.T) {
	path := writeConfigFile(t, `
jwt:
  secret: "test-secret"
  access_token_expiration: "not-a-duration"
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestGetPostgresConnectionString(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	cfg.Database.User = "app"
	cfg.Database.Password = "pw"
	cfg.Database.Host = "localhost"
	cfg.Database.Port = "5433"
	cfg.Database.DBName = "tutorhall"
	cfg.Database.SSLMode = ""

	got := cfg.GetPostgresConnectionString()
	assert.Equal(t, "postgres://app:pw@localhost:5433/tutorhall?sslmode=disable", got)
}
