package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateEnv clears every variable New reads so the host environment can't
// leak into a test.
func isolateEnv(t *testing.T) {
	t.Helper()
	for key := range configKeys() {
		name := strings.ToUpper(key)
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
	t.Setenv("CONFIG_FILE", "/nonexistent/config.yaml")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("PORT", "")
}

func TestNew_RequiredFieldMissing(t *testing.T) {
	isolateEnv(t)

	cfg, err := New()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required config")
	assert.Contains(t, err.Error(), "DATABASE_FILE_PATH")
	assert.Contains(t, err.Error(), "database_file_path")
}

func TestNew_PostgresRequiresURL(t *testing.T) {
	isolateEnv(t)
	t.Setenv("DATABASE_DRIVER", "postgres")

	cfg, err := New()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
	assert.Contains(t, err.Error(), "database_url")
}

func TestNew_UnsupportedDriver(t *testing.T) {
	isolateEnv(t)
	t.Setenv("DATABASE_DRIVER", "oracle")
	t.Setenv("DATABASE_FILE_PATH", "/tmp/test.db")

	_, err := New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported database driver "oracle"`)
}

func TestNew_UnknownEnvironment(t *testing.T) {
	isolateEnv(t)
	t.Setenv("ENVIRONMENT", "staging")

	_, err := New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown environment "staging"`)
}

func TestNew_WithEnvVar(t *testing.T) {
	isolateEnv(t)
	t.Setenv("DATABASE_FILE_PATH", "/tmp/test.db")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/test.db", cfg.DatabaseFilePath)
}

func TestNew_WithConfigFile(t *testing.T) {
	isolateEnv(t)
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
database_file_path: /data/bookchain.db
server_port: 8080
database_debug: true
database_busy_timeout: 250ms
app_title: Bookchain Staging
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	require.NoError(t, err)

	t.Setenv("CONFIG_FILE", configPath)

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "/data/bookchain.db", cfg.DatabaseFilePath)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.True(t, cfg.DatabaseDebug)
	assert.Equal(t, 250*time.Millisecond, cfg.DatabaseBusyTimeout)
	assert.Equal(t, "Bookchain Staging", cfg.AppTitle)
}

func TestNew_EnvVarOverridesConfigFile(t *testing.T) {
	isolateEnv(t)
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
database_file_path: /data/from-file.db
server_port: 8080
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	require.NoError(t, err)

	t.Setenv("CONFIG_FILE", configPath)
	t.Setenv("DATABASE_FILE_PATH", "/data/from-env.db")
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := New()
	require.NoError(t, err)
	// Env vars should override config file
	assert.Equal(t, "/data/from-env.db", cfg.DatabaseFilePath)
	assert.Equal(t, 9090, cfg.ServerPort)
}

func TestNew_PortOverride(t *testing.T) {
	isolateEnv(t)
	t.Setenv("DATABASE_FILE_PATH", "/tmp/test.db")
	t.Setenv("PORT", "4567")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, 4567, cfg.ServerPort)

	t.Setenv("SERVER_PORT", "9090")
	cfg, err = New()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.ServerPort)
}

func TestNew_Defaults(t *testing.T) {
	isolateEnv(t)
	t.Setenv("DATABASE_FILE_PATH", "/tmp/test.db")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "Bookchain API", cfg.AppTitle)
	assert.Equal(t, 5, cfg.DatabaseConnectRetryCount)
	assert.Equal(t, 2*time.Second, cfg.DatabaseConnectRetryDelay)
	assert.Equal(t, 5*time.Second, cfg.DatabaseBusyTimeout)
	assert.Equal(t, 5, cfg.DatabaseMaxRetries)
	assert.False(t, cfg.DatabaseDebug)
	assert.Equal(t, DatabaseDriverSQLite, cfg.DatabaseDriver)
	assert.Equal(t, EnvironmentProduction, cfg.Environment)
	assert.Equal(t, "0.0.0.0", cfg.ServerHost)
	assert.Equal(t, 3000, cfg.ServerPort)
}

func TestNew_DevelopmentProfile(t *testing.T) {
	isolateEnv(t)
	t.Setenv("ENVIRONMENT", "development")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "./tmp/data.sqlite", cfg.DatabaseFilePath)
	assert.Equal(t, "127.0.0.1", cfg.ServerHost)
	assert.True(t, cfg.DatabaseDebug)
}

func TestNew_TestProfile(t *testing.T) {
	isolateEnv(t)
	t.Setenv("ENVIRONMENT", "test")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, ":memory:", cfg.DatabaseFilePath)
	assert.Equal(t, EnvironmentTest, cfg.Environment)
}

func TestNewForTest(t *testing.T) {
	cfg := NewForTest()
	assert.Equal(t, ":memory:", cfg.DatabaseFilePath)
	assert.Equal(t, "127.0.0.1", cfg.ServerHost)
	assert.Equal(t, DatabaseDriverSQLite, cfg.DatabaseDriver)
	assert.Equal(t, EnvironmentTest, cfg.Environment)
}

func TestToSnakeCase(t *testing.T) {
	assert.Equal(t, "database_file_path", toSnakeCase("DatabaseFilePath"))
	assert.Equal(t, "server_port", toSnakeCase("ServerPort"))
	assert.Equal(t, "database_connect_retry_count", toSnakeCase("DatabaseConnectRetryCount"))
}
