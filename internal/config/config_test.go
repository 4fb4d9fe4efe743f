package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load(New(""))
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:3000", cfg.Server.Addr())
	assert.Equal(t, DriverMongo, cfg.Store.Driver)
	assert.Equal(t, "inventory", cfg.Mongo.Database)
	assert.Equal(t, 5*time.Second, cfg.Mongo.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 8080
store:
  driver: memory
mongo:
  timeout: 2s
`), 0o600))
	t.Setenv("CATALOG_SERVER_PORT", "9090")
	t.Setenv("CATALOG_LOG_LEVEL", "debug")

	cfg, err := Load(New(path))
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port, "env overrides file")
	assert.Equal(t, DriverMemory, cfg.Store.Driver)
	assert.Equal(t, 2*time.Second, cfg.Mongo.Timeout)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server: ServerConfig{Port: 3000, Mode: "release"},
			Store:  StoreConfig{Driver: DriverMongo},
			Mongo:  MongoConfig{URI: "mongodb://localhost", Database: "inventory", Timeout: time.Second},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"ok", func(*Config) {}, ""},
		{"port", func(c *Config) { c.Server.Port = 0 }, "invalid server.port"},
		{"mode", func(c *Config) { c.Server.Mode = "fast" }, "invalid server.mode"},
		{"driver", func(c *Config) { c.Store.Driver = "postgres" }, "unknown store.driver"},
		{"uri", func(c *Config) { c.Mongo.URI = "" }, "mongo.uri is required"},
		{"memory ignores uri", func(c *Config) { c.Store.Driver = DriverMemory; c.Mongo.URI = "" }, ""},
		{"timeout", func(c *Config) { c.Mongo.Timeout = 0 }, "invalid mongo.timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

// chdir changes the working directory for the duration of the test,
// equivalent to testing.T.Chdir (Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
