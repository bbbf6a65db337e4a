package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "STORAGE_DRIVER", "STORAGE_FILE", "PERSIST_QUEUE_SIZE", "PERSIST_WRITE_TIMEOUT", "CORS_ORIGINS", "BACKUP_SCHEDULE", "RATE_LIMIT_RPS"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, DriverFile, cfg.Storage.Driver)
	assert.Equal(t, 256, cfg.Storage.QueueSize)
	assert.Equal(t, 10*time.Second, cfg.Storage.WriteTimeout)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORSOrigins)
	assert.InDelta(t, 20.0, cfg.Server.RateLimitRPS, 1e-9)
	assert.Empty(t, cfg.Backup.Schedule)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE_DRIVER", "REDIS")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("CORS_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("PERSIST_QUEUE_SIZE", "not-a-number")
	t.Setenv("PERSIST_WRITE_TIMEOUT", "250ms")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, DriverRedis, cfg.Storage.Driver)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
	assert.InDelta(t, 2.5, cfg.Server.RateLimitRPS, 1e-9)
	assert.Equal(t, 256, cfg.Storage.QueueSize, "invalid integers fall back to the default")
	assert.Equal(t, 250*time.Millisecond, cfg.Storage.WriteTimeout)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:  ServerConfig{Port: "8080"},
			Storage: StorageConfig{Driver: DriverMemory, QueueSize: 8, WriteTimeout: time.Second},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"memory ok", func(c *Config) {}, ""},
		{"missing port", func(c *Config) { c.Server.Port = "" }, "PORT"},
		{"unknown driver", func(c *Config) { c.Storage.Driver = "mongo" }, "STORAGE_DRIVER"},
		{"file without path", func(c *Config) { c.Storage.Driver = DriverFile }, "STORAGE_FILE"},
		{"redis without addr", func(c *Config) { c.Storage.Driver = DriverRedis }, "REDIS_ADDR"},
		{"postgres without dsn or host", func(c *Config) { c.Storage.Driver = DriverPostgres }, "DB_DSN"},
		{"postgres with dsn", func(c *Config) {
			c.Storage.Driver = DriverPostgres
			c.Database.DSN = "postgres://localhost/site"
		}, ""},
		{"zero queue", func(c *Config) { c.Storage.QueueSize = 0 }, "PERSIST_QUEUE_SIZE"},
		{"zero write timeout", func(c *Config) { c.Storage.WriteTimeout = 0 }, "PERSIST_WRITE_TIMEOUT"},
		{"backup without dir", func(c *Config) { c.Backup.Schedule = "0 0 * * * *" }, "BACKUP_DIR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
