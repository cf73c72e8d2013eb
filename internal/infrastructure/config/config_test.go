package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv 讓測試不受執行環境的變數影響；viper 視空字串為未設定
func clearEnv(t *testing.T) {
	t.Helper()
	for _, env := range []string{
		"OPENROUTER_API_KEY", "OPENROUTER_ENABLED", "OPENROUTER_MODEL", "MODEL_MAX_TOKENS",
		"CACHE_ENABLED", "CACHE_BACKEND", "QUEUE_WORKERS", "QUEUE_MAX_SIZE",
		"DATABASE_DRIVER", "DATABASE_DSN", "SAVED_BACKEND", "PORT",
		"RATE_LIMIT_ENABLED", "RATE_LIMIT_REQUESTS", "RATE_LIMIT_WINDOW",
		"DEDUP_WINDOW", "LOG_LEVEL", "LOG_DIR",
	} {
		t.Setenv(env, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, 45*time.Second, cfg.Server.RequestTimeout)
	assert.False(t, cfg.OpenRouter.Enabled)
	assert.Equal(t, "cohere/command-r", cfg.OpenRouter.Model)
	assert.Equal(t, 500, cfg.OpenRouter.MaxTokens)
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, QueueConfig{Workers: 4, MaxSize: 100}, cfg.Queue)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "memory", cfg.Saved.Backend)
	assert.Equal(t, time.Second, cfg.DedupWindow)
	assert.Equal(t, "https://source.unsplash.com/800x600/?food,", cfg.Image.BaseURL)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("OPENROUTER_ENABLED", "true")
	t.Setenv("OPENROUTER_API_KEY", "sk-or-test-key")
	t.Setenv("QUEUE_WORKERS", "2")
	t.Setenv("SAVED_BACKEND", "redis")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.True(t, cfg.OpenRouter.Enabled)
	assert.Equal(t, "sk-or-test-key", cfg.OpenRouter.APIKey)
	assert.Equal(t, 2, cfg.Queue.Workers)
	assert.Equal(t, "redis", cfg.Saved.Backend)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
}

func TestLoadConfig_MissingAPIKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENROUTER_ENABLED", "true")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "openrouter api key is required")
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: 5000, RequestTimeout: time.Second},
			Cache:    CacheConfig{Enabled: true, Backend: "memory", MaxSize: 10, TTL: time.Minute, CleanupInterval: time.Minute},
			Queue:    QueueConfig{Workers: 1, MaxSize: 1},
			Database: DatabaseConfig{Driver: "sqlite", DSN: ":memory:"},
			Saved:    SavedConfig{Backend: "memory"},
		}
	}
	require.NoError(t, validateConfig(valid()))

	enabled := valid()
	enabled.OpenRouter = OpenRouterConfig{Enabled: true, APIKey: "sk-or-test-key", Timeout: enabled.Server.RequestTimeout / 2}
	require.NoError(t, validateConfig(enabled))

	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"port", func(c *Config) { c.Server.Port = 0 }, "server port is required"},
		{"cache backend", func(c *Config) { c.Cache.Backend = "memcached" }, "unknown cache backend"},
		{"cache ttl", func(c *Config) { c.Cache.TTL = 0 }, "invalid cache ttl"},
		{"queue", func(c *Config) { c.Queue.Workers = 0 }, "invalid queue size"},
		{"driver", func(c *Config) { c.Database.Driver = "mysql" }, "unknown database driver"},
		{"dsn", func(c *Config) { c.Database.DSN = "" }, "database dsn is required"},
		{"saved backend", func(c *Config) { c.Saved.Backend = "file" }, "unknown saved backend"},
		{"rate limit", func(c *Config) { c.RateLimit = RateLimitConfig{Enabled: true} }, "invalid rate limit"},
		{"retries", func(c *Config) { c.OpenRouter.MaxRetries = -1 }, "invalid openrouter max retries"},
		{"provider timeout", func(c *Config) {
			c.OpenRouter = OpenRouterConfig{Enabled: true, APIKey: "sk-or-test-key", Timeout: c.Server.RequestTimeout}
		}, "openrouter timeout must be shorter than server request timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := validateConfig(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "****", MaskAPIKey(""))
	assert.Equal(t, "****", MaskAPIKey("short"))
	assert.Equal(t, "sk-o...-key", MaskAPIKey("sk-or-test-key"))
}
