package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philly/medium-blog/internal/platform/logger"
)

func validConfig() Config {
	return Config{
		ContentStore:      StoreSanity,
		SanityProjectID:   "abc123",
		SanityDataset:     "production",
		PageCache:         CacheMemory,
		RevalidateSeconds: 60,
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "sanity store", mutate: func(*Config) {}},
		{
			name:    "sanity without project",
			mutate:  func(c *Config) { c.SanityProjectID = "" },
			wantErr: "SANITY_PROJECT_ID",
		},
		{
			name:    "postgres without database url",
			mutate:  func(c *Config) { c.ContentStore = StorePostgres },
			wantErr: "DATABASE_URL",
		},
		{
			name: "memory store needs nothing",
			mutate: func(c *Config) {
				c.ContentStore = StoreMemory
				c.SanityProjectID = ""
			},
		},
		{
			name:    "unknown store",
			mutate:  func(c *Config) { c.ContentStore = "mongo" },
			wantErr: "CONTENT_STORE",
		},
		{
			name:    "redis cache without url",
			mutate:  func(c *Config) { c.PageCache = CacheRedis },
			wantErr: "REDIS_URL",
		},
		{
			name:    "non-positive revalidate interval",
			mutate:  func(c *Config) { c.RevalidateSeconds = 0 },
			wantErr: "REVALIDATE_SECONDS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("CONTENT_STORE", StoreMemory)
	t.Setenv("PAGE_CACHE", CacheMemory)
	t.Setenv("REVALIDATE_SECONDS", "30")
	t.Setenv("COMMENT_RATE_RPS", "0.5")
	t.Setenv("SITE_TITLE", "Field Notes")
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := LoadConfig(logger.NewBootstrapLogger())

	require.NoError(t, err)
	assert.Equal(t, StoreMemory, cfg.ContentStore)
	assert.Equal(t, 30, cfg.RevalidateSeconds)
	assert.Equal(t, 0.5, cfg.CommentRateRPS)
	assert.Equal(t, 5, cfg.CommentRateBurst)
	assert.Equal(t, "Field Notes", cfg.SiteTitle)
	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.True(t, cfg.SanityUseCDN, "production reads default to the CDN")
}

func TestLoadConfigExplicitCDNSetting(t *testing.T) {
	t.Setenv("CONTENT_STORE", StoreMemory)
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("SANITY_USE_CDN", "false")

	cfg, err := LoadConfig(logger.NewBootstrapLogger())

	require.NoError(t, err)
	assert.False(t, cfg.SanityUseCDN)
}

func TestLoadConfigRejectsInvalidSelection(t *testing.T) {
	t.Setenv("CONTENT_STORE", StorePostgres)
	t.Setenv("DATABASE_URL", "")

	_, err := LoadConfig(logger.NewBootstrapLogger())

	assert.ErrorContains(t, err, "DATABASE_URL")
}
