package server

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/philly/medium-blog/internal/platform/logger"
)

// Content store backends
const (
	StoreSanity   = "sanity"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Page cache backends
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

type Config struct {
	ContentStore string `mapstructure:"CONTENT_STORE"` // sanity, postgres or memory

	SanityProjectID  string `mapstructure:"SANITY_PROJECT_ID"`
	SanityDataset    string `mapstructure:"SANITY_DATASET"`
	SanityAPIVersion string `mapstructure:"SANITY_API_VERSION"`
	SanityUseCDN     bool   `mapstructure:"SANITY_USE_CDN"`
	SanityToken      string `mapstructure:"SANITY_API_TOKEN"` // only needed to create comments

	DatabaseURL string `mapstructure:"DATABASE_URL"`

	PageCache         string `mapstructure:"PAGE_CACHE"` // memory or redis
	RedisURL          string `mapstructure:"REDIS_URL"`
	RevalidateSeconds int    `mapstructure:"REVALIDATE_SECONDS"`
	PrerenderSchedule string `mapstructure:"PRERENDER_SCHEDULE"` // cron expression, empty disables

	CommentRateRPS   float64 `mapstructure:"COMMENT_RATE_RPS"`
	CommentRateBurst int     `mapstructure:"COMMENT_RATE_BURST"`

	ServerAddress string `mapstructure:"SERVER_ADDRESS"`
	Environment   string `mapstructure:"ENVIRONMENT"`
	LogLevel      string `mapstructure:"LOG_LEVEL"`
	SiteTitle     string `mapstructure:"SITE_TITLE"`
}

func LoadConfig(bootstrapLogger *logger.BootstrapLogger) (Config, error) {
	ctx := context.Background()

	// It's okay if the file doesn't exist - we'll use environment variables
	if err := godotenv.Load(); err != nil {
		bootstrapLogger.Info(ctx, "no .env file found, using environment variables only")
	} else {
		bootstrapLogger.Info(ctx, "loaded .env file")
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		bootstrapLogger.Error(ctx, "failed to unmarshal configuration", "error", err)
		return Config{}, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	// The CDN serves cached reads; production reads go through it unless
	// explicitly disabled.
	if v.IsSet("SANITY_USE_CDN") {
		config.SanityUseCDN = v.GetBool("SANITY_USE_CDN")
	} else {
		config.SanityUseCDN = config.Environment == "production"
	}

	bootstrapLogger.Info(ctx, "configuration loaded",
		"environment", config.Environment,
		"log_level", config.LogLevel,
		"server_address", config.ServerAddress,
		"content_store", config.ContentStore,
		"page_cache", config.PageCache,
	)

	if err := config.Validate(); err != nil {
		bootstrapLogger.Error(ctx, "configuration validation failed", "error", err)
		return Config{}, err
	}

	bootstrapLogger.Info(ctx, "configuration validated successfully")
	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("CONTENT_STORE", StoreSanity)
	v.SetDefault("SANITY_PROJECT_ID", "")
	v.SetDefault("SANITY_DATASET", "production")
	v.SetDefault("SANITY_API_VERSION", "2021-10-21")
	v.SetDefault("SANITY_API_TOKEN", "")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("PAGE_CACHE", CacheMemory)
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("REVALIDATE_SECONDS", 60)
	v.SetDefault("PRERENDER_SCHEDULE", "@every 10m")
	v.SetDefault("COMMENT_RATE_RPS", 1)
	v.SetDefault("COMMENT_RATE_BURST", 5)
	v.SetDefault("SERVER_ADDRESS", ":8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SITE_TITLE", "Medium Blog")
}

// Validate checks the keys each selected backend needs.
func (c Config) Validate() error {
	var errs []error

	switch c.ContentStore {
	case StoreSanity:
		if c.SanityProjectID == "" {
			errs = append(errs, errors.New("SANITY_PROJECT_ID is required for the sanity content store"))
		}
		if c.SanityDataset == "" {
			errs = append(errs, errors.New("SANITY_DATASET is required for the sanity content store"))
		}
	case StorePostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres content store"))
		}
	case StoreMemory:
	default:
		errs = append(errs, fmt.Errorf("CONTENT_STORE must be one of %s, %s or %s, got %q",
			StoreSanity, StorePostgres, StoreMemory, c.ContentStore))
	}

	switch c.PageCache {
	case CacheMemory:
	case CacheRedis:
		if c.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL is required for the redis page cache"))
		}
	default:
		errs = append(errs, fmt.Errorf("PAGE_CACHE must be %s or %s, got %q", CacheMemory, CacheRedis, c.PageCache))
	}

	if c.RevalidateSeconds <= 0 {
		errs = append(errs, errors.New("REVALIDATE_SECONDS must be positive"))
	}

	return errors.Join(errs...)
}
