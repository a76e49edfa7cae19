package server

import (
	"time"

	"github.com/philly/medium-blog/internal/adapters/rest"
	"github.com/philly/medium-blog/internal/adapters/rest/middleware"
	"github.com/philly/medium-blog/internal/content"
	"github.com/philly/medium-blog/internal/platform/eventbus"
	"github.com/philly/medium-blog/internal/platform/logger"
	"github.com/philly/medium-blog/internal/platform/pagecache"
	"github.com/philly/medium-blog/internal/render"
)

// Version is set at build time with -ldflags "-X ...server.Version=".
var Version = "dev"

// provideVersion provides the application version
func provideVersion() rest.BuildVersion {
	return rest.BuildVersion(Version)
}

// provideLoggerConfig creates logger config from server config
func provideLoggerConfig(config Config) logger.Config {
	return logger.Config{
		Environment: config.Environment,
		LogLevel:    config.LogLevel,
	}
}

func provideRevalidateInterval(config Config) time.Duration {
	return time.Duration(config.RevalidateSeconds) * time.Second
}

func provideRenderer(config Config, client *content.Client) (*render.Renderer, error) {
	return render.New(config.SiteTitle, client)
}

func provideRegenerator(cache pagecache.Cache, config Config, bus *eventbus.Bus, log logger.Logger) *pagecache.Regenerator {
	return pagecache.NewRegenerator(cache, pagecache.Options{
		Interval: provideRevalidateInterval(config),
	}, bus, log)
}

func provideRateLimitConfig(config Config) middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		RPS:   config.CommentRateRPS,
		Burst: config.CommentRateBurst,
	}
}

// provideHealthChecks checks the content store, and the page cache when it
// is remote.
func provideHealthChecks(store ContentStore, cache pagecache.Cache) rest.HealthChecks {
	checks := rest.HealthChecks{"content_store": store}
	if pinger, ok := cache.(rest.Pinger); ok {
		checks["page_cache"] = pinger
	}
	return checks
}
