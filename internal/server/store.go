package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/philly/medium-blog/internal/adapters/memstore"
	pgstore "github.com/philly/medium-blog/internal/adapters/postgres"
	"github.com/philly/medium-blog/internal/adapters/sanity"
	"github.com/philly/medium-blog/internal/content"
	"github.com/philly/medium-blog/internal/platform/logger"
	"github.com/philly/medium-blog/internal/platform/pagecache"
	"github.com/philly/medium-blog/internal/platform/postgres"
	"github.com/philly/medium-blog/internal/platform/seeder"
)

// ContentStore is a content.Store the readiness probe can ping.
type ContentStore interface {
	content.Store
	Ping(ctx context.Context) error
}

// ProvideContentStore opens the store selected by CONTENT_STORE.
func ProvideContentStore(ctx context.Context, config Config, log logger.Logger) (ContentStore, func(), error) {
	switch config.ContentStore {
	case StoreSanity:
		store, err := sanity.New(sanity.Config{
			ProjectID:  config.SanityProjectID,
			Dataset:    config.SanityDataset,
			APIVersion: config.SanityAPIVersion,
			UseCDN:     config.SanityUseCDN,
			Token:      config.SanityToken,
			HTTPClient: &http.Client{Timeout: 10 * time.Second},
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to configure sanity store: %w", err)
		}
		if config.SanityToken == "" {
			log.Warn(ctx, "SANITY_API_TOKEN is not set, comment submissions will fail")
		}
		if config.SanityUseCDN && config.SanityToken != "" {
			log.Warn(ctx, "SANITY_USE_CDN is ignored while SANITY_API_TOKEN is set, reads go to the API host")
		}
		return store, func() {}, nil

	case StorePostgres:
		pool, cleanup, err := postgres.Connect(ctx, config.DatabaseURL, log)
		if err != nil {
			return nil, nil, err
		}
		if err := pgstore.Migrate(pool); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to migrate content schema: %w", err)
		}
		return pgstore.NewContentStore(pool), cleanup, nil

	case StoreMemory:
		store := memstore.New()
		if err := seeder.NewOrchestrator(log, store, seeder.Demo{}).RunAll(ctx); err != nil {
			return nil, nil, fmt.Errorf("failed to seed memory store: %w", err)
		}
		return store, func() {}, nil
	}

	return nil, nil, fmt.Errorf("unknown content store %q", config.ContentStore)
}

// ProvideContentClient creates the content client over store. Image URLs
// always point at the hosted asset CDN of the configured project.
func ProvideContentClient(store ContentStore, config Config, log logger.Logger) *content.Client {
	return content.NewClient(store, content.ImageConfig{
		ProjectID: config.SanityProjectID,
		Dataset:   config.SanityDataset,
	}, log)
}

// ProvidePageCache opens the cache selected by PAGE_CACHE.
func ProvidePageCache(ctx context.Context, config Config, log logger.Logger) (pagecache.Cache, func(), error) {
	retention := 24 * time.Hour

	if config.PageCache == CacheRedis {
		opts := pagecache.DefaultRedisOptions()
		opts.URL = config.RedisURL
		opts.DefaultTTL = retention
		cache, err := pagecache.NewRedisCache(opts)
		if err != nil {
			return nil, nil, err
		}
		log.Info(ctx, "using redis page cache", "prefix", opts.Prefix)
		return cache, func() { _ = cache.Close() }, nil
	}

	cache := pagecache.NewMemoryCache(retention)
	return cache, func() { _ = cache.Close() }, nil
}
