package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	pgstore "github.com/philly/medium-blog/internal/adapters/postgres"
	"github.com/philly/medium-blog/internal/platform/logger"
	"github.com/philly/medium-blog/internal/platform/postgres"
	"github.com/philly/medium-blog/internal/platform/seeder"
)

// SeedDemoContent loads the demo posts into the postgres content store in a
// single transaction. Existing records with the same ids are overwritten.
func SeedDemoContent(ctx context.Context) error {
	bootstrapLogger := logger.NewBootstrapLogger()
	config, err := LoadConfig(bootstrapLogger)
	if err != nil {
		return err
	}
	if config.ContentStore != StorePostgres {
		return errors.New("seeding needs CONTENT_STORE=postgres")
	}
	log := logger.NewConfiguredLogger(provideLoggerConfig(config))

	pool, cleanup, err := postgres.Connect(ctx, config.DatabaseURL, log)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := pgstore.Migrate(pool); err != nil {
		return fmt.Errorf("failed to migrate content schema: %w", err)
	}

	store := pgstore.NewContentStore(pool)
	return postgres.NewTransactionManager(pool).InTx(ctx, func(tx pgx.Tx) error {
		return seeder.NewOrchestrator(log, store.WithTx(tx), seeder.Demo{}).RunAll(ctx)
	})
}
