package seeder

import (
	"context"
	"fmt"

	"github.com/philly/medium-blog/internal/content/records"
	"github.com/philly/medium-blog/internal/platform/logger"
)

// Target is a content store that accepts seed records. Upserts must be
// idempotent so seeding can be re-run.
type Target interface {
	UpsertAuthor(ctx context.Context, a records.Author) error
	UpsertPost(ctx context.Context, p records.Post) error
	UpsertComment(ctx context.Context, c records.Comment) error
}

// Seeder writes one coherent set of records.
type Seeder interface {
	Name() string
	Seed(ctx context.Context, target Target) error
}

// Orchestrator runs seeders in order against one target.
type Orchestrator struct {
	seeders []Seeder
	logger  logger.Logger
	target  Target
}

// NewOrchestrator creates a new seeder orchestrator
func NewOrchestrator(logger logger.Logger, target Target, seeders ...Seeder) *Orchestrator {
	return &Orchestrator{
		seeders: seeders,
		logger:  logger,
		target:  target,
	}
}

// RunAll executes all registered seeders in order, stopping at the first failure.
func (o *Orchestrator) RunAll(ctx context.Context) error {
	o.logger.Info(ctx, "starting content seeding", "seeder_count", len(o.seeders))

	for _, s := range o.seeders {
		if err := s.Seed(ctx, o.target); err != nil {
			o.logger.Error(ctx, "seeder failed", "seeder", s.Name(), "error", err)
			return fmt.Errorf("seeder %s failed: %w", s.Name(), err)
		}
		o.logger.Info(ctx, "seeder completed", "seeder", s.Name())
	}
	return nil
}
