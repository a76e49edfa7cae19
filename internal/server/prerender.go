package server

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"github.com/philly/medium-blog/internal/platform/logger"
	"github.com/philly/medium-blog/internal/platform/pagecache"
	"github.com/philly/medium-blog/internal/site"
)

// prerenderConcurrency bounds the number of posts rendered at once.
const prerenderConcurrency = 4

// Prerenderer renders every enumerated post into the page cache, so the
// first reader of a post is served a cached page.
type Prerenderer struct {
	builder *site.Builder
	cache   *pagecache.Regenerator
	logger  logger.Logger
}

func NewPrerenderer(builder *site.Builder, cache *pagecache.Regenerator, log logger.Logger) *Prerenderer {
	return &Prerenderer{
		builder: builder,
		cache:   cache,
		logger:  log,
	}
}

// Run enumerates the post paths and builds those not cached yet. It returns
// how many builds ran. A failing enumeration or build fails the whole run;
// pages stored before the failure stay cached.
func (p *Prerenderer) Run(ctx context.Context) (int, error) {
	slugs, err := p.builder.EnumeratePaths(ctx)
	if err != nil {
		return 0, fmt.Errorf("enumerate paths: %w", err)
	}

	var built atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(prerenderConcurrency)

	for _, slug := range slugs {
		g.Go(func() error {
			ok, err := p.cache.Warm(gctx, site.PostKey(slug), p.builder.PostBuildFunc(slug))
			if err != nil {
				return fmt.Errorf("prerender %s: %w", slug, err)
			}
			if ok {
				built.Add(1)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return int(built.Load()), err
	}

	p.logger.Info(ctx, "prerender completed", "paths", len(slugs), "built", built.Load())
	return int(built.Load()), nil
}

// Scheduler reruns the prerender on PRERENDER_SCHEDULE.
type Scheduler struct {
	cron *cron.Cron
}

// NewScheduler registers the prerender job. An empty schedule yields a
// scheduler that never runs anything.
func NewScheduler(config Config, prerenderer *Prerenderer, log logger.Logger) (*Scheduler, error) {
	c := cron.New()
	if config.PrerenderSchedule == "" {
		return &Scheduler{cron: c}, nil
	}

	_, err := c.AddFunc(config.PrerenderSchedule, func() {
		ctx := context.Background()
		if _, err := prerenderer.Run(ctx); err != nil {
			log.Error(ctx, "scheduled prerender failed", "error", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid PRERENDER_SCHEDULE %q: %w", config.PrerenderSchedule, err)
	}

	return &Scheduler{cron: c}, nil
}

// Start runs the schedule in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the schedule and waits for a running job to finish or ctx to
// expire.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}
