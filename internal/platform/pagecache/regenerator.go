package pagecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/philly/medium-blog/internal/platform/eventbus"
	"github.com/philly/medium-blog/internal/platform/events"
	"github.com/philly/medium-blog/internal/platform/logger"
)

// Page is one rendered response.
type Page struct {
	Status      int       `json:"status"`
	ContentType string    `json:"content_type"`
	Body        []byte    `json:"body"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Cacheable reports whether the page may be stored. Only successful renders
// are kept, so a not-found page is looked up again on the next request.
func (p Page) Cacheable() bool {
	return p.Status == http.StatusOK
}

// BuildFunc renders the page for a key. An error means no page could be
// produced at all; a rendered error page is returned as a Page.
type BuildFunc func(ctx context.Context) (Page, error)

// Options tune the regenerator.
type Options struct {
	// Interval is how long a page counts as fresh.
	Interval time.Duration

	// Retention is how long a page is kept at all. 0 uses the cache default.
	Retention time.Duration
}

// Regenerator serves pages from a Cache and rebuilds them when they go stale.
type Regenerator struct {
	cache      Cache
	opts       Options
	group      singleflight.Group
	background sync.WaitGroup
	bus        *eventbus.Bus
	logger     logger.Logger
	now        func() time.Time
}

// NewRegenerator creates a regenerator over cache. bus may be nil.
func NewRegenerator(cache Cache, opts Options, bus *eventbus.Bus, log logger.Logger) *Regenerator {
	return &Regenerator{
		cache:  cache,
		opts:   opts,
		bus:    bus,
		logger: log,
		now:    time.Now,
	}
}

// Get returns the page for key.
//
// A fresh cached page is returned as is. A stale one is returned too, and a
// single background rebuild is started for it. Without a cached page the
// build runs synchronously; concurrent misses for the same key share one
// build.
func (r *Regenerator) Get(ctx context.Context, key string, build BuildFunc) (Page, error) {
	if page, ok := r.lookup(ctx, key); ok {
		if r.now().Sub(page.GeneratedAt) >= r.opts.Interval {
			r.regenerateInBackground(ctx, key, build)
		}
		return page, nil
	}

	return r.buildShared(ctx, key, build)
}

// Warm builds key only when nothing is cached for it yet. It reports whether
// a build ran.
func (r *Regenerator) Warm(ctx context.Context, key string, build BuildFunc) (bool, error) {
	if _, ok := r.lookup(ctx, key); ok {
		return false, nil
	}
	if _, err := r.buildShared(ctx, key, build); err != nil {
		return false, err
	}
	return true, nil
}

// buildShared runs one build per key for all concurrent callers. The build
// does not inherit the caller's cancellation, so a reader that goes away
// does not fail the others; each caller still stops waiting when its own ctx
// is done.
func (r *Regenerator) buildShared(ctx context.Context, key string, build BuildFunc) (Page, error) {
	buildCtx := context.WithoutCancel(ctx)
	ch := r.group.DoChan("sync:"+key, func() (any, error) {
		return r.rebuild(buildCtx, key, build, false)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return Page{}, res.Err
		}
		return res.Val.(Page), nil
	case <-ctx.Done():
		return Page{}, ctx.Err()
	}
}

// Wait blocks until background rebuilds started so far are done.
func (r *Regenerator) Wait() {
	r.background.Wait()
}

func (r *Regenerator) lookup(ctx context.Context, key string) (Page, bool) {
	raw, err := r.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			r.logger.Warn(ctx, "page cache read failed", "key", key, "error", err)
		}
		return Page{}, false
	}

	var page Page
	if err := json.Unmarshal(raw, &page); err != nil {
		r.logger.Warn(ctx, "discarding unreadable cached page", "key", key, "error", err)
		_ = r.cache.Delete(ctx, key)
		return Page{}, false
	}
	return page, true
}

func (r *Regenerator) regenerateInBackground(ctx context.Context, key string, build BuildFunc) {
	bgCtx := context.WithoutCancel(ctx)
	r.background.Add(1)
	ch := r.group.DoChan("bg:"+key, func() (any, error) {
		page, err := r.rebuild(bgCtx, key, build, true)
		if err != nil {
			// Reported once per rebuild, not once per waiting request.
			r.logger.Warn(bgCtx, "background regeneration failed, serving stale page", "key", key, "error", err)
			r.publish(bgCtx, events.PageRegenerationFailedTopic, events.PageRegenerationFailedEvent{
				Key:        key,
				Err:        err,
				OccurredAt: r.now(),
			})
		}
		return page, err
	})
	go func() {
		defer r.background.Done()
		<-ch
	}()
}

func (r *Regenerator) rebuild(ctx context.Context, key string, build BuildFunc, background bool) (Page, error) {
	start := r.now()
	page, err := build(ctx)
	if err != nil {
		return Page{}, err
	}
	page.GeneratedAt = r.now()

	if !page.Cacheable() {
		if background {
			// The page went away; drop the stale copy so the next request
			// renders the not-found page itself.
			_ = r.cache.Delete(ctx, key)
		}
		return page, nil
	}

	raw, err := json.Marshal(page)
	if err != nil {
		return Page{}, fmt.Errorf("encode page %s: %w", key, err)
	}
	if err := r.cache.Set(ctx, key, raw, r.opts.Retention); err != nil {
		r.logger.Warn(ctx, "page cache write failed", "key", key, "error", err)
	}

	duration := r.now().Sub(start)
	r.logger.Debug(ctx, "page regenerated", "key", key, "background", background, "duration_ms", duration.Milliseconds())
	r.publish(ctx, events.PageRegeneratedTopic, events.PageRegeneratedEvent{
		Key:        key,
		Background: background,
		Duration:   duration,
		OccurredAt: page.GeneratedAt,
	})
	return page, nil
}

func (r *Regenerator) publish(ctx context.Context, topic eventbus.Topic, payload any) {
	if r.bus == nil {
		return
	}
	r.bus.Publish(ctx, eventbus.Event{Topic: topic, Payload: payload})
}
