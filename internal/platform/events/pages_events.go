package events

import (
	"time"

	"github.com/philly/medium-blog/internal/platform/eventbus"
)

const (
	PageRegeneratedTopic        eventbus.Topic = "pages.regenerated"
	PageRegenerationFailedTopic eventbus.Topic = "pages.regeneration_failed"
)

// PageRegeneratedEvent is published when a cached page was rebuilt.
type PageRegeneratedEvent struct {
	Key        string
	Background bool // true when a stale copy was served meanwhile
	Duration   time.Duration
	OccurredAt time.Time
}

// PageRegenerationFailedEvent is published when a background rebuild failed
// and the stale copy stays in place.
type PageRegenerationFailedEvent struct {
	Key        string
	Err        error
	OccurredAt time.Time
}
