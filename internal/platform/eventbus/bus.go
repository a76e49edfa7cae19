package eventbus

import (
	"context"
	"sync"

	"github.com/philly/medium-blog/internal/platform/logger"
)

// Bus manages subscriptions and fire-and-forget dispatch.
type Bus struct {
	subscriptions map[Topic][]Handler
	mu            sync.RWMutex // Protects the subscriptions map
	inflight      sync.WaitGroup
	logger        logger.Logger
}

// NewBus creates a new event bus.
func NewBus(logger logger.Logger) *Bus {
	return &Bus{
		subscriptions: make(map[Topic][]Handler),
		logger:        logger,
	}
}

// Subscribe adds a handler for a specific topic.
func (b *Bus) Subscribe(topic Topic, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscriptions[topic] = append(b.subscriptions[topic], handler)
}

// Publish hands the event to every subscriber of its topic, each on its own
// goroutine. The publisher's cancellation does not stop the handlers.
func (b *Bus) Publish(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.subscriptions[event.Topic]...)
	b.mu.RUnlock()

	handlerCtx := context.WithoutCancel(ctx)
	for _, handler := range handlers {
		b.inflight.Add(1)
		go func(h Handler) {
			defer b.inflight.Done()
			if err := h(handlerCtx, event); err != nil {
				b.logger.Error(handlerCtx, "event handler failed", "topic", event.Topic, "error", err)
			}
		}(handler)
	}
}

// Wait blocks until every handler started so far has returned.
func (b *Bus) Wait() {
	b.inflight.Wait()
}
