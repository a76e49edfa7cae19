package eventbus

import "context"

// Topic is the type for event topics.
type Topic string

// Event is a message passed on the bus.
type Event struct {
	Topic   Topic
	Payload any
}

// Handler processes an event. Returned errors are logged, never propagated
// back to the publisher.
type Handler func(ctx context.Context, event Event) error
