package application

import (
	"context"
	"fmt"

	"github.com/philly/medium-blog/internal/platform/eventbus"
	"github.com/philly/medium-blog/internal/platform/events"
	"github.com/philly/medium-blog/internal/platform/logger"
)

// ModerationQueueLogger records every accepted comment so operators know
// something is waiting in the moderation queue.
type ModerationQueueLogger struct {
	logger logger.Logger
}

// NewModerationQueueLogger subscribes the logger to submitted comments.
func NewModerationQueueLogger(bus *eventbus.Bus, log logger.Logger) *ModerationQueueLogger {
	l := &ModerationQueueLogger{logger: log}
	bus.Subscribe(events.CommentSubmittedTopic, l.handle)
	return l
}

func (l *ModerationQueueLogger) handle(ctx context.Context, event eventbus.Event) error {
	submitted, ok := event.Payload.(events.CommentSubmittedEvent)
	if !ok {
		return fmt.Errorf("unexpected payload %T on %s", event.Payload, event.Topic)
	}
	l.logger.Info(ctx, "comment awaiting moderation",
		"comment_id", submitted.CommentID,
		"post_id", submitted.PostID,
		"author", submitted.Name,
		"submitted_at", submitted.OccurredAt,
	)
	return nil
}
