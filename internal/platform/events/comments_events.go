package events

import (
	"time"

	"github.com/philly/medium-blog/internal/platform/eventbus"
)

const (
	CommentSubmittedTopic eventbus.Topic = "comments.submitted"
)

// CommentSubmittedEvent is published after the content store accepted a new
// pending comment. The email address is deliberately not part of the event.
type CommentSubmittedEvent struct {
	CommentID  string
	PostID     string
	Name       string
	OccurredAt time.Time
}
