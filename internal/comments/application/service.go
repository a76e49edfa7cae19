package application

import (
	"context"
	"time"

	"github.com/philly/medium-blog/internal/comments/domain"
	"github.com/philly/medium-blog/internal/comments/ports"
	"github.com/philly/medium-blog/internal/platform/eventbus"
	"github.com/philly/medium-blog/internal/platform/events"
	"github.com/philly/medium-blog/internal/platform/logger"
)

// CommentsService forwards reader comments to the content store as pending
// records. It keeps no state: submitting the same comment twice stores it
// twice.
type CommentsService struct {
	writer   ports.ContentWriter
	eventBus *eventbus.Bus
	logger   logger.Logger
	now      func() time.Time
}

// NewCommentsService creates a new comments service
func NewCommentsService(writer ports.ContentWriter, eventBus *eventbus.Bus, logger logger.Logger) *CommentsService {
	return &CommentsService{
		writer:   writer,
		eventBus: eventBus,
		logger:   logger,
		now:      time.Now,
	}
}

// Submit stores sub as an unapproved comment. Blank fields are not rejected
// here; the form enforces them in the browser. Store failures come back as
// content.ErrCreate.
func (s *CommentsService) Submit(ctx context.Context, sub domain.Submission) (*domain.Receipt, error) {
	if missing := sub.MissingFields(); len(missing) > 0 {
		s.logger.Warn(ctx, "comment submitted with blank fields", "post_id", sub.PostID, "fields", missing)
	}

	stored, err := s.writer.Create(ctx, sub.Document())
	if err != nil {
		return nil, err
	}

	receipt := &domain.Receipt{CommentID: stored.ID(), PostID: sub.PostID}
	s.publishSubmitted(ctx, receipt, sub)
	return receipt, nil
}

// SubmitForm runs one submission of the comment form starting from state and
// returns the state the form ends up in. A failed store call leaves the form
// in FormFailed together with the error.
func (s *CommentsService) SubmitForm(ctx context.Context, state domain.FormState, sub domain.Submission) (domain.FormState, error) {
	state, err := state.Next(domain.FormSubmitting)
	if err != nil {
		return state, err
	}

	if _, err := s.Submit(ctx, sub); err != nil {
		failed, _ := state.Next(domain.FormFailed)
		return failed, err
	}

	submitted, _ := state.Next(domain.FormSubmitted)
	return submitted, nil
}

func (s *CommentsService) publishSubmitted(ctx context.Context, receipt *domain.Receipt, sub domain.Submission) {
	if s.eventBus == nil {
		return
	}
	s.eventBus.Publish(ctx, eventbus.Event{
		Topic: events.CommentSubmittedTopic,
		Payload: events.CommentSubmittedEvent{
			CommentID:  receipt.CommentID,
			PostID:     receipt.PostID,
			Name:       sub.Name,
			OccurredAt: s.now(),
		},
	})
}
