package application

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/philly/medium-blog/internal/content"
	"github.com/philly/medium-blog/internal/platform/apperror"
	"github.com/philly/medium-blog/internal/platform/logger"
	"github.com/philly/medium-blog/internal/platform/validator"
	"github.com/philly/medium-blog/internal/posts/domain"
	"github.com/philly/medium-blog/internal/posts/ports"
)

// DefaultRevalidateInterval is how long a rendered detail page stays fresh.
const DefaultRevalidateInterval = 60 * time.Second

var (
	ErrPostNotFound = apperror.New(
		apperror.CodeNotFound,
		apperror.BusinessCodePostNotFound,
		"post not found",
		http.StatusNotFound,
	)
)

// PostsService assembles the data the list and detail pages need. Read
// failures are returned as-is: a page that cannot load its data fails.
type PostsService struct {
	reader     ports.ContentReader
	revalidate time.Duration
	logger     logger.Logger
}

// NewPostsService creates the page assembler. A non-positive revalidate
// interval falls back to DefaultRevalidateInterval.
func NewPostsService(reader ports.ContentReader, revalidate time.Duration, logger logger.Logger) *PostsService {
	if revalidate <= 0 {
		revalidate = DefaultRevalidateInterval
	}
	return &PostsService{
		reader:     reader,
		revalidate: revalidate,
		logger:     logger,
	}
}

// ListPosts returns every post summary in the order the store returned them.
// Posts without a slug are kept; the list page shows them without a link.
func (s *PostsService) ListPosts(ctx context.Context) ([]domain.PostSummary, error) {
	var rows []postSummaryDTO
	if err := s.reader.Fetch(ctx, content.ListPostSummaries, nil, &rows); err != nil {
		if errors.Is(err, content.ErrNoResult) {
			return []domain.PostSummary{}, nil
		}
		return nil, err
	}

	posts := make([]domain.PostSummary, 0, len(rows))
	for _, row := range rows {
		post := row.toDomain()
		if post.Slug == "" {
			s.logger.Warn(ctx, "post has no slug, listing without a link", "post_id", post.ID)
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// EnumeratePaths returns the slug of every post, in store order. Posts
// without a slug, or with one that is not a single path segment, cannot be
// routed to and are skipped. Every returned slug is accepted by LoadPost.
func (s *PostsService) EnumeratePaths(ctx context.Context) ([]string, error) {
	var rows []postPathDTO
	if err := s.reader.Fetch(ctx, content.ListPostSlugs, nil, &rows); err != nil {
		if errors.Is(err, content.ErrNoResult) {
			return []string{}, nil
		}
		return nil, err
	}

	slugs := make([]string, 0, len(rows))
	for _, row := range rows {
		slug := row.Slug.current()
		if slug == "" {
			s.logger.Warn(ctx, "post has no slug, skipping", "post_id", row.ID)
			continue
		}
		if err := validator.ValidateSlug(slug); err != nil {
			s.logger.Warn(ctx, "post slug cannot be routed, skipping", "post_id", row.ID, "slug", slug, "error", err)
			continue
		}
		slugs = append(slugs, slug)
	}
	return slugs, nil
}

// LoadPost loads one post by exact slug with its approved comments.
// It returns ErrPostNotFound when no post has that slug.
func (s *PostsService) LoadPost(ctx context.Context, slug string) (*domain.Post, error) {
	if err := validator.ValidateSlug(slug); err != nil {
		s.logger.Debug(ctx, "rejecting malformed slug", "slug", slug, "error", err)
		return nil, ErrPostNotFound.WithDetails(err.Error())
	}

	var row postDTO
	err := s.reader.Fetch(ctx, content.PostBySlug, content.Params{"slug": slug}, &row)
	if errors.Is(err, content.ErrNoResult) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}

	post := row.toDomain()
	if post.Slug != slug {
		s.logger.Warn(ctx, "store returned a post for another slug", "requested", slug, "got", post.Slug)
		return nil, ErrPostNotFound
	}
	return post, nil
}

// RevalidateInterval is the maximum age of a rendered detail page before it
// is regenerated.
func (s *PostsService) RevalidateInterval() time.Duration {
	return s.revalidate
}
