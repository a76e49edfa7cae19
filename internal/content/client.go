package content

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/philly/medium-blog/internal/platform/logger"
)

// Client executes reads and writes against a Store. It never caches or
// retries: every call is exactly one store round trip.
type Client struct {
	store    Store
	images   ImageConfig
	validate *validator.Validate
	logger   logger.Logger
}

// NewClient creates a content client over store.
func NewClient(store Store, images ImageConfig, log logger.Logger) *Client {
	return &Client{
		store:    store,
		images:   images,
		validate: newValidator(),
		logger:   log,
	}
}

// Fetch runs q and decodes its result into dest, which must point to a struct
// or a slice. It returns ErrQuery when the store call fails, ErrNoResult for a
// null result and ErrSchemaMismatch when the result does not fit dest.
func (c *Client) Fetch(ctx context.Context, q Query, params Params, dest any) error {
	start := time.Now()
	raw, err := c.store.Query(ctx, q, params)
	if err != nil {
		c.logger.Error(ctx, "content query failed", "query", q.Name, "error", err)
		return ErrQuery.Wrapping(fmt.Errorf("%s: %w", q.Name, err))
	}

	c.logger.Debug(ctx, "content query completed",
		"query", q.Name,
		"bytes", len(raw),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if isNull(raw) {
		return ErrNoResult
	}

	if err := decode(c.validate, raw, dest); err != nil {
		c.logger.Error(ctx, "content result rejected", "query", q.Name, "error", fmt.Sprintf("%+v", err))
		return err
	}
	return nil
}

// Create stores doc and returns the stored document as the store reports it.
func (c *Client) Create(ctx context.Context, doc Document) (Document, error) {
	if doc.Type() == "" {
		return nil, ErrCreate.WithDetails("document has no _type")
	}

	stored, err := c.store.Create(ctx, doc)
	if err != nil {
		c.logger.Error(ctx, "content create failed", "type", doc.Type(), "error", err)
		return nil, ErrCreate.Wrapping(err)
	}

	c.logger.Info(ctx, "content document created", "type", doc.Type(), "id", stored.ID())
	return stored, nil
}

// URLFor starts an image URL for an asset reference.
func (c *Client) URLFor(ref string) *ImageURL {
	return &ImageURL{cfg: c.images, ref: ref}
}

// Ping checks that the store is reachable.
func (c *Client) Ping(ctx context.Context) error {
	if p, ok := c.store.(Pinger); ok {
		return p.Ping(ctx)
	}
	_, err := c.store.Query(ctx, ListPostSlugs, nil)
	return err
}
