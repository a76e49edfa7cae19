package ports

import (
	"context"

	"github.com/philly/medium-blog/internal/content"
)

// ContentWriter is the write side of the content client.
type ContentWriter interface {
	Create(ctx context.Context, doc content.Document) (content.Document, error)
}
