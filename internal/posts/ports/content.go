package ports

import (
	"context"

	"github.com/philly/medium-blog/internal/content"
)

// ContentReader is the read side of the content client, as needed by the
// page assemblers.
type ContentReader interface {
	Fetch(ctx context.Context, q content.Query, params content.Params, dest any) error
}
