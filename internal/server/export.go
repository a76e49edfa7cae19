package server

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/philly/medium-blog/internal/platform/logger"
	"github.com/philly/medium-blog/internal/platform/pagecache"
	"github.com/philly/medium-blog/internal/render"
	"github.com/philly/medium-blog/internal/site"
)

// Exporter writes the whole site as static files: the home page, one page per
// enumerated post, the 404 page and the static assets.
type Exporter struct {
	builder *site.Builder
	logger  logger.Logger
}

func NewExporter(builder *site.Builder, log logger.Logger) *Exporter {
	return &Exporter{
		builder: builder,
		logger:  log,
	}
}

// Paths lists the post slugs a build would render.
func (e *Exporter) Paths(ctx context.Context) ([]string, error) {
	return e.builder.EnumeratePaths(ctx)
}

// Export renders the site into dir and returns the number of pages written.
// Any read failure aborts the export.
func (e *Exporter) Export(ctx context.Context, dir string) (int, error) {
	list, err := e.builder.ListPage(ctx)
	if err != nil {
		return 0, fmt.Errorf("render home page: %w", err)
	}
	if err := writePage(filepath.Join(dir, "index.html"), list); err != nil {
		return 0, err
	}
	written := 1

	slugs, err := e.builder.EnumeratePaths(ctx)
	if err != nil {
		return written, fmt.Errorf("enumerate paths: %w", err)
	}
	for _, slug := range slugs {
		page, err := e.builder.PostPage(ctx, slug)
		if err != nil {
			return written, fmt.Errorf("render post %s: %w", slug, err)
		}
		if !page.Cacheable() {
			return written, fmt.Errorf("render post %s: got status %d", slug, page.Status)
		}
		if err := writePage(filepath.Join(dir, "post", slug, "index.html"), page); err != nil {
			return written, err
		}
		written++
	}

	notFound, err := e.builder.NotFoundPage()
	if err != nil {
		return written, err
	}
	if err := writePage(filepath.Join(dir, "404.html"), notFound); err != nil {
		return written, err
	}
	written++

	if err := copyStatic(filepath.Join(dir, "static")); err != nil {
		return written, err
	}

	e.logger.Info(ctx, "site exported", "dir", dir, "pages", written)
	return written, nil
}

func writePage(path string, page pagecache.Page) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, page.Body, 0o644)
}

func copyStatic(dir string) error {
	static := render.Static()
	return fs.WalkDir(static, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(dir, filepath.FromSlash(path))
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		data, err := fs.ReadFile(static, path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0o644)
	})
}
