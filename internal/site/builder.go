// Package site assembles whole pages: it loads content through the posts
// service and renders it, producing pagecache pages.
package site

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"github.com/philly/medium-blog/internal/platform/pagecache"
	"github.com/philly/medium-blog/internal/posts/application"
	"github.com/philly/medium-blog/internal/posts/domain"
	"github.com/philly/medium-blog/internal/render"
)

const contentTypeHTML = "text/html; charset=utf-8"

// PostKey is the page cache key of a post's detail page.
func PostKey(slug string) string {
	return "post/" + slug
}

// Builder renders pages from live content.
type Builder struct {
	posts    *application.PostsService
	renderer *render.Renderer
}

// NewBuilder creates a page builder
func NewBuilder(posts *application.PostsService, renderer *render.Renderer) *Builder {
	return &Builder{posts: posts, renderer: renderer}
}

// ListPage renders the home page. Any content failure is returned as an
// error; there is no partial list.
func (b *Builder) ListPage(ctx context.Context) (pagecache.Page, error) {
	posts, err := b.posts.ListPosts(ctx)
	if err != nil {
		return pagecache.Page{}, err
	}

	var buf bytes.Buffer
	if err := b.renderer.List(&buf, posts); err != nil {
		return pagecache.Page{}, err
	}
	return htmlPage(http.StatusOK, buf.Bytes()), nil
}

// PostPage renders the detail page for slug with an idle comment form. A
// missing post yields the rendered 404 page, not an error.
func (b *Builder) PostPage(ctx context.Context, slug string) (pagecache.Page, error) {
	post, err := b.posts.LoadPost(ctx, slug)
	if err != nil {
		if errors.Is(err, application.ErrPostNotFound) {
			return b.NotFoundPage()
		}
		return pagecache.Page{}, err
	}
	return b.RenderPost(post, render.NewCommentForm(post.ID, post.Slug), http.StatusOK)
}

// PostBuildFunc adapts PostPage for the page cache.
func (b *Builder) PostBuildFunc(slug string) pagecache.BuildFunc {
	return func(ctx context.Context) (pagecache.Page, error) {
		return b.PostPage(ctx, slug)
	}
}

// LoadPost exposes the detail assembler for handlers that render a post in
// a non-default form state.
func (b *Builder) LoadPost(ctx context.Context, slug string) (*domain.Post, error) {
	return b.posts.LoadPost(ctx, slug)
}

// EnumeratePaths lists the slugs to prerender.
func (b *Builder) EnumeratePaths(ctx context.Context) ([]string, error) {
	return b.posts.EnumeratePaths(ctx)
}

// RenderPost renders an already loaded post with form.
func (b *Builder) RenderPost(post *domain.Post, form render.CommentForm, status int) (pagecache.Page, error) {
	var buf bytes.Buffer
	if err := b.renderer.Detail(&buf, post, form); err != nil {
		return pagecache.Page{}, err
	}
	return htmlPage(status, buf.Bytes()), nil
}

// NotFoundPage renders the 404 page.
func (b *Builder) NotFoundPage() (pagecache.Page, error) {
	var buf bytes.Buffer
	if err := b.renderer.NotFound(&buf); err != nil {
		return pagecache.Page{}, err
	}
	return htmlPage(http.StatusNotFound, buf.Bytes()), nil
}

// ErrorPage renders the generic error page for status.
func (b *Builder) ErrorPage(status int) (pagecache.Page, error) {
	var buf bytes.Buffer
	if err := b.renderer.Error(&buf, status); err != nil {
		return pagecache.Page{}, err
	}
	return htmlPage(status, buf.Bytes()), nil
}

func htmlPage(status int, body []byte) pagecache.Page {
	return pagecache.Page{Status: status, ContentType: contentTypeHTML, Body: body}
}
