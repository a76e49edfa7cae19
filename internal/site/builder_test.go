package site_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philly/medium-blog/internal/adapters/memstore"
	"github.com/philly/medium-blog/internal/content"
	"github.com/philly/medium-blog/internal/platform/logger"
	"github.com/philly/medium-blog/internal/platform/seeder"
	"github.com/philly/medium-blog/internal/posts/application"
	"github.com/philly/medium-blog/internal/render"
	"github.com/philly/medium-blog/internal/site"
)

func newBuilder(t *testing.T) (*site.Builder, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	require.NoError(t, seeder.NewOrchestrator(logger.Nop(), store, seeder.Demo{}).RunAll(context.Background()))
	client := content.NewClient(store, content.ImageConfig{ProjectID: "proj", Dataset: "prod"}, logger.Nop())
	renderer, err := render.New("Medium", client)
	require.NoError(t, err)
	return site.NewBuilder(application.NewPostsService(client, 0, logger.Nop()), renderer), store
}

func TestListPage(t *testing.T) {
	b, _ := newBuilder(t)

	page, err := b.ListPage(context.Background())

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, page.Status)
	assert.Equal(t, "text/html; charset=utf-8", page.ContentType)
	assert.Contains(t, string(page.Body), "Welcome to the blog")
	assert.True(t, page.Cacheable())
}

func TestListPageFailsOnStoreOutage(t *testing.T) {
	b, store := newBuilder(t)
	store.FailQueries(errors.New("down"))

	_, err := b.ListPage(context.Background())

	assert.ErrorIs(t, err, content.ErrQuery)
}

func TestPostPage(t *testing.T) {
	b, _ := newBuilder(t)

	page, err := b.PostPage(context.Background(), "welcome-to-the-blog")

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, page.Status)
	body := string(page.Body)
	assert.Contains(t, body, "<h1>Hello, reader</h1>")
	assert.Contains(t, body, "Looking forward to it!")
	assert.NotContains(t, body, "Buy now", "unapproved comments stay hidden")
}

func TestPostPageNotFound(t *testing.T) {
	b, _ := newBuilder(t)

	page, err := b.PostBuildFunc("no-such-post")(context.Background())

	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, page.Status)
	assert.False(t, page.Cacheable())
}

func TestErrorPage(t *testing.T) {
	b, _ := newBuilder(t)

	page, err := b.ErrorPage(http.StatusBadGateway)

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, page.Status)
	assert.Contains(t, string(page.Body), "502")
}

func TestPostKey(t *testing.T) {
	assert.Equal(t, "post/hello", site.PostKey("hello"))
}
