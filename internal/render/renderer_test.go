package render_test

import (
	"bytes"
	"io/fs"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commentsdomain "github.com/philly/medium-blog/internal/comments/domain"
	"github.com/philly/medium-blog/internal/posts/domain"
	"github.com/philly/medium-blog/internal/render"
)

func newRenderer(t *testing.T) *render.Renderer {
	t.Helper()
	r, err := render.New("Medium", images{})
	require.NoError(t, err)
	return r
}

func samplePost() *domain.Post {
	return &domain.Post{
		ID:          "p1",
		Title:       "Hello <World>",
		Slug:        "hello-world",
		Description: "First post",
		MainImage:   "image-Banner1-1600x900-jpg",
		Author:      domain.Author{Name: "Ada", Image: "image-Ada1-400x400-jpg"},
		CreatedAt:   time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		Body: []domain.Block{
			{Type: domain.BlockTypeText, Style: domain.StyleNormal, Children: []domain.Span{{Text: "Body text"}}},
		},
		Comments: []domain.Comment{
			{ID: "c1", PostID: "p1", Name: "Linus", Text: "Nice", Approved: true},
		},
	}
}

func TestListRendersEveryPostInOrder(t *testing.T) {
	r := newRenderer(t)
	posts := []domain.PostSummary{
		{ID: "1", Title: "Zebra", Slug: "zebra"},
		{ID: "2", Title: "Aardvark", Slug: "aardvark", Author: domain.Author{Name: "Grace"}},
		{ID: "3", Title: "Mongoose", Slug: "mongoose"},
	}

	var buf bytes.Buffer
	require.NoError(t, r.List(&buf, posts))
	html := buf.String()

	z := strings.Index(html, `href="/post/zebra"`)
	a := strings.Index(html, `href="/post/aardvark"`)
	m := strings.Index(html, `href="/post/mongoose"`)
	require.True(t, z >= 0 && a >= 0 && m >= 0, html)
	assert.True(t, z < a && a < m, "posts keep store order")
	assert.Contains(t, html, "by Grace")
	assert.Contains(t, html, `<link rel="stylesheet" href="/static/site.css">`)
}

func TestListEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newRenderer(t).List(&buf, nil))
	assert.Contains(t, buf.String(), "No posts yet.")
}

func TestListKeepsPostsWithoutRoutableSlug(t *testing.T) {
	r := newRenderer(t)
	posts := []domain.PostSummary{
		{ID: "1", Title: "Draft without slug"},
		{ID: "2", Title: "Nested", Slug: "a/b"},
		{ID: "3", Title: "Go tips", Slug: "go_tips"},
	}

	var buf bytes.Buffer
	require.NoError(t, r.List(&buf, posts))
	html := buf.String()

	assert.Contains(t, html, "Draft without slug")
	assert.Contains(t, html, "Nested")
	assert.Contains(t, html, `<div class="post-card">`)
	assert.NotContains(t, html, `href="/post/"`)
	assert.NotContains(t, html, `href="/post/a/b"`)
	assert.Contains(t, html, `href="/post/go_tips"`)
}

func TestDetailRendersPostAndIdleForm(t *testing.T) {
	r := newRenderer(t)
	post := samplePost()

	var buf bytes.Buffer
	require.NoError(t, r.Detail(&buf, post, render.NewCommentForm(post.ID, post.Slug)))
	html := buf.String()

	assert.Contains(t, html, "<title>Hello &lt;World&gt; | Medium</title>")
	assert.Contains(t, html, "<p>Body text</p>")
	assert.Contains(t, html, "Published at Mar 1, 2024, 9:00 AM UTC")
	assert.Contains(t, html, "https://cdn.sanity.io/images/proj/prod/Banner1-1600x900.jpg?auto=format&amp;w=1600")
	assert.Contains(t, html, `action="/post/hello-world/comment"`)
	assert.Contains(t, html, `<input type="hidden" name="_id" value="p1">`)
	assert.Contains(t, html, `name="comment" rows="8" placeholder="Write your comment" required`)
	assert.Contains(t, html, "Linus:")
	assert.Contains(t, html, "Nice")
	assert.NotContains(t, html, "Your Comment Has Been Submitted")
}

func TestDetailSubmittedState(t *testing.T) {
	r := newRenderer(t)
	post := samplePost()
	form := render.NewCommentForm(post.ID, post.Slug)
	form.State = commentsdomain.FormSubmitted

	var buf bytes.Buffer
	require.NoError(t, r.Detail(&buf, post, form))
	html := buf.String()

	assert.Contains(t, html, "Your Comment Has Been Submitted")
	assert.Contains(t, html, "Once Your Comment Approved, it will Appear Below")
	assert.NotContains(t, html, "<form")
}

func TestDetailFailedStateKeepsValues(t *testing.T) {
	r := newRenderer(t)
	post := samplePost()
	form := render.NewCommentForm(post.ID, post.Slug)
	form.State = commentsdomain.FormFailed
	form.Name = "Alice"
	form.Comment = "Retry me"
	form.Error = render.FailedSubmissionMessage

	var buf bytes.Buffer
	require.NoError(t, r.Detail(&buf, post, form))
	html := buf.String()

	assert.Contains(t, html, "<form")
	assert.Contains(t, html, `value="Alice"`)
	assert.Contains(t, html, ">Retry me</textarea>")
	assert.Contains(t, html, render.FailedSubmissionMessage)
}

func TestIdleFormStartsEmpty(t *testing.T) {
	r := newRenderer(t)
	post := samplePost()

	var buf bytes.Buffer
	require.NoError(t, r.Detail(&buf, post, render.NewCommentForm(post.ID, post.Slug)))

	assert.Contains(t, buf.String(), `name="email" placeholder="john@example.com" value="" required`)
}

func TestStatusPages(t *testing.T) {
	r := newRenderer(t)

	var notFound bytes.Buffer
	require.NoError(t, r.NotFound(&notFound))
	assert.Contains(t, notFound.String(), "404")

	var failed bytes.Buffer
	require.NoError(t, r.Error(&failed, http.StatusInternalServerError))
	assert.Contains(t, failed.String(), "<h1>500</h1>")
}

func TestStaticAssets(t *testing.T) {
	css, err := fs.ReadFile(render.Static(), "site.css")
	require.NoError(t, err)
	assert.NotEmpty(t, css)
}
