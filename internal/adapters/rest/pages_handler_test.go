package rest_test

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philly/medium-blog/internal/content"
	"github.com/philly/medium-blog/internal/render"
)

func TestListPostsPage(t *testing.T) {
	ts := newTestServer(t)

	resp, body := ts.get(t, "/")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Equal(t, "no-store", resp.Header.Get("Cache-Control"))

	welcome := strings.Index(body, `href="/post/welcome-to-the-blog"`)
	compilers := strings.Index(body, `href="/post/notes-on-compilers"`)
	require.NotEqual(t, -1, welcome)
	require.NotEqual(t, -1, compilers)
	assert.Less(t, welcome, compilers, "posts keep the store order")
}

func TestListPostsStoreOutageRendersErrorPage(t *testing.T) {
	ts := newTestServer(t)
	ts.store.FailQueries(errors.New("503"))

	resp, body := ts.get(t, "/")

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, body, "<h1>500</h1>")
}

func TestShowPost(t *testing.T) {
	ts := newTestServer(t)

	resp, body := ts.get(t, "/post/welcome-to-the-blog")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "public, s-maxage=60, stale-while-revalidate", resp.Header.Get("Cache-Control"))
	assert.Contains(t, body, "Welcome to the blog")
	assert.Contains(t, body, "Linus:")
	assert.NotContains(t, body, "Spammer", "unapproved comments stay hidden")
	assert.Contains(t, body, `action="/post/welcome-to-the-blog/comment"`)
}

func TestShowPostServedFromCacheAfterFirstRender(t *testing.T) {
	ts := newTestServer(t)

	ts.get(t, "/post/notes-on-compilers")
	resp, _ := ts.get(t, "/post/notes-on-compilers")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, ts.store.QueryCount(content.PostBySlug.Name))
}

func TestShowPostUnknownSlugIsLookedUpThenNotFound(t *testing.T) {
	ts := newTestServer(t)

	resp, body := ts.get(t, "/post/published-after-build")

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "<h1>404</h1>")
	assert.Equal(t, 1, ts.store.QueryCount(content.PostBySlug.Name))
}

func TestShowPostStoreOutageWithoutCachedPage(t *testing.T) {
	ts := newTestServer(t)
	ts.store.FailQueries(errors.New("503"))

	resp, _ := ts.get(t, "/post/welcome-to-the-blog")

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func commentForm(postID, name, email, comment string) string {
	return url.Values{
		"_id":     {postID},
		"name":    {name},
		"email":   {email},
		"comment": {comment},
	}.Encode()
}

func TestSubmitCommentForm(t *testing.T) {
	ts := newTestServer(t)
	before := len(ts.store.Comments())

	resp, body := ts.post(t, "/post/welcome-to-the-blog/comment", "application/x-www-form-urlencoded",
		commentForm("post-welcome", "Alice", "a@x.com", "Great post"))

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Your Comment Has Been Submitted")
	assert.Contains(t, body, "Once Your Comment Approved, it will Appear Below")
	assert.NotContains(t, body, `<form class="comment-form"`)
	assert.NotContains(t, body, "Alice:", "new comments wait for approval")

	all := ts.store.Comments()
	require.Len(t, all, before+1)
	assert.Equal(t, "post-welcome", all[len(all)-1].PostID)
	assert.False(t, all[len(all)-1].Approved)
}

func TestSubmitCommentFormUsesPostFromURL(t *testing.T) {
	ts := newTestServer(t)

	ts.post(t, "/post/notes-on-compilers/comment", "application/x-www-form-urlencoded",
		commentForm("post-welcome", "Mallory", "m@x.com", "misplaced"))

	all := ts.store.Comments()
	assert.Equal(t, "post-compilers", all[len(all)-1].PostID)
}

func TestSubmitCommentFormFailureKeepsValues(t *testing.T) {
	ts := newTestServer(t)
	ts.store.FailCreates(errors.New("write denied"))

	resp, body := ts.post(t, "/post/welcome-to-the-blog/comment", "application/x-www-form-urlencoded",
		commentForm("post-welcome", "Alice", "a@x.com", "Great post"))

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, body, render.FailedSubmissionMessage)
	assert.Contains(t, body, `value="Alice"`)
	assert.Contains(t, body, `value="a@x.com"`)
	assert.Contains(t, body, ">Great post</textarea>")
	assert.NotContains(t, body, "Your Comment Has Been Submitted")

	ts.store.FailCreates(nil)
	resp, body = ts.post(t, "/post/welcome-to-the-blog/comment", "application/x-www-form-urlencoded",
		commentForm("post-welcome", "Alice", "a@x.com", "Great post"))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Your Comment Has Been Submitted")
}

func TestSubmitCommentFormUnknownPost(t *testing.T) {
	ts := newTestServer(t)

	resp, body := ts.post(t, "/post/ghost/comment", "application/x-www-form-urlencoded",
		commentForm("ghost", "A", "a@x.com", "hi"))

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "<h1>404</h1>")
}
