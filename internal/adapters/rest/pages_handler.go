package rest

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	commentsapp "github.com/philly/medium-blog/internal/comments/application"
	"github.com/philly/medium-blog/internal/comments/domain"
	"github.com/philly/medium-blog/internal/platform/apperror"
	"github.com/philly/medium-blog/internal/platform/pagecache"
	postsapp "github.com/philly/medium-blog/internal/posts/application"
	"github.com/philly/medium-blog/internal/render"
	"github.com/philly/medium-blog/internal/site"
)

// PagesHandler serves the HTML pages.
type PagesHandler struct {
	*BaseHandler
	builder  *site.Builder
	comments *commentsapp.CommentsService
	cache    *pagecache.Regenerator
	posts    *postsapp.PostsService
}

// NewPagesHandler creates a new pages handler
func NewPagesHandler(
	base *BaseHandler,
	builder *site.Builder,
	comments *commentsapp.CommentsService,
	cache *pagecache.Regenerator,
	posts *postsapp.PostsService,
) *PagesHandler {
	return &PagesHandler{
		BaseHandler: base,
		builder:     builder,
		comments:    comments,
		cache:       cache,
		posts:       posts,
	}
}

// ListPosts renders the home page from fresh content on every request.
func (h *PagesHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	page, err := h.builder.ListPage(r.Context())
	if err != nil {
		h.writeErrorPage(w, r, err)
		return
	}
	h.writePage(w, page, "no-store")
}

// ShowPost renders a post through the page cache. Unknown slugs are looked
// up on demand; only a confirmed miss answers 404.
func (h *PagesHandler) ShowPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	page, err := h.cache.Get(r.Context(), site.PostKey(slug), h.builder.PostBuildFunc(slug))
	if err != nil {
		h.writeErrorPage(w, r, err)
		return
	}

	cacheControl := "no-store"
	if page.Cacheable() {
		seconds := int(h.posts.RevalidateInterval().Seconds())
		cacheControl = fmt.Sprintf("public, s-maxage=%d, stale-while-revalidate", seconds)
	}
	h.writePage(w, page, cacheControl)
}

// SubmitComment handles the server-rendered comment form and answers with
// the post page showing the resulting form state. The comment always
// references the post named by the URL.
func (h *PagesHandler) SubmitComment(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	r.Body = http.MaxBytesReader(w, r.Body, maxCommentBody)
	if err := r.ParseForm(); err != nil {
		h.writeErrorPage(w, r, ErrInvalidCommentPayload.WithDetails(err.Error()))
		return
	}

	post, err := h.builder.LoadPost(r.Context(), slug)
	if err != nil {
		h.writeErrorPage(w, r, err)
		return
	}

	if formID := strings.TrimSpace(r.PostForm.Get("_id")); formID != "" && formID != post.ID {
		h.logger.Warn(r.Context(), "comment form post id does not match page", "form_id", formID, "post_id", post.ID)
	}

	form := render.NewCommentForm(post.ID, post.Slug)
	form.Name = r.PostForm.Get("name")
	form.Email = r.PostForm.Get("email")
	form.Comment = r.PostForm.Get("comment")

	state, err := h.comments.SubmitForm(r.Context(), form.State, domain.Submission{
		PostID:  post.ID,
		Name:    form.Name,
		Email:   form.Email,
		Comment: form.Comment,
	})
	form.State = state

	status := http.StatusOK
	if err != nil {
		status = http.StatusInternalServerError
		form.Error = render.FailedSubmissionMessage
	} else {
		form.Name, form.Email, form.Comment = "", "", ""
	}

	page, err := h.builder.RenderPost(post, form, status)
	if err != nil {
		h.writeErrorPage(w, r, err)
		return
	}
	h.writePage(w, page, "no-store")
}

// NotFound renders the 404 page for unknown routes.
func (h *PagesHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	page, err := h.builder.NotFoundPage()
	if err != nil {
		h.writeErrorPage(w, r, err)
		return
	}
	h.writePage(w, page, "no-store")
}

func (h *PagesHandler) writePage(w http.ResponseWriter, page pagecache.Page, cacheControl string) {
	w.Header().Set("Content-Type", page.ContentType)
	w.Header().Set("Cache-Control", cacheControl)
	w.WriteHeader(page.Status)
	_, _ = w.Write(page.Body)
}

// writeErrorPage renders the 404 page for not-found errors and the error
// page for everything else.
func (h *PagesHandler) writeErrorPage(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, postsapp.ErrPostNotFound) {
		h.NotFound(w, r)
		return
	}

	// Upstream failures all surface as a plain 500 page.
	status := apperror.StatusOf(err)
	if status >= http.StatusInternalServerError {
		status = http.StatusInternalServerError
	}
	h.logger.Error(r.Context(), "page render failed", "path", r.URL.Path, "status", status, "error", err)

	page, renderErr := h.builder.ErrorPage(status)
	if renderErr != nil {
		h.logger.Error(r.Context(), "error page render failed", "error", renderErr)
		http.Error(w, http.StatusText(status), status)
		return
	}
	h.writePage(w, page, "no-store")
}
