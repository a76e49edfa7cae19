package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/philly/medium-blog/internal/adapters/rest/middleware"
	"github.com/philly/medium-blog/internal/render"
)

// Server combines all handlers and mounts them on a router.
type Server struct {
	*PagesHandler
	*CommentsHandler
	*HealthHandler
	limiter *middleware.RateLimiter
}

// NewServer creates a new server from its handlers
func NewServer(
	pages *PagesHandler,
	comments *CommentsHandler,
	health *HealthHandler,
	limiter *middleware.RateLimiter,
) *Server {
	return &Server{
		PagesHandler:    pages,
		CommentsHandler: comments,
		HealthHandler:   health,
		limiter:         limiter,
	}
}

// Routes registers every route on r. Comment submissions are rate limited
// per client.
func (s *Server) Routes(r chi.Router) {
	r.Get("/", s.ListPosts)
	r.Get("/post/{slug}", s.ShowPost)
	r.With(s.limiter.Middleware).Post("/post/{slug}/comment", s.SubmitComment)

	r.With(s.limiter.Middleware).Post("/api/createComment", s.CreateComment)
	r.Get("/api/v1/health/live", s.GetLiveness)
	r.Get("/api/v1/health/ready", s.GetReadiness)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(render.Static()))))
	r.NotFound(s.PagesHandler.NotFound)
}
