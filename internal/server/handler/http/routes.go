package http

import (
	"net/http"

	"github.com/atinyakov/BookmarkKeeper/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves the bookmark
// API. It applies JSON content-type enforcement, request identification and
// request logging, and mounts the bookmark, image and user endpoints under
// /api. The health check lives outside the prefix.
//
// Routes:
//
//	GET    /health                       → Health
//	GET    /api/bookmarks                → bookmarks.List
//	POST   /api/bookmarks                → bookmarks.Create
//	GET    /api/bookmarks/{id}           → bookmarks.Get
//	PUT    /api/bookmarks/{id}           → bookmarks.Update
//	DELETE /api/bookmarks/{id}           → bookmarks.Delete
//	PATCH  /api/bookmarks/{id}/archive   → bookmarks.ToggleArchive
//	GET    /api/bookmarks/{id}/images    → images.ListForBookmark
//	POST   /api/bookmarks/{id}/images    → images.Create
//	DELETE /api/images/{id}              → images.Delete
//	GET    /api/users/{id}               → users.GetByID
//	GET    /api/users/email/{email}      → users.GetByEmail
func NewRouter(
	bookmarks *BookmarkHandler,
	images *ImageHandler,
	users *UserHandler,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Tag each request with an ID, then log it
	r.Use(middleware.RequestID)
	r.Use(middleware.WithRequestLogging(logger))

	r.Get("/health", Health)

	// Mount API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/bookmarks", func(r chi.Router) {
			r.Get("/", bookmarks.List)
			r.Post("/", bookmarks.Create)
			r.Get("/{id}", bookmarks.Get)
			r.Put("/{id}", bookmarks.Update)
			r.Delete("/{id}", bookmarks.Delete)
			r.Patch("/{id}/archive", bookmarks.ToggleArchive)
			r.Get("/{id}/images", images.ListForBookmark)
			r.Post("/{id}/images", images.Create)
		})

		r.Delete("/images/{id}", images.Delete)

		r.Route("/users", func(r chi.Router) {
			r.Get("/{id}", users.GetByID)
			r.Get("/email/{email}", users.GetByEmail)
		})
	})

	return r
}
