package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/atinyakov/BookmarkKeeper/internal/models"
	"github.com/atinyakov/BookmarkKeeper/internal/repository"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// UserService defines the interface for user lookups required by the HTTP
// handlers.
type UserService interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// UserHandler handles HTTP requests for user lookups. Users are read-only;
// only public fields are returned.
type UserHandler struct {
	// Service performs the underlying user operations.
	Service UserService
	// Log records internal failures; their detail never reaches the client.
	Log *zap.Logger
}

// GetByID handles GET /api/users/{id}.
func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "User not found"})
		return
	}

	user, err := h.Service.GetByID(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "User not found"})
		return
	}
	if err != nil {
		h.Log.Error("failed to fetch user", zap.Int64("id", id), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to fetch user"})
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// GetByEmail handles GET /api/users/email/{email}.
func (h *UserHandler) GetByEmail(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	user, err := h.Service.GetByEmail(r.Context(), email)
	if errors.Is(err, repository.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "User not found"})
		return
	}
	if err != nil {
		h.Log.Error("failed to fetch user", zap.String("email", email), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to fetch user"})
		return
	}
	writeJSON(w, http.StatusOK, user)
}
