package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/atinyakov/BookmarkKeeper/internal/models"
	"github.com/atinyakov/BookmarkKeeper/internal/repository"
	"go.uber.org/zap"
)

// BookmarkService defines the interface for bookmark operations required
// by the HTTP handlers.
type BookmarkService interface {
	List(ctx context.Context, userID *int64, archived *bool) ([]models.Bookmark, error)
	Get(ctx context.Context, id int64) (*models.Bookmark, error)
	Create(ctx context.Context, nb models.NewBookmark) (*models.Bookmark, error)
	Update(ctx context.Context, id int64, up models.BookmarkUpdate) (*models.Bookmark, error)
	Delete(ctx context.Context, id int64) (int64, error)
	ToggleArchive(ctx context.Context, id int64) (*models.Bookmark, error)
}

// BookmarkHandler handles HTTP requests for bookmark CRUD and archive
// toggling.
type BookmarkHandler struct {
	// Service performs the underlying bookmark operations.
	Service BookmarkService
	// Log records internal failures; their detail never reaches the client.
	Log *zap.Logger
}

// List handles GET /api/bookmarks. The user_id and is_archived query
// parameters are optional; an absent parameter means no constraint.
func (h *BookmarkHandler) List(w http.ResponseWriter, r *http.Request) {
	var userID *int64
	if raw := r.URL.Query().Get("user_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "user_id must be an integer"})
			return
		}
		userID = &id
	}

	var archived *bool
	if raw := r.URL.Query().Get("is_archived"); raw != "" {
		v := raw == "true"
		archived = &v
	}

	bookmarks, err := h.Service.List(r.Context(), userID, archived)
	if err != nil {
		h.Log.Error("failed to fetch bookmarks", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to fetch bookmarks"})
		return
	}
	writeJSON(w, http.StatusOK, bookmarks)
}

// Get handles GET /api/bookmarks/{id}.
func (h *BookmarkHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Bookmark not found"})
		return
	}

	bookmark, err := h.Service.Get(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Bookmark not found"})
		return
	}
	if err != nil {
		h.Log.Error("failed to fetch bookmark", zap.Int64("id", id), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to fetch bookmark"})
		return
	}
	writeJSON(w, http.StatusOK, bookmark)
}

// Create handles POST /api/bookmarks. It expects a JSON body with non-zero
// user_id and a non-empty url; duplicate (user_id, url) pairs are rejected
// with 409.
func (h *BookmarkHandler) Create(w http.ResponseWriter, r *http.Request) {
	var nb models.NewBookmark
	if err := json.NewDecoder(r.Body).Decode(&nb); err != nil || nb.UserID == 0 || nb.URL == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "user_id and url are required"})
		return
	}

	bookmark, err := h.Service.Create(r.Context(), nb)
	if errors.Is(err, repository.ErrConflict) {
		writeJSON(w, http.StatusConflict, errorResponse{Error: "Bookmark URL already exists for this user"})
		return
	}
	if err != nil {
		h.Log.Error("failed to create bookmark", zap.Int64("user_id", nb.UserID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to create bookmark"})
		return
	}
	writeJSON(w, http.StatusCreated, bookmark)
}

// Update handles PUT /api/bookmarks/{id}. Each omitted field keeps its
// stored value.
func (h *BookmarkHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Bookmark not found"})
		return
	}

	var up models.BookmarkUpdate
	if err := json.NewDecoder(r.Body).Decode(&up); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	bookmark, err := h.Service.Update(r.Context(), id, up)
	if errors.Is(err, repository.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Bookmark not found"})
		return
	}
	if err != nil {
		h.Log.Error("failed to update bookmark", zap.Int64("id", id), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to update bookmark"})
		return
	}
	writeJSON(w, http.StatusOK, bookmark)
}

// Delete handles DELETE /api/bookmarks/{id}. Associated images are removed
// by the store's cascade.
func (h *BookmarkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Bookmark not found"})
		return
	}

	deleted, err := h.Service.Delete(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Bookmark not found"})
		return
	}
	if err != nil {
		h.Log.Error("failed to delete bookmark", zap.Int64("id", id), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to delete bookmark"})
		return
	}
	writeJSON(w, http.StatusOK, deleteResponse{Message: "Bookmark deleted successfully", ID: deleted})
}

// ToggleArchive handles PATCH /api/bookmarks/{id}/archive. It flips
// is_archived; no body is accepted.
func (h *BookmarkHandler) ToggleArchive(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Bookmark not found"})
		return
	}

	bookmark, err := h.Service.ToggleArchive(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Bookmark not found"})
		return
	}
	if err != nil {
		h.Log.Error("failed to toggle archive", zap.Int64("id", id), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to toggle archive status"})
		return
	}
	writeJSON(w, http.StatusOK, bookmark)
}
