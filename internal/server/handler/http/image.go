package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/atinyakov/BookmarkKeeper/internal/models"
	"github.com/atinyakov/BookmarkKeeper/internal/repository"
	"go.uber.org/zap"
)

// ImageService defines the interface for bookmark image operations required
// by the HTTP handlers.
type ImageService interface {
	ListForBookmark(ctx context.Context, bookmarkID int64) ([]models.BookmarkImage, error)
	Create(ctx context.Context, bookmarkID int64, ni models.NewImage) (*models.BookmarkImage, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// ImageHandler handles HTTP requests for bookmark images.
type ImageHandler struct {
	// Service performs the underlying image operations.
	Service ImageService
	// Log records internal failures; their detail never reaches the client.
	Log *zap.Logger
}

// ListForBookmark handles GET /api/bookmarks/{id}/images. Images come back
// in cover order: position ascending with nulls last, then created_at
// ascending.
func (h *ImageHandler) ListForBookmark(w http.ResponseWriter, r *http.Request) {
	bookmarkID, ok := urlParamID(r)
	if !ok {
		writeJSON(w, http.StatusOK, []models.BookmarkImage{})
		return
	}

	images, err := h.Service.ListForBookmark(r.Context(), bookmarkID)
	if err != nil {
		h.Log.Error("failed to fetch images", zap.Int64("bookmark_id", bookmarkID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to fetch images"})
		return
	}
	writeJSON(w, http.StatusOK, images)
}

// Create handles POST /api/bookmarks/{id}/images. image_url and
// content_type are required; the payload itself is the data URI in
// image_url, not a file upload.
func (h *ImageHandler) Create(w http.ResponseWriter, r *http.Request) {
	bookmarkID, ok := urlParamID(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Bookmark not found"})
		return
	}

	var ni models.NewImage
	if err := json.NewDecoder(r.Body).Decode(&ni); err != nil || ni.ImageURL == "" || ni.ContentType == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "image_url and content_type are required"})
		return
	}

	image, err := h.Service.Create(r.Context(), bookmarkID, ni)
	if err != nil {
		h.Log.Error("failed to add image", zap.Int64("bookmark_id", bookmarkID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to add image"})
		return
	}
	writeJSON(w, http.StatusCreated, image)
}

// Delete handles DELETE /api/images/{id}.
func (h *ImageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Image not found"})
		return
	}

	deleted, err := h.Service.Delete(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Image not found"})
		return
	}
	if err != nil {
		h.Log.Error("failed to delete image", zap.Int64("id", id), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to delete image"})
		return
	}
	writeJSON(w, http.StatusOK, deleteResponse{Message: "Image deleted successfully", ID: deleted})
}
