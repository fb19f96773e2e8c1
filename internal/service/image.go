package service

import (
	"context"

	"github.com/atinyakov/BookmarkKeeper/internal/models"
)

// ImageRepository defines the persistence operations needed by the
// ImageService.
type ImageRepository interface {
	// ListImages fetches a bookmark's images in cover order.
	ListImages(ctx context.Context, bookmarkID int64) ([]models.BookmarkImage, error)
	// CreateImage inserts an image for the bookmark.
	CreateImage(ctx context.Context, bookmarkID int64, ni models.NewImage) (*models.BookmarkImage, error)
	// DeleteImage removes an image and returns the deleted id.
	DeleteImage(ctx context.Context, id int64) (int64, error)
}

// ImageService implements bookmark image business logic over a repository.
type ImageService struct {
	repo ImageRepository
}

// NewImageService constructs an ImageService with the provided repository.
func NewImageService(repo ImageRepository) *ImageService {
	return &ImageService{repo: repo}
}

// ListForBookmark returns the bookmark's images, cover image first.
func (s *ImageService) ListForBookmark(ctx context.Context, bookmarkID int64) ([]models.BookmarkImage, error) {
	return s.repo.ListImages(ctx, bookmarkID)
}

// Create attaches an image to the bookmark.
func (s *ImageService) Create(ctx context.Context, bookmarkID int64, ni models.NewImage) (*models.BookmarkImage, error) {
	return s.repo.CreateImage(ctx, bookmarkID, ni)
}

// Delete removes a single image.
func (s *ImageService) Delete(ctx context.Context, id int64) (int64, error) {
	return s.repo.DeleteImage(ctx, id)
}
