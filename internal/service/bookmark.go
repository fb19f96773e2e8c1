// Package service provides business-logic services for bookmarks, images
// and users, delegating persistence to repository interfaces.
package service

import (
	"context"

	"github.com/atinyakov/BookmarkKeeper/internal/models"
)

// BookmarkRepository defines the persistence operations needed by the
// BookmarkService.
type BookmarkRepository interface {
	// ListBookmarks fetches bookmarks with image counts, filtered by
	// optional user and archive state.
	ListBookmarks(ctx context.Context, userID *int64, archived *bool) ([]models.Bookmark, error)
	// GetBookmark fetches a single bookmark by id.
	GetBookmark(ctx context.Context, id int64) (*models.Bookmark, error)
	// CreateBookmark inserts a bookmark and returns the created row.
	CreateBookmark(ctx context.Context, nb models.NewBookmark) (*models.Bookmark, error)
	// UpdateBookmark applies a partial update and returns the updated row.
	UpdateBookmark(ctx context.Context, id int64, up models.BookmarkUpdate) (*models.Bookmark, error)
	// DeleteBookmark removes a bookmark and returns the deleted id.
	DeleteBookmark(ctx context.Context, id int64) (int64, error)
	// ToggleArchive flips is_archived and returns the updated row.
	ToggleArchive(ctx context.Context, id int64) (*models.Bookmark, error)
}

// BookmarkService implements bookmark business logic over a repository.
// Each operation maps onto a single independently atomic statement, so no
// cross-statement transaction is held here.
type BookmarkService struct {
	repo BookmarkRepository
}

// NewBookmarkService constructs a BookmarkService with the provided
// repository.
func NewBookmarkService(repo BookmarkRepository) *BookmarkService {
	return &BookmarkService{repo: repo}
}

// List returns the bookmarks matching the optional filters.
func (s *BookmarkService) List(ctx context.Context, userID *int64, archived *bool) ([]models.Bookmark, error) {
	return s.repo.ListBookmarks(ctx, userID, archived)
}

// Get returns a single bookmark by id.
func (s *BookmarkService) Get(ctx context.Context, id int64) (*models.Bookmark, error) {
	return s.repo.GetBookmark(ctx, id)
}

// Create stores a new bookmark.
func (s *BookmarkService) Create(ctx context.Context, nb models.NewBookmark) (*models.Bookmark, error) {
	return s.repo.CreateBookmark(ctx, nb)
}

// Update applies a partial update to a bookmark.
func (s *BookmarkService) Update(ctx context.Context, id int64, up models.BookmarkUpdate) (*models.Bookmark, error) {
	return s.repo.UpdateBookmark(ctx, id, up)
}

// Delete removes a bookmark; associated images are removed by the store's
// referential-integrity cascade.
func (s *BookmarkService) Delete(ctx context.Context, id int64) (int64, error) {
	return s.repo.DeleteBookmark(ctx, id)
}

// ToggleArchive flips the bookmark's archive flag.
func (s *BookmarkService) ToggleArchive(ctx context.Context, id int64) (*models.Bookmark, error) {
	return s.repo.ToggleArchive(ctx, id)
}
