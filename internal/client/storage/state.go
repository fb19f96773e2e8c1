// Package storage keeps the client-side snapshot of bookmarks and their
// cover images, refreshed from the server and patched after each mutation.
package storage

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/atinyakov/BookmarkKeeper/internal/models"
	"go.uber.org/zap"
)

// demoEmail is the address the client signs in as; the server seeds this
// user on startup.
const demoEmail = "demo@bookmarks.local"

// urlPattern accepts URLs starting with http:// or https:// followed by at
// least one character.
var urlPattern = regexp.MustCompile(`(?i)^https?://.+`)

// ErrPartialSave reports that the bookmark was stored but its image was not.
var ErrPartialSave = errors.New("bookmark saved, image failed")

// BookmarkAPI is the slice of the server client used for bookmark mutations.
type BookmarkAPI interface {
	GetBookmarks(userID int64, archived *bool) ([]models.Bookmark, error)
	CreateBookmark(nb models.NewBookmark) (*models.Bookmark, error)
	UpdateBookmark(id int64, up models.BookmarkUpdate) (*models.Bookmark, error)
	DeleteBookmark(id int64) error
	ToggleArchive(id int64) (*models.Bookmark, error)
}

// ImageAPI is the slice of the server client used for image mutations.
type ImageAPI interface {
	GetImages(bookmarkID int64) ([]models.BookmarkImage, error)
	CreateImage(bookmarkID int64, ni models.NewImage) (*models.BookmarkImage, error)
	DeleteImage(id int64) error
}

// UserAPI is the slice of the server client used to resolve the demo user.
type UserAPI interface {
	GetUserByEmail(email string) (*models.User, error)
}

// LocalState owns the in-memory collection of bookmarks and the
// cover-image-per-bookmark mapping. Mutations go through the server first;
// the snapshot is then patched or refetched.
type LocalState struct {
	mu          sync.Mutex
	user        *models.User
	bookmarks   []models.Bookmark
	coverImages map[int64]models.BookmarkImage

	bookmarkAPI BookmarkAPI
	imageAPI    ImageAPI
	userAPI     UserAPI
	log         *zap.Logger
}

// NewLocalState wires a LocalState to the given API slices.
func NewLocalState(bookmarks BookmarkAPI, images ImageAPI, users UserAPI, log *zap.Logger) *LocalState {
	if log == nil {
		log = zap.NewNop()
	}
	return &LocalState{
		coverImages: make(map[int64]models.BookmarkImage),
		bookmarkAPI: bookmarks,
		imageAPI:    images,
		userAPI:     users,
		log:         log,
	}
}

// ValidateURL rejects empty or scheme-less URLs before any network call.
func ValidateURL(raw string) error {
	if !urlPattern.MatchString(strings.TrimSpace(raw)) {
		return errors.New("please enter a valid URL starting with http:// or https://")
	}
	return nil
}

// Refresh reloads the demo user, their unarchived bookmarks and each
// bookmark's cover image from the server. A per-bookmark image fetch
// failure is logged and skipped; it does not fail the refresh.
func (s *LocalState) Refresh() error {
	user, err := s.userAPI.GetUserByEmail(demoEmail)
	if err != nil {
		return fmt.Errorf("fetch user: %w", err)
	}

	archived := false
	bookmarks, err := s.bookmarkAPI.GetBookmarks(user.ID, &archived)
	if err != nil {
		return fmt.Errorf("fetch bookmarks: %w", err)
	}

	covers := make(map[int64]models.BookmarkImage, len(bookmarks))
	for _, b := range bookmarks {
		images, err := s.imageAPI.GetImages(b.ID)
		if err != nil {
			s.log.Warn("failed to fetch images", zap.Int64("bookmark_id", b.ID), zap.Error(err))
			continue
		}
		if len(images) > 0 {
			covers[b.ID] = images[0]
		}
	}

	s.mu.Lock()
	s.user = user
	s.bookmarks = bookmarks
	s.coverImages = covers
	s.mu.Unlock()
	return nil
}

// User returns the loaded demo user, or nil before the first Refresh.
func (s *LocalState) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Bookmarks returns a copy of the current bookmark snapshot.
func (s *LocalState) Bookmarks() []models.Bookmark {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Bookmark, len(s.bookmarks))
	copy(out, s.bookmarks)
	return out
}

// CoverImage returns the bookmark's cover image, or nil if it has none.
func (s *LocalState) CoverImage(bookmarkID int64) *models.BookmarkImage {
	s.mu.Lock()
	defer s.mu.Unlock()
	if img, ok := s.coverImages[bookmarkID]; ok {
		return &img
	}
	return nil
}

func (s *LocalState) setCover(bookmarkID int64, img models.BookmarkImage) {
	s.mu.Lock()
	s.coverImages[bookmarkID] = img
	s.mu.Unlock()
}

// AddBookmark validates the URL locally, creates the bookmark and, when an
// image file is given, encodes and attaches it. If the image step fails the
// bookmark stays created and the returned error wraps ErrPartialSave so the
// caller can surface the partial failure.
func (s *LocalState) AddBookmark(rawURL, title, notes, imagePath string) (*models.Bookmark, error) {
	if err := ValidateURL(rawURL); err != nil {
		return nil, err
	}

	user := s.User()
	if user == nil {
		return nil, errors.New("no user loaded; refresh first")
	}

	nb := models.NewBookmark{UserID: user.ID, URL: strings.TrimSpace(rawURL)}
	if t := strings.TrimSpace(title); t != "" {
		nb.Title = &t
	}
	if n := strings.TrimSpace(notes); n != "" {
		nb.Notes = &n
	}

	created, err := s.bookmarkAPI.CreateBookmark(nb)
	if err != nil {
		return nil, err
	}

	if imagePath != "" {
		img, err := EncodeImageFile(imagePath)
		if err == nil {
			var uploaded *models.BookmarkImage
			uploaded, err = s.imageAPI.CreateImage(created.ID, img)
			if err == nil {
				s.setCover(created.ID, *uploaded)
			}
		}
		if err != nil {
			s.log.Warn("image upload failed after bookmark create",
				zap.Int64("bookmark_id", created.ID), zap.Error(err))
			return created, fmt.Errorf("%w: %v", ErrPartialSave, err)
		}
	}
	return created, nil
}

// SaveBookmark applies a partial update and, when a new image file is
// given, replaces the cover image. The cover mapping is patched immediately
// on a successful upload so the view reflects the change without a full
// refetch. Image failure after a successful field update wraps
// ErrPartialSave.
func (s *LocalState) SaveBookmark(id int64, up models.BookmarkUpdate, newImagePath string) (*models.Bookmark, error) {
	if up.URL != nil {
		if err := ValidateURL(*up.URL); err != nil {
			return nil, err
		}
	}

	updated, err := s.bookmarkAPI.UpdateBookmark(id, up)
	if err != nil {
		return nil, err
	}

	if newImagePath != "" {
		uploaded, err := s.ReplaceImage(id, newImagePath, s.CoverImage(id))
		if err != nil {
			return updated, fmt.Errorf("%w: %v", ErrPartialSave, err)
		}
		s.setCover(id, *uploaded)
	}
	return updated, nil
}

// ReplaceImage deletes the existing cover image if present, then encodes
// and uploads the file at path. A failed delete is logged and the upload
// proceeds anyway, so a stale image may survive on the server.
func (s *LocalState) ReplaceImage(bookmarkID int64, path string, existing *models.BookmarkImage) (*models.BookmarkImage, error) {
	if existing != nil {
		if err := s.imageAPI.DeleteImage(existing.ID); err != nil {
			s.log.Warn("failed to delete existing image",
				zap.Int64("image_id", existing.ID), zap.Error(err))
		}
	}

	img, err := EncodeImageFile(path)
	if err != nil {
		return nil, err
	}
	return s.imageAPI.CreateImage(bookmarkID, img)
}

// AttachImage uploads an additional image for the bookmark. The cover
// mapping is only touched when the bookmark had no cover yet.
func (s *LocalState) AttachImage(bookmarkID int64, path string) (*models.BookmarkImage, error) {
	img, err := EncodeImageFile(path)
	if err != nil {
		return nil, err
	}
	uploaded, err := s.imageAPI.CreateImage(bookmarkID, img)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if _, ok := s.coverImages[bookmarkID]; !ok {
		s.coverImages[bookmarkID] = *uploaded
	}
	s.mu.Unlock()
	return uploaded, nil
}

// ToggleArchive flips the bookmark's archive flag server-side and patches
// the snapshot in place.
func (s *LocalState) ToggleArchive(id int64) (*models.Bookmark, error) {
	b, err := s.bookmarkAPI.ToggleArchive(id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	for i := range s.bookmarks {
		if s.bookmarks[i].ID == id {
			count := s.bookmarks[i].ImagesCount
			s.bookmarks[i] = *b
			s.bookmarks[i].ImagesCount = count
			break
		}
	}
	s.mu.Unlock()
	return b, nil
}

// DeleteBookmark removes the bookmark server-side (images go with it via
// the cascade) and drops it from the snapshot and the cover mapping.
func (s *LocalState) DeleteBookmark(id int64) error {
	if err := s.bookmarkAPI.DeleteBookmark(id); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.coverImages, id)
	for i := range s.bookmarks {
		if s.bookmarks[i].ID == id {
			s.bookmarks = append(s.bookmarks[:i], s.bookmarks[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	return nil
}

// DeleteImage removes a single image server-side and clears it from the
// cover mapping when it was a cover.
func (s *LocalState) DeleteImage(imageID int64) error {
	if err := s.imageAPI.DeleteImage(imageID); err != nil {
		return err
	}

	s.mu.Lock()
	for bookmarkID, img := range s.coverImages {
		if img.ID == imageID {
			delete(s.coverImages, bookmarkID)
			break
		}
	}
	s.mu.Unlock()
	return nil
}
