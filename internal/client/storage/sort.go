package storage

import (
	"sort"
	"strings"
	"time"

	"github.com/atinyakov/BookmarkKeeper/internal/models"
)

// SortKey selects the derived field bookmarks are ordered by.
type SortKey string

const (
	// SortByTitle orders by the lower-cased display title.
	SortByTitle SortKey = "title"
	// SortByDateAdded orders by creation time.
	SortByDateAdded SortKey = "date_added"
	// SortByDateModified orders by last update time, falling back to
	// creation time for bookmarks never updated.
	SortByDateModified SortKey = "date_modified"
)

// DisplayTitle returns the trimmed title if non-empty, else the raw URL.
func DisplayTitle(b models.Bookmark) string {
	if b.Title != nil {
		if t := strings.TrimSpace(*b.Title); t != "" {
			return t
		}
	}
	return b.URL
}

func modifiedAt(b models.Bookmark) time.Time {
	if b.UpdatedAt != nil {
		return *b.UpdatedAt
	}
	return b.CreatedAt
}

// SortBookmarks returns a copy of bookmarks ordered by the given key and
// direction. The sort is stable: equal keys keep their input order, in both
// directions. An unknown key sorts by title.
func SortBookmarks(bookmarks []models.Bookmark, key SortKey, ascending bool) []models.Bookmark {
	sorted := make([]models.Bookmark, len(bookmarks))
	copy(sorted, bookmarks)

	less := func(a, b models.Bookmark) bool {
		switch key {
		case SortByDateAdded:
			return a.CreatedAt.Before(b.CreatedAt)
		case SortByDateModified:
			return modifiedAt(a).Before(modifiedAt(b))
		default:
			return strings.ToLower(DisplayTitle(a)) < strings.ToLower(DisplayTitle(b))
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if ascending {
			return less(sorted[i], sorted[j])
		}
		return less(sorted[j], sorted[i])
	})
	return sorted
}
