// Package models defines the core data structures for users, bookmarks
// and bookmark images.
package models

import "time"

// User represents an application user. Users are seeded out-of-band and
// only their public fields ever cross the API boundary.
type User struct {
	// ID is the unique identifier for the user.
	ID int64 `json:"id"`
	// Email is the unique address the demo client looks the user up by.
	Email string `json:"email"`
	// DisplayName is the human-readable name of the user.
	DisplayName string `json:"display_name"`
	// CreatedAt is the creation timestamp.
	CreatedAt time.Time `json:"created_at"`
}

// Bookmark represents a saved URL owned by a user. The (user_id, url) pair
// is unique per user.
type Bookmark struct {
	// ID is the unique identifier for the bookmark.
	ID int64 `json:"id"`
	// UserID is the owning user.
	UserID int64 `json:"user_id"`
	// URL is the bookmarked address. Required and non-empty.
	URL string `json:"url"`
	// Title is the optional display title.
	Title *string `json:"title"`
	// Notes holds optional free-form notes.
	Notes *string `json:"notes"`
	// IsArchived soft-hides the bookmark from the default list view.
	IsArchived bool `json:"is_archived"`
	// SortOrder pins the bookmark's position in list results. Bookmarks
	// without one sort after all explicitly ordered bookmarks.
	SortOrder *int64 `json:"sort_order"`
	// CreatedAt is the creation timestamp.
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is set on every update; nil until the first one.
	UpdatedAt *time.Time `json:"updated_at"`
	// ImagesCount is the number of associated images. Populated by the
	// list query only.
	ImagesCount int64 `json:"images_count"`
}

// BookmarkImage is an image attached to a bookmark. The payload travels as
// a data URI in ImageURL rather than as a file upload. The first image by
// (position ascending, nulls last, created_at ascending) is the bookmark's
// cover image.
type BookmarkImage struct {
	// ID is the unique identifier for the image.
	ID int64 `json:"id"`
	// BookmarkID is the owning bookmark.
	BookmarkID int64 `json:"bookmark_id"`
	// ImageURL carries the content-type-prefixed base64 payload.
	ImageURL string `json:"image_url"`
	// ContentType is the MIME type of the payload.
	ContentType string `json:"content_type"`
	// WidthPx and HeightPx are the pixel dimensions, when known.
	WidthPx  *int64 `json:"width_px"`
	HeightPx *int64 `json:"height_px"`
	// SizeBytes is the decoded payload size, when known.
	SizeBytes *int64 `json:"size_bytes"`
	// Caption is an optional user-supplied caption.
	Caption *string `json:"caption"`
	// Position governs display order among the bookmark's images.
	Position *int64 `json:"position"`
	// CreatedAt is the creation timestamp.
	CreatedAt time.Time `json:"created_at"`
}

// NewBookmark is the payload for creating a bookmark. UserID and URL are
// required; the rest default server-side.
type NewBookmark struct {
	UserID     int64   `json:"user_id"`
	URL        string  `json:"url"`
	Title      *string `json:"title,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	IsArchived *bool   `json:"is_archived,omitempty"`
	SortOrder  *int64  `json:"sort_order,omitempty"`
}

// BookmarkUpdate is a sparse field-set for partial updates. A nil field
// keeps the stored value.
type BookmarkUpdate struct {
	URL        *string `json:"url,omitempty"`
	Title      *string `json:"title,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	IsArchived *bool   `json:"is_archived,omitempty"`
	SortOrder  *int64  `json:"sort_order,omitempty"`
}

// NewImage is the payload for attaching an image to a bookmark. ImageURL
// and ContentType are required.
type NewImage struct {
	ImageURL    string  `json:"image_url"`
	ContentType string  `json:"content_type"`
	WidthPx     *int64  `json:"width_px,omitempty"`
	HeightPx    *int64  `json:"height_px,omitempty"`
	SizeBytes   *int64  `json:"size_bytes,omitempty"`
	Caption     *string `json:"caption,omitempty"`
	Position    *int64  `json:"position,omitempty"`
}
