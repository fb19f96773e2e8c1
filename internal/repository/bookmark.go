// Package repository provides persistence implementations for the bookmark
// services using a PostgreSQL database.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/atinyakov/BookmarkKeeper/internal/models"
	"github.com/lib/pq"
)

// uniqueViolation is the PostgreSQL error code for unique constraint violations.
const uniqueViolation = "23505"

// bookmarkColumns is the scan list shared by every single-row bookmark query.
const bookmarkColumns = `id, user_id, url, title, notes, is_archived, sort_order, created_at, updated_at`

// PostgresBookmarkRepository implements bookmark operations against a
// PostgreSQL database.
type PostgresBookmarkRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresBookmarkRepository creates a new PostgresBookmarkRepository
// using the provided *sql.DB. db must be a valid connection to a PostgreSQL
// instance.
func NewPostgresBookmarkRepository(db *sql.DB) *PostgresBookmarkRepository {
	return &PostgresBookmarkRepository{DB: db}
}

func scanBookmark(row *sql.Row, b *models.Bookmark) error {
	return row.Scan(&b.ID, &b.UserID, &b.URL, &b.Title, &b.Notes,
		&b.IsArchived, &b.SortOrder, &b.CreatedAt, &b.UpdatedAt)
}

// ListBookmarks fetches bookmarks with their image count. Both filters are
// optional and AND-combined; a nil filter means no constraint. Results are
// ordered by sort_order ascending (missing values last) then created_at
// descending.
func (r *PostgresBookmarkRepository) ListBookmarks(ctx context.Context, userID *int64, archived *bool) ([]models.Bookmark, error) {
	query := `
		SELECT b.id, b.user_id, b.url, b.title, b.notes, b.is_archived, b.sort_order,
		       b.created_at, b.updated_at, COUNT(bi.id) AS images_count
		FROM bookmarks b
		LEFT JOIN bookmark_images bi ON bi.bookmark_id = b.id
		WHERE 1=1`
	var args []any

	if userID != nil {
		args = append(args, *userID)
		query += ` AND b.user_id = $` + strconv.Itoa(len(args))
	}
	if archived != nil {
		args = append(args, *archived)
		query += ` AND b.is_archived = $` + strconv.Itoa(len(args))
	}

	query += `
		GROUP BY b.id
		ORDER BY COALESCE(b.sort_order, 999999), b.created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListBookmarks: %w", err)
	}
	defer rows.Close()

	bookmarks := []models.Bookmark{}
	for rows.Next() {
		var b models.Bookmark
		if err := rows.Scan(&b.ID, &b.UserID, &b.URL, &b.Title, &b.Notes,
			&b.IsArchived, &b.SortOrder, &b.CreatedAt, &b.UpdatedAt, &b.ImagesCount); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		bookmarks = append(bookmarks, b)
	}
	return bookmarks, rows.Err()
}

// GetBookmark fetches a single bookmark by id. Returns ErrNotFound if the
// id does not exist.
func (r *PostgresBookmarkRepository) GetBookmark(ctx context.Context, id int64) (*models.Bookmark, error) {
	var b models.Bookmark
	err := scanBookmark(r.DB.QueryRowContext(ctx,
		`SELECT `+bookmarkColumns+` FROM bookmarks WHERE id = $1`, id), &b)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("GetBookmark: %w", err)
	}
	return &b, nil
}

// CreateBookmark inserts a bookmark and returns the created row. Returns
// ErrConflict when the (user_id, url) pair already exists.
func (r *PostgresBookmarkRepository) CreateBookmark(ctx context.Context, nb models.NewBookmark) (*models.Bookmark, error) {
	var b models.Bookmark
	err := scanBookmark(r.DB.QueryRowContext(ctx, `
		INSERT INTO bookmarks (user_id, url, title, notes, is_archived, sort_order)
		VALUES ($1, $2, $3, $4, COALESCE($5, FALSE), $6)
		RETURNING `+bookmarkColumns,
		nb.UserID, nb.URL, nb.Title, nb.Notes, nb.IsArchived, nb.SortOrder), &b)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("CreateBookmark: %w", err)
	}
	return &b, nil
}

// UpdateBookmark applies a partial update: each nil field keeps the stored
// value. updated_at is set on every successful update. Returns ErrNotFound
// if the id does not exist.
func (r *PostgresBookmarkRepository) UpdateBookmark(ctx context.Context, id int64, up models.BookmarkUpdate) (*models.Bookmark, error) {
	var b models.Bookmark
	err := scanBookmark(r.DB.QueryRowContext(ctx, `
		UPDATE bookmarks
		SET url = COALESCE($1, url),
		    title = COALESCE($2, title),
		    notes = COALESCE($3, notes),
		    is_archived = COALESCE($4, is_archived),
		    sort_order = COALESCE($5, sort_order),
		    updated_at = NOW()
		WHERE id = $6
		RETURNING `+bookmarkColumns,
		up.URL, up.Title, up.Notes, up.IsArchived, up.SortOrder, id), &b)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("UpdateBookmark: %w", err)
	}
	return &b, nil
}

// DeleteBookmark removes a bookmark; its images go with it via the foreign
// key cascade. Returns the deleted id, or ErrNotFound.
func (r *PostgresBookmarkRepository) DeleteBookmark(ctx context.Context, id int64) (int64, error) {
	var deleted int64
	err := r.DB.QueryRowContext(ctx,
		`DELETE FROM bookmarks WHERE id = $1 RETURNING id`, id).Scan(&deleted)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("DeleteBookmark: %w", err)
	}
	return deleted, nil
}

// ToggleArchive flips is_archived in place and returns the updated row.
// Returns ErrNotFound if the id does not exist.
func (r *PostgresBookmarkRepository) ToggleArchive(ctx context.Context, id int64) (*models.Bookmark, error) {
	var b models.Bookmark
	err := scanBookmark(r.DB.QueryRowContext(ctx, `
		UPDATE bookmarks
		SET is_archived = NOT is_archived,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING `+bookmarkColumns, id), &b)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ToggleArchive: %w", err)
	}
	return &b, nil
}
