package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atinyakov/BookmarkKeeper/internal/models"
)

// imageColumns is the scan list shared by every bookmark_images query.
const imageColumns = `id, bookmark_id, image_url, content_type, width_px, height_px, size_bytes, caption, position, created_at`

// PostgresImageRepository implements bookmark image operations against a
// PostgreSQL database.
type PostgresImageRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresImageRepository creates a new PostgresImageRepository using
// the provided *sql.DB.
func NewPostgresImageRepository(db *sql.DB) *PostgresImageRepository {
	return &PostgresImageRepository{DB: db}
}

func scanImage(dest interface {
	Scan(dest ...any) error
}, img *models.BookmarkImage) error {
	return dest.Scan(&img.ID, &img.BookmarkID, &img.ImageURL, &img.ContentType,
		&img.WidthPx, &img.HeightPx, &img.SizeBytes, &img.Caption, &img.Position, &img.CreatedAt)
}

// ListImages fetches all images of a bookmark ordered by position ascending
// (nulls last) then created_at ascending, so the first row is the cover
// image.
func (r *PostgresImageRepository) ListImages(ctx context.Context, bookmarkID int64) ([]models.BookmarkImage, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+imageColumns+` FROM bookmark_images
		WHERE bookmark_id = $1
		ORDER BY position ASC NULLS LAST, created_at ASC`, bookmarkID)
	if err != nil {
		return nil, fmt.Errorf("ListImages: %w", err)
	}
	defer rows.Close()

	images := []models.BookmarkImage{}
	for rows.Next() {
		var img models.BookmarkImage
		if err := scanImage(rows, &img); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// CreateImage inserts an image for the given bookmark and returns the
// created row.
func (r *PostgresImageRepository) CreateImage(ctx context.Context, bookmarkID int64, ni models.NewImage) (*models.BookmarkImage, error) {
	var img models.BookmarkImage
	err := scanImage(r.DB.QueryRowContext(ctx, `
		INSERT INTO bookmark_images
		(bookmark_id, image_url, content_type, width_px, height_px, size_bytes, caption, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+imageColumns,
		bookmarkID, ni.ImageURL, ni.ContentType, ni.WidthPx, ni.HeightPx,
		ni.SizeBytes, ni.Caption, ni.Position), &img)
	if err != nil {
		return nil, fmt.Errorf("CreateImage: %w", err)
	}
	return &img, nil
}

// DeleteImage removes a single image by id. Returns the deleted id, or
// ErrNotFound.
func (r *PostgresImageRepository) DeleteImage(ctx context.Context, id int64) (int64, error) {
	var deleted int64
	err := r.DB.QueryRowContext(ctx,
		`DELETE FROM bookmark_images WHERE id = $1 RETURNING id`, id).Scan(&deleted)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("DeleteImage: %w", err)
	}
	return deleted, nil
}
