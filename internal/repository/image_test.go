package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/atinyakov/BookmarkKeeper/internal/models"
)

func setupImageMock(t *testing.T) (*PostgresImageRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresImageRepository(db)
	cleanup := func() {
		db.Close()
	}
	return repo, mock, cleanup
}

func imageRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "bookmark_id", "image_url", "content_type", "width_px", "height_px", "size_bytes", "caption", "position", "created_at",
	})
}

func TestListImages_CoverOrder(t *testing.T) {
	repo, mock, cleanup := setupImageMock(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY position ASC NULLS LAST, created_at ASC`)).
		WithArgs(int64(1)).
		WillReturnRows(imageRows().
			AddRow(int64(11), int64(1), "data:image/png;base64,AAAA", "image/png", int64(1), int64(1), int64(4), nil, int64(0), now).
			AddRow(int64(12), int64(1), "data:image/jpeg;base64,BBBB", "image/jpeg", nil, nil, nil, "second", nil, now))

	images, err := repo.ListImages(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(images) != 2 {
		t.Fatalf("expected 2 images, got %d", len(images))
	}
	if images[0].ID != 11 {
		t.Errorf("cover image id = %d; want 11", images[0].ID)
	}
	if images[1].Caption == nil || *images[1].Caption != "second" {
		t.Errorf("unexpected caption: %+v", images[1].Caption)
	}
	if images[1].Position != nil {
		t.Errorf("position = %v; want nil", *images[1].Position)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestCreateImage_Success(t *testing.T) {
	repo, mock, cleanup := setupImageMock(t)
	defer cleanup()

	now := time.Now()
	size := int64(4)
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO bookmark_images`)).
		WithArgs(int64(1), "data:image/png;base64,AAAA", "image/png", nil, nil, int64(4), nil, nil).
		WillReturnRows(imageRows().
			AddRow(int64(20), int64(1), "data:image/png;base64,AAAA", "image/png", nil, nil, int64(4), nil, nil, now))

	created, err := repo.CreateImage(context.Background(), 1, models.NewImage{
		ImageURL:    "data:image/png;base64,AAAA",
		ContentType: "image/png",
		SizeBytes:   &size,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 20 {
		t.Errorf("id = %d; want 20", created.ID)
	}
	if created.BookmarkID != 1 {
		t.Errorf("bookmark_id = %d; want 1", created.BookmarkID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestDeleteImage_NotFound(t *testing.T) {
	repo, mock, cleanup := setupImageMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`DELETE FROM bookmark_images WHERE id = $1 RETURNING id`)).
		WithArgs(int64(77)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.DeleteImage(context.Background(), 77)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
