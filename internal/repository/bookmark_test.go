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
	"github.com/lib/pq"
)

func setupBookmarkMock(t *testing.T) (*PostgresBookmarkRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresBookmarkRepository(db)
	cleanup := func() {
		db.Close()
	}
	return repo, mock, cleanup
}

func bookmarkRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "url", "title", "notes", "is_archived", "sort_order", "created_at", "updated_at",
	})
}

func TestListBookmarks_NoFilters(t *testing.T) {
	repo, mock, cleanup := setupBookmarkMock(t)
	defer cleanup()

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "url", "title", "notes", "is_archived", "sort_order", "created_at", "updated_at", "images_count",
	}).
		AddRow(int64(1), int64(1), "https://a.com", "A", nil, false, int64(1), now, nil, int64(2)).
		AddRow(int64(2), int64(1), "https://b.com", nil, "note", false, nil, now, now, int64(0))

	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY COALESCE(b.sort_order, 999999), b.created_at DESC`)).
		WillReturnRows(rows)

	bookmarks, err := repo.ListBookmarks(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bookmarks) != 2 {
		t.Fatalf("expected 2 bookmarks, got %d", len(bookmarks))
	}
	if bookmarks[0].ImagesCount != 2 {
		t.Errorf("images_count = %d; want 2", bookmarks[0].ImagesCount)
	}
	if bookmarks[0].Title == nil || *bookmarks[0].Title != "A" {
		t.Errorf("unexpected title: %+v", bookmarks[0].Title)
	}
	if bookmarks[1].Title != nil {
		t.Errorf("expected nil title, got %q", *bookmarks[1].Title)
	}
	if bookmarks[1].UpdatedAt == nil {
		t.Error("expected non-nil updated_at on second row")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestListBookmarks_BothFilters(t *testing.T) {
	repo, mock, cleanup := setupBookmarkMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`AND b.user_id = $1 AND b.is_archived = $2`)).
		WithArgs(int64(7), false).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "url", "title", "notes", "is_archived", "sort_order", "created_at", "updated_at", "images_count",
		}))

	userID := int64(7)
	archived := false
	bookmarks, err := repo.ListBookmarks(context.Background(), &userID, &archived)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bookmarks == nil {
		t.Error("expected empty slice, got nil")
	}
	if len(bookmarks) != 0 {
		t.Errorf("expected 0 bookmarks, got %d", len(bookmarks))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestGetBookmark_NotFound(t *testing.T) {
	repo, mock, cleanup := setupBookmarkMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, url, title, notes, is_archived, sort_order, created_at, updated_at FROM bookmarks WHERE id = $1`)).
		WithArgs(int64(42)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetBookmark(context.Background(), 42)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateBookmark_Success(t *testing.T) {
	repo, mock, cleanup := setupBookmarkMock(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO bookmarks (user_id, url, title, notes, is_archived, sort_order)`)).
		WithArgs(int64(1), "https://x.com", "X", nil, nil, nil).
		WillReturnRows(bookmarkRows().
			AddRow(int64(10), int64(1), "https://x.com", "X", nil, false, nil, now, nil))

	title := "X"
	created, err := repo.CreateBookmark(context.Background(), models.NewBookmark{
		UserID: 1,
		URL:    "https://x.com",
		Title:  &title,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 10 {
		t.Errorf("id = %d; want 10", created.ID)
	}
	if created.IsArchived {
		t.Error("new bookmark should not be archived")
	}
	if created.SortOrder != nil {
		t.Errorf("sort_order = %v; want nil", *created.SortOrder)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestCreateBookmark_Conflict(t *testing.T) {
	repo, mock, cleanup := setupBookmarkMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO bookmarks (user_id, url, title, notes, is_archived, sort_order)`)).
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.CreateBookmark(context.Background(), models.NewBookmark{
		UserID: 1,
		URL:    "https://a.com",
	})
	if !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
}

func TestUpdateBookmark_Success(t *testing.T) {
	repo, mock, cleanup := setupBookmarkMock(t)
	defer cleanup()

	now := time.Now()
	title := "renamed"
	mock.ExpectQuery(regexp.QuoteMeta(`SET url = COALESCE($1, url)`)).
		WithArgs(nil, "renamed", nil, nil, nil, int64(3)).
		WillReturnRows(bookmarkRows().
			AddRow(int64(3), int64(1), "https://a.com", "renamed", nil, false, nil, now, now))

	updated, err := repo.UpdateBookmark(context.Background(), 3, models.BookmarkUpdate{Title: &title})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Title == nil || *updated.Title != "renamed" {
		t.Errorf("unexpected title: %+v", updated.Title)
	}
	if updated.UpdatedAt == nil {
		t.Error("expected updated_at to be set")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestUpdateBookmark_NotFound(t *testing.T) {
	repo, mock, cleanup := setupBookmarkMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SET url = COALESCE($1, url)`)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.UpdateBookmark(context.Background(), 99, models.BookmarkUpdate{})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteBookmark_Success(t *testing.T) {
	repo, mock, cleanup := setupBookmarkMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`DELETE FROM bookmarks WHERE id = $1 RETURNING id`)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))

	deleted, err := repo.DeleteBookmark(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != 5 {
		t.Errorf("deleted id = %d; want 5", deleted)
	}
}

func TestDeleteBookmark_NotFound(t *testing.T) {
	repo, mock, cleanup := setupBookmarkMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`DELETE FROM bookmarks WHERE id = $1 RETURNING id`)).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.DeleteBookmark(context.Background(), 99)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestToggleArchive_Success(t *testing.T) {
	repo, mock, cleanup := setupBookmarkMock(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`SET is_archived = NOT is_archived`)).
		WithArgs(int64(4)).
		WillReturnRows(bookmarkRows().
			AddRow(int64(4), int64(1), "https://a.com", nil, nil, true, nil, now, now))

	toggled, err := repo.ToggleArchive(context.Background(), 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !toggled.IsArchived {
		t.Error("expected is_archived = true after toggle")
	}
}
