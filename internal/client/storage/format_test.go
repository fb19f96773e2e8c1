package storage_test

import (
	"testing"
	"time"

	"github.com/atinyakov/BookmarkKeeper/internal/client/storage"
	"github.com/stretchr/testify/assert"
)

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "N/A", storage.FormatDate(nil))

	var zero time.Time
	assert.Equal(t, "N/A", storage.FormatDate(&zero))

	ts := time.Date(2024, 3, 7, 9, 5, 0, 0, time.UTC)
	assert.Equal(t, "03/07/2024 09:05", storage.FormatDate(&ts))

	evening := time.Date(2024, 11, 23, 18, 45, 59, 0, time.UTC)
	assert.Equal(t, "11/23/2024 18:45", storage.FormatDate(&evening))
}
