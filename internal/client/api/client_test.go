package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/atinyakov/BookmarkKeeper/internal/client/api"
	"github.com/atinyakov/BookmarkKeeper/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetBookmarks_BuildsQuery(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode([]models.Bookmark{{ID: 1, URL: "https://a.com"}})
	}))
	defer srv.Close()

	c := api.New(srv.URL, nil)

	archived := false
	bookmarks, err := c.GetBookmarks(7, &archived)
	require.NoError(t, err)
	assert.Equal(t, "/api/bookmarks", gotPath)
	assert.Equal(t, "user_id=7&is_archived=false", gotQuery)
	require.Len(t, bookmarks, 1)
	assert.Equal(t, int64(1), bookmarks[0].ID)

	_, err = c.GetBookmarks(7, nil)
	require.NoError(t, err)
	assert.Equal(t, "user_id=7", gotQuery)
}

func TestCreateBookmark_SendsJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var nb models.NewBookmark
		require.NoError(t, json.NewDecoder(r.Body).Decode(&nb))
		assert.Equal(t, int64(1), nb.UserID)
		assert.Equal(t, "https://a.com", nb.URL)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.Bookmark{ID: 5, UserID: 1, URL: "https://a.com"})
	}))
	defer srv.Close()

	c := api.New(srv.URL, nil)

	created, err := c.CreateBookmark(models.NewBookmark{UserID: 1, URL: "https://a.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), created.ID)
}

func TestCreateBookmark_FoldsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "Bookmark URL already exists for this user"})
	}))
	defer srv.Close()

	c := api.New(srv.URL, nil)

	_, err := c.CreateBookmark(models.NewBookmark{UserID: 1, URL: "https://a.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create bookmark")
	assert.Contains(t, err.Error(), "Bookmark URL already exists for this user")
}

func TestDeleteBookmark_ErrorWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := api.New(srv.URL, nil)

	err := c.DeleteBookmark(3)
	require.Error(t, err)
	assert.Equal(t, "failed to delete bookmark", err.Error())
}

func TestToggleArchive_UsesPatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/bookmarks/4/archive", r.URL.Path)
		json.NewEncoder(w).Encode(models.Bookmark{ID: 4, IsArchived: true})
	}))
	defer srv.Close()

	c := api.New(srv.URL, nil)

	toggled, err := c.ToggleArchive(4)
	require.NoError(t, err)
	assert.True(t, toggled.IsArchived)
}

func TestGetUserByEmail_EscapesPath(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		json.NewEncoder(w).Encode(models.User{ID: 1, Email: "demo@bookmarks.local"})
	}))
	defer srv.Close()

	c := api.New(srv.URL, nil)

	user, err := c.GetUserByEmail("demo@bookmarks.local")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "/api/users/email/demo@bookmarks.local", gotPath)
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer srv.Close()

	require.NoError(t, api.New(srv.URL, nil).Health())

	down := api.New("http://127.0.0.1:1", nil)
	assert.Error(t, down.Health())
}
