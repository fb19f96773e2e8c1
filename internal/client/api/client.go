// Package api implements the typed HTTP client for the bookmark server.
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/atinyakov/BookmarkKeeper/internal/models"
)

// Client talks to the bookmark server over HTTP/JSON. One method per
// endpoint; server error messages are folded into the returned error.
type Client struct {
	// BaseURL is the server address without a trailing slash.
	BaseURL string
	// HTTP is the underlying transport.
	HTTP *http.Client
}

// New creates a Client for the given base URL. A nil httpClient falls back
// to http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{BaseURL: baseURL, HTTP: httpClient}
}

// do issues a request and decodes the JSON response into out (if non-nil).
// Responses with a 4xx/5xx status become an error carrying failMsg and the
// server's error message when one is present.
func (c *Client) do(method, path string, body, out any, failMsg string) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: %w", failMsg, err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, rd)
	if err != nil {
		return fmt.Errorf("%s: %w", failMsg, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", failMsg, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var e struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&e); err == nil && e.Error != "" {
			return fmt.Errorf("%s: %s", failMsg, e.Error)
		}
		return errors.New(failMsg)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// GetBookmarks fetches the user's bookmarks. archived is tri-state: nil
// means no archive filter.
func (c *Client) GetBookmarks(userID int64, archived *bool) ([]models.Bookmark, error) {
	path := "/api/bookmarks?user_id=" + strconv.FormatInt(userID, 10)
	if archived != nil {
		path += "&is_archived=" + strconv.FormatBool(*archived)
	}
	var out []models.Bookmark
	err := c.do(http.MethodGet, path, nil, &out, "failed to fetch bookmarks")
	return out, err
}

// GetBookmark fetches a single bookmark by id.
func (c *Client) GetBookmark(id int64) (*models.Bookmark, error) {
	var out models.Bookmark
	err := c.do(http.MethodGet, "/api/bookmarks/"+strconv.FormatInt(id, 10), nil, &out, "failed to fetch bookmark")
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateBookmark stores a new bookmark.
func (c *Client) CreateBookmark(nb models.NewBookmark) (*models.Bookmark, error) {
	var out models.Bookmark
	err := c.do(http.MethodPost, "/api/bookmarks", nb, &out, "failed to create bookmark")
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateBookmark applies a partial update to the bookmark.
func (c *Client) UpdateBookmark(id int64, up models.BookmarkUpdate) (*models.Bookmark, error) {
	var out models.Bookmark
	err := c.do(http.MethodPut, "/api/bookmarks/"+strconv.FormatInt(id, 10), up, &out, "failed to update bookmark")
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteBookmark removes the bookmark and, via the server cascade, its
// images.
func (c *Client) DeleteBookmark(id int64) error {
	return c.do(http.MethodDelete, "/api/bookmarks/"+strconv.FormatInt(id, 10), nil, nil, "failed to delete bookmark")
}

// ToggleArchive flips the bookmark's archive flag.
func (c *Client) ToggleArchive(id int64) (*models.Bookmark, error) {
	var out models.Bookmark
	err := c.do(http.MethodPatch, "/api/bookmarks/"+strconv.FormatInt(id, 10)+"/archive", nil, &out, "failed to toggle archive")
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetImages fetches the bookmark's images in cover order.
func (c *Client) GetImages(bookmarkID int64) ([]models.BookmarkImage, error) {
	var out []models.BookmarkImage
	err := c.do(http.MethodGet, "/api/bookmarks/"+strconv.FormatInt(bookmarkID, 10)+"/images", nil, &out, "failed to fetch images")
	return out, err
}

// CreateImage attaches an image to the bookmark.
func (c *Client) CreateImage(bookmarkID int64, ni models.NewImage) (*models.BookmarkImage, error) {
	var out models.BookmarkImage
	err := c.do(http.MethodPost, "/api/bookmarks/"+strconv.FormatInt(bookmarkID, 10)+"/images", ni, &out, "failed to add image")
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteImage removes a single image.
func (c *Client) DeleteImage(id int64) error {
	return c.do(http.MethodDelete, "/api/images/"+strconv.FormatInt(id, 10), nil, nil, "failed to delete image")
}

// GetUserByID fetches a user's public fields by id.
func (c *Client) GetUserByID(id int64) (*models.User, error) {
	var out models.User
	err := c.do(http.MethodGet, "/api/users/"+strconv.FormatInt(id, 10), nil, &out, "failed to fetch user")
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetUserByEmail fetches a user's public fields by email.
func (c *Client) GetUserByEmail(email string) (*models.User, error) {
	var out models.User
	err := c.do(http.MethodGet, "/api/users/email/"+url.PathEscape(email), nil, &out, "failed to fetch user")
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Health checks the server's health endpoint.
func (c *Client) Health() error {
	return c.do(http.MethodGet, "/health", nil, nil, "API health check failed")
}
