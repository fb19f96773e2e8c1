// Package http provides the HTTP handlers and routing for the bookmark API.
package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// errorResponse is the only shape error bodies take. Internal detail stays
// in the server log; responses carry a generic message.
type errorResponse struct {
	Error string `json:"error"`
}

// deleteResponse confirms a successful delete.
type deleteResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// writeJSON serializes v as the response body with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// urlParamID parses the {id} route parameter. ok is false when the value is
// not a valid integer, in which case no row can match it.
func urlParamID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}
