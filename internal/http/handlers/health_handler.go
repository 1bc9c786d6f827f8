package handlers

import "net/http"

// NewHealthHandler returns GET /health handler.
func NewHealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// NewNotFoundHandler returns the uniform JSON 404 for unmatched routes.
func NewNotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "endpoint not found")
	}
}
