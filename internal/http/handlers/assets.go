package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// StaticFile serves stored cover images by key.
func (a *App) StaticFile(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	path, err := a.Covers.Open(key)
	if err != nil {
		a.error(w, http.StatusNotFound, "not_found", "file not found")
		return
	}
	http.ServeFile(w, r, path)
}
