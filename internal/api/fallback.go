package api

import (
	"net/http"

	"github.com/taskly/taskly-api/internal/api/shared"
)

// BannerResponse is served at the API root.
type BannerResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Banner returns a handler that identifies the service at GET /.
func Banner(name, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, BannerResponse{Name: name, Version: version})
	}
}

// NotFound answers requests for routes that do not exist.
func NotFound(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithError(w, r, http.StatusNotFound, msgRouteDoesNotExist)
}

// MethodNotAllowed answers requests using a method the route does not serve.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithError(w, r, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
}
