package content

import (
	"net/http"

	contentUC "content-hub/internal/usecase/content"
)

// Register registers the content routes. Role checks happen in the auth middleware
// wrapped around the mux.
func Register(mux *http.ServeMux, svc *contentUC.Service) {
	mux.Handle("GET    /content", ListHandler{svc})
	mux.Handle("GET    /content/count-by-category", CountHandler{svc})
	mux.Handle("GET    /content/{id}", GetHandler{svc})

	mux.Handle("POST   /content", CreateHandler{svc})
	mux.Handle("PATCH  /content/{id}", UpdateHandler{svc})
	mux.Handle("DELETE /content/{id}", DeleteHandler{svc})
}
