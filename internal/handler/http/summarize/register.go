package summarize

import (
	"net/http"

	"vidbrief/internal/usecase/summary"
)

// Register registers the summarization endpoint with the given mux.
func Register(mux *http.ServeMux, svc *summary.Service) {
	mux.Handle("POST /api/summarize", Handler{Svc: svc})
}
