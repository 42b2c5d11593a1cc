package metadata

import (
	"errors"
	"net/http"

	"bokhandeln/internal/httpx"
	"bokhandeln/internal/isbn"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// Resolve handles GET /metadata/{isbn}. The path segment may be any
// human-typed ISBN form; it is canonicalized before resolution.
func (h *HTTPHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	canonical, err := isbn.Canonicalize(r.PathValue("isbn"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "INVALID_ISBN", "Not a valid ISBN", nil)
		return
	}

	res, err := h.service.Resolve(r.Context(), canonical)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			httpx.JSONError(w, http.StatusNotFound, "METADATA_NOT_FOUND", "No record for this ISBN; enter details manually", nil)
		case errors.Is(err, ErrLookupFailed):
			httpx.JSONError(w, http.StatusBadGateway, "LOOKUP_FAILED", "Metadata provider unavailable, try again", nil)
		default:
			httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		}
		return
	}
	httpx.JSONSuccess(w, res, nil)
}
