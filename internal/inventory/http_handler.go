package inventory

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"bokhandeln/internal/httpx"
	"bokhandeln/internal/isbn"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type upsertRequest struct {
	ISBN      string          `json:"isbn" validate:"required,isbn"`
	Author    string          `json:"author" validate:"required"`
	Title     string          `json:"title" validate:"required"`
	Language  string          `json:"language"`
	Year      *int            `json:"year"`
	BuyPrice  decimal.Decimal `json:"buy_price"`
	SellPrice decimal.Decimal `json:"sell_price"`
	Shelf     string          `json:"shelf"`
	Cover     string          `json:"cover"`
	Increment *int            `json:"increment" validate:"omitempty,gte=0"`
}

// List handles GET /inventory. The q parameter filters on author/title
// substring, like the desk's search box.
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.JSONSuccess(w, items, map[string]any{"total": len(items)})
}

// Get handles GET /inventory/{isbn}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.Get(r.Context(), r.PathValue("isbn"))
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.JSONSuccess(w, item, nil)
}

// Upsert handles POST /inventory. A missing increment means 1 (the "add a
// copy" flow); increment 0 is a pure catalog edit.
func (h *HTTPHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req upsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid JSON body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); details != nil {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid request", details)
		return
	}

	canonical, err := isbn.Canonicalize(req.ISBN)
	if err != nil {
		writeError(w, err)
		return
	}

	increment := 1
	if req.Increment != nil {
		increment = *req.Increment
	}

	item := Item{
		ISBN:      canonical,
		Author:    req.Author,
		Title:     req.Title,
		Language:  req.Language,
		Year:      req.Year,
		BuyPrice:  req.BuyPrice,
		SellPrice: req.SellPrice,
		Shelf:     req.Shelf,
		Cover:     req.Cover,
	}
	if err := h.service.Upsert(r.Context(), &item, increment); err != nil {
		writeError(w, err)
		return
	}

	stored, err := h.service.Get(r.Context(), canonical)
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.JSONSuccessCreated(w, stored)
}

// IncrementOne handles POST /inventory/{isbn}/increment
func (h *HTTPHandler) IncrementOne(w http.ResponseWriter, r *http.Request) {
	if err := h.service.IncrementOne(r.Context(), r.PathValue("isbn")); err != nil {
		writeError(w, err)
		return
	}
	httpx.JSONSuccessNoContent(w)
}

// DecrementOne handles POST /inventory/{isbn}/decrement
func (h *HTTPHandler) DecrementOne(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DecrementOne(r.Context(), r.PathValue("isbn")); err != nil {
		writeError(w, err)
		return
	}
	httpx.JSONSuccessNoContent(w)
}

// Delete handles DELETE /inventory/{isbn}. Sales history is untouched.
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.PathValue("isbn")); err != nil {
		writeError(w, err)
		return
	}
	httpx.JSONSuccessNoContent(w)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, isbn.ErrInvalid):
		httpx.JSONError(w, http.StatusBadRequest, "INVALID_ISBN", "Not a valid ISBN", nil)
	case errors.Is(err, ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, "NOT_FOUND", "ISBN not in inventory", nil)
	case errors.Is(err, ErrDepleted):
		httpx.JSONError(w, http.StatusConflict, "OUT_OF_STOCK", "No copies left to remove", nil)
	default:
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}
