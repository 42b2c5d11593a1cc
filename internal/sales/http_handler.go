package sales

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"bokhandeln/internal/httpx"
	"bokhandeln/internal/inventory"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type sellRequest struct {
	ISBN   string          `json:"isbn" validate:"required"`
	Price  decimal.Decimal `json:"price"`
	Seller string          `json:"seller" validate:"required"`
}

type sellBatchRequest struct {
	ISBNs  []string `json:"isbns" validate:"required,min=1"`
	Seller string   `json:"seller" validate:"required"`
}

// Sell handles POST /sales
func (h *HTTPHandler) Sell(w http.ResponseWriter, r *http.Request) {
	var req sellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid JSON body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); details != nil {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid request", details)
		return
	}

	sale, err := h.service.Sell(r.Context(), req.ISBN, req.Price, req.Seller)
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.JSONSuccessCreated(w, sale)
}

// SellBatch handles POST /sales/batch. All items sell or none do.
func (h *HTTPHandler) SellBatch(w http.ResponseWriter, r *http.Request) {
	var req sellBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid JSON body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); details != nil {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid request", details)
		return
	}

	salesMade, err := h.service.SellBatch(r.Context(), req.ISBNs, req.Seller)
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.JSONSuccessCreated(w, salesMade)
}

// List handles GET /sales
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.JSONSuccess(w, out, map[string]any{"total": len(out)})
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrSellerRequired):
		httpx.JSONError(w, http.StatusBadRequest, "SELLER_REQUIRED", "A seller must be given", nil)
	case errors.Is(err, inventory.ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, "NOT_FOUND", "ISBN not in inventory", nil)
	case errors.Is(err, inventory.ErrDepleted):
		httpx.JSONError(w, http.StatusConflict, "OUT_OF_STOCK", "No copies left to sell", nil)
	default:
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}
