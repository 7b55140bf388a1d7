package httpapi

import (
	"net/http"

	"librarium-backend/internal/service"
)

type StockHandler struct {
	stockSvc service.StockService
}

func NewStockHandler(stockSvc service.StockService) *StockHandler {
	return &StockHandler{stockSvc: stockSvc}
}

type createStockRequest struct {
	BookID   int32 `json:"book_id"`
	Quantity int32 `json:"quantity"`
}

type adjustStockRequest struct {
	Delta int32 `json:"delta"`
}

func (h *StockHandler) CreateStock(w http.ResponseWriter, r *http.Request) {
	var req createStockRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	rec, err := h.stockSvc.CreateStock(r.Context(), req.BookID, req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (h *StockHandler) GetStockForBook(w http.ResponseWriter, r *http.Request) {
	bookID, ok := pathID(w, r, "book_id")
	if !ok {
		return
	}
	rec, err := h.stockSvc.GetByBook(r.Context(), bookID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *StockHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req adjustStockRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	rec, err := h.stockSvc.AdjustBy(r.Context(), id, req.Delta)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
