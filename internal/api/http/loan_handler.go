package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"librarium-backend/internal/domain"
	"librarium-backend/internal/service"
)

type LoanHandler struct {
	loanSvc service.LoanService
}

func NewLoanHandler(loanSvc service.LoanService) *LoanHandler {
	return &LoanHandler{loanSvc: loanSvc}
}

type createLoanRequest struct {
	MemberID int32 `json:"member_id"`
	BookID   int32 `json:"book_id"`
}

type returnLoanResponse struct {
	Loan                *domain.Loan `json:"loan"`
	ReservationNotified bool         `json:"reservation_notified"`
}

type updateDueDateRequest struct {
	DueDate string `json:"due_date"` // yyyy-mm-dd
}

func (h *LoanHandler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	var req createLoanRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.MemberID == 0 {
		req.MemberID = MemberIDFromContext(r.Context())
	}
	loan, err := h.loanSvc.CreateLoan(r.Context(), req.MemberID, req.BookID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, loan)
}

func (h *LoanHandler) ReturnLoan(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	loan, notified, err := h.loanSvc.ReturnLoan(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, returnLoanResponse{Loan: loan, ReservationNotified: notified})
}

func (h *LoanHandler) GetLoan(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	loan, err := h.loanSvc.GetLoan(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loan)
}

func (h *LoanHandler) ListLoans(w http.ResponseWriter, r *http.Request) {
	memberID := queryInt32(r, "member_id", 0)
	page := queryInt32(r, "page", 1)
	pageSize := queryInt32(r, "page_size", 20)

	loans, total, err := h.loanSvc.ListLoans(r.Context(), memberID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"loans":       loans,
		"total_count": total,
	})
}

func (h *LoanHandler) UpdateDueDate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req updateDueDateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	loan, err := h.loanSvc.UpdateDueDate(r.Context(), id, req.DueDate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loan)
}

func (h *LoanHandler) DeleteLoan(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.loanSvc.DeleteLoan(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int32, bool) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id", Code: "BAD_REQUEST"})
		return 0, false
	}
	return int32(id), true
}

func queryInt32(r *http.Request, name string, fallback int32) int32 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || v <= 0 {
		return fallback
	}
	return int32(v)
}
