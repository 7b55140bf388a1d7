package httpapi

import (
	"net/http"

	"librarium-backend/internal/domain"
	"librarium-backend/internal/service"
)

type ReservationHandler struct {
	resSvc service.ReservationService
}

func NewReservationHandler(resSvc service.ReservationService) *ReservationHandler {
	return &ReservationHandler{resSvc: resSvc}
}

type createReservationRequest struct {
	MemberID int32 `json:"member_id"`
	BookID   int32 `json:"book_id"`
}

type updateReservationRequest struct {
	Status domain.ReservationStatus `json:"status"`
}

func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req createReservationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	acting := MemberIDFromContext(r.Context())
	if req.MemberID == 0 {
		req.MemberID = acting
	}
	res, err := h.resSvc.CreateReservation(r.Context(), acting, req.MemberID, req.BookID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *ReservationHandler) ListMyReservations(w http.ResponseWriter, r *http.Request) {
	memberID := MemberIDFromContext(r.Context())
	reservations, err := h.resSvc.ListForMember(r.Context(), memberID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reservations": reservations})
}

func (h *ReservationHandler) ListPendingForBook(w http.ResponseWriter, r *http.Request) {
	bookID, ok := pathID(w, r, "book_id")
	if !ok {
		return
	}
	reservations, err := h.resSvc.ListPendingForBook(r.Context(), bookID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reservations": reservations})
}

func (h *ReservationHandler) GetReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	res, err := h.resSvc.GetReservation(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *ReservationHandler) UpdateReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req updateReservationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.resSvc.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *ReservationHandler) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.resSvc.DeleteReservation(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
