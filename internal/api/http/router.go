package httpapi

import (
	"github.com/gorilla/mux"

	"librarium-backend/internal/security"
)

// NewRouter wires all handlers under /api/v1 behind the request-id,
// logging and auth middleware.
func NewRouter(
	tm security.TokenManager,
	loans *LoanHandler,
	reservations *ReservationHandler,
	stock *StockHandler,
	notifications *NotificationHandler,
) *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestID)
	r.Use(Logging)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(Auth(tm))

	api.HandleFunc("/loans", loans.CreateLoan).Methods("POST")
	api.HandleFunc("/loans", loans.ListLoans).Methods("GET")
	api.HandleFunc("/loans/{id:[0-9]+}", loans.GetLoan).Methods("GET")
	api.HandleFunc("/loans/{id:[0-9]+}/return", loans.ReturnLoan).Methods("POST")
	api.HandleFunc("/loans/{id:[0-9]+}/due-date", loans.UpdateDueDate).Methods("PATCH")
	api.HandleFunc("/loans/{id:[0-9]+}", loans.DeleteLoan).Methods("DELETE")

	api.HandleFunc("/reservations", reservations.CreateReservation).Methods("POST")
	api.HandleFunc("/reservations", reservations.ListMyReservations).Methods("GET")
	api.HandleFunc("/books/{book_id:[0-9]+}/reservations", reservations.ListPendingForBook).Methods("GET")
	api.HandleFunc("/reservations/{id:[0-9]+}", reservations.GetReservation).Methods("GET")
	api.HandleFunc("/reservations/{id:[0-9]+}", reservations.UpdateReservation).Methods("PATCH")
	api.HandleFunc("/reservations/{id:[0-9]+}", reservations.DeleteReservation).Methods("DELETE")

	api.HandleFunc("/stock", stock.CreateStock).Methods("POST")
	api.HandleFunc("/books/{book_id:[0-9]+}/stock", stock.GetStockForBook).Methods("GET")
	api.HandleFunc("/stock/{id:[0-9]+}/adjust", stock.AdjustStock).Methods("POST")

	api.HandleFunc("/notifications", notifications.ListNotifications).Methods("GET")
	api.HandleFunc("/notifications/{id:[0-9]+}/read", notifications.MarkAsRead).Methods("POST")

	return r
}
