package domain

import "time"

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "PENDING"
	ReservationStatusAvailable ReservationStatus = "AVAILABLE"
	ReservationStatusCompleted ReservationStatus = "COMPLETED"
	ReservationStatusCancelled ReservationStatus = "CANCELLED"
)

// Reservation is a place in the FIFO queue for a book. It is created
// PENDING, promoted to AVAILABLE when a copy comes back, COMPLETED when
// the reserving member checks the copy out, or CANCELLED by the expiry
// job. All transitions are one-way.
type Reservation struct {
	ID          int32             `json:"id"`
	MemberID    int32             `json:"member_id"`
	BookID      int32             `json:"book_id"`
	Status      ReservationStatus `json:"status"`
	StockID     *int32            `json:"stock_id,omitempty"`
	AvailableOn *time.Time        `json:"available_on,omitempty"`
	CreatedOn   time.Time         `json:"created_on"`
	UpdatedOn   time.Time         `json:"updated_on"`
}

// ActiveStatus reports whether a status counts against the one active
// reservation per (member, book) rule.
func (s ReservationStatus) Active() bool {
	return s == ReservationStatusPending || s == ReservationStatusAvailable
}
