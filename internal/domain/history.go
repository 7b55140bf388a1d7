package domain

import "time"

type HistoryEventType string

const (
	HistoryEventLoan   HistoryEventType = "Loan"
	HistoryEventReturn HistoryEventType = "Return"
)

// HistoryEvent is an append-only record of a lifecycle transition.
type HistoryEvent struct {
	ID            int32            `json:"id"`
	MemberID      int32            `json:"member_id"`
	EventType     HistoryEventType `json:"event_type"`
	LoanID        *int32           `json:"loan_id,omitempty"`
	ReservationID *int32           `json:"reservation_id,omitempty"`
	CreatedOn     time.Time        `json:"created_on"`
}
