package domain

import "time"

type Loan struct {
	ID           int32      `json:"id"`
	MemberID     int32      `json:"member_id"`
	BookID       int32      `json:"book_id"`
	StockID      int32      `json:"stock_id"`
	CheckoutDate time.Time  `json:"checkout_date"`
	DueDate      time.Time  `json:"due_date"`
	ReturnDate   *time.Time `json:"return_date,omitempty"`
	FineCents    int32      `json:"fine_cents"`
	CreatedOn    string     `json:"created_on"`
	UpdatedOn    string     `json:"updated_on"`
}

// Active reports whether the loan is still outstanding. A loan moves
// from active to returned exactly once; there is no way back.
func (l *Loan) Active() bool {
	return l.ReturnDate == nil
}
