package utils

import "time"

// DaysOverdue returns the number of whole days the return date falls
// after the due date, never negative. A return within the same day as
// the due date counts as on time.
func DaysOverdue(returnDate, dueDate time.Time) int32 {
	if !returnDate.After(dueDate) {
		return 0
	}
	return int32(returnDate.Sub(dueDate).Hours() / 24)
}

// LateFee computes the fine in cents for a loan returned at returnDate.
func LateFee(returnDate, dueDate time.Time, feePerDayCents int32) int32 {
	return DaysOverdue(returnDate, dueDate) * feePerDayCents
}
