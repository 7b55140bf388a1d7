package domain

import "time"

// ActivityLogEntry is a free-form audit line for a member action,
// written in the same transaction as the lifecycle change it records.
type ActivityLogEntry struct {
	ID        string    `json:"id"`
	MemberID  int32     `json:"member_id"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail"`
	CreatedOn time.Time `json:"created_on"`
}
