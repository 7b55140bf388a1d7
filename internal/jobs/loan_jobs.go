package jobs

import (
	"context"
	"fmt"

	"librarium-backend/internal/logger"
)

// SendDueDateReminders emails members whose active loans are due within
// the reminder window or already overdue. Delivery failures are logged
// and skipped; the next run retries.
func (jr *JobRunner) SendDueDateReminders() {
	jr.runWithRecovery("SendDueDateReminders", func() {
		ctx := context.Background()

		horizon := jr.clock.Now().AddDate(0, 0, int(jr.config.Policy.DueReminderWindowDays))

		query := `
			SELECT l.id, l.member_id, l.due_date,
			       b.title
			FROM loans l
			JOIN books b ON l.book_id = b.id
			WHERE l.return_date IS NULL
			  AND l.due_date <= $1
		`

		rows, err := jr.db.QueryContext(ctx, query, horizon)
		if err != nil {
			logger.Error("Failed to query loans due soon", "error", err)
			return
		}
		defer rows.Close()

		type reminder struct {
			loanID   int32
			memberID int32
			dueDate  string
			title    string
		}
		var reminders []reminder
		for rows.Next() {
			var rem reminder
			if err := rows.Scan(&rem.loanID, &rem.memberID, &rem.dueDate, &rem.title); err != nil {
				logger.Error("Failed to scan loan due soon", "error", err)
				continue
			}
			reminders = append(reminders, rem)
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating loans due soon", "error", err)
			return
		}

		sent := 0
		for _, rem := range reminders {
			message := fmt.Sprintf(
				"This is a reminder that your loan of %q (loan %d) is due on %s. Please return it on time to avoid late fees.",
				rem.title, rem.loanID, rem.dueDate)
			if err := jr.gateway.NotifyUser(ctx, rem.memberID, "Loan Due Reminder", message); err != nil {
				logger.Error("Failed to send due date reminder",
					"loan_id", rem.loanID,
					"member_id", rem.memberID,
					"error", err)
				continue
			}
			sent++
		}

		logger.Info("Sent due date reminders", "count", sent, "candidates", len(reminders))
	})
}
