package jobs

import (
	"context"

	"librarium-backend/internal/logger"
)

// ExpireStaleReservations cancels AVAILABLE reservations whose pickup
// window has elapsed without the member checking the book out.
func (jr *JobRunner) ExpireStaleReservations() {
	jr.runWithRecovery("ExpireStaleReservations", func() {
		ctx := context.Background()

		cutoff := jr.clock.Now().AddDate(0, 0, -int(jr.config.Policy.ReservationPickupDays))

		query := `
			UPDATE reservations
			SET status = 'CANCELLED',
			    updated_on = $1
			WHERE status = 'AVAILABLE'
			  AND available_on < $2
			RETURNING id, member_id, book_id
		`

		rows, err := jr.db.QueryContext(ctx, query, jr.clock.Now(), cutoff)
		if err != nil {
			logger.Error("Failed to expire stale reservations", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var id, memberID, bookID int32
			if err := rows.Scan(&id, &memberID, &bookID); err != nil {
				logger.Error("Failed to scan expired reservation", "error", err)
				continue
			}
			count++
			logger.Debug("Cancelled stale reservation",
				"reservation_id", id,
				"member_id", memberID,
				"book_id", bookID)
		}

		if err := rows.Err(); err != nil {
			logger.Error("Error iterating expired reservations", "error", err)
			return
		}

		logger.Info("Expired stale reservations", "count", count)
	})
}
