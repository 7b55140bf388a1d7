package postgres

import (
	"context"
	"database/sql"

	"librarium-backend/internal/domain"
	"librarium-backend/internal/repository"
)

type activityLogRepository struct {
	db *sql.DB
}

func NewActivityLogRepository(db *sql.DB) repository.ActivityLogRepository {
	return &activityLogRepository{db: db}
}

func (r *activityLogRepository) Create(ctx context.Context, e *domain.ActivityLogEntry) error {
	query := `INSERT INTO activity_log (id, member_id, action, detail, created_on)
	          VALUES ($1, $2, $3, $4, $5)`
	_, err := q(ctx, r.db).ExecContext(ctx, query, e.ID, e.MemberID, e.Action, e.Detail, e.CreatedOn)
	return err
}
