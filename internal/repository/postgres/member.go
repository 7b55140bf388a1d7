package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"librarium-backend/internal/domain"
	"librarium-backend/internal/repository"
)

type memberRepository struct {
	db *sql.DB
}

func NewMemberRepository(db *sql.DB) repository.MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) Create(ctx context.Context, m *domain.Member) error {
	query := `INSERT INTO members (name, email, created_on) VALUES ($1, $2, $3) RETURNING id`
	return q(ctx, r.db).QueryRowContext(ctx, query, m.Name, m.Email, time.Now()).Scan(&m.ID)
}

func (r *memberRepository) GetByID(ctx context.Context, id int32) (*domain.Member, error) {
	m := &domain.Member{}
	var createdOn time.Time
	query := `SELECT id, name, email, created_on FROM members WHERE id = $1`
	err := q(ctx, r.db).QueryRowContext(ctx, query, id).Scan(&m.ID, &m.Name, &m.Email, &createdOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	m.CreatedOn = createdOn.Format(time.RFC3339)
	return m, nil
}

func (r *memberRepository) Exists(ctx context.Context, id int32) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM members WHERE id = $1)`
	err := q(ctx, r.db).QueryRowContext(ctx, query, id).Scan(&exists)
	return exists, err
}
