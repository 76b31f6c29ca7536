package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/xavierca1/ligue-leads/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

// Create inserts one lead row and scans the generated id and created_at back
// into the lead. The table carries a unique index on email (leads_email_key);
// a violation maps to entity.ErrDuplicateLead so the caller sees cross-session
// duplicates the in-memory session check cannot.
func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (name, email, industry, submitted_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.DB.QueryRowContext(
		ctx,
		query,
		lead.Name,
		lead.Email,
		lead.Industry,
		lead.SubmittedAt,
	).Scan(
		&lead.ID,
		&lead.CreatedAt,
	)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return entity.ErrDuplicateLead
	}

	return err
}

// CountByEmail reports how many rows exist for an email across all sessions.
// The submission flow never calls this (the unique index is what guards the
// insert); it backs the pre-submit duplicate probe endpoint.
func (r *LeadRepository) CountByEmail(ctx context.Context, email string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM leads WHERE email = $1`, email).Scan(&count)
	return count, err
}
