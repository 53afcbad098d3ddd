package access

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed ownership and assignment lookups.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreatedJDIDs lists job descriptions created by the user.
func (r *Repository) CreatedJDIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `SELECT id FROM job_descriptions WHERE created_by = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// AssignedJDIDs lists job descriptions the user is assigned to.
func (r *Repository) AssignedJDIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `SELECT job_description_id FROM jd_hiring_managers WHERE hiring_manager_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// IsCreator reports whether the job description was created by the user.
// Uses the (id, created_by) index rather than loading the row.
func (r *Repository) IsCreator(ctx context.Context, jdID, userID uuid.UUID) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM job_descriptions WHERE id = $1 AND created_by = $2)`,
		jdID, userID,
	).Scan(&ok)
	return ok, err
}

// IsAssigned reports whether the user is assigned to the job description.
func (r *Repository) IsAssigned(ctx context.Context, jdID, userID uuid.UUID) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM jd_hiring_managers WHERE job_description_id = $1 AND hiring_manager_id = $2)`,
		jdID, userID,
	).Scan(&ok)
	return ok, err
}
