package jds

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/talentforge/talentforge/internal/access"
	"github.com/talentforge/talentforge/internal/platform/db"
	"github.com/talentforge/talentforge/internal/shared"
)

// RepositoryPort defines persistence operations for job descriptions.
type RepositoryPort interface {
	List(ctx context.Context, filter *access.Filter, page shared.Pagination) ([]JobDescription, error)
	Get(ctx context.Context, id uuid.UUID) (*JobDescription, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Create(ctx context.Context, jd JobDescription) (*JobDescription, error)
	Update(ctx context.Context, id uuid.UUID, fields UpdateFields) (*JobDescription, error)
	SetStatus(ctx context.Context, id uuid.UUID, status Status) error
	SetRefinedText(ctx context.Context, id uuid.UUID, refined string, status Status) error
	SetFinalText(ctx context.Context, id uuid.UUID, final string) error
	Assign(ctx context.Context, jdID, managerID uuid.UUID) error
	Unassign(ctx context.Context, jdID, managerID uuid.UUID) error
	Assignments(ctx context.Context, jdID uuid.UUID) ([]Assignment, error)
	RoleName(ctx context.Context, userID uuid.UUID) (string, error)
}

// PGRepository implements RepositoryPort using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const jdColumns = `j.id, j.title, j.role_title, j.text, COALESCE(j.refined_text, ''), COALESCE(j.final_text, ''), j.status, j.created_by, j.created_at, j.updated_at`

func scanJD(row pgx.Row) (*JobDescription, error) {
	var jd JobDescription
	err := row.Scan(&jd.ID, &jd.Title, &jd.RoleTitle, &jd.Text, &jd.RefinedText, &jd.FinalText, &jd.Status, &jd.CreatedBy, &jd.CreatedAt, &jd.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &jd, nil
}

// List returns job descriptions visible through the access filter,
// newest first.
func (r *PGRepository) List(ctx context.Context, filter *access.Filter, page shared.Pagination) ([]JobDescription, error) {
	clause, args := filter.Clause("j", 1)
	query := fmt.Sprintf(`SELECT %s FROM job_descriptions j WHERE %s ORDER BY j.created_at DESC LIMIT $%d OFFSET $%d`,
		jdColumns, clause, len(args)+1, len(args)+2)
	args = append(args, page.PerPage, page.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []JobDescription
	for rows.Next() {
		jd, err := scanJD(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *jd)
	}
	return out, rows.Err()
}

// Get fetches one job description.
func (r *PGRepository) Get(ctx context.Context, id uuid.UUID) (*JobDescription, error) {
	return scanJD(r.pool.QueryRow(ctx, `SELECT `+jdColumns+` FROM job_descriptions j WHERE j.id = $1`, id))
}

// Exists reports whether the record exists regardless of visibility.
func (r *PGRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM job_descriptions WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

// Create inserts a new draft job description.
func (r *PGRepository) Create(ctx context.Context, jd JobDescription) (*JobDescription, error) {
	return scanJD(r.pool.QueryRow(ctx, `
		INSERT INTO job_descriptions (id, title, role_title, text, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING `+strings.ReplaceAll(jdColumns, "j.", "")+``,
		uuid.New(), jd.Title, jd.RoleTitle, jd.Text, StatusDraft, jd.CreatedBy))
}

// Update applies a partial patch and returns the updated record.
func (r *PGRepository) Update(ctx context.Context, id uuid.UUID, fields UpdateFields) (*JobDescription, error) {
	sets := []string{"updated_at = NOW()"}
	args := []any{id}
	add := func(column string, value *string) {
		if value != nil {
			args = append(args, *value)
			sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
		}
	}
	add("title", fields.Title)
	add("role_title", fields.RoleTitle)
	add("text", fields.Text)
	add("refined_text", fields.RefinedText)

	query := fmt.Sprintf(`UPDATE job_descriptions SET %s WHERE id = $1 RETURNING %s`,
		strings.Join(sets, ", "), strings.ReplaceAll(jdColumns, "j.", ""))
	return scanJD(r.pool.QueryRow(ctx, query, args...))
}

// SetStatus moves the workflow status.
func (r *PGRepository) SetStatus(ctx context.Context, id uuid.UUID, status Status) error {
	tag, err := r.pool.Exec(ctx, `UPDATE job_descriptions SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SetRefinedText stores the refiner output and moves the status in one write.
func (r *PGRepository) SetRefinedText(ctx context.Context, id uuid.UUID, refined string, status Status) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE job_descriptions SET refined_text = $2, status = $3, updated_at = NOW() WHERE id = $1`,
		id, refined, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SetFinalText locks in the final text and finalizes the record.
func (r *PGRepository) SetFinalText(ctx context.Context, id uuid.UUID, final string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE job_descriptions SET final_text = $2, status = $3, updated_at = NOW() WHERE id = $1`,
		id, final, StatusFinalized)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Assign links a hiring manager and touches the parent record in one
// transaction. Duplicate assignments are rejected as invalid input via
// the unique constraint.
func (r *PGRepository) Assign(ctx context.Context, jdID, managerID uuid.UUID) error {
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			INSERT INTO jd_hiring_managers (job_description_id, hiring_manager_id, assigned_at)
			VALUES ($1, $2, NOW())`, jdID, managerID); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `UPDATE job_descriptions SET updated_at = NOW() WHERE id = $1`, jdID)
		return err
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: hiring manager already assigned", shared.ErrInvalidInput)
		}
		return err
	}
	return nil
}

// Unassign removes a hiring manager link.
func (r *PGRepository) Unassign(ctx context.Context, jdID, managerID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM jd_hiring_managers WHERE job_description_id = $1 AND hiring_manager_id = $2`, jdID, managerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Assignments lists hiring managers linked to a job description.
func (r *PGRepository) Assignments(ctx context.Context, jdID uuid.UUID) ([]Assignment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT job_description_id, hiring_manager_id, assigned_at
		FROM jd_hiring_managers WHERE job_description_id = $1 ORDER BY assigned_at`, jdID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Assignment
	for rows.Next() {
		var a Assignment
		var at time.Time
		if err := rows.Scan(&a.JobDescriptionID, &a.HiringManagerID, &at); err != nil {
			return nil, err
		}
		a.AssignedAt = at
		out = append(out, a)
	}
	return out, rows.Err()
}

// RoleName returns the raw role name of the user, or an empty string
// when the user does not exist or has no role. Callers parse the raw
// name so spelling variants stay in one place.
func (r *PGRepository) RoleName(ctx context.Context, userID uuid.UUID) (string, error) {
	var name string
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(r.name, '') FROM users u
		LEFT JOIN roles r ON r.id = u.role_id
		WHERE u.id = $1`, userID).Scan(&name)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	return name, err
}

var _ RepositoryPort = (*PGRepository)(nil)
