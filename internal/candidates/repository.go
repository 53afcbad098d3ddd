package candidates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/talentforge/talentforge/internal/shared"
)

// RepositoryPort defines persistence operations for candidates.
type RepositoryPort interface {
	Create(ctx context.Context, c Candidate) (*Candidate, error)
	Get(ctx context.Context, id uuid.UUID) (*Candidate, error)
	ListByJD(ctx context.Context, jdID uuid.UUID) ([]Candidate, error)
	SaveScores(ctx context.Context, id uuid.UUID, scores map[string]float64, overall float64) error
	SetStatus(ctx context.Context, id uuid.UUID, status Status) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PGRepository implements RepositoryPort using PostgreSQL. Scores are
// stored as a JSONB document.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const candidateColumns = `id, job_description_id, name, email, scores, overall_score, status, created_at, updated_at`

func scanCandidate(row pgx.Row) (*Candidate, error) {
	var c Candidate
	var scoresJSON []byte
	err := row.Scan(&c.ID, &c.JobDescriptionID, &c.Name, &c.Email, &scoresJSON, &c.Overall, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if len(scoresJSON) > 0 {
		if err := json.Unmarshal(scoresJSON, &c.Scores); err != nil {
			return nil, fmt.Errorf("decode scores: %w", err)
		}
	}
	return &c, nil
}

// Create inserts a candidate.
func (r *PGRepository) Create(ctx context.Context, c Candidate) (*Candidate, error) {
	scoresJSON, err := json.Marshal(c.Scores)
	if err != nil {
		return nil, fmt.Errorf("encode scores: %w", err)
	}
	return scanCandidate(r.pool.QueryRow(ctx, `
		INSERT INTO candidates (id, job_description_id, name, email, scores, overall_score, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING `+candidateColumns,
		uuid.New(), c.JobDescriptionID, c.Name, c.Email, scoresJSON, c.Overall, StatusApplied))
}

// Get fetches one candidate.
func (r *PGRepository) Get(ctx context.Context, id uuid.UUID) (*Candidate, error) {
	return scanCandidate(r.pool.QueryRow(ctx, `SELECT `+candidateColumns+` FROM candidates WHERE id = $1`, id))
}

// ListByJD lists candidates for a job description, best score first.
func (r *PGRepository) ListByJD(ctx context.Context, jdID uuid.UUID) ([]Candidate, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+candidateColumns+` FROM candidates WHERE job_description_id = $1 ORDER BY overall_score DESC, created_at`, jdID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// SaveScores replaces the score document and the computed aggregate.
func (r *PGRepository) SaveScores(ctx context.Context, id uuid.UUID, scores map[string]float64, overall float64) error {
	scoresJSON, err := json.Marshal(scores)
	if err != nil {
		return fmt.Errorf("encode scores: %w", err)
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE candidates SET scores = $2, overall_score = $3, updated_at = NOW() WHERE id = $1`,
		id, scoresJSON, overall)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SetStatus moves the pipeline status.
func (r *PGRepository) SetStatus(ctx context.Context, id uuid.UUID, status Status) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE candidates SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a candidate.
func (r *PGRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM candidates WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ RepositoryPort = (*PGRepository)(nil)
