package personas

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/talentforge/talentforge/internal/shared"
)

// RepositoryPort defines persistence operations for personas.
type RepositoryPort interface {
	Create(ctx context.Context, p Persona) (*Persona, error)
	Get(ctx context.Context, id uuid.UUID) (*Persona, error)
	ListByJD(ctx context.Context, jdID uuid.UUID) ([]Persona, error)
	SaveWeights(ctx context.Context, id uuid.UUID, weights map[string]float64) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PGRepository implements RepositoryPort using PostgreSQL. Weights and
// intervals are stored as JSONB documents.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const personaColumns = `id, job_description_id, name, weights, intervals, created_at, updated_at`

func scanPersona(row pgx.Row) (*Persona, error) {
	var p Persona
	var weightsJSON, intervalsJSON []byte
	err := row.Scan(&p.ID, &p.JobDescriptionID, &p.Name, &weightsJSON, &intervalsJSON, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(weightsJSON, &p.Weights); err != nil {
		return nil, fmt.Errorf("decode weights: %w", err)
	}
	if len(intervalsJSON) > 0 {
		if err := json.Unmarshal(intervalsJSON, &p.Intervals); err != nil {
			return nil, fmt.Errorf("decode intervals: %w", err)
		}
	}
	return &p, nil
}

// Create inserts a persona.
func (r *PGRepository) Create(ctx context.Context, p Persona) (*Persona, error) {
	weightsJSON, err := json.Marshal(p.Weights)
	if err != nil {
		return nil, fmt.Errorf("encode weights: %w", err)
	}
	intervalsJSON, err := json.Marshal(p.Intervals)
	if err != nil {
		return nil, fmt.Errorf("encode intervals: %w", err)
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO personas (id, job_description_id, name, weights, intervals, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING `+personaColumns,
		uuid.New(), p.JobDescriptionID, p.Name, weightsJSON, intervalsJSON)
	created, err := scanPersona(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("%w: persona %q already exists for this job description", shared.ErrInvalidInput, p.Name)
		}
		return nil, err
	}
	return created, nil
}

// Get fetches one persona.
func (r *PGRepository) Get(ctx context.Context, id uuid.UUID) (*Persona, error) {
	return scanPersona(r.pool.QueryRow(ctx, `SELECT `+personaColumns+` FROM personas WHERE id = $1`, id))
}

// ListByJD lists personas for a job description.
func (r *PGRepository) ListByJD(ctx context.Context, jdID uuid.UUID) ([]Persona, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+personaColumns+` FROM personas WHERE job_description_id = $1 ORDER BY created_at`, jdID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Persona
	for rows.Next() {
		p, err := scanPersona(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// SaveWeights replaces the weights document.
func (r *PGRepository) SaveWeights(ctx context.Context, id uuid.UUID, weights map[string]float64) error {
	weightsJSON, err := json.Marshal(weights)
	if err != nil {
		return fmt.Errorf("encode weights: %w", err)
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE personas SET weights = $2, updated_at = NOW() WHERE id = $1`, id, weightsJSON)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a persona.
func (r *PGRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM personas WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ RepositoryPort = (*PGRepository)(nil)
