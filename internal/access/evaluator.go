package access

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// RepositoryPort supplies the ownership and assignment lookups the evaluator
// needs. Production uses the pgx-backed Repository; tests use an in-memory
// fake.
type RepositoryPort interface {
	// CreatedJDIDs lists job descriptions created by the user.
	CreatedJDIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	// AssignedJDIDs lists job descriptions the user is assigned to as a
	// hiring manager.
	AssignedJDIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	// IsCreator reports whether one job description was created by the user.
	IsCreator(ctx context.Context, jdID, userID uuid.UUID) (bool, error)
	// IsAssigned reports whether the user is assigned to one job description.
	IsAssigned(ctx context.Context, jdID, userID uuid.UUID) (bool, error)
}

// Evaluator answers the access question for job descriptions. It never
// answers existence; callers must check that a resource exists before asking
// whether it may be accessed.
type Evaluator struct {
	repo RepositoryPort
}

// NewEvaluator constructs an Evaluator.
func NewEvaluator(repo RepositoryPort) *Evaluator {
	return &Evaluator{repo: repo}
}

// AccessibleJDs evaluates the bulk scope for a user. Admin and recruiter get
// Unrestricted; hiring managers get the union of created and assigned IDs;
// every other role degrades to Denied, never to allow.
func (e *Evaluator) AccessibleJDs(ctx context.Context, user User) (Scope, error) {
	switch user.Role {
	case RoleAdmin, RoleRecruiter:
		return Unrestricted(), nil
	case RoleHiringManager:
		var created, assigned []uuid.UUID
		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			ids, err := e.repo.CreatedJDIDs(ctx, user.ID)
			if err != nil {
				return fmt.Errorf("access: created jd ids: %w", err)
			}
			created = ids
			return nil
		})
		g.Go(func() error {
			ids, err := e.repo.AssignedJDIDs(ctx, user.ID)
			if err != nil {
				return fmt.Errorf("access: assigned jd ids: %w", err)
			}
			assigned = ids
			return nil
		})
		if err := g.Wait(); err != nil {
			return Scope{}, err
		}
		return RestrictedTo(append(created, assigned...)), nil
	default:
		return Denied(), nil
	}
}

// CanAccess is the point check for one job description. It avoids enumerating
// the full scope: two short-circuited existence lookups, creator first,
// assignment second. Results match AccessibleJDs membership exactly.
func (e *Evaluator) CanAccess(ctx context.Context, user User, jdID uuid.UUID) (bool, error) {
	switch user.Role {
	case RoleAdmin, RoleRecruiter:
		return true, nil
	case RoleHiringManager:
		ok, err := e.repo.IsCreator(ctx, jdID, user.ID)
		if err != nil {
			return false, fmt.Errorf("access: creator check: %w", err)
		}
		if ok {
			return true, nil
		}
		ok, err = e.repo.IsAssigned(ctx, jdID, user.ID)
		if err != nil {
			return false, fmt.Errorf("access: assignment check: %w", err)
		}
		return ok, nil
	default:
		return false, nil
	}
}
