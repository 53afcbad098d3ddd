package roles

import (
	"context"

	"github.com/google/uuid"
)

// RepositoryPort defines data access methods for roles.
type RepositoryPort interface {
	ListRoles(ctx context.Context) ([]Role, error)
	GetByName(ctx context.Context, name string) (*Role, error)
	Get(ctx context.Context, id uuid.UUID) (*Role, error)
}

// Service handles role business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// ListRoles returns all roles.
func (s *Service) ListRoles(ctx context.Context) ([]Role, error) {
	return s.repo.ListRoles(ctx)
}

// GetByName resolves a role by name.
func (s *Service) GetByName(ctx context.Context, name string) (*Role, error) {
	return s.repo.GetByName(ctx, name)
}
