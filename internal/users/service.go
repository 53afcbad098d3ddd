package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/talentforge/talentforge/internal/shared"
)

// RepositoryPort defines data access methods for users.
type RepositoryPort interface {
	ListUsers(ctx context.Context) ([]User, error)
	Get(ctx context.Context, id uuid.UUID) (*User, error)
	Create(ctx context.Context, u User, passwordHash string) (*User, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

// WelcomeMailer enqueues a welcome email for a newly created account.
// Implemented by the jobs package; nil disables the email.
type WelcomeMailer interface {
	EnqueueWelcomeEmail(ctx context.Context, email, name string) error
}

// Service handles user management business logic.
type Service struct {
	repo   RepositoryPort
	mailer WelcomeMailer
}

// NewService builds Service instance.
func NewService(repo RepositoryPort, mailer WelcomeMailer) *Service {
	return &Service{repo: repo, mailer: mailer}
}

// CreateUserRequest carries the fields needed to provision an account.
type CreateUserRequest struct {
	Email    string
	Name     string
	Password string
	RoleID   uuid.UUID
}

// ListUsers returns all users.
func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	return s.repo.ListUsers(ctx)
}

// Get returns one user.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.Get(ctx, id)
}

// Create provisions an account, hashes the password and enqueues the
// welcome email. The email failure is logged by the caller, not fatal.
func (s *Service) Create(ctx context.Context, req CreateUserRequest) (*User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || len(req.Password) < 8 {
		return nil, fmt.Errorf("%w: email and a password of at least 8 characters are required", shared.ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user, err := s.repo.Create(ctx, User{Email: email, Name: strings.TrimSpace(req.Name), RoleID: req.RoleID}, string(hash))
	if err != nil {
		return nil, err
	}
	if s.mailer != nil {
		if err := s.mailer.EnqueueWelcomeEmail(ctx, user.Email, user.Name); err != nil {
			return user, fmt.Errorf("enqueue welcome email: %w", err)
		}
	}
	return user, nil
}

// Deactivate disables an account without deleting it.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.repo.SetActive(ctx, id, false)
}
