package personas

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/talentforge/talentforge/internal/access"
	"github.com/talentforge/talentforge/internal/shared"
)

// JDGate answers whether a job description exists and whether the
// caller may touch it. Personas inherit visibility from their JD.
type JDGate interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	CanAccess(ctx context.Context, user access.User, jdID uuid.UUID) (bool, error)
}

// Auditor records persona mutations.
type Auditor interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// Service implements persona management on top of the pure domain.
type Service struct {
	logger  *slog.Logger
	repo    RepositoryPort
	gate    JDGate
	auditor Auditor
}

// NewService constructs a Service.
func NewService(logger *slog.Logger, repo RepositoryPort, gate JDGate, auditor Auditor) *Service {
	return &Service{logger: logger, repo: repo, gate: gate, auditor: auditor}
}

// CreateRequest carries persona construction input. Nil weights select
// the default schema; Normalize rescales instead of rejecting an
// off-by-rounding sum.
type CreateRequest struct {
	JobDescriptionID uuid.UUID
	Name             string
	Weights          map[string]float64
	Intervals        map[string]Interval
	Normalize        bool
}

func (s *Service) authorizeJD(ctx context.Context, identity shared.Identity, jdID uuid.UUID) error {
	exists, err := s.gate.Exists(ctx, jdID)
	if err != nil {
		return fmt.Errorf("check existence: %w", err)
	}
	if !exists {
		return shared.ErrNotFound
	}
	ok, err := s.gate.CanAccess(ctx, access.NewUser(identity.ID, identity.RoleName), jdID)
	if err != nil {
		return fmt.Errorf("evaluate access: %w", err)
	}
	if !ok {
		return shared.ErrAccessDenied
	}
	return nil
}

func (s *Service) audit(ctx context.Context, identity shared.Identity, action string, id uuid.UUID) {
	if s.auditor == nil {
		return
	}
	err := s.auditor.Record(ctx, shared.AuditLog{
		ActorID:  identity.ID,
		Action:   action,
		Entity:   "persona",
		EntityID: id.String(),
	})
	if err != nil {
		s.logger.Warn("audit record", slog.String("action", action), slog.Any("error", err))
	}
}

// Create builds a persona through the domain factory and persists it.
func (s *Service) Create(ctx context.Context, identity shared.Identity, req CreateRequest) (*Persona, error) {
	if err := s.authorizeJD(ctx, identity, req.JobDescriptionID); err != nil {
		return nil, err
	}
	persona, err := NewPersona(req.JobDescriptionID, req.Name, req.Weights, req.Intervals, req.Normalize)
	if err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, persona)
	if err != nil {
		return nil, err
	}
	s.audit(ctx, identity, "persona.create", created.ID)
	return created, nil
}

// Get returns one persona the caller may see.
func (s *Service) Get(ctx context.Context, identity shared.Identity, id uuid.UUID) (*Persona, error) {
	persona, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeJD(ctx, identity, persona.JobDescriptionID); err != nil {
		return nil, err
	}
	return persona, nil
}

// ListByJD lists personas attached to a job description.
func (s *Service) ListByJD(ctx context.Context, identity shared.Identity, jdID uuid.UUID) ([]Persona, error) {
	if err := s.authorizeJD(ctx, identity, jdID); err != nil {
		return nil, err
	}
	return s.repo.ListByJD(ctx, jdID)
}

// UpdateWeight replaces one category weight without renormalizing, so a
// caller can batch several edits before an explicit Normalize.
func (s *Service) UpdateWeight(ctx context.Context, identity shared.Identity, id uuid.UUID, category string, value float64, enforceInterval bool) (*Persona, error) {
	persona, err := s.Get(ctx, identity, id)
	if err != nil {
		return nil, err
	}
	updated, err := UpdateWeight(*persona, category, value, enforceInterval)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveWeights(ctx, id, updated.Weights); err != nil {
		return nil, err
	}
	s.audit(ctx, identity, "persona.weight.update", id)
	return &updated, nil
}

// Normalize rescales the stored weights to sum to one.
func (s *Service) Normalize(ctx context.Context, identity shared.Identity, id uuid.UUID) (*Persona, error) {
	persona, err := s.Get(ctx, identity, id)
	if err != nil {
		return nil, err
	}
	normalized := Normalize(*persona)
	if err := s.repo.SaveWeights(ctx, id, normalized.Weights); err != nil {
		return nil, err
	}
	s.audit(ctx, identity, "persona.normalize", id)
	return &normalized, nil
}

// Warnings renders advisory messages for weights outside their bands.
func (s *Service) Warnings(ctx context.Context, identity shared.Identity, id uuid.UUID) ([]string, error) {
	persona, err := s.Get(ctx, identity, id)
	if err != nil {
		return nil, err
	}
	return RenderWeightWarnings(persona.Weights, persona.Intervals), nil
}

// Delete removes a persona.
func (s *Service) Delete(ctx context.Context, identity shared.Identity, id uuid.UUID) error {
	persona, err := s.Get(ctx, identity, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, persona.ID); err != nil {
		return err
	}
	s.audit(ctx, identity, "persona.delete", id)
	return nil
}
