package candidates

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/talentforge/talentforge/internal/access"
	"github.com/talentforge/talentforge/internal/personas"
	"github.com/talentforge/talentforge/internal/shared"
)

// JDGate answers whether a job description exists and whether the
// caller may touch it. Candidates inherit visibility from their JD.
type JDGate interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	CanAccess(ctx context.Context, user access.User, jdID uuid.UUID) (bool, error)
}

// PersonaSource resolves the scoring rubric applied to a candidate.
type PersonaSource interface {
	Get(ctx context.Context, id uuid.UUID) (*personas.Persona, error)
}

// Auditor records candidate mutations.
type Auditor interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// Service implements the candidate pipeline.
type Service struct {
	logger   *slog.Logger
	repo     RepositoryPort
	gate     JDGate
	personas PersonaSource
	auditor  Auditor
}

// NewService constructs a Service.
func NewService(logger *slog.Logger, repo RepositoryPort, gate JDGate, personaSource PersonaSource, auditor Auditor) *Service {
	return &Service{logger: logger, repo: repo, gate: gate, personas: personaSource, auditor: auditor}
}

// CreateRequest carries the fields for a new candidate.
type CreateRequest struct {
	JobDescriptionID uuid.UUID
	Name             string
	Email            string
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
		Entity:   "candidate",
		EntityID: id.String(),
	})
	if err != nil {
		s.logger.Warn("audit record", slog.String("action", action), slog.Any("error", err))
	}
}

// Create registers an applicant for a job description.
func (s *Service) Create(ctx context.Context, identity shared.Identity, req CreateRequest) (*Candidate, error) {
	if err := s.authorizeJD(ctx, identity, req.JobDescriptionID); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if name == "" || email == "" {
		return nil, fmt.Errorf("%w: name and email are required", shared.ErrInvalidInput)
	}
	candidate, err := s.repo.Create(ctx, Candidate{
		JobDescriptionID: req.JobDescriptionID,
		Name:             name,
		Email:            email,
	})
	if err != nil {
		return nil, err
	}
	s.audit(ctx, identity, "candidate.create", candidate.ID)
	return candidate, nil
}

// Get returns one candidate the caller may see.
func (s *Service) Get(ctx context.Context, identity shared.Identity, id uuid.UUID) (*Candidate, error) {
	candidate, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeJD(ctx, identity, candidate.JobDescriptionID); err != nil {
		return nil, err
	}
	return candidate, nil
}

// ListByJD lists candidates on a job description, best score first.
func (s *Service) ListByJD(ctx context.Context, identity shared.Identity, jdID uuid.UUID) ([]Candidate, error) {
	if err := s.authorizeJD(ctx, identity, jdID); err != nil {
		return nil, err
	}
	return s.repo.ListByJD(ctx, jdID)
}

// Score stores per-category scores and computes the aggregate under
// the given persona. The persona must belong to the candidate's JD.
func (s *Service) Score(ctx context.Context, identity shared.Identity, id, personaID uuid.UUID, scores map[string]float64) (*Candidate, error) {
	candidate, err := s.Get(ctx, identity, id)
	if err != nil {
		return nil, err
	}
	for category, score := range scores {
		if score < 0 || score > 100 {
			return nil, fmt.Errorf("%w: score for %q must be within [0, 100]", shared.ErrInvalidInput, category)
		}
	}
	persona, err := s.personas.Get(ctx, personaID)
	if err != nil {
		return nil, err
	}
	if persona.JobDescriptionID != candidate.JobDescriptionID {
		return nil, fmt.Errorf("%w: persona belongs to a different job description", shared.ErrInvalidInput)
	}
	overall := WeightedScore(scores, persona.Weights)
	if err := s.repo.SaveScores(ctx, id, scores, overall); err != nil {
		return nil, err
	}
	candidate.Scores = scores
	candidate.Overall = overall
	s.audit(ctx, identity, "candidate.score", id)
	return candidate, nil
}

// Advance moves the pipeline status.
func (s *Service) Advance(ctx context.Context, identity shared.Identity, id uuid.UUID, status Status) error {
	if _, err := s.Get(ctx, identity, id); err != nil {
		return err
	}
	switch status {
	case StatusApplied, StatusScreening, StatusInterviewed, StatusOffered, StatusRejected:
	default:
		return fmt.Errorf("%w: unknown status %q", shared.ErrInvalidInput, status)
	}
	if err := s.repo.SetStatus(ctx, id, status); err != nil {
		return err
	}
	s.audit(ctx, identity, "candidate.status", id)
	return nil
}

// Delete removes a candidate.
func (s *Service) Delete(ctx context.Context, identity shared.Identity, id uuid.UUID) error {
	if _, err := s.Get(ctx, identity, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit(ctx, identity, "candidate.delete", id)
	return nil
}
