package jds

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/talentforge/talentforge/internal/access"
	"github.com/talentforge/talentforge/internal/shared"
	"github.com/talentforge/talentforge/internal/textdiff"
)

// AccessPort answers point visibility questions for the service.
type AccessPort interface {
	CanAccess(ctx context.Context, user access.User, jdID uuid.UUID) (bool, error)
}

// Enqueuer hands refinement work to the background queue.
type Enqueuer interface {
	EnqueueRefinement(ctx context.Context, jdID uuid.UUID) error
}

// Auditor records workflow mutations.
type Auditor interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// refineStaleAfter bounds how long a record may sit in refining before
// a new refinement request is accepted again. A worker that exhausts
// its retries leaves the status untouched; after this window the record
// is considered abandoned rather than in flight.
const refineStaleAfter = 15 * time.Minute

// Service implements the job-description workflow.
type Service struct {
	logger    *slog.Logger
	repo      RepositoryPort
	evaluator AccessPort
	enqueuer  Enqueuer
	auditor   Auditor
	now       func() time.Time
}

// NewService constructs a Service.
func NewService(logger *slog.Logger, repo RepositoryPort, evaluator AccessPort, enqueuer Enqueuer, auditor Auditor) *Service {
	return &Service{logger: logger, repo: repo, evaluator: evaluator, enqueuer: enqueuer, auditor: auditor, now: time.Now}
}

// CreateRequest carries the fields for a new draft.
type CreateRequest struct {
	Title     string
	RoleTitle string
	Text      string
}

// authorize checks existence before visibility so callers can tell a
// missing record (404) from a hidden one (403).
func (s *Service) authorize(ctx context.Context, identity shared.Identity, id uuid.UUID) error {
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("check existence: %w", err)
	}
	if !exists {
		return shared.ErrNotFound
	}
	ok, err := s.evaluator.CanAccess(ctx, access.NewUser(identity.ID, identity.RoleName), id)
	if err != nil {
		return fmt.Errorf("evaluate access: %w", err)
	}
	if !ok {
		return shared.ErrAccessDenied
	}
	return nil
}

func (s *Service) audit(ctx context.Context, identity shared.Identity, action string, id uuid.UUID, meta map[string]any) {
	if s.auditor == nil {
		return
	}
	err := s.auditor.Record(ctx, shared.AuditLog{
		ActorID:  identity.ID,
		Action:   action,
		Entity:   "job_description",
		EntityID: id.String(),
		Meta:     meta,
	})
	if err != nil {
		s.logger.Warn("audit record", slog.String("action", action), slog.Any("error", err))
	}
}

// Create opens a new draft. Hiring managers cannot create drafts; they
// only see what they are assigned to.
func (s *Service) Create(ctx context.Context, identity shared.Identity, req CreateRequest) (*JobDescription, error) {
	switch access.ParseRole(identity.RoleName) {
	case access.RoleAdmin, access.RoleRecruiter:
	default:
		return nil, shared.ErrAccessDenied
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Text) == "" {
		return nil, fmt.Errorf("%w: title and text are required", shared.ErrInvalidInput)
	}
	jd, err := s.repo.Create(ctx, JobDescription{
		Title:     strings.TrimSpace(req.Title),
		RoleTitle: strings.TrimSpace(req.RoleTitle),
		Text:      req.Text,
		CreatedBy: identity.ID,
	})
	if err != nil {
		return nil, err
	}
	s.audit(ctx, identity, "jd.create", jd.ID, map[string]any{"title": jd.Title})
	return jd, nil
}

// Get returns one job description the caller may see.
func (s *Service) Get(ctx context.Context, identity shared.Identity, id uuid.UUID) (*JobDescription, error) {
	if err := s.authorize(ctx, identity, id); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

// List returns the caller's visible slice of job descriptions.
func (s *Service) List(ctx context.Context, identity shared.Identity, page shared.Pagination) ([]JobDescription, error) {
	filter := access.NewFilter(access.NewUser(identity.ID, identity.RoleName))
	return s.repo.List(ctx, filter, page)
}

// UpdatePartial patches mutable fields. Finalized records are immutable.
func (s *Service) UpdatePartial(ctx context.Context, identity shared.Identity, id uuid.UUID, fields UpdateFields) (*JobDescription, error) {
	if err := s.authorize(ctx, identity, id); err != nil {
		return nil, err
	}
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status == StatusFinalized {
		return nil, fmt.Errorf("%w: finalized job descriptions cannot be edited", shared.ErrInvalidInput)
	}
	jd, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	s.audit(ctx, identity, "jd.update", id, nil)
	return jd, nil
}

// AssignHiringManager links a hiring manager to the record. Only the
// creator or an admin may manage assignments, and the target user must
// actually hold the hiring manager role.
func (s *Service) AssignHiringManager(ctx context.Context, identity shared.Identity, id, managerID uuid.UUID) error {
	if err := s.authorizeAssignment(ctx, identity, id); err != nil {
		return err
	}
	roleName, err := s.repo.RoleName(ctx, managerID)
	if err != nil {
		return fmt.Errorf("check role: %w", err)
	}
	if access.ParseRole(roleName) != access.RoleHiringManager {
		return fmt.Errorf("%w: user is not a hiring manager", shared.ErrInvalidInput)
	}
	if err := s.repo.Assign(ctx, id, managerID); err != nil {
		return err
	}
	s.audit(ctx, identity, "jd.assign", id, map[string]any{"hiring_manager_id": managerID.String()})
	return nil
}

// UnassignHiringManager removes an assignment.
func (s *Service) UnassignHiringManager(ctx context.Context, identity shared.Identity, id, managerID uuid.UUID) error {
	if err := s.authorizeAssignment(ctx, identity, id); err != nil {
		return err
	}
	if err := s.repo.Unassign(ctx, id, managerID); err != nil {
		return err
	}
	s.audit(ctx, identity, "jd.unassign", id, map[string]any{"hiring_manager_id": managerID.String()})
	return nil
}

func (s *Service) authorizeAssignment(ctx context.Context, identity shared.Identity, id uuid.UUID) error {
	if err := s.authorize(ctx, identity, id); err != nil {
		return err
	}
	if access.ParseRole(identity.RoleName) == access.RoleAdmin {
		return nil
	}
	jd, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if jd.CreatedBy != identity.ID {
		return shared.ErrAccessDenied
	}
	return nil
}

// Assignments lists the hiring managers linked to the record.
func (s *Service) Assignments(ctx context.Context, identity shared.Identity, id uuid.UUID) ([]Assignment, error) {
	if err := s.authorize(ctx, identity, id); err != nil {
		return nil, err
	}
	return s.repo.Assignments(ctx, id)
}

// PrepareRefinement marks the record as refining and enqueues the
// background task that calls the language model.
func (s *Service) PrepareRefinement(ctx context.Context, identity shared.Identity, id uuid.UUID) error {
	if err := s.authorize(ctx, identity, id); err != nil {
		return err
	}
	jd, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	switch jd.Status {
	case StatusRefining:
		if s.now().Sub(jd.UpdatedAt) < refineStaleAfter {
			return fmt.Errorf("%w: refinement already in progress", shared.ErrInvalidInput)
		}
	case StatusFinalized:
		return fmt.Errorf("%w: finalized job descriptions cannot be refined", shared.ErrInvalidInput)
	}
	if strings.TrimSpace(jd.Text) == "" {
		return fmt.Errorf("%w: nothing to refine", shared.ErrInvalidInput)
	}
	if err := s.repo.SetStatus(ctx, id, StatusRefining); err != nil {
		return err
	}
	if err := s.enqueuer.EnqueueRefinement(ctx, id); err != nil {
		// Roll the status back so the record is not stuck in refining.
		if rbErr := s.repo.SetStatus(ctx, id, jd.Status); rbErr != nil {
			s.logger.Error("rollback refinement status", slog.Any("error", rbErr))
		}
		return fmt.Errorf("enqueue refinement: %w", err)
	}
	s.audit(ctx, identity, "jd.refine.requested", id, nil)
	return nil
}

// Draft exposes the raw draft to the worker. Like ApplyRefinement it
// runs without a caller identity.
func (s *Service) Draft(ctx context.Context, id uuid.UUID) (string, string, error) {
	jd, err := s.repo.Get(ctx, id)
	if err != nil {
		return "", "", err
	}
	return jd.RoleTitle, jd.Text, nil
}

// ApplyRefinement stores refiner output. It runs inside the worker with
// no caller identity, so there is no access gate here.
func (s *Service) ApplyRefinement(ctx context.Context, id uuid.UUID, refined string) error {
	if strings.TrimSpace(refined) == "" {
		return fmt.Errorf("%w: refiner returned empty text", shared.ErrInvalidInput)
	}
	return s.repo.SetRefinedText(ctx, id, refined, StatusRefined)
}

// Diff renders the original-vs-refined comparison in the requested mode.
func (s *Service) Diff(ctx context.Context, identity shared.Identity, id uuid.UUID, mode textdiff.Mode) (*textdiff.Result, error) {
	if err := s.authorize(ctx, identity, id); err != nil {
		return nil, err
	}
	jd, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if jd.RefinedText == "" {
		return nil, fmt.Errorf("%w: no refined text to compare", shared.ErrInvalidInput)
	}
	result, err := textdiff.Compare(jd.Text, jd.RefinedText, mode)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Finalize locks in the final wording. An explicit text wins; otherwise
// the refined text is promoted, falling back to the original draft.
func (s *Service) Finalize(ctx context.Context, identity shared.Identity, id uuid.UUID, finalText string) (*JobDescription, error) {
	if err := s.authorize(ctx, identity, id); err != nil {
		return nil, err
	}
	jd, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if jd.Status == StatusFinalized {
		return nil, fmt.Errorf("%w: already finalized", shared.ErrInvalidInput)
	}
	text := strings.TrimSpace(finalText)
	if text == "" {
		text = jd.RefinedText
	}
	if text == "" {
		text = jd.Text
	}
	if err := s.repo.SetFinalText(ctx, id, text); err != nil {
		return nil, err
	}
	s.audit(ctx, identity, "jd.finalize", id, nil)
	return s.repo.Get(ctx, id)
}
