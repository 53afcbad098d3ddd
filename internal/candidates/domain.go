package candidates

import (
	"time"

	"github.com/google/uuid"
)

// Status tracks a candidate through the pipeline.
type Status string

const (
	StatusApplied     Status = "applied"
	StatusScreening   Status = "screening"
	StatusInterviewed Status = "interviewed"
	StatusOffered     Status = "offered"
	StatusRejected    Status = "rejected"
)

// Candidate is an applicant attached to one job description. Scores is
// a per-category map on a 0..100 scale; Overall is the persona-weighted
// aggregate.
type Candidate struct {
	ID               uuid.UUID          `json:"id"`
	JobDescriptionID uuid.UUID          `json:"job_description_id"`
	Name             string             `json:"name"`
	Email            string             `json:"email"`
	Scores           map[string]float64 `json:"scores,omitempty"`
	Overall          float64            `json:"overall_score"`
	Status           Status             `json:"status"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}
