package jds

import (
	"time"

	"github.com/google/uuid"
)

// Status tracks a job description through the refinement workflow.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusRefining  Status = "refining"
	StatusRefined   Status = "refined"
	StatusFinalized Status = "finalized"
)

// JobDescription is the central aggregate of the recruiting workflow.
type JobDescription struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	RoleTitle   string    `json:"role_title"`
	Text        string    `json:"text"`
	RefinedText string    `json:"refined_text,omitempty"`
	FinalText   string    `json:"final_text,omitempty"`
	Status      Status    `json:"status"`
	CreatedBy   uuid.UUID `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Assignment links a hiring manager to a job description.
type Assignment struct {
	JobDescriptionID uuid.UUID `json:"job_description_id"`
	HiringManagerID  uuid.UUID `json:"hiring_manager_id"`
	AssignedAt       time.Time `json:"assigned_at"`
}

// UpdateFields carries the optional patch applied by UpdatePartial.
// Nil pointers leave the column untouched.
type UpdateFields struct {
	Title       *string
	RoleTitle   *string
	Text        *string
	RefinedText *string
}
