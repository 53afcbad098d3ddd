package roles

import (
	"time"

	"github.com/google/uuid"
)

// Role is a named permission grouping assigned to users. The access package
// interprets the well-known names; unknown names simply carry no access.
type Role struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
