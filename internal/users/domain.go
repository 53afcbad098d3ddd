package users

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user account for management. RoleName is joined from the
// roles table; it is the raw string the access evaluator parses.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	RoleID    uuid.UUID `json:"role_id"`
	RoleName  string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
