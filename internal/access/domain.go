// Package access gates read and write access to job description resources by
// role. Role strings are parsed once at the boundary into a closed enum, and
// every decision is expressed as a tagged scope rather than a nullable set so
// "no restriction" can never be conflated with "no access".
package access

import (
	"strings"

	"github.com/google/uuid"
)

// Role is the closed set of roles the evaluator understands. Anything not
// recognized parses to RoleUnknown, which always denies.
type Role int

const (
	RoleUnknown Role = iota
	RoleAdmin
	RoleRecruiter
	RoleHiringManager
)

// ParseRole normalizes a raw role name (case-insensitive, trimmed) into a
// Role. Both "hiring manager" and "hiring_manager" spellings are accepted.
func ParseRole(name string) Role {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "admin":
		return RoleAdmin
	case "recruiter":
		return RoleRecruiter
	case "hiring manager", "hiring_manager":
		return RoleHiringManager
	default:
		return RoleUnknown
	}
}

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleRecruiter:
		return "recruiter"
	case RoleHiringManager:
		return "hiring_manager"
	default:
		return "unknown"
	}
}

// User is the identity the evaluator reasons about. It is materialized by the
// caller; the evaluator never loads users itself.
type User struct {
	ID   uuid.UUID
	Role Role
}

// NewUser parses the raw role name at the boundary.
func NewUser(id uuid.UUID, roleName string) User {
	return User{ID: id, Role: ParseRole(roleName)}
}

// ScopeKind tags the three decision shapes.
type ScopeKind int

const (
	// ScopeUnrestricted means every job description is accessible; callers
	// must apply no filter at all.
	ScopeUnrestricted ScopeKind = iota
	// ScopeRestricted limits access to an explicit ID set.
	ScopeRestricted
	// ScopeDenied means no job description is accessible.
	ScopeDenied
)

// Scope is the result of a bulk access evaluation.
type Scope struct {
	Kind ScopeKind
	ids  map[uuid.UUID]struct{}
}

// Unrestricted returns the no-filter scope.
func Unrestricted() Scope {
	return Scope{Kind: ScopeUnrestricted}
}

// RestrictedTo returns a scope limited to the given IDs. An empty set is a
// valid restricted scope that allows nothing.
func RestrictedTo(ids []uuid.UUID) Scope {
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return Scope{Kind: ScopeRestricted, ids: set}
}

// Denied returns the deny-all scope.
func Denied() Scope {
	return Scope{Kind: ScopeDenied}
}

// Allows reports whether the scope grants access to one ID.
func (s Scope) Allows(id uuid.UUID) bool {
	switch s.Kind {
	case ScopeUnrestricted:
		return true
	case ScopeRestricted:
		_, ok := s.ids[id]
		return ok
	default:
		return false
	}
}

// IDs returns the restricted ID set. It is only meaningful for
// ScopeRestricted; other kinds return nil.
func (s Scope) IDs() []uuid.UUID {
	if s.Kind != ScopeRestricted {
		return nil
	}
	out := make([]uuid.UUID, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	return out
}

// Len reports the size of the restricted set.
func (s Scope) Len() int {
	return len(s.ids)
}
