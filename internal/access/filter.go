package access

import (
	"fmt"

	"github.com/google/uuid"
)

// Filter is a composable SQL predicate for pushing the access decision into a
// job description query instead of fetching the ID set first. A nil *Filter
// means no restriction; callers append no clause at all.
type Filter struct {
	kind   ScopeKind
	userID uuid.UUID
}

// NewFilter builds the predicate for a user: nil for unrestricted roles, an
// ownership-or-assignment clause for hiring managers, and a never-match
// clause for unknown roles. uuid.Nil is the never-match sentinel; real job
// description IDs are always generated, so the clause cannot select a row.
func NewFilter(user User) *Filter {
	switch user.Role {
	case RoleAdmin, RoleRecruiter:
		return nil
	case RoleHiringManager:
		return &Filter{kind: ScopeRestricted, userID: user.ID}
	default:
		return &Filter{kind: ScopeDenied}
	}
}

// Clause renders the predicate against the aliased job_descriptions table.
// argIndex is the first free positional parameter; the returned args slot in
// starting there. A nil receiver renders the always-true clause so callers
// may inline the result without nil checks.
func (f *Filter) Clause(alias string, argIndex int) (string, []any) {
	if f == nil {
		return "TRUE", nil
	}
	switch f.kind {
	case ScopeRestricted:
		clause := fmt.Sprintf(
			"(%s.created_by = $%d OR EXISTS (SELECT 1 FROM jd_hiring_managers m WHERE m.job_description_id = %s.id AND m.hiring_manager_id = $%d))",
			alias, argIndex, alias, argIndex,
		)
		return clause, []any{f.userID}
	default:
		return fmt.Sprintf("%s.id = $%d", alias, argIndex), []any{uuid.Nil}
	}
}

// Restricts reports whether the filter narrows the query at all.
func (f *Filter) Restricts() bool {
	return f != nil
}
