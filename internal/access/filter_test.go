package access

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewFilter_UnrestrictedIsNil(t *testing.T) {
	if f := NewFilter(NewUser(uuid.New(), "admin")); f != nil {
		t.Fatalf("admin must get a nil filter, got %+v", f)
	}
	if f := NewFilter(NewUser(uuid.New(), "Recruiter")); f != nil {
		t.Fatalf("recruiter must get a nil filter, got %+v", f)
	}
}

func TestFilter_NilClauseIsAlwaysTrue(t *testing.T) {
	var f *Filter
	clause, args := f.Clause("jd", 1)
	if clause != "TRUE" || len(args) != 0 {
		t.Fatalf("nil filter must render TRUE with no args, got %q %v", clause, args)
	}
	if f.Restricts() {
		t.Fatal("nil filter must not restrict")
	}
}

func TestFilter_HiringManagerClause(t *testing.T) {
	userID := uuid.New()
	f := NewFilter(User{ID: userID, Role: RoleHiringManager})
	clause, args := f.Clause("jd", 3)

	if !strings.Contains(clause, "jd.created_by = $3") {
		t.Fatalf("missing ownership arm: %q", clause)
	}
	if !strings.Contains(clause, "m.hiring_manager_id = $3") {
		t.Fatalf("missing assignment arm: %q", clause)
	}
	if !strings.Contains(clause, " OR ") {
		t.Fatalf("arms must be OR-combined: %q", clause)
	}
	if len(args) != 1 || args[0] != userID {
		t.Fatalf("expected single user id arg, got %v", args)
	}
	if !f.Restricts() {
		t.Fatal("hiring manager filter must restrict")
	}
}

func TestFilter_UnknownRoleNeverMatches(t *testing.T) {
	f := NewFilter(NewUser(uuid.New(), "contractor"))
	clause, args := f.Clause("jd", 1)
	if clause != "jd.id = $1" {
		t.Fatalf("expected sentinel clause, got %q", clause)
	}
	if len(args) != 1 || args[0] != uuid.Nil {
		t.Fatalf("sentinel must be the nil uuid, got %v", args)
	}
}
