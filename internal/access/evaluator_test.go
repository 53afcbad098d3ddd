package access

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

type fakeRepo struct {
	created  map[uuid.UUID][]uuid.UUID // user -> jds created
	assigned map[uuid.UUID][]uuid.UUID // user -> jds assigned
	err      error
}

func (f *fakeRepo) CreatedJDIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return f.created[userID], f.err
}

func (f *fakeRepo) AssignedJDIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return f.assigned[userID], f.err
}

func (f *fakeRepo) IsCreator(ctx context.Context, jdID, userID uuid.UUID) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for _, id := range f.created[userID] {
		if id == jdID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) IsAssigned(ctx context.Context, jdID, userID uuid.UUID) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for _, id := range f.assigned[userID] {
		if id == jdID {
			return true, nil
		}
	}
	return false, nil
}

func TestParseRole(t *testing.T) {
	cases := []struct {
		raw  string
		want Role
	}{
		{"admin", RoleAdmin},
		{"Admin", RoleAdmin},
		{"  ADMIN  ", RoleAdmin},
		{"recruiter", RoleRecruiter},
		{"hiring manager", RoleHiringManager},
		{"hiring_manager", RoleHiringManager},
		{"Hiring Manager ", RoleHiringManager},
		{"HIRING_MANAGER", RoleHiringManager},
		{"intern", RoleUnknown},
		{"", RoleUnknown},
		{"hiring-manager", RoleUnknown},
	}
	for _, tc := range cases {
		if got := ParseRole(tc.raw); got != tc.want {
			t.Fatalf("ParseRole(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestAccessibleJDs_AdminUnrestricted(t *testing.T) {
	eval := NewEvaluator(&fakeRepo{})
	user := NewUser(uuid.New(), "Admin")
	scope, err := eval.AccessibleJDs(context.Background(), user)
	if err != nil {
		t.Fatalf("AccessibleJDs returned error: %v", err)
	}
	if scope.Kind != ScopeUnrestricted {
		t.Fatalf("expected unrestricted scope, got %v", scope.Kind)
	}
	if !scope.Allows(uuid.New()) {
		t.Fatal("unrestricted scope must allow any id")
	}
}

func TestAccessibleJDs_HiringManagerUnion(t *testing.T) {
	userID := uuid.New()
	jd1 := uuid.New()
	jd2 := uuid.New()
	repo := &fakeRepo{
		created:  map[uuid.UUID][]uuid.UUID{userID: {jd1}},
		assigned: map[uuid.UUID][]uuid.UUID{userID: {jd2}},
	}
	eval := NewEvaluator(repo)
	user := NewUser(userID, "Hiring Manager ")

	scope, err := eval.AccessibleJDs(context.Background(), user)
	if err != nil {
		t.Fatalf("AccessibleJDs returned error: %v", err)
	}
	if scope.Kind != ScopeRestricted {
		t.Fatalf("expected restricted scope, got %v", scope.Kind)
	}
	if !scope.Allows(jd1) || !scope.Allows(jd2) {
		t.Fatal("scope must contain both created and assigned ids")
	}
	if scope.Allows(uuid.New()) {
		t.Fatal("scope must not allow unrelated ids")
	}
	if scope.Len() != 2 {
		t.Fatalf("expected two ids, got %d", scope.Len())
	}
}

func TestAccessibleJDs_CreatorOnlyExample(t *testing.T) {
	// Mixed-case role with trailing space, creator of one JD, assigned nowhere.
	userID := uuid.New()
	jd1 := uuid.New()
	jd2 := uuid.New()
	repo := &fakeRepo{created: map[uuid.UUID][]uuid.UUID{userID: {jd1}}}
	eval := NewEvaluator(repo)
	user := NewUser(userID, "Hiring Manager ")

	scope, err := eval.AccessibleJDs(context.Background(), user)
	if err != nil {
		t.Fatalf("AccessibleJDs returned error: %v", err)
	}
	if scope.Len() != 1 || !scope.Allows(jd1) {
		t.Fatalf("expected exactly {jd1}, got %v", scope.IDs())
	}
	ok, err := eval.CanAccess(context.Background(), user, jd2)
	if err != nil {
		t.Fatalf("CanAccess returned error: %v", err)
	}
	if ok {
		t.Fatal("must not access a jd neither created nor assigned")
	}
}

func TestAccessibleJDs_FailClosed(t *testing.T) {
	userID := uuid.New()
	jd := uuid.New()
	// Ownership data exists, but the role is unrecognized.
	repo := &fakeRepo{created: map[uuid.UUID][]uuid.UUID{userID: {jd}}}
	eval := NewEvaluator(repo)

	for _, raw := range []string{"", "guest", "superadmin", "Hiring  Manager", "recruiterx"} {
		user := NewUser(userID, raw)
		scope, err := eval.AccessibleJDs(context.Background(), user)
		if err != nil {
			t.Fatalf("role %q: AccessibleJDs returned error: %v", raw, err)
		}
		if scope.Kind != ScopeDenied {
			t.Fatalf("role %q: expected denied scope, got %v", raw, scope.Kind)
		}
		if scope.Allows(jd) {
			t.Fatalf("role %q: denied scope leaked access", raw)
		}
		ok, err := eval.CanAccess(context.Background(), user, jd)
		if err != nil {
			t.Fatalf("role %q: CanAccess returned error: %v", raw, err)
		}
		if ok {
			t.Fatalf("role %q: point check leaked access", raw)
		}
	}
}

func TestCanAccess_ConsistentWithBulkScope(t *testing.T) {
	userID := uuid.New()
	jdCreated := uuid.New()
	jdAssigned := uuid.New()
	jdOther := uuid.New()
	repo := &fakeRepo{
		created:  map[uuid.UUID][]uuid.UUID{userID: {jdCreated}},
		assigned: map[uuid.UUID][]uuid.UUID{userID: {jdAssigned}},
	}
	eval := NewEvaluator(repo)

	for _, roleName := range []string{"admin", "recruiter", "hiring_manager", "nobody"} {
		user := NewUser(userID, roleName)
		scope, err := eval.AccessibleJDs(context.Background(), user)
		if err != nil {
			t.Fatalf("role %s: AccessibleJDs returned error: %v", roleName, err)
		}
		for _, jd := range []uuid.UUID{jdCreated, jdAssigned, jdOther} {
			point, err := eval.CanAccess(context.Background(), user, jd)
			if err != nil {
				t.Fatalf("role %s: CanAccess returned error: %v", roleName, err)
			}
			if point != scope.Allows(jd) {
				t.Fatalf("role %s jd %s: point check %v disagrees with scope %v", roleName, jd, point, scope.Allows(jd))
			}
		}
	}
}

func TestCanAccess_AssignmentCheckedWhenNotCreator(t *testing.T) {
	userID := uuid.New()
	jd := uuid.New()
	repo := &fakeRepo{assigned: map[uuid.UUID][]uuid.UUID{userID: {jd}}}
	eval := NewEvaluator(repo)
	user := NewUser(userID, "hiring manager")

	ok, err := eval.CanAccess(context.Background(), user, jd)
	if err != nil {
		t.Fatalf("CanAccess returned error: %v", err)
	}
	if !ok {
		t.Fatal("assigned hiring manager must have access")
	}
}

func TestEvaluator_RepositoryErrorsPropagate(t *testing.T) {
	repoErr := errors.New("connection reset")
	eval := NewEvaluator(&fakeRepo{err: repoErr})
	user := NewUser(uuid.New(), "hiring_manager")

	if _, err := eval.AccessibleJDs(context.Background(), user); !errors.Is(err, repoErr) {
		t.Fatalf("expected wrapped repository error, got %v", err)
	}
	if _, err := eval.CanAccess(context.Background(), user, uuid.New()); !errors.Is(err, repoErr) {
		t.Fatalf("expected wrapped repository error, got %v", err)
	}
}

func TestRestrictedTo_EmptySetAllowsNothing(t *testing.T) {
	scope := RestrictedTo(nil)
	if scope.Kind != ScopeRestricted {
		t.Fatalf("expected restricted kind, got %v", scope.Kind)
	}
	if scope.Allows(uuid.New()) {
		t.Fatal("empty restricted scope must not allow anything")
	}
}
