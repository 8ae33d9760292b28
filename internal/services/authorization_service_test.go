package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/SAP-F-2025/school-portal-service/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func uintPtr(v uint) *uint { return &v }

// seedSchool fills the mock store with one teacher (GV001, user 10)
// assigned to class 5, and a second class 7 the teacher is not assigned
// to. Both classes have students.
func seedSchool(m *mockRepository) {
	m.classes[5] = &models.Class{ID: 5, Name: "10A1", Grade: 10, YearStart: 2025, YearEnd: 2026}
	m.classes[7] = &models.Class{ID: 7, Name: "10A2", Grade: 10, YearStart: 2025, YearEnd: 2026}
	m.nextID = 100

	m.teachers["GV001"] = &models.Teacher{ID: "GV001", UserID: uintPtr(10), FullName: "Nguyen Van A"}
	m.teachers["GV002"] = &models.Teacher{ID: "GV002", UserID: uintPtr(11), FullName: "Tran Thi B"}

	m.subjects[1] = &models.Subject{ID: 1, Name: "Math", Code: "MATH10", Grade: 10}

	m.assignments[50] = &models.ClassSubject{ID: 50, ClassID: 5, SubjectID: 1, TeacherID: "GV001", Status: models.AssignmentActive}
	m.assignments[51] = &models.ClassSubject{ID: 51, ClassID: 7, SubjectID: 1, TeacherID: "GV002", Status: models.AssignmentActive}

	m.students["HS001"] = &models.Student{ID: "HS001", FullName: "Le Van C", CurrentClassID: uintPtr(5)}
	m.students["HS002"] = &models.Student{ID: "HS002", FullName: "Pham Thi D", CurrentClassID: uintPtr(5)}
	m.students["HS003"] = &models.Student{ID: "HS003", FullName: "Hoang Van E", CurrentClassID: uintPtr(7)}
}

var (
	adminPrincipal   = Principal{UserID: 1, Username: "admin", Role: models.RoleAdmin}
	teacherPrincipal = Principal{UserID: 10, Username: "gv001", Role: models.RoleTeacher}
)

func TestAuthorizationService_ScopeFor(t *testing.T) {
	ctx := context.Background()

	t.Run("admin is unrestricted", func(t *testing.T) {
		repo := newMockRepository()
		seedSchool(repo)
		svc := NewAuthorizationService(repo, testLogger())

		scope, err := svc.ScopeFor(ctx, adminPrincipal)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !scope.Unrestricted {
			t.Error("admin scope should be unrestricted")
		}
		if !scope.Allows(5) || !scope.Allows(7) || !scope.Allows(999) {
			t.Error("unrestricted scope should allow any class")
		}
	})

	t.Run("teacher scope covers assigned classes only", func(t *testing.T) {
		repo := newMockRepository()
		seedSchool(repo)
		svc := NewAuthorizationService(repo, testLogger())

		scope, err := svc.ScopeFor(ctx, teacherPrincipal)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if scope.Unrestricted {
			t.Error("teacher scope should be restricted")
		}
		if !scope.Allows(5) {
			t.Error("assigned class 5 should be in scope")
		}
		if scope.Allows(7) {
			t.Error("unassigned class 7 should not be in scope")
		}
	})

	t.Run("inactive assignment still grants scope", func(t *testing.T) {
		repo := newMockRepository()
		seedSchool(repo)
		repo.assignments[50].Status = models.AssignmentInactive
		svc := NewAuthorizationService(repo, testLogger())

		scope, err := svc.ScopeFor(ctx, teacherPrincipal)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !scope.Allows(5) {
			t.Error("inactive assignment should still grant class access")
		}
	})

	t.Run("teacher account without profile gets empty scope", func(t *testing.T) {
		repo := newMockRepository()
		seedSchool(repo)
		orphan := Principal{UserID: 99, Username: "ghost", Role: models.RoleTeacher}
		svc := NewAuthorizationService(repo, testLogger())

		scope, err := svc.ScopeFor(ctx, orphan)
		if err != nil {
			t.Fatalf("missing profile should not be an error, got: %v", err)
		}
		if scope.Unrestricted {
			t.Error("orphan scope should be restricted")
		}
		if scope.Allows(5) || scope.Allows(7) {
			t.Error("orphan scope should deny everything")
		}
	})

	t.Run("teacher with no assignments gets empty scope", func(t *testing.T) {
		repo := newMockRepository()
		seedSchool(repo)
		delete(repo.assignments, 50)
		svc := NewAuthorizationService(repo, testLogger())

		scope, err := svc.ScopeFor(ctx, teacherPrincipal)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if scope.Allows(5) {
			t.Error("scope should be empty without assignments")
		}
		if got := scope.ClassIDList(); len(got) != 0 || got == nil {
			t.Errorf("restricted empty scope should flatten to empty non-nil slice, got %v", got)
		}
	})
}

func TestAuthorizationService_RequireClassAccess(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepository()
	seedSchool(repo)
	svc := NewAuthorizationService(repo, testLogger())

	if err := svc.RequireClassAccess(ctx, teacherPrincipal, 5); err != nil {
		t.Errorf("expected access to class 5, got: %v", err)
	}

	err := svc.RequireClassAccess(ctx, teacherPrincipal, 7)
	if err == nil {
		t.Fatal("expected denial for class 7")
	}
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("denial should unwrap to ErrForbidden, got: %v", err)
	}
}

func TestAuthorizationService_RequireAssignmentAccess(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepository()
	seedSchool(repo)
	svc := NewAuthorizationService(repo, testLogger())

	t.Run("own assignment allowed", func(t *testing.T) {
		assignment, err := svc.RequireAssignmentAccess(ctx, teacherPrincipal, 50)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if assignment.ID != 50 {
			t.Errorf("expected assignment 50, got %d", assignment.ID)
		}
	})

	t.Run("foreign assignment denied", func(t *testing.T) {
		_, err := svc.RequireAssignmentAccess(ctx, teacherPrincipal, 51)
		if !errors.Is(err, ErrForbidden) {
			t.Errorf("expected ErrForbidden, got: %v", err)
		}
	})

	t.Run("missing assignment", func(t *testing.T) {
		_, err := svc.RequireAssignmentAccess(ctx, teacherPrincipal, 999)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got: %v", err)
		}
	})
}
