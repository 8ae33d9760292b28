package services

import (
	"context"
	"errors"
	"testing"

	"github.com/SAP-F-2025/school-portal-service/internal/events"
	"github.com/SAP-F-2025/school-portal-service/internal/models"
	"github.com/SAP-F-2025/school-portal-service/internal/validator"
)

func newClassSubjectService(repo *mockRepository) (ClassSubjectService, *events.MockEventPublisher) {
	logger := testLogger()
	publisher := events.NewMockEventPublisher(logger)
	authz := NewAuthorizationService(repo, logger)
	return NewClassSubjectService(repo, authz, publisher, logger, validator.New()), publisher
}

func TestClassSubjectService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates assignment", func(t *testing.T) {
		repo := newMockRepository()
		seedSchool(repo)
		svc, _ := newClassSubjectService(repo)

		req := &CreateClassSubjectRequest{
			ClassID:       7,
			SubjectID:     1,
			TeacherID:     "GV001",
			WeeklyLessons: 3,
			Room:          "B201",
		}
		assignment, err := svc.Create(ctx, req, adminPrincipal)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if assignment.Status != models.AssignmentActive {
			t.Errorf("default status should be ACTIVE, got %s", assignment.Status)
		}
	})

	t.Run("duplicate composite rejected", func(t *testing.T) {
		repo := newMockRepository()
		seedSchool(repo)
		svc, _ := newClassSubjectService(repo)

		// (class 5, subject 1, GV001) is already seeded as assignment 50.
		req := &CreateClassSubjectRequest{ClassID: 5, SubjectID: 1, TeacherID: "GV001"}
		_, err := svc.Create(ctx, req, adminPrincipal)
		if !errors.Is(err, ErrConflict) {
			t.Errorf("expected ErrConflict, got: %v", err)
		}
	})

	t.Run("same subject different teacher allowed", func(t *testing.T) {
		repo := newMockRepository()
		seedSchool(repo)
		svc, _ := newClassSubjectService(repo)

		req := &CreateClassSubjectRequest{ClassID: 5, SubjectID: 1, TeacherID: "GV002"}
		if _, err := svc.Create(ctx, req, adminPrincipal); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("unknown references rejected", func(t *testing.T) {
		repo := newMockRepository()
		seedSchool(repo)
		svc, _ := newClassSubjectService(repo)

		cases := []struct {
			name string
			req  *CreateClassSubjectRequest
			want error
		}{
			{"missing class", &CreateClassSubjectRequest{ClassID: 999, SubjectID: 1, TeacherID: "GV001"}, ErrClassNotFound},
			{"missing subject", &CreateClassSubjectRequest{ClassID: 5, SubjectID: 999, TeacherID: "GV001"}, ErrSubjectNotFound},
			{"missing teacher", &CreateClassSubjectRequest{ClassID: 5, SubjectID: 1, TeacherID: "GV999"}, ErrTeacherNotFound},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				if _, err := svc.Create(ctx, tc.req, adminPrincipal); !errors.Is(err, tc.want) {
					t.Errorf("expected %v, got: %v", tc.want, err)
				}
			})
		}
	})

	t.Run("non-admin denied", func(t *testing.T) {
		repo := newMockRepository()
		seedSchool(repo)
		svc, _ := newClassSubjectService(repo)

		req := &CreateClassSubjectRequest{ClassID: 7, SubjectID: 1, TeacherID: "GV001"}
		_, err := svc.Create(ctx, req, teacherPrincipal)
		if !errors.Is(err, ErrForbidden) {
			t.Errorf("expected ErrForbidden, got: %v", err)
		}
	})
}

func TestClassSubjectService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("delete keeps ledgers and publishes event", func(t *testing.T) {
		repo := newMockRepository()
		seedSchool(repo)
		svc, publisher := newClassSubjectService(repo)

		value := 8.0
		repo.scores = append(repo.scores, &models.Score{ID: 90, StudentID: "HS001", ClassSubjectID: 50, Type: models.ScoreOral, Value: &value})
		repo.materials[91] = &models.Material{ID: 91, ClassSubjectID: 50, Title: "Chapter 1", URL: "https://example.com/ch1.pdf"}

		if err := svc.Delete(ctx, 50, adminPrincipal); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, ok := repo.assignments[50]; ok {
			t.Error("assignment should be gone")
		}
		// History under the assignment stays put.
		if len(repo.scores) != 1 {
			t.Error("scores must survive assignment deletion")
		}
		if _, ok := repo.materials[91]; !ok {
			t.Error("materials must survive assignment deletion")
		}

		evts := publisher.GetPublishedEvents()
		if len(evts) != 1 || evts[0].Type != events.TypeAssignmentDeleted {
			t.Fatalf("expected one deletion event, got %v", evts)
		}
		data, ok := evts[0].Data.(events.AssignmentDeletedData)
		if !ok || data.AssignmentID != 50 || data.TeacherID != "GV001" {
			t.Errorf("unexpected event data: %+v", evts[0].Data)
		}
	})

	t.Run("missing assignment", func(t *testing.T) {
		repo := newMockRepository()
		seedSchool(repo)
		svc, _ := newClassSubjectService(repo)

		if err := svc.Delete(ctx, 999, adminPrincipal); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got: %v", err)
		}
	})
}

func TestClassSubjectService_List(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepository()
	seedSchool(repo)
	svc, _ := newClassSubjectService(repo)

	t.Run("admin sees all", func(t *testing.T) {
		all, total, err := svc.List(ctx, ClassSubjectListQuery{}, adminPrincipal)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if total != 2 || len(all) != 2 {
			t.Errorf("expected 2 assignments, got %d", len(all))
		}
	})

	t.Run("teacher sees own classes only", func(t *testing.T) {
		mine, total, err := svc.List(ctx, ClassSubjectListQuery{}, teacherPrincipal)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if total != 1 || len(mine) != 1 || mine[0].ClassID != 5 {
			t.Errorf("expected only class 5 assignments, got %+v", mine)
		}
	})

	t.Run("scope applies before pagination", func(t *testing.T) {
		repo := newMockRepository()
		seedSchool(repo)
		// Extra foreign assignments that would land in a SQL page, plus a
		// second assignment inside the teacher's scope.
		repo.assignments[52] = &models.ClassSubject{ID: 52, ClassID: 7, SubjectID: 1, TeacherID: "GV002", Status: models.AssignmentActive}
		repo.assignments[53] = &models.ClassSubject{ID: 53, ClassID: 5, SubjectID: 1, TeacherID: "GV001", Status: models.AssignmentInactive}
		svc, _ := newClassSubjectService(repo)

		query := ClassSubjectListQuery{ListQuery: ListQuery{PageSize: 1}}
		page, total, err := svc.List(ctx, query, teacherPrincipal)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if total != 2 {
			t.Errorf("total must count scoped rows only, got %d", total)
		}
		if len(page) != 1 {
			t.Fatalf("expected a full page of 1, got %d", len(page))
		}
		if page[0].ClassID != 5 {
			t.Errorf("page contains out-of-scope row: %+v", page[0])
		}
	})

	t.Run("explicit foreign class filter denied", func(t *testing.T) {
		classID := uint(7)
		_, _, err := svc.List(ctx, ClassSubjectListQuery{ClassID: &classID}, teacherPrincipal)
		if !errors.Is(err, ErrForbidden) {
			t.Errorf("expected ErrForbidden, got: %v", err)
		}
	})
}
