package services

import (
	"context"
	"errors"
	"testing"

	"github.com/SAP-F-2025/school-portal-service/internal/events"
	"github.com/SAP-F-2025/school-portal-service/internal/models"
	"github.com/SAP-F-2025/school-portal-service/internal/validator"
)

func newScoreService(repo *mockRepository) (ScoreService, *events.MockEventPublisher) {
	logger := testLogger()
	publisher := events.NewMockEventPublisher(logger)
	authz := NewAuthorizationService(repo, logger)
	return NewScoreService(repo, authz, publisher, logger, validator.New()), publisher
}

func TestScoreService_Upsert(t *testing.T) {
	ctx := context.Background()

	t.Run("creates then updates in place", func(t *testing.T) {
		repo := newMockRepository()
		seedSchool(repo)
		svc, publisher := newScoreService(repo)

		req := &ScoreUpsertRequest{
			StudentID:      "HS001",
			ClassSubjectID: 50,
			Type:           models.ScoreOral,
			Score:          floatPtr(7.5),
		}
		first, err := svc.Upsert(ctx, req, teacherPrincipal)
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if first.Value == nil || *first.Value != 7.5 {
			t.Errorf("expected value 7.5, got %v", first.Value)
		}

		req.Score = floatPtr(9)
		second, err := svc.Upsert(ctx, req, teacherPrincipal)
		if err != nil {
			t.Fatalf("update failed: %v", err)
		}
		if second.ID != first.ID {
			t.Error("upsert should update the existing row, not create a new one")
		}
		if len(repo.scores) != 1 {
			t.Fatalf("expected exactly 1 score row, got %d", len(repo.scores))
		}
		if *repo.scores[0].Value != 9 {
			t.Errorf("expected stored value 9, got %v", *repo.scores[0].Value)
		}

		evts := publisher.GetPublishedEvents()
		if len(evts) != 2 || evts[0].Type != events.TypeScoreUpserted {
			t.Errorf("expected two score events, got %v", evts)
		}
	})

	t.Run("distinct types are distinct rows", func(t *testing.T) {
		repo := newMockRepository()
		seedSchool(repo)
		svc, _ := newScoreService(repo)

		for _, st := range []models.ScoreType{models.ScoreOral, models.ScoreQuiz, models.ScoreMid, models.ScoreFinal} {
			req := &ScoreUpsertRequest{
				StudentID:      "HS001",
				ClassSubjectID: 50,
				Type:           st,
				Score:          floatPtr(8),
			}
			if _, err := svc.Upsert(ctx, req, teacherPrincipal); err != nil {
				t.Fatalf("upsert %s failed: %v", st, err)
			}
		}
		if len(repo.scores) != 4 {
			t.Errorf("expected 4 rows, got %d", len(repo.scores))
		}
	})

	t.Run("null clears value but keeps row and date", func(t *testing.T) {
		repo := newMockRepository()
		seedSchool(repo)
		svc, publisher := newScoreService(repo)

		date := "2025-10-01"
		req := &ScoreUpsertRequest{
			StudentID:      "HS001",
			ClassSubjectID: 50,
			Type:           models.ScoreMid,
			Score:          floatPtr(6),
			Date:           &date,
		}
		created, err := svc.Upsert(ctx, req, teacherPrincipal)
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}

		cleared, err := svc.Upsert(ctx, &ScoreUpsertRequest{
			StudentID:      "HS001",
			ClassSubjectID: 50,
			Type:           models.ScoreMid,
		}, teacherPrincipal)
		if err != nil {
			t.Fatalf("clear failed: %v", err)
		}
		if cleared.Value != nil {
			t.Error("value should be cleared to nil")
		}
		if cleared.ID != created.ID {
			t.Error("clearing should keep the row")
		}
		if !cleared.Date.Equal(created.Date) {
			t.Error("clearing without a date should keep the stored date")
		}

		evts := publisher.GetPublishedEvents()
		if len(evts) != 2 {
			t.Fatalf("expected 2 events, got %d", len(evts))
		}
		data, ok := evts[1].Data.(events.ScoreUpsertedData)
		if !ok || !data.Cleared {
			t.Errorf("second event should be flagged cleared, got %+v", evts[1].Data)
		}
	})

	t.Run("out of range rejected before any write", func(t *testing.T) {
		repo := newMockRepository()
		seedSchool(repo)
		svc, _ := newScoreService(repo)

		req := &ScoreUpsertRequest{
			StudentID:      "HS001",
			ClassSubjectID: 50,
			Type:           models.ScoreOral,
			Score:          floatPtr(10.5),
		}
		if _, err := svc.Upsert(ctx, req, teacherPrincipal); err == nil {
			t.Fatal("expected validation error")
		}
		if len(repo.scores) != 0 {
			t.Error("nothing should be written on validation failure")
		}
	})

	t.Run("foreign assignment denied", func(t *testing.T) {
		repo := newMockRepository()
		seedSchool(repo)
		svc, _ := newScoreService(repo)

		req := &ScoreUpsertRequest{
			StudentID:      "HS003",
			ClassSubjectID: 51,
			Type:           models.ScoreOral,
			Score:          floatPtr(5),
		}
		_, err := svc.Upsert(ctx, req, teacherPrincipal)
		if !errors.Is(err, ErrForbidden) {
			t.Errorf("expected ErrForbidden, got: %v", err)
		}
	})

	t.Run("existing score stays editable after class change", func(t *testing.T) {
		repo := newMockRepository()
		seedSchool(repo)
		svc, _ := newScoreService(repo)

		req := &ScoreUpsertRequest{
			StudentID:      "HS001",
			ClassSubjectID: 50,
			Type:           models.ScoreOral,
			Score:          floatPtr(7.5),
		}
		created, err := svc.Upsert(ctx, req, teacherPrincipal)
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}

		// HS001 moves to another class. The row keys on (student,
		// assignment, type), so amending and clearing keep working.
		repo.students["HS001"].CurrentClassID = uintPtr(7)

		req.Score = floatPtr(9)
		updated, err := svc.Upsert(ctx, req, teacherPrincipal)
		if err != nil {
			t.Fatalf("update after class change failed: %v", err)
		}
		if updated.ID != created.ID {
			t.Error("update should amend the existing row")
		}

		cleared, err := svc.Upsert(ctx, &ScoreUpsertRequest{
			StudentID:      "HS001",
			ClassSubjectID: 50,
			Type:           models.ScoreOral,
		}, teacherPrincipal)
		if err != nil {
			t.Fatalf("clear after class change failed: %v", err)
		}
		if cleared.Value != nil {
			t.Error("value should be cleared to nil")
		}

		// A new row for the moved student is still a create and still
		// requires current enrollment.
		fresh := &ScoreUpsertRequest{
			StudentID:      "HS001",
			ClassSubjectID: 50,
			Type:           models.ScoreQuiz,
			Score:          floatPtr(8),
		}
		if _, err := svc.Upsert(ctx, fresh, teacherPrincipal); err == nil {
			t.Fatal("expected enrollment error for a new row after the class change")
		}
	})

	t.Run("student not enrolled in assignment class rejected", func(t *testing.T) {
		repo := newMockRepository()
		seedSchool(repo)
		svc, _ := newScoreService(repo)

		req := &ScoreUpsertRequest{
			StudentID:      "HS003",
			ClassSubjectID: 50,
			Type:           models.ScoreOral,
			Score:          floatPtr(5),
		}
		if _, err := svc.Upsert(ctx, req, teacherPrincipal); err == nil {
			t.Fatal("expected error for student in another class")
		}
	})
}

func TestScoreService_StudentSummary(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepository()
	seedSchool(repo)
	svc, _ := newScoreService(repo)

	for _, v := range []float64{6, 8} {
		score := v
		req := &ScoreUpsertRequest{
			StudentID:      "HS001",
			ClassSubjectID: 50,
			Type:           models.ScoreOral,
			Score:          &score,
		}
		if v == 8 {
			req.Type = models.ScoreFinal
		}
		if _, err := svc.Upsert(ctx, req, teacherPrincipal); err != nil {
			t.Fatalf("setup upsert failed: %v", err)
		}
	}
	// A cleared score must not drag the average down.
	if _, err := svc.Upsert(ctx, &ScoreUpsertRequest{
		StudentID:      "HS001",
		ClassSubjectID: 50,
		Type:           models.ScoreQuiz,
	}, teacherPrincipal); err != nil {
		t.Fatalf("setup clear failed: %v", err)
	}

	summary, err := svc.StudentSummary(ctx, "HS001", teacherPrincipal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summary.Scores) != 3 {
		t.Errorf("expected 3 rows, got %d", len(summary.Scores))
	}
	if summary.Average == nil || *summary.Average != 7 {
		t.Errorf("expected average 7 over non-null values, got %v", summary.Average)
	}
}

func TestScoreService_MySummary(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepository()
	seedSchool(repo)
	repo.students["HS001"].UserID = uintPtr(20)
	svc, _ := newScoreService(repo)

	value := 9.0
	if _, err := svc.Upsert(ctx, &ScoreUpsertRequest{
		StudentID:      "HS001",
		ClassSubjectID: 50,
		Type:           models.ScoreMid,
		Score:          &value,
	}, teacherPrincipal); err != nil {
		t.Fatalf("setup upsert failed: %v", err)
	}

	t.Run("student reads own summary", func(t *testing.T) {
		student := Principal{UserID: 20, Username: "hs001", Role: models.RoleStudent}
		summary, err := svc.MySummary(ctx, student)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary.Student.ID != "HS001" {
			t.Errorf("summary for wrong student: %s", summary.Student.ID)
		}
		if summary.Average == nil || *summary.Average != 9 {
			t.Errorf("expected average 9, got %v", summary.Average)
		}
	})

	t.Run("account without student profile is denied", func(t *testing.T) {
		orphan := Principal{UserID: 99, Username: "ghost", Role: models.RoleStudent}
		_, err := svc.MySummary(ctx, orphan)
		var permErr *PermissionError
		if !errors.As(err, &permErr) {
			t.Fatalf("expected PermissionError, got %v", err)
		}
	})
}
