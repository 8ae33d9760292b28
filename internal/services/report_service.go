package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/school-portal-service/internal/models"
	"github.com/SAP-F-2025/school-portal-service/internal/repositories"
)

type reportService struct {
	repo   repositories.Repository
	authz  AuthorizationService
	logger *slog.Logger
}

func NewReportService(repo repositories.Repository, authz AuthorizationService, logger *slog.Logger) ReportService {
	return &reportService{
		repo:   repo,
		authz:  authz,
		logger: logger,
	}
}

var scoreColumns = []models.ScoreType{models.ScoreOral, models.ScoreQuiz, models.ScoreMid, models.ScoreFinal}

// ExportClassScores renders a class-subject's score sheet as an XLSX
// workbook: one row per enrolled student, one column per score type.
func (s *reportService) ExportClassScores(ctx context.Context, classSubjectID uint, principal Principal) ([]byte, string, error) {
	assignment, err := s.authz.RequireAssignmentAccess(ctx, principal, classSubjectID)
	if err != nil {
		return nil, "", err
	}

	roster, _, err := s.repo.Student().List(ctx, repositories.StudentFilters{ClassID: &assignment.ClassID})
	if err != nil {
		return nil, "", fmt.Errorf("failed to load class roster: %w", err)
	}

	scores, err := s.repo.Score().ListByClassSubject(ctx, classSubjectID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load scores: %w", err)
	}
	byKey := make(map[string]*models.Score, len(scores))
	for _, sc := range scores {
		byKey[sc.StudentID+"/"+string(sc.Type)] = sc
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Scores"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Student ID", "Full Name"}
	for _, st := range scoreColumns {
		headers = append(headers, string(st))
	}
	headers = append(headers, "Average")
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, student := range roster {
		base := row + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", base), student.ID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", base), student.FullName)

		var sum float64
		var n int
		for col, st := range scoreColumns {
			cell, _ := excelize.CoordinatesToCellName(col+3, base)
			if sc, ok := byKey[student.ID+"/"+string(st)]; ok && sc.Value != nil {
				f.SetCellValue(sheet, cell, *sc.Value)
				sum += *sc.Value
				n++
			}
		}
		if n > 0 {
			cell, _ := excelize.CoordinatesToCellName(len(scoreColumns)+3, base)
			f.SetCellValue(sheet, cell, sum/float64(n))
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to render workbook: %w", err)
	}

	filename := fmt.Sprintf("scores_class_subject_%d.xlsx", classSubjectID)
	s.logger.Info("Score sheet exported", "class_subject_id", classSubjectID, "students", len(roster), "exported_by", principal.UserID)
	return buf.Bytes(), filename, nil
}

// ExportAttendanceMonth renders one month of a class's attendance: one
// row per student, one column per day. Unrecorded days stay blank.
func (s *reportService) ExportAttendanceMonth(ctx context.Context, classID uint, year int, month int, principal Principal) ([]byte, string, error) {
	if month < 1 || month > 12 {
		return nil, "", fmt.Errorf("month %d out of range: %w", month, ErrValidationFailed)
	}

	if err := s.authz.RequireClassAccess(ctx, principal, classID); err != nil {
		return nil, "", err
	}

	exists, err := s.repo.Class().ExistsByID(ctx, classID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check class: %w", err)
	}
	if !exists {
		return nil, "", ErrClassNotFound
	}

	roster, _, err := s.repo.Student().List(ctx, repositories.StudentFilters{ClassID: &classID})
	if err != nil {
		return nil, "", fmt.Errorf("failed to load class roster: %w", err)
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0).Add(-time.Second)
	records, _, err := s.repo.Attendance().List(ctx, repositories.AttendanceFilters{
		ClassID:  &classID,
		DateFrom: &from,
		DateTo:   &to,
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to load attendance: %w", err)
	}

	byDay := make(map[string]models.AttendanceStatus, len(records))
	for _, rec := range records {
		day := time.Time(rec.Date).Day()
		byDay[fmt.Sprintf("%s/%d", rec.StudentID, day)] = rec.Status
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Attendance"
	f.SetSheetName("Sheet1", sheet)

	daysInMonth := from.AddDate(0, 1, -1).Day()
	f.SetCellValue(sheet, "A1", "Student ID")
	f.SetCellValue(sheet, "B1", "Full Name")
	for d := 1; d <= daysInMonth; d++ {
		cell, _ := excelize.CoordinatesToCellName(d+2, 1)
		f.SetCellValue(sheet, cell, d)
	}

	for row, student := range roster {
		base := row + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", base), student.ID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", base), student.FullName)
		for d := 1; d <= daysInMonth; d++ {
			if status, ok := byDay[fmt.Sprintf("%s/%d", student.ID, d)]; ok {
				cell, _ := excelize.CoordinatesToCellName(d+2, base)
				f.SetCellValue(sheet, cell, string(status)[:1])
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to render workbook: %w", err)
	}

	filename := fmt.Sprintf("attendance_class_%d_%04d_%02d.xlsx", classID, year, month)
	s.logger.Info("Attendance sheet exported", "class_id", classID, "year", year, "month", month, "exported_by", principal.UserID)
	return buf.Bytes(), filename, nil
}
