package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/SAP-F-2025/school-portal-service/internal/events"
	"github.com/SAP-F-2025/school-portal-service/internal/models"
	"github.com/SAP-F-2025/school-portal-service/internal/repositories"
	"github.com/SAP-F-2025/school-portal-service/internal/validator"

	"gorm.io/datatypes"
)

type attendanceService struct {
	repo      repositories.Repository
	authz     AuthorizationService
	publisher events.Publisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAttendanceService(repo repositories.Repository, authz AuthorizationService, publisher events.Publisher, logger *slog.Logger, validator *validator.Validator) AttendanceService {
	return &attendanceService{
		repo:      repo,
		authz:     authz,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

// BulkRecord replaces a class's attendance for one date. The incoming
// batch is the whole truth for that (class, date): existing rows are
// deleted and the batch inserted in one transaction, so a student left
// out of the batch ends the day with no record at all.
func (s *attendanceService) BulkRecord(ctx context.Context, req *BulkAttendanceRequest, principal Principal) ([]*models.Attendance, error) {
	if errors := s.validator.GetBusinessValidator().ValidateBulkAttendance(req); len(errors) > 0 {
		return nil, errors
	}

	if err := s.authz.RequireClassAccess(ctx, principal, req.ClassID); err != nil {
		return nil, err
	}

	exists, err := s.repo.Class().ExistsByID(ctx, req.ClassID)
	if err != nil {
		return nil, fmt.Errorf("failed to check class: %w", err)
	}
	if !exists {
		return nil, ErrClassNotFound
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, validator.ValidationErrors{{
			Field:   "date",
			Message: "must be a date in YYYY-MM-DD format",
			Value:   req.Date,
			Rule:    "iso_date",
		}}
	}

	// Every student in the batch must belong to the class.
	roster, _, err := s.repo.Student().List(ctx, repositories.StudentFilters{ClassID: &req.ClassID})
	if err != nil {
		return nil, fmt.Errorf("failed to load class roster: %w", err)
	}
	enrolled := make(map[string]struct{}, len(roster))
	for _, st := range roster {
		enrolled[st.ID] = struct{}{}
	}
	for _, item := range req.Items {
		if _, ok := enrolled[item.StudentID]; !ok {
			return nil, validator.ValidationErrors{{
				Field:   "items",
				Message: fmt.Sprintf("student %s is not enrolled in class %d", item.StudentID, req.ClassID),
				Value:   item.StudentID,
				Rule:    "business_logic",
			}}
		}
	}

	records := make([]*models.Attendance, len(req.Items))
	for i, item := range req.Items {
		records[i] = &models.Attendance{
			StudentID: item.StudentID,
			ClassID:   req.ClassID,
			Date:      datatypes.Date(date),
			Status:    item.Status,
		}
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Attendance().DeleteByClassAndDate(ctx, req.ClassID, date); err != nil {
			return fmt.Errorf("failed to clear existing attendance: %w", err)
		}
		if err := tx.Attendance().CreateBatch(ctx, records); err != nil {
			return fmt.Errorf("failed to insert attendance batch: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Attendance recorded", "class_id", req.ClassID, "date", req.Date, "count", len(records), "recorded_by", principal.UserID)

	event := events.NewEvent(events.TypeAttendanceBulkRecorded, events.AttendanceBulkRecordedData{
		ClassID:    req.ClassID,
		Date:       req.Date,
		Count:      len(records),
		RecordedBy: principal.UserID,
	})
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish attendance event", "error", err, "class_id", req.ClassID)
	}

	return records, nil
}

// ListByClassAndDate returns the rows recorded for one class and date,
// ordered by student id. Roster students without a row do not appear;
// the day sheet carries the full roster view.
func (s *attendanceService) ListByClassAndDate(ctx context.Context, classID uint, dateStr string, principal Principal) ([]*models.Attendance, error) {
	if err := s.authz.RequireClassAccess(ctx, principal, classID); err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, validator.ValidationErrors{{
			Field:   "date",
			Message: "must be a date in YYYY-MM-DD format",
			Value:   dateStr,
			Rule:    "iso_date",
		}}
	}

	exists, err := s.repo.Class().ExistsByID(ctx, classID)
	if err != nil {
		return nil, fmt.Errorf("failed to check class: %w", err)
	}
	if !exists {
		return nil, ErrClassNotFound
	}

	records, err := s.repo.Attendance().ListByClassAndDate(ctx, classID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].StudentID < records[j].StudentID
	})
	if records == nil {
		records = []*models.Attendance{}
	}
	return records, nil
}

// GetDaySheet joins the class roster with the recorded statuses for one
// date. Students without a row carry a nil status: unrecorded, which is
// distinct from PRESENT.
func (s *attendanceService) GetDaySheet(ctx context.Context, classID uint, dateStr string, principal Principal) (*AttendanceDaySheet, error) {
	if err := s.authz.RequireClassAccess(ctx, principal, classID); err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, validator.ValidationErrors{{
			Field:   "date",
			Message: "must be a date in YYYY-MM-DD format",
			Value:   dateStr,
			Rule:    "iso_date",
		}}
	}

	exists, err := s.repo.Class().ExistsByID(ctx, classID)
	if err != nil {
		return nil, fmt.Errorf("failed to check class: %w", err)
	}
	if !exists {
		return nil, ErrClassNotFound
	}

	roster, _, err := s.repo.Student().List(ctx, repositories.StudentFilters{ClassID: &classID})
	if err != nil {
		return nil, fmt.Errorf("failed to load class roster: %w", err)
	}

	recorded, err := s.repo.Attendance().ListByClassAndDate(ctx, classID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load attendance: %w", err)
	}
	byStudent := make(map[string]models.AttendanceStatus, len(recorded))
	for _, rec := range recorded {
		byStudent[rec.StudentID] = rec.Status
	}

	sheet := &AttendanceDaySheet{
		ClassID:  classID,
		Date:     dateStr,
		Entries:  make([]AttendanceDayEntry, 0, len(roster)),
		Recorded: len(recorded) > 0,
	}
	for _, st := range roster {
		entry := AttendanceDayEntry{
			StudentID:   st.ID,
			StudentName: st.FullName,
		}
		if status, ok := byStudent[st.ID]; ok {
			statusCopy := status
			entry.Status = &statusCopy
		}
		sheet.Entries = append(sheet.Entries, entry)
	}
	sort.Slice(sheet.Entries, func(i, j int) bool {
		return sheet.Entries[i].StudentID < sheet.Entries[j].StudentID
	})

	return sheet, nil
}

func (s *attendanceService) ListByStudent(ctx context.Context, studentID string, principal Principal) ([]*models.Attendance, error) {
	student, err := s.repo.Student().GetByID(ctx, studentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}

	if !principal.IsAdmin() {
		if student.CurrentClassID == nil {
			return nil, NewPermissionError(principal.UserID, "attendance", "read", "student has no current class")
		}
		if err := s.authz.RequireClassAccess(ctx, principal, *student.CurrentClassID); err != nil {
			return nil, err
		}
	}

	records, _, err := s.repo.Attendance().ListByStudent(ctx, studentID, repositories.AttendanceFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return records, nil
}

// ListMine returns the attendance history of the student profile linked
// to the calling account.
func (s *attendanceService) ListMine(ctx context.Context, principal Principal) ([]*models.Attendance, error) {
	student, err := s.repo.Student().GetByUserID(ctx, principal.UserID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewPermissionError(principal.UserID, "attendance", "read", "no student profile linked to this account")
		}
		return nil, fmt.Errorf("failed to resolve student profile: %w", err)
	}

	records, _, err := s.repo.Attendance().ListByStudent(ctx, student.ID, repositories.AttendanceFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return records, nil
}
