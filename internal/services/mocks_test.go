package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/school-portal-service/internal/models"
	"github.com/SAP-F-2025/school-portal-service/internal/repositories"
)

// mockRepository is an in-memory Repository for service tests. Its
// WithTransaction runs the callback against the same store, which is
// enough to exercise transactional service code paths.
type mockRepository struct {
	users       map[uint]*models.User
	teachers    map[string]*models.Teacher
	students    map[string]*models.Student
	classes     map[uint]*models.Class
	subjects    map[uint]*models.Subject
	assignments map[uint]*models.ClassSubject
	materials   map[uint]*models.Material
	attendance  []*models.Attendance
	scores      []*models.Score
	nextID      uint
}

func floatPtr(v float64) *float64 { return &v }

func newMockRepository() *mockRepository {
	return &mockRepository{
		users:       make(map[uint]*models.User),
		teachers:    make(map[string]*models.Teacher),
		students:    make(map[string]*models.Student),
		classes:     make(map[uint]*models.Class),
		subjects:    make(map[uint]*models.Subject),
		assignments: make(map[uint]*models.ClassSubject),
		materials:   make(map[uint]*models.Material),
	}
}

func (m *mockRepository) id() uint {
	m.nextID++
	return m.nextID
}

func (m *mockRepository) User() repositories.UserRepository                 { return &mockUserRepo{m} }
func (m *mockRepository) Teacher() repositories.TeacherRepository           { return &mockTeacherRepo{m} }
func (m *mockRepository) Student() repositories.StudentRepository           { return &mockStudentRepo{m} }
func (m *mockRepository) Class() repositories.ClassRepository               { return &mockClassRepo{m} }
func (m *mockRepository) Subject() repositories.SubjectRepository           { return &mockSubjectRepo{m} }
func (m *mockRepository) ClassSubject() repositories.ClassSubjectRepository { return &mockCSRepo{m} }
func (m *mockRepository) Material() repositories.MaterialRepository         { return &mockMaterialRepo{m} }
func (m *mockRepository) Attendance() repositories.AttendanceRepository     { return &mockAttendanceRepo{m} }
func (m *mockRepository) Score() repositories.ScoreRepository               { return &mockScoreRepo{m} }
func (m *mockRepository) Dashboard() repositories.DashboardRepository       { return &mockDashboardRepo{m} }

func (m *mockRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}

func (m *mockRepository) Ping(ctx context.Context) error { return nil }
func (m *mockRepository) Close() error                   { return nil }

// ===== USERS =====

type mockUserRepo struct{ m *mockRepository }

func (r *mockUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = r.m.id()
	r.m.users[user.ID] = user
	return nil
}

func (r *mockUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	if u, ok := r.m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range r.m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockUserRepo) List(_ context.Context, _ repositories.UserFilters) ([]*models.User, int64, error) {
	out := make([]*models.User, 0, len(r.m.users))
	for _, u := range r.m.users {
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

func (r *mockUserRepo) Update(_ context.Context, user *models.User) error {
	r.m.users[user.ID] = user
	return nil
}

func (r *mockUserRepo) UpdateStatus(_ context.Context, id uint, status models.UserStatus) error {
	if u, ok := r.m.users[id]; ok {
		u.Status = status
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (r *mockUserRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.m.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.m.users, id)
	return nil
}

func (r *mockUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	for _, u := range r.m.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

// ===== TEACHERS =====

type mockTeacherRepo struct{ m *mockRepository }

func (r *mockTeacherRepo) Create(_ context.Context, teacher *models.Teacher) error {
	r.m.teachers[teacher.ID] = teacher
	return nil
}

func (r *mockTeacherRepo) GetByID(_ context.Context, id string) (*models.Teacher, error) {
	if t, ok := r.m.teachers[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockTeacherRepo) GetByUserID(_ context.Context, userID uint) (*models.Teacher, error) {
	for _, t := range r.m.teachers {
		if t.UserID != nil && *t.UserID == userID {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockTeacherRepo) List(_ context.Context, _ repositories.TeacherFilters) ([]*models.Teacher, int64, error) {
	out := make([]*models.Teacher, 0, len(r.m.teachers))
	for _, t := range r.m.teachers {
		out = append(out, t)
	}
	return out, int64(len(out)), nil
}

func (r *mockTeacherRepo) Update(_ context.Context, teacher *models.Teacher) error {
	r.m.teachers[teacher.ID] = teacher
	return nil
}

func (r *mockTeacherRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.m.teachers[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.m.teachers, id)
	return nil
}

func (r *mockTeacherRepo) ExistsByID(_ context.Context, id string) (bool, error) {
	_, ok := r.m.teachers[id]
	return ok, nil
}

// ===== STUDENTS =====

type mockStudentRepo struct{ m *mockRepository }

func (r *mockStudentRepo) Create(_ context.Context, student *models.Student) error {
	r.m.students[student.ID] = student
	return nil
}

func (r *mockStudentRepo) GetByID(_ context.Context, id string) (*models.Student, error) {
	if s, ok := r.m.students[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockStudentRepo) GetByUserID(_ context.Context, userID uint) (*models.Student, error) {
	for _, s := range r.m.students {
		if s.UserID != nil && *s.UserID == userID {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockStudentRepo) List(_ context.Context, filters repositories.StudentFilters) ([]*models.Student, int64, error) {
	var out []*models.Student
	for _, s := range r.m.students {
		if filters.ClassID != nil {
			if s.CurrentClassID == nil || *s.CurrentClassID != *filters.ClassID {
				continue
			}
		}
		if filters.ClassIDs != nil {
			if s.CurrentClassID == nil {
				continue
			}
			match := false
			for _, id := range filters.ClassIDs {
				if *s.CurrentClassID == id {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		out = append(out, s)
	}
	return out, int64(len(out)), nil
}

func (r *mockStudentRepo) Update(_ context.Context, student *models.Student) error {
	r.m.students[student.ID] = student
	return nil
}

func (r *mockStudentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.m.students[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.m.students, id)
	return nil
}

func (r *mockStudentRepo) ExistsByID(_ context.Context, id string) (bool, error) {
	_, ok := r.m.students[id]
	return ok, nil
}

func (r *mockStudentRepo) CountByClass(_ context.Context, classID uint) (int64, error) {
	var n int64
	for _, s := range r.m.students {
		if s.CurrentClassID != nil && *s.CurrentClassID == classID {
			n++
		}
	}
	return n, nil
}

func (r *mockStudentRepo) CountByClassIDs(_ context.Context, classIDs []uint) (map[uint]int64, error) {
	out := make(map[uint]int64, len(classIDs))
	for _, id := range classIDs {
		n, _ := r.CountByClass(context.Background(), id)
		out[id] = n
	}
	return out, nil
}

// ===== CLASSES =====

type mockClassRepo struct{ m *mockRepository }

func (r *mockClassRepo) Create(_ context.Context, class *models.Class) error {
	class.ID = r.m.id()
	r.m.classes[class.ID] = class
	return nil
}

func (r *mockClassRepo) GetByID(_ context.Context, id uint) (*models.Class, error) {
	if c, ok := r.m.classes[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockClassRepo) List(_ context.Context, filters repositories.ClassFilters) ([]*models.Class, int64, error) {
	var out []*models.Class
	for _, c := range r.m.classes {
		if filters.IDs != nil {
			match := false
			for _, id := range filters.IDs {
				if c.ID == id {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

func (r *mockClassRepo) Update(_ context.Context, class *models.Class) error {
	r.m.classes[class.ID] = class
	return nil
}

func (r *mockClassRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.m.classes[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.m.classes, id)
	return nil
}

func (r *mockClassRepo) ExistsByID(_ context.Context, id uint) (bool, error) {
	_, ok := r.m.classes[id]
	return ok, nil
}

// ===== SUBJECTS =====

type mockSubjectRepo struct{ m *mockRepository }

func (r *mockSubjectRepo) Create(_ context.Context, subject *models.Subject) error {
	subject.ID = r.m.id()
	r.m.subjects[subject.ID] = subject
	return nil
}

func (r *mockSubjectRepo) GetByID(_ context.Context, id uint) (*models.Subject, error) {
	if s, ok := r.m.subjects[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockSubjectRepo) List(_ context.Context, _ repositories.SubjectFilters) ([]*models.Subject, int64, error) {
	out := make([]*models.Subject, 0, len(r.m.subjects))
	for _, s := range r.m.subjects {
		out = append(out, s)
	}
	return out, int64(len(out)), nil
}

func (r *mockSubjectRepo) Update(_ context.Context, subject *models.Subject) error {
	r.m.subjects[subject.ID] = subject
	return nil
}

func (r *mockSubjectRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.m.subjects[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.m.subjects, id)
	return nil
}

func (r *mockSubjectRepo) ExistsByCode(_ context.Context, code string, excludeID uint) (bool, error) {
	for _, s := range r.m.subjects {
		if s.Code == code && s.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

// ===== CLASS SUBJECTS =====

type mockCSRepo struct{ m *mockRepository }

func (r *mockCSRepo) Create(_ context.Context, assignment *models.ClassSubject) error {
	assignment.ID = r.m.id()
	r.m.assignments[assignment.ID] = assignment
	return nil
}

func (r *mockCSRepo) GetByID(_ context.Context, id uint) (*models.ClassSubject, error) {
	if a, ok := r.m.assignments[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockCSRepo) List(_ context.Context, filters repositories.ClassSubjectFilters) ([]*models.ClassSubject, int64, error) {
	var out []*models.ClassSubject
	for _, a := range r.m.assignments {
		if filters.ClassID != nil && a.ClassID != *filters.ClassID {
			continue
		}
		if filters.ClassIDs != nil {
			match := false
			for _, id := range filters.ClassIDs {
				if a.ClassID == id {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		if filters.TeacherID != nil && a.TeacherID != *filters.TeacherID {
			continue
		}
		out = append(out, a)
	}
	total := int64(len(out))
	if filters.Offset > 0 {
		if filters.Offset >= len(out) {
			out = nil
		} else {
			out = out[filters.Offset:]
		}
	}
	if filters.Limit > 0 && len(out) > filters.Limit {
		out = out[:filters.Limit]
	}
	return out, total, nil
}

func (r *mockCSRepo) Update(_ context.Context, assignment *models.ClassSubject) error {
	r.m.assignments[assignment.ID] = assignment
	return nil
}

func (r *mockCSRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.m.assignments[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.m.assignments, id)
	return nil
}

func (r *mockCSRepo) ExistsByComposite(_ context.Context, classID, subjectID uint, teacherID string, excludeID uint) (bool, error) {
	for _, a := range r.m.assignments {
		if a.ClassID == classID && a.SubjectID == subjectID && a.TeacherID == teacherID && a.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *mockCSRepo) DistinctClassIDs(_ context.Context, teacherID string) ([]uint, error) {
	seen := make(map[uint]struct{})
	var out []uint
	for _, a := range r.m.assignments {
		if a.TeacherID != teacherID {
			continue
		}
		if _, ok := seen[a.ClassID]; ok {
			continue
		}
		seen[a.ClassID] = struct{}{}
		out = append(out, a.ClassID)
	}
	return out, nil
}

// ===== MATERIALS =====

type mockMaterialRepo struct{ m *mockRepository }

func (r *mockMaterialRepo) Create(_ context.Context, material *models.Material) error {
	material.ID = r.m.id()
	r.m.materials[material.ID] = material
	return nil
}

func (r *mockMaterialRepo) GetByID(_ context.Context, id uint) (*models.Material, error) {
	if mt, ok := r.m.materials[id]; ok {
		return mt, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockMaterialRepo) List(_ context.Context, filters repositories.MaterialFilters) ([]*models.Material, int64, error) {
	var out []*models.Material
	for _, mt := range r.m.materials {
		if filters.ClassSubjectID != nil && mt.ClassSubjectID != *filters.ClassSubjectID {
			continue
		}
		if filters.ClassSubjectIDs != nil {
			match := false
			for _, id := range filters.ClassSubjectIDs {
				if mt.ClassSubjectID == id {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		out = append(out, mt)
	}
	return out, int64(len(out)), nil
}

func (r *mockMaterialRepo) ListByClassSubject(ctx context.Context, classSubjectID uint) ([]*models.Material, error) {
	out, _, err := r.List(ctx, repositories.MaterialFilters{ClassSubjectID: &classSubjectID})
	return out, err
}

func (r *mockMaterialRepo) Update(_ context.Context, material *models.Material) error {
	r.m.materials[material.ID] = material
	return nil
}

func (r *mockMaterialRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.m.materials[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.m.materials, id)
	return nil
}

// ===== ATTENDANCE =====

type mockAttendanceRepo struct{ m *mockRepository }

func sameDay(a time.Time, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

func (r *mockAttendanceRepo) DeleteByClassAndDate(_ context.Context, classID uint, date time.Time) error {
	kept := r.m.attendance[:0]
	for _, rec := range r.m.attendance {
		if rec.ClassID == classID && sameDay(time.Time(rec.Date), date) {
			continue
		}
		kept = append(kept, rec)
	}
	r.m.attendance = kept
	return nil
}

func (r *mockAttendanceRepo) CreateBatch(_ context.Context, records []*models.Attendance) error {
	for _, rec := range records {
		rec.ID = r.m.id()
		r.m.attendance = append(r.m.attendance, rec)
	}
	return nil
}

func (r *mockAttendanceRepo) ListByClassAndDate(_ context.Context, classID uint, date time.Time) ([]*models.Attendance, error) {
	var out []*models.Attendance
	for _, rec := range r.m.attendance {
		if rec.ClassID == classID && sameDay(time.Time(rec.Date), date) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *mockAttendanceRepo) ListByStudent(_ context.Context, studentID string, _ repositories.AttendanceFilters) ([]*models.Attendance, int64, error) {
	var out []*models.Attendance
	for _, rec := range r.m.attendance {
		if rec.StudentID == studentID {
			out = append(out, rec)
		}
	}
	return out, int64(len(out)), nil
}

func (r *mockAttendanceRepo) List(_ context.Context, filters repositories.AttendanceFilters) ([]*models.Attendance, int64, error) {
	var out []*models.Attendance
	for _, rec := range r.m.attendance {
		if filters.ClassID != nil && rec.ClassID != *filters.ClassID {
			continue
		}
		out = append(out, rec)
	}
	return out, int64(len(out)), nil
}

func (r *mockAttendanceRepo) CountByStatusOnDate(_ context.Context, date time.Time, classIDs []uint) (map[models.AttendanceStatus]int64, error) {
	out := make(map[models.AttendanceStatus]int64)
	for _, rec := range r.m.attendance {
		if !sameDay(time.Time(rec.Date), date) {
			continue
		}
		if classIDs != nil {
			match := false
			for _, id := range classIDs {
				if rec.ClassID == id {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		out[rec.Status]++
	}
	return out, nil
}

// ===== SCORES =====

type mockScoreRepo struct{ m *mockRepository }

func (r *mockScoreRepo) FindByKey(_ context.Context, studentID string, classSubjectID uint, scoreType models.ScoreType) (*models.Score, error) {
	for _, sc := range r.m.scores {
		if sc.StudentID == studentID && sc.ClassSubjectID == classSubjectID && sc.Type == scoreType {
			return sc, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockScoreRepo) Create(_ context.Context, score *models.Score) error {
	score.ID = r.m.id()
	r.m.scores = append(r.m.scores, score)
	return nil
}

func (r *mockScoreRepo) Update(_ context.Context, score *models.Score) error {
	for i, sc := range r.m.scores {
		if sc.ID == score.ID {
			r.m.scores[i] = score
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *mockScoreRepo) ListByClassSubject(_ context.Context, classSubjectID uint) ([]*models.Score, error) {
	var out []*models.Score
	for _, sc := range r.m.scores {
		if sc.ClassSubjectID == classSubjectID {
			out = append(out, sc)
		}
	}
	return out, nil
}

func (r *mockScoreRepo) ListByStudent(_ context.Context, studentID string, _ repositories.ScoreFilters) ([]*models.Score, int64, error) {
	var out []*models.Score
	for _, sc := range r.m.scores {
		if sc.StudentID == studentID {
			out = append(out, sc)
		}
	}
	return out, int64(len(out)), nil
}

// ===== DASHBOARD =====

type mockDashboardRepo struct{ m *mockRepository }

func (r *mockDashboardRepo) Counts(_ context.Context) (*repositories.SchoolCounts, error) {
	return &repositories.SchoolCounts{
		Students: int64(len(r.m.students)),
		Teachers: int64(len(r.m.teachers)),
		Classes:  int64(len(r.m.classes)),
		Subjects: int64(len(r.m.subjects)),
	}, nil
}

func (r *mockDashboardRepo) CountsScoped(_ context.Context, classIDs []uint) (*repositories.SchoolCounts, error) {
	counts := &repositories.SchoolCounts{
		Teachers: int64(len(r.m.teachers)),
		Subjects: int64(len(r.m.subjects)),
		Classes:  int64(len(classIDs)),
	}
	for _, s := range r.m.students {
		if s.CurrentClassID == nil {
			continue
		}
		for _, id := range classIDs {
			if *s.CurrentClassID == id {
				counts.Students++
				break
			}
		}
	}
	return counts, nil
}
