package events

// AttendanceBulkRecordedData describes a completed replace-for-day write.
type AttendanceBulkRecordedData struct {
	ClassID    uint   `json:"class_id"`
	Date       string `json:"date"`
	Count      int    `json:"count"`
	RecordedBy uint   `json:"recorded_by"`
}

// ScoreUpsertedData describes a score write; Cleared is true when the
// upsert set the value to null.
type ScoreUpsertedData struct {
	StudentID      string `json:"student_id"`
	ClassSubjectID uint   `json:"class_subject_id"`
	Type           string `json:"type"`
	Cleared        bool   `json:"cleared"`
	RecordedBy     uint   `json:"recorded_by"`
}

// AssignmentDeletedData is emitted when a class-subject assignment is
// removed. Score and attendance history tied to the id is retained.
type AssignmentDeletedData struct {
	AssignmentID uint   `json:"assignment_id"`
	ClassID      uint   `json:"class_id"`
	SubjectID    uint   `json:"subject_id"`
	TeacherID    string `json:"teacher_id"`
	DeletedBy    uint   `json:"deleted_by"`
}
