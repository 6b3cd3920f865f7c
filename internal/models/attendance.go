package models

// AttendanceLog represents a daily submission header row. The composite
// business key (date, project_id, submitter_id) carries a unique constraint;
// the surrogate id exists only to link entries.
type AttendanceLog struct {
	AttendanceID  string `db:"attendance_id"`
	Date          string `db:"date"` // YYYY-MM-DD
	ProjectID     string `db:"project_id"`
	ProjectName   string `db:"project_name"`
	SubmitterID   string `db:"submitter_id"`
	SubmitterName string `db:"submitter_name"`
	PresentCount  int    `db:"present_count"`
	AbsentCount   int    `db:"absent_count"`
	HalfDayCount  int    `db:"half_day_count"`
	AuditFields
}

// AttendanceEntry represents one worker's mark inside a submission.
type AttendanceEntry struct {
	EntryID      string `db:"entry_id"`
	AttendanceID string `db:"attendance_id"`
	PersonID     string `db:"person_id"`
	PersonName   string `db:"person_name"`
	Status       string `db:"status"`
	InTime       string `db:"in_time"`
	OutTime      string `db:"out_time"`
	Remarks      string `db:"remarks"`
}
