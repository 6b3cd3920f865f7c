package domain

import "time"

// AttendanceDateLayout is the canonical wire and key format for submission dates.
const AttendanceDateLayout = "2006-01-02"

// EntryStatus is the per-worker mark on a daily submission.
type EntryStatus string

const (
	MarkPresent EntryStatus = "PRESENT"
	MarkAbsent  EntryStatus = "ABSENT"
	MarkHalfDay EntryStatus = "HALF_DAY"
)

// IsValid reports whether the mark is one of the known entry statuses.
func (s EntryStatus) IsValid() bool {
	switch s {
	case MarkPresent, MarkAbsent, MarkHalfDay:
		return true
	}
	return false
}

// AttendanceKey is the composite business key of a daily submission.
// Uniqueness of a submission is decided by this triple, never by the log's
// surrogate id.
type AttendanceKey struct {
	Date        string `json:"date"` // AttendanceDateLayout
	ProjectID   string `json:"projectID"`
	SubmitterID string `json:"submitterID"`
}

// AttendanceSummary holds the per-status counts of a submission.
type AttendanceSummary struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	HalfDay int `json:"halfDay"`
}

// AttendanceLog is the header of one daily submission for a project.
// Re-submission for the same key replaces the log and all of its entries.
type AttendanceLog struct {
	AttendanceID  string            `json:"attendanceID"`
	Date          string            `json:"date"` // AttendanceDateLayout
	ProjectID     string            `json:"projectID"`
	ProjectName   string            `json:"projectName"`
	SubmitterID   string            `json:"submitterID"`
	SubmitterName string            `json:"submitterName"`
	Summary       AttendanceSummary `json:"summary"`
	AuditFields
}

// Key returns the composite business key of the log.
func (l AttendanceLog) Key() AttendanceKey {
	return AttendanceKey{Date: l.Date, ProjectID: l.ProjectID, SubmitterID: l.SubmitterID}
}

// AttendanceEntry is one worker's mark inside a daily submission.
type AttendanceEntry struct {
	EntryID      string      `json:"entryID"`
	AttendanceID string      `json:"attendanceID"`
	PersonID     string      `json:"personID"`
	PersonName   string      `json:"personName"`
	Status       EntryStatus `json:"status"`
	InTime       string      `json:"inTime,omitempty"`  // HH:MM, optional
	OutTime      string      `json:"outTime,omitempty"` // HH:MM, optional
	Remarks      string      `json:"remarks,omitempty"`
}

// Summarize recomputes the per-status counts from a set of entries.
func Summarize(entries []AttendanceEntry) AttendanceSummary {
	var s AttendanceSummary
	for _, e := range entries {
		switch e.Status {
		case MarkPresent:
			s.Present++
		case MarkAbsent:
			s.Absent++
		case MarkHalfDay:
			s.HalfDay++
		}
	}
	return s
}

// ParseAttendanceDate parses a submission date in the canonical layout.
func ParseAttendanceDate(date string) (time.Time, error) {
	return time.Parse(AttendanceDateLayout, date)
}
