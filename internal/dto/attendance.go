package dto

import (
	"time"

	"github.com/buildsuite/site_ops_app/internal/core/domain"
)

// SubmitAttendanceEntry is one worker's mark in a submission.
type SubmitAttendanceEntry struct {
	PersonID   string `json:"personID" binding:"required"`
	PersonName string `json:"personName"`
	Status     string `json:"status" binding:"required,oneof=PRESENT ABSENT HALF_DAY"`
	InTime     string `json:"inTime,omitempty" binding:"omitempty,datetime=15:04"`
	OutTime    string `json:"outTime,omitempty" binding:"omitempty,datetime=15:04"`
	Remarks    string `json:"remarks,omitempty"`
}

// SubmitAttendanceRequest is a full daily roster for one project. Submitting
// again for the same (date, project, submitter) replaces the earlier
// submission wholesale, so the roster must always be complete.
type SubmitAttendanceRequest struct {
	Date        string                  `json:"date" binding:"required,datetime=2006-01-02"`
	ProjectID   string                  `json:"projectID" binding:"required"`
	ProjectName string                  `json:"projectName"`
	Entries     []SubmitAttendanceEntry `json:"entries" binding:"required,min=1,dive"`
}

// GetAttendanceParams identifies a submission by its composite business key.
type GetAttendanceParams struct {
	Date        string `form:"date" binding:"required,datetime=2006-01-02"`
	ProjectID   string `form:"projectID" binding:"required"`
	SubmitterID string `form:"submitterID" binding:"required"`
}

// AttendanceEntryResponse is the API representation of one worker's mark.
type AttendanceEntryResponse struct {
	EntryID      string `json:"entryID"`
	AttendanceID string `json:"attendanceID"`
	PersonID     string `json:"personID"`
	PersonName   string `json:"personName"`
	Status       string `json:"status"`
	InTime       string `json:"inTime,omitempty"`
	OutTime      string `json:"outTime,omitempty"`
	Remarks      string `json:"remarks,omitempty"`
}

// AttendanceLogResponse is the API representation of a submission header.
type AttendanceLogResponse struct {
	AttendanceID  string                   `json:"attendanceID"`
	Date          string                   `json:"date"`
	ProjectID     string                   `json:"projectID"`
	ProjectName   string                   `json:"projectName"`
	SubmitterID   string                   `json:"submitterID"`
	SubmitterName string                   `json:"submitterName"`
	Summary       domain.AttendanceSummary `json:"summary"`
	CreatedAt     time.Time                `json:"createdAt"`
}

// AttendanceResponse pairs a log with its entries.
type AttendanceResponse struct {
	Log     AttendanceLogResponse     `json:"log"`
	Entries []AttendanceEntryResponse `json:"entries"`
}

// ToAttendanceLogResponse maps a domain log to its API representation.
func ToAttendanceLogResponse(l *domain.AttendanceLog) AttendanceLogResponse {
	return AttendanceLogResponse{
		AttendanceID:  l.AttendanceID,
		Date:          l.Date,
		ProjectID:     l.ProjectID,
		ProjectName:   l.ProjectName,
		SubmitterID:   l.SubmitterID,
		SubmitterName: l.SubmitterName,
		Summary:       l.Summary,
		CreatedAt:     l.CreatedAt,
	}
}

// ToAttendanceEntryResponses maps domain entries to their API representation.
func ToAttendanceEntryResponses(entries []domain.AttendanceEntry) []AttendanceEntryResponse {
	out := make([]AttendanceEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = AttendanceEntryResponse{
			EntryID:      e.EntryID,
			AttendanceID: e.AttendanceID,
			PersonID:     e.PersonID,
			PersonName:   e.PersonName,
			Status:       string(e.Status),
			InTime:       e.InTime,
			OutTime:      e.OutTime,
			Remarks:      e.Remarks,
		}
	}
	return out
}
