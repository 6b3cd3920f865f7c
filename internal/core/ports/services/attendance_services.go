package services

import (
	"context"

	"github.com/buildsuite/site_ops_app/internal/core/domain"
	"github.com/buildsuite/site_ops_app/internal/dto"
)

// AttendanceReaderSvc defines read operations for daily submissions.
type AttendanceReaderSvc interface {
	// GetAttendanceByKey retrieves the submission stored under the composite
	// business key together with its entries.
	GetAttendanceByKey(ctx context.Context, key domain.AttendanceKey) (*domain.AttendanceLog, []domain.AttendanceEntry, error)

	// EntriesFor retrieves all entries belonging to a log.
	EntriesFor(ctx context.Context, attendanceID string) ([]domain.AttendanceEntry, error)

	// ListLogs retrieves submission headers, newest first, optionally
	// narrowed to one project.
	ListLogs(ctx context.Context, projectID string) ([]domain.AttendanceLog, error)
}

// AttendanceWriterSvc defines write operations for daily submissions.
type AttendanceWriterSvc interface {
	// SubmitAttendance upserts a full daily roster keyed by
	// (date, project, submitter). Re-submission replaces the earlier log and
	// all of its entries. Fails with apperrors.ErrLocked outside the
	// mutability window for non-privileged roles.
	SubmitAttendance(ctx context.Context, req dto.SubmitAttendanceRequest, actor domain.Actor) (*domain.AttendanceLog, []domain.AttendanceEntry, error)

	// DeleteAttendance hard-deletes a log together with its entries.
	// Privileged roles only.
	DeleteAttendance(ctx context.Context, attendanceID string, actor domain.Actor) error
}

// AttendanceSvcFacade combines all attendance service interfaces.
type AttendanceSvcFacade interface {
	AttendanceReaderSvc
	AttendanceWriterSvc
}
