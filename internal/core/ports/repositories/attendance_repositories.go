package repositories

import (
	"context"

	"github.com/buildsuite/site_ops_app/internal/core/domain"
)

// AttendanceReader defines read operations for daily submission data.
type AttendanceReader interface {
	// FindLogByKey retrieves the single log matching the composite business
	// key, or apperrors.ErrNotFound.
	FindLogByKey(ctx context.Context, key domain.AttendanceKey) (*domain.AttendanceLog, error)

	// FindLogByID retrieves a log by its surrogate id.
	FindLogByID(ctx context.Context, attendanceID string) (*domain.AttendanceLog, error)

	// FindEntriesByLogID retrieves all entries belonging to a log.
	FindEntriesByLogID(ctx context.Context, attendanceID string) ([]domain.AttendanceEntry, error)

	// ListLogs retrieves logs for a project, newest first. An empty projectID
	// lists across projects.
	ListLogs(ctx context.Context, projectID string) ([]domain.AttendanceLog, error)
}

// AttendanceWriter defines write operations for daily submission data.
type AttendanceWriter interface {
	// ReplaceLog atomically removes any log matching the new log's composite
	// key together with its entries, then stores the new log and entries.
	// This is the keyed upsert: same key replaces, never accumulates.
	ReplaceLog(ctx context.Context, log domain.AttendanceLog, entries []domain.AttendanceEntry) error

	// DeleteLog removes a log and all of its entries. Deleting an absent id
	// is a no-op.
	DeleteLog(ctx context.Context, attendanceID string) error
}

// AttendanceRepositoryFacade combines all attendance repository interfaces.
type AttendanceRepositoryFacade interface {
	AttendanceReader
	AttendanceWriter
}
