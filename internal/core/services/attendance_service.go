package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/buildsuite/site_ops_app/internal/apperrors"
	"github.com/buildsuite/site_ops_app/internal/core/domain"
	portsrepo "github.com/buildsuite/site_ops_app/internal/core/ports/repositories"
	portssvc "github.com/buildsuite/site_ops_app/internal/core/ports/services"
	"github.com/buildsuite/site_ops_app/internal/dto"
	"github.com/buildsuite/site_ops_app/internal/middleware"
)

// attendanceService is the daily submission ledger. Submissions are keyed by
// (date, project, submitter); re-submission on the same key replaces the log
// and its entries wholesale.
type attendanceService struct {
	attendanceRepo portsrepo.AttendanceRepositoryFacade
	userSvc        portssvc.UserReaderSvc // denormalized submitter names
	clock          func() time.Time
}

// AttendanceServiceOption configures the attendance service.
type AttendanceServiceOption func(*attendanceService)

// WithClock overrides the time source used by the mutability window check.
func WithClock(clock func() time.Time) AttendanceServiceOption {
	return func(s *attendanceService) { s.clock = clock }
}

// NewAttendanceService creates a new attendance ledger service.
func NewAttendanceService(attendanceRepo portsrepo.AttendanceRepositoryFacade, userSvc portssvc.UserReaderSvc, opts ...AttendanceServiceOption) portssvc.AttendanceSvcFacade {
	s := &attendanceService{
		attendanceRepo: attendanceRepo,
		userSvc:        userSvc,
		clock:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.AttendanceSvcFacade = (*attendanceService)(nil)

// windowOpen is the mutability window check: the submitter may write only on
// the submission day itself, admin-tier roles are unrestricted. It is a pure
// function of (date, role, now) and is evaluated fresh on every write.
func windowOpen(date string, role domain.Role, now time.Time) bool {
	if role.IsPrivileged() {
		return true
	}
	return date == now.UTC().Format(domain.AttendanceDateLayout)
}

// SubmitAttendance upserts a full daily roster. A submission that covers
// fewer workers than an earlier one for the same key drops the missing
// workers' entries: callers must always send the complete roster.
func (s *attendanceService) SubmitAttendance(ctx context.Context, req dto.SubmitAttendanceRequest, actor domain.Actor) (*domain.AttendanceLog, []domain.AttendanceEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := domain.ParseAttendanceDate(req.Date); err != nil {
		return nil, nil, fmt.Errorf("%w: date must be YYYY-MM-DD: %v", apperrors.ErrValidation, err)
	}
	now := s.clock()
	if !windowOpen(req.Date, actor.Role, now) {
		return nil, nil, fmt.Errorf("%w: %s submissions for %s are no longer writable by role %s",
			apperrors.ErrLocked, req.ProjectID, req.Date, actor.Role)
	}

	submitterName := actor.UserID
	if user, err := s.userSvc.GetUserByID(ctx, actor.UserID); err == nil {
		submitterName = user.Name
	}

	logID := uuid.NewString()
	entries := make([]domain.AttendanceEntry, len(req.Entries))
	for i, e := range req.Entries {
		status := domain.EntryStatus(e.Status)
		if !status.IsValid() {
			return nil, nil, fmt.Errorf("%w: unknown attendance status %q for person %s", apperrors.ErrValidation, e.Status, e.PersonID)
		}
		entries[i] = domain.AttendanceEntry{
			EntryID:      uuid.NewString(),
			AttendanceID: logID,
			PersonID:     e.PersonID,
			PersonName:   e.PersonName,
			Status:       status,
			InTime:       e.InTime,
			OutTime:      e.OutTime,
			Remarks:      e.Remarks,
		}
	}

	nowUTC := now.UTC()
	log := domain.AttendanceLog{
		AttendanceID:  logID,
		Date:          req.Date,
		ProjectID:     req.ProjectID,
		ProjectName:   req.ProjectName,
		SubmitterID:   actor.UserID,
		SubmitterName: submitterName,
		Summary:       domain.Summarize(entries),
		AuditFields: domain.AuditFields{
			CreatedAt:     nowUTC,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: nowUTC,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.attendanceRepo.ReplaceLog(ctx, log, entries); err != nil {
		return nil, nil, fmt.Errorf("failed to store submission for %s/%s: %w", req.ProjectID, req.Date, err)
	}

	logger.Info("Attendance submitted",
		slog.String("attendance_id", log.AttendanceID),
		slog.String("project_id", log.ProjectID),
		slog.String("date", log.Date),
		slog.Int("workers", len(entries)))
	return &log, entries, nil
}

// GetAttendanceByKey retrieves the submission stored under a composite key.
func (s *attendanceService) GetAttendanceByKey(ctx context.Context, key domain.AttendanceKey) (*domain.AttendanceLog, []domain.AttendanceEntry, error) {
	log, err := s.attendanceRepo.FindLogByKey(ctx, key)
	if err != nil {
		return nil, nil, err
	}
	entries, err := s.attendanceRepo.FindEntriesByLogID(ctx, log.AttendanceID)
	if err != nil {
		return nil, nil, err
	}
	return log, entries, nil
}

// EntriesFor retrieves all entries belonging to a log.
func (s *attendanceService) EntriesFor(ctx context.Context, attendanceID string) ([]domain.AttendanceEntry, error) {
	return s.attendanceRepo.FindEntriesByLogID(ctx, attendanceID)
}

// ListLogs retrieves submission headers, newest first.
func (s *attendanceService) ListLogs(ctx context.Context, projectID string) ([]domain.AttendanceLog, error) {
	return s.attendanceRepo.ListLogs(ctx, projectID)
}

// DeleteAttendance hard-deletes a log and its entries. This is the only way a
// submission leaves the ledger outside its own replace-on-resubmit path.
func (s *attendanceService) DeleteAttendance(ctx context.Context, attendanceID string, actor domain.Actor) error {
	if !actor.Role.IsPrivileged() {
		return fmt.Errorf("%w: role %s may not delete submissions", apperrors.ErrForbidden, actor.Role)
	}
	if err := s.attendanceRepo.DeleteLog(ctx, attendanceID); err != nil {
		return fmt.Errorf("failed to delete submission %s: %w", attendanceID, err)
	}
	return nil
}
