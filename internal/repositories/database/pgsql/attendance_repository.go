package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/buildsuite/site_ops_app/internal/apperrors"
	"github.com/buildsuite/site_ops_app/internal/core/domain"
	portsrepo "github.com/buildsuite/site_ops_app/internal/core/ports/repositories"
	"github.com/buildsuite/site_ops_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAttendanceRepository struct {
	BaseRepository
}

// newPgxAttendanceRepository creates a new repository for daily submission data.
func newPgxAttendanceRepository(pool *pgxpool.Pool) portsrepo.AttendanceRepositoryFacade {
	return &PgxAttendanceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AttendanceRepositoryFacade = (*PgxAttendanceRepository)(nil)

func toModelLog(d domain.AttendanceLog) models.AttendanceLog {
	return models.AttendanceLog{
		AttendanceID:  d.AttendanceID,
		Date:          d.Date,
		ProjectID:     d.ProjectID,
		ProjectName:   d.ProjectName,
		SubmitterID:   d.SubmitterID,
		SubmitterName: d.SubmitterName,
		PresentCount:  d.Summary.Present,
		AbsentCount:   d.Summary.Absent,
		HalfDayCount:  d.Summary.HalfDay,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainLog(m models.AttendanceLog) domain.AttendanceLog {
	return domain.AttendanceLog{
		AttendanceID:  m.AttendanceID,
		Date:          m.Date,
		ProjectID:     m.ProjectID,
		ProjectName:   m.ProjectName,
		SubmitterID:   m.SubmitterID,
		SubmitterName: m.SubmitterName,
		Summary: domain.AttendanceSummary{
			Present: m.PresentCount,
			Absent:  m.AbsentCount,
			HalfDay: m.HalfDayCount,
		},
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func toDomainEntry(m models.AttendanceEntry) domain.AttendanceEntry {
	return domain.AttendanceEntry{
		EntryID:      m.EntryID,
		AttendanceID: m.AttendanceID,
		PersonID:     m.PersonID,
		PersonName:   m.PersonName,
		Status:       domain.EntryStatus(m.Status),
		InTime:       m.InTime,
		OutTime:      m.OutTime,
		Remarks:      m.Remarks,
	}
}

const logColumns = `attendance_id, date, project_id, project_name, submitter_id, submitter_name, present_count, absent_count, half_day_count, created_at, created_by, last_updated_at, last_updated_by`

// ReplaceLog removes any submission stored under the new log's composite key
// together with its entries, then stores the new log and entries. The whole
// upsert runs in one transaction so concurrent submitters for the same key
// cannot interleave a partial replace.
func (r *PgxAttendanceRepository) ReplaceLog(ctx context.Context, log domain.AttendanceLog, entries []domain.AttendanceEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	// Entries cascade via fk, but the delete is explicit so the replace reads
	// the same with or without the constraint.
	deleteEntries := `
		DELETE FROM attendance_entries
		WHERE attendance_id IN (
			SELECT attendance_id FROM attendance_logs
			WHERE date = $1 AND project_id = $2 AND submitter_id = $3
		);
	`
	if _, err := tx.Exec(ctx, deleteEntries, log.Date, log.ProjectID, log.SubmitterID); err != nil {
		return apperrors.NewAppError(500, "failed to clear previous entries for "+log.ProjectID+"/"+log.Date, err)
	}

	deleteLog := `DELETE FROM attendance_logs WHERE date = $1 AND project_id = $2 AND submitter_id = $3;`
	if _, err := tx.Exec(ctx, deleteLog, log.Date, log.ProjectID, log.SubmitterID); err != nil {
		return apperrors.NewAppError(500, "failed to clear previous log for "+log.ProjectID+"/"+log.Date, err)
	}

	m := toModelLog(log)
	insertLog := `
		INSERT INTO attendance_logs (` + logColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, insertLog,
		m.AttendanceID,
		m.Date,
		m.ProjectID,
		m.ProjectName,
		m.SubmitterID,
		m.SubmitterName,
		m.PresentCount,
		m.AbsentCount,
		m.HalfDayCount,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert attendance log "+m.AttendanceID, err)
	}

	batch := &pgx.Batch{}
	entryQuery := `
		INSERT INTO attendance_entries (entry_id, attendance_id, person_id, person_name, status, in_time, out_time, remarks)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	for _, e := range entries {
		batch.Queue(entryQuery, e.EntryID, e.AttendanceID, e.PersonID, e.PersonName, string(e.Status), e.InTime, e.OutTime, e.Remarks)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert attendance entries for "+m.AttendanceID, err)
	}

	return r.Commit(ctx, tx)
}

// DeleteLog removes a log and all of its entries. A cascade on an absent id
// is a no-op.
func (r *PgxAttendanceRepository) DeleteLog(ctx context.Context, attendanceID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM attendance_entries WHERE attendance_id = $1;`, attendanceID); err != nil {
		return apperrors.NewAppError(500, "failed to delete entries of log "+attendanceID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM attendance_logs WHERE attendance_id = $1;`, attendanceID); err != nil {
		return apperrors.NewAppError(500, "failed to delete log "+attendanceID, err)
	}
	return r.Commit(ctx, tx)
}

// FindLogByKey retrieves the single log matching the composite business key.
func (r *PgxAttendanceRepository) FindLogByKey(ctx context.Context, key domain.AttendanceKey) (*domain.AttendanceLog, error) {
	query := `SELECT ` + logColumns + ` FROM attendance_logs WHERE date = $1 AND project_id = $2 AND submitter_id = $3;`
	return r.scanLog(r.Pool.QueryRow(ctx, query, key.Date, key.ProjectID, key.SubmitterID), fmt.Sprintf("%s/%s/%s", key.Date, key.ProjectID, key.SubmitterID))
}

// FindLogByID retrieves a log by its surrogate id.
func (r *PgxAttendanceRepository) FindLogByID(ctx context.Context, attendanceID string) (*domain.AttendanceLog, error) {
	query := `SELECT ` + logColumns + ` FROM attendance_logs WHERE attendance_id = $1;`
	return r.scanLog(r.Pool.QueryRow(ctx, query, attendanceID), attendanceID)
}

func (r *PgxAttendanceRepository) scanLog(row pgx.Row, ident string) (*domain.AttendanceLog, error) {
	var m models.AttendanceLog
	err := row.Scan(
		&m.AttendanceID,
		&m.Date,
		&m.ProjectID,
		&m.ProjectName,
		&m.SubmitterID,
		&m.SubmitterName,
		&m.PresentCount,
		&m.AbsentCount,
		&m.HalfDayCount,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("attendance log %s: %w", ident, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find attendance log %s: %w", ident, err)
	}
	d := toDomainLog(m)
	return &d, nil
}

// FindEntriesByLogID retrieves all entries belonging to a log.
func (r *PgxAttendanceRepository) FindEntriesByLogID(ctx context.Context, attendanceID string) ([]domain.AttendanceEntry, error) {
	query := `
		SELECT entry_id, attendance_id, person_id, person_name, status, in_time, out_time, remarks
		FROM attendance_entries
		WHERE attendance_id = $1
		ORDER BY person_name, person_id;
	`
	rows, err := r.Pool.Query(ctx, query, attendanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries of log %s: %w", attendanceID, err)
	}
	defer rows.Close()

	var entries []domain.AttendanceEntry
	for rows.Next() {
		var m models.AttendanceEntry
		if err := rows.Scan(&m.EntryID, &m.AttendanceID, &m.PersonID, &m.PersonName, &m.Status, &m.InTime, &m.OutTime, &m.Remarks); err != nil {
			return nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		entries = append(entries, toDomainEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry rows: %w", err)
	}
	return entries, nil
}

// ListLogs retrieves submission headers, newest first.
func (r *PgxAttendanceRepository) ListLogs(ctx context.Context, projectID string) ([]domain.AttendanceLog, error) {
	query := `SELECT ` + logColumns + ` FROM attendance_logs`
	args := []interface{}{}
	if projectID != "" {
		query += ` WHERE project_id = $1`
		args = append(args, projectID)
	}
	query += ` ORDER BY date DESC, created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance logs: %w", err)
	}
	defer rows.Close()

	var logs []domain.AttendanceLog
	for rows.Next() {
		var m models.AttendanceLog
		if err := rows.Scan(
			&m.AttendanceID,
			&m.Date,
			&m.ProjectID,
			&m.ProjectName,
			&m.SubmitterID,
			&m.SubmitterName,
			&m.PresentCount,
			&m.AbsentCount,
			&m.HalfDayCount,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan log row: %w", err)
		}
		logs = append(logs, toDomainLog(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating log rows: %w", err)
	}
	return logs, nil
}
