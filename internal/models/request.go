package models

import "time"

// ApprovalRequest represents a workflow proposal row. The payload column is
// stored as jsonb and never inspected by the persistence layer.
type ApprovalRequest struct {
	RequestID       string     `db:"request_id"`
	SubjectType     string     `db:"subject_type"`
	Payload         []byte     `db:"payload"`
	Status          string     `db:"status"`
	StatusReason    string     `db:"status_reason"`
	RequestedBy     string     `db:"requested_by"`
	RequestedByRole string     `db:"requested_by_role"`
	ResolvedAt      *time.Time `db:"resolved_at"`
	AuditFields
}
