package domain

import (
	"encoding/json"
	"time"
)

// RequestSubject identifies what kind of proposal an ApprovalRequest carries.
type RequestSubject string

const (
	SubjectAsset    RequestSubject = "ASSET"
	SubjectManpower RequestSubject = "MANPOWER"
	SubjectStock    RequestSubject = "STOCK"
)

// IsValid reports whether the subject is one of the known subject types.
func (s RequestSubject) IsValid() bool {
	switch s {
	case SubjectAsset, SubjectManpower, SubjectStock:
		return true
	}
	return false
}

// RequestStatus is the workflow state of an ApprovalRequest.
type RequestStatus string

const (
	StatusPending       RequestStatus = "PENDING"
	StatusApproved      RequestStatus = "APPROVED"
	StatusRejected      RequestStatus = "REJECTED"
	StatusForwarded     RequestStatus = "FORWARDED"
	StatusFinalApproval RequestStatus = "FINAL_APPROVAL"
	StatusCancelled     RequestStatus = "CANCELLED"
	StatusInactive      RequestStatus = "INACTIVE"
)

// IsTerminal reports whether the status resolves the workflow. An APPROVED
// manpower record may still be deactivated (offboarding), which is the one
// documented exception handled by the transition table, not here.
func (s RequestStatus) IsTerminal() bool {
	switch s {
	case StatusApproved, StatusRejected, StatusFinalApproval, StatusCancelled, StatusInactive:
		return true
	}
	return false
}

// ApprovalRequest is a mutable proposal moving through role-gated states:
// an asset requisition, a manpower onboarding entry, or a stock request.
// The payload is opaque to the workflow; only the inventory effect decodes
// the quantity-bearing part of it after approval.
type ApprovalRequest struct {
	RequestID       string          `json:"requestID"`
	SubjectType     RequestSubject  `json:"subjectType"`
	Payload         json.RawMessage `json:"payload"`
	Status          RequestStatus   `json:"status"`
	StatusReason    string          `json:"statusReason,omitempty"` // set only on rejection
	RequestedBy     string          `json:"requestedBy"`
	RequestedByRole Role            `json:"requestedByRole"`
	ResolvedAt      *time.Time      `json:"resolvedAt,omitempty"` // stamped on first terminal transition
	AuditFields
}

// QuantityPayload is the quantity-bearing part of an asset or stock request
// payload. It is decoded only when dispatching the inventory effect after an
// approval that carries quantity semantics.
type QuantityPayload struct {
	InventoryID string `json:"inventoryId"`
	LocationKey string `json:"locationKey"`
	Quantity    int64  `json:"quantity"`
}

// CarriesQuantity reports whether a transition into the given status should
// dispatch the inventory effect for this request's subject type.
func (r ApprovalRequest) CarriesQuantity(next RequestStatus) bool {
	switch r.SubjectType {
	case SubjectAsset:
		return next == StatusApproved
	case SubjectStock:
		return next == StatusFinalApproval
	}
	return false
}
