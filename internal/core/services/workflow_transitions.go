package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/buildsuite/site_ops_app/internal/apperrors"
	"github.com/buildsuite/site_ops_app/internal/core/domain"
)

// transitionRule is one legal edge of the approval workflow. The whole
// state machine is this table; adding a subject type means adding rows.
type transitionRule struct {
	subject        domain.RequestSubject
	from           domain.RequestStatus
	to             domain.RequestStatus
	roles          []domain.Role // allowed acting roles; absence means forbidden
	allowRequester bool          // the original requester may also take this edge
	requiresReason bool
}

var adminTier = []domain.Role{domain.RoleAdmin, domain.RoleSuperAdmin}

// transitionTable encodes the role-gated workflow per subject type.
//
// Asset and manpower requests resolve in one admin-tier decision. Stock
// requests separate the low-value path (admin approves outright) from the
// high-value one: an admin forwards, and only a super admin can finalize or
// reject the forwarded request. Listing just ADMIN on the stock approval edge
// is what keeps the two-person pattern honest: the super admin cannot
// short-circuit their own forwarding tier.
var transitionTable = []transitionRule{
	// Asset requisitions: two-tier.
	{subject: domain.SubjectAsset, from: domain.StatusPending, to: domain.StatusApproved, roles: adminTier},
	{subject: domain.SubjectAsset, from: domain.StatusPending, to: domain.StatusRejected, roles: adminTier, requiresReason: true},

	// Manpower onboarding: two-tier, plus the offboarding exception out of
	// APPROVED.
	{subject: domain.SubjectManpower, from: domain.StatusPending, to: domain.StatusApproved, roles: adminTier},
	{subject: domain.SubjectManpower, from: domain.StatusPending, to: domain.StatusRejected, roles: adminTier, requiresReason: true},
	{subject: domain.SubjectManpower, from: domain.StatusApproved, to: domain.StatusInactive, roles: adminTier},

	// Stock requests: three-tier.
	{subject: domain.SubjectStock, from: domain.StatusPending, to: domain.StatusApproved, roles: []domain.Role{domain.RoleAdmin}},
	{subject: domain.SubjectStock, from: domain.StatusPending, to: domain.StatusForwarded, roles: []domain.Role{domain.RoleAdmin}},
	{subject: domain.SubjectStock, from: domain.StatusPending, to: domain.StatusCancelled, roles: []domain.Role{domain.RoleAdmin}, allowRequester: true},
	{subject: domain.SubjectStock, from: domain.StatusForwarded, to: domain.StatusFinalApproval, roles: []domain.Role{domain.RoleSuperAdmin}},
	{subject: domain.SubjectStock, from: domain.StatusForwarded, to: domain.StatusRejected, roles: []domain.Role{domain.RoleSuperAdmin}, requiresReason: true},
}

func findRule(subject domain.RequestSubject, from, to domain.RequestStatus) *transitionRule {
	for i := range transitionTable {
		r := &transitionTable[i]
		if r.subject == subject && r.from == from && r.to == to {
			return r
		}
	}
	return nil
}

// applyTransition validates one workflow step and returns the resulting
// record. It is a pure function of (current record, target, actor, reason):
// it never touches storage and never partially applies. Error checks run in a
// fixed order: edge legality, then reason, then role, so a rejection without
// a reason reports ErrReasonRequired whatever the acting role is.
func applyTransition(rec domain.ApprovalRequest, target domain.RequestStatus, actor domain.Actor, reason string, now time.Time) (domain.ApprovalRequest, error) {
	rule := findRule(rec.SubjectType, rec.Status, target)
	if rule == nil {
		return rec, fmt.Errorf("%w: %s request %s cannot move %s -> %s",
			apperrors.ErrIllegalTransition, rec.SubjectType, rec.RequestID, rec.Status, target)
	}

	if rule.requiresReason && strings.TrimSpace(reason) == "" {
		return rec, fmt.Errorf("%w: transition to %s on request %s",
			apperrors.ErrReasonRequired, target, rec.RequestID)
	}

	if !roleAllowed(rec, rule, actor) {
		return rec, fmt.Errorf("%w: role %s may not move %s request %s to %s",
			apperrors.ErrForbidden, actor.Role, rec.SubjectType, rec.RequestID, target)
	}

	next := rec
	next.Status = target
	if rule.requiresReason {
		next.StatusReason = strings.TrimSpace(reason)
	} else {
		// Reason survives only on a rejection edge.
		next.StatusReason = ""
	}
	if target.IsTerminal() && next.ResolvedAt == nil {
		resolved := now
		next.ResolvedAt = &resolved
	}
	return next, nil
}

func roleAllowed(rec domain.ApprovalRequest, rule *transitionRule, actor domain.Actor) bool {
	for _, r := range rule.roles {
		if actor.Role == r {
			return true
		}
	}
	return rule.allowRequester && actor.UserID == rec.RequestedBy
}
