// Package policy centralizes every access decision for issues. Handlers and
// services never branch on roles themselves; they describe the attempted
// action and let Decide answer. The table:
//
//	action   customer(owner) customer(other) technician admin
//	list     own issues      -               all        all
//	read     allow           deny            allow      allow
//	create   allow           n/a             deny       deny
//	update   allow*          deny            allow      allow
//	delete   allow           deny            deny       allow
//	export   deny            deny            deny       allow
//
// *customers may never touch the status field, even on their own issues and
// even when the submitted value equals the stored one.
package policy

import (
	"strings"

	"github.com/google/uuid"

	"github.com/spec-kit/issue-tracker/internal/domain"
	apperrors "github.com/spec-kit/issue-tracker/pkg/util"
)

// Action enumerates the operations the policy governs.
type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionExport Action = "export"
)

// Request describes one attempted action for Decide.
type Request struct {
	Role    domain.Role
	ActorID string
	Action  Action
	// OwnerID is the target issue's owner. Unused for create and export.
	OwnerID string
	// StatusChange is true when an update request carries a status value,
	// regardless of whether that value differs from the stored status.
	StatusChange bool
}

// Decide returns nil when the action is permitted and a Forbidden error
// otherwise. Update decisions are all-or-nothing: a customer submitting a
// status is rejected before any other field is considered.
func Decide(req Request) error {
	switch req.Action {
	case ActionCreate:
		if req.Role != domain.RoleCustomer {
			return apperrors.NewForbidden("Only customers can create issues.")
		}
		return nil

	case ActionRead:
		if req.Role == domain.RoleCustomer && !SameOwner(req.ActorID, req.OwnerID) {
			return apperrors.NewForbidden("You are not authorized to view this issue.")
		}
		return nil

	case ActionUpdate:
		if req.Role == domain.RoleCustomer {
			if !SameOwner(req.ActorID, req.OwnerID) {
				return apperrors.NewForbidden("You are not authorized to update this issue.")
			}
			if req.StatusChange {
				return apperrors.NewForbidden("Customers cannot change the status of an issue.")
			}
		}
		return nil

	case ActionDelete:
		switch req.Role {
		case domain.RoleAdmin:
			return nil
		case domain.RoleTechnician:
			return apperrors.NewForbidden("Technicians cannot delete issues.")
		default:
			if !SameOwner(req.ActorID, req.OwnerID) {
				return apperrors.NewForbidden("You are not authorized to delete this issue.")
			}
			return nil
		}

	case ActionExport:
		if req.Role != domain.RoleAdmin {
			return apperrors.NewForbidden("Admin access required.")
		}
		return nil
	}

	return apperrors.NewForbidden("Action not permitted.")
}

// ListOwnOnly reports whether listings must be scoped to the actor's own
// issues. Technicians and admins see everything.
func ListOwnOnly(role domain.Role) bool {
	return role == domain.RoleCustomer
}

// SameOwner compares two identifiers after normalizing both to canonical
// form, so a differently-cased or padded UUID never produces a silent
// ownership mismatch.
func SameOwner(actorID, ownerID string) bool {
	return canonicalID(actorID) == canonicalID(ownerID)
}

func canonicalID(id string) string {
	trimmed := strings.TrimSpace(id)
	if parsed, err := uuid.Parse(trimmed); err == nil {
		return parsed.String()
	}
	return trimmed
}

// UpdateFields is the partial-update payload. A nil field was absent from
// the request and must keep its stored value.
type UpdateFields struct {
	Title       *string
	Description *string
	Location    *string
	Department  *string
	Status      *domain.IssueStatus
}

// HasStatus reports whether the request carried a status value.
func (f UpdateFields) HasStatus() bool {
	return f.Status != nil
}

// Apply writes the present fields onto the issue. Callers must have passed
// Decide first; Apply itself enforces nothing.
func Apply(issue *domain.Issue, f UpdateFields) {
	if f.Title != nil {
		issue.Title = *f.Title
	}
	if f.Description != nil {
		issue.Description = *f.Description
	}
	if f.Location != nil {
		issue.Location = *f.Location
	}
	if f.Department != nil {
		issue.Department = *f.Department
	}
	if f.Status != nil {
		issue.Status = *f.Status
	}
}
