package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/issue-tracker/internal/auth"
	"github.com/spec-kit/issue-tracker/internal/domain"
	"github.com/spec-kit/issue-tracker/internal/events"
	"github.com/spec-kit/issue-tracker/internal/export"
	"github.com/spec-kit/issue-tracker/internal/policy"
	"github.com/spec-kit/issue-tracker/internal/repository"
	apperrors "github.com/spec-kit/issue-tracker/pkg/util"
)

const maxFieldLen = 100

// IssueCreateInput carries the caller-supplied fields for a new issue. The
// owner identity comes from the actor's session claims, never the body.
type IssueCreateInput struct {
	Title       string
	Description string
	Location    string
	Department  string
}

// IssueService coordinates issue CRUD and export, consulting the
// authorization policy for every action.
type IssueService struct {
	issues     repository.IssueRepository
	dispatcher events.Dispatcher
}

// NewIssueService builds the service.
func NewIssueService(issues repository.IssueRepository, dispatcher events.Dispatcher) *IssueService {
	return &IssueService{issues: issues, dispatcher: dispatcher}
}

// Create files a new issue owned by the actor, with the owner's identity
// snapshot denormalized from the session claims. Status always starts OPEN.
func (s *IssueService) Create(ctx context.Context, actor *auth.Actor, input IssueCreateInput) (*domain.Issue, error) {
	if err := policy.Decide(policy.Request{
		Role:    actor.Role,
		ActorID: actor.ID,
		Action:  policy.ActionCreate,
	}); err != nil {
		return nil, err
	}

	if err := validateRequired("title", input.Title); err != nil {
		return nil, err
	}
	if err := validateRequired("location", input.Location); err != nil {
		return nil, err
	}
	if err := validateRequired("department", input.Department); err != nil {
		return nil, err
	}

	issue := &domain.Issue{
		Title:           input.Title,
		Description:     input.Description,
		Location:        input.Location,
		Department:      input.Department,
		Status:          domain.IssueStatusOpen,
		UserID:          actor.ID,
		Username:        actor.Username,
		UserEmail:       actor.Email,
		UserPhoneNumber: actor.PhoneNumber,
	}
	if err := s.issues.Create(ctx, issue); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventIssueCreated, issue.ID, actor, events.IssueCreatedPayload{
		Title:      issue.Title,
		Department: issue.Department,
		Status:     issue.Status,
	})
	return issue, nil
}

// List returns issues scoped per policy: customers see their own, everyone
// else sees all. Most recent first.
func (s *IssueService) List(ctx context.Context, actor *auth.Actor) ([]domain.Issue, error) {
	if policy.ListOwnOnly(actor.Role) {
		return s.issues.ListByOwner(ctx, actor.ID)
	}
	return s.issues.List(ctx)
}

// Get loads a single issue the actor is permitted to read.
func (s *IssueService) Get(ctx context.Context, actor *auth.Actor, id string) (*domain.Issue, error) {
	issue, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Decide(policy.Request{
		Role:    actor.Role,
		ActorID: actor.ID,
		Action:  policy.ActionRead,
		OwnerID: issue.UserID,
	}); err != nil {
		return nil, err
	}
	return issue, nil
}

// Update applies a partial update: only fields present in the request
// replace stored values. The policy decision happens before any field is
// applied, so a rejected request leaves the issue untouched.
func (s *IssueService) Update(ctx context.Context, actor *auth.Actor, id string, fields policy.UpdateFields) (*domain.Issue, error) {
	issue, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := policy.Decide(policy.Request{
		Role:         actor.Role,
		ActorID:      actor.ID,
		Action:       policy.ActionUpdate,
		OwnerID:      issue.UserID,
		StatusChange: fields.HasStatus(),
	}); err != nil {
		return nil, err
	}
	if err := validateUpdateFields(fields); err != nil {
		return nil, err
	}

	oldStatus := issue.Status
	policy.Apply(issue, fields)

	if err := s.issues.Update(ctx, issue); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Issue")
		}
		return nil, err
	}

	if issue.Status != oldStatus {
		s.publish(ctx, events.EventIssueStatusChanged, issue.ID, actor, events.IssueStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: issue.Status,
		})
	}
	return issue, nil
}

// Delete removes an issue the actor is permitted to delete.
func (s *IssueService) Delete(ctx context.Context, actor *auth.Actor, id string) error {
	issue, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	if err := policy.Decide(policy.Request{
		Role:    actor.Role,
		ActorID: actor.ID,
		Action:  policy.ActionDelete,
		OwnerID: issue.UserID,
	}); err != nil {
		return err
	}

	if err := s.issues.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Issue")
		}
		return err
	}

	s.publish(ctx, events.EventIssueDeleted, issue.ID, actor, nil)
	return nil
}

// ExportCSV serializes the full issue set for administrators.
func (s *IssueService) ExportCSV(ctx context.Context, actor *auth.Actor) ([]byte, error) {
	if err := policy.Decide(policy.Request{
		Role:    actor.Role,
		ActorID: actor.ID,
		Action:  policy.ActionExport,
	}); err != nil {
		return nil, err
	}

	issues, err := s.issues.List(ctx)
	if err != nil {
		return nil, err
	}

	data, err := export.IssuesCSV(issues)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return data, nil
}

// load validates the id shape before touching the store, so a malformed id
// is a 400 and never a storage-layer format error.
func (s *IssueService) load(ctx context.Context, id string) (*domain.Issue, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NewBadRequest("Invalid Issue ID format.")
	}

	issue, err := s.issues.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Issue")
		}
		return nil, err
	}
	return issue, nil
}

func (s *IssueService) publish(ctx context.Context, eventType events.EventType, issueID string, actor *auth.Actor, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		IssueID:   issueID,
		Actor:     events.Actor{UserID: actor.ID, Role: actor.Role},
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	})
}

func validateRequired(name, value string) error {
	if value == "" {
		return apperrors.NewValidationError(fmt.Sprintf("%s is required.", name))
	}
	return validateLen(name, value)
}

func validateLen(name, value string) error {
	if len(value) > maxFieldLen {
		return apperrors.NewValidationError(fmt.Sprintf("%s must be at most %d characters.", name, maxFieldLen))
	}
	return nil
}

func validateUpdateFields(fields policy.UpdateFields) error {
	if fields.Title != nil {
		if err := validateRequired("title", *fields.Title); err != nil {
			return err
		}
	}
	if fields.Location != nil {
		if err := validateRequired("location", *fields.Location); err != nil {
			return err
		}
	}
	if fields.Department != nil {
		if err := validateRequired("department", *fields.Department); err != nil {
			return err
		}
	}
	if fields.Status != nil && !fields.Status.Valid() {
		return apperrors.NewValidationError("status must be one of OPEN, IN_PROGRESS, CLOSED.")
	}
	return nil
}
