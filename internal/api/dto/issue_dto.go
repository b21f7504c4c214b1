package dto

import (
	"time"

	"github.com/spec-kit/issue-tracker/internal/domain"
	"github.com/spec-kit/issue-tracker/internal/policy"
)

// CreateIssueRequest payload. Owner identity is taken from session claims,
// never from the body.
type CreateIssueRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Department  string `json:"department"`
}

// UpdateIssueRequest is a partial update: pointer fields distinguish "absent"
// from "set to empty", which the policy needs to detect status submissions.
type UpdateIssueRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	Department  *string `json:"department"`
	Status      *string `json:"status"`
}

// Fields converts the request into the policy's field-mask form.
func (r UpdateIssueRequest) Fields() policy.UpdateFields {
	fields := policy.UpdateFields{
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		Department:  r.Department,
	}
	if r.Status != nil {
		status := domain.IssueStatus(*r.Status)
		fields.Status = &status
	}
	return fields
}

// IssueResponse is the wire representation of an issue.
type IssueResponse struct {
	ID              string             `json:"id"`
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	Location        string             `json:"location"`
	Department      string             `json:"department"`
	Status          domain.IssueStatus `json:"status"`
	UserID          string             `json:"user_id"`
	Username        string             `json:"username"`
	UserEmail       string             `json:"user_email"`
	UserPhoneNumber string             `json:"user_phone_number"`
	CreatedAt       time.Time          `json:"created_at"`
}

// IssueView maps a domain issue to its wire representation.
func IssueView(issue *domain.Issue) IssueResponse {
	return IssueResponse{
		ID:              issue.ID,
		Title:           issue.Title,
		Description:     issue.Description,
		Location:        issue.Location,
		Department:      issue.Department,
		Status:          issue.Status,
		UserID:          issue.UserID,
		Username:        issue.Username,
		UserEmail:       issue.UserEmail,
		UserPhoneNumber: issue.UserPhoneNumber,
		CreatedAt:       issue.CreatedAt,
	}
}
