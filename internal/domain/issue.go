package domain

import "time"

// IssueStatus enumerates lifecycle states for issues.
type IssueStatus string

const (
	IssueStatusOpen       IssueStatus = "OPEN"
	IssueStatusInProgress IssueStatus = "IN_PROGRESS"
	IssueStatusClosed     IssueStatus = "CLOSED"
)

// Valid reports whether the status is a known value.
func (s IssueStatus) Valid() bool {
	switch s {
	case IssueStatusOpen, IssueStatusInProgress, IssueStatusClosed:
		return true
	}
	return false
}

// Issue is the aggregate for reported issues. UserID records the owner; the
// username/email/phone fields are a snapshot of the owner's identity taken
// from their session claims at creation time, so issue rows stay readable
// without a join against users.
type Issue struct {
	ID              string
	Title           string
	Description     string
	Location        string
	Department      string
	Status          IssueStatus
	UserID          string
	Username        string
	UserEmail       string
	UserPhoneNumber string
	CreatedAt       time.Time
}
