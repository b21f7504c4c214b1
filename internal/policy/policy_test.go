package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/issue-tracker/internal/domain"
	apperrors "github.com/spec-kit/issue-tracker/pkg/util"
)

const (
	ownerID = "5f8a9c1e-26a4-4c7e-9c1d-3b2a1f0e9d8c"
	otherID = "0d9e8f7a-6b5c-4d3e-2f1a-0b9c8d7e6f5a"
)

func decide(t *testing.T, role domain.Role, actorID string, action Action, targetOwner string, statusChange bool) error {
	t.Helper()
	return Decide(Request{
		Role:         role,
		ActorID:      actorID,
		Action:       action,
		OwnerID:      targetOwner,
		StatusChange: statusChange,
	})
}

func TestDecideTable(t *testing.T) {
	tests := []struct {
		name         string
		role         domain.Role
		actorID      string
		action       Action
		ownerID      string
		statusChange bool
		wantMessage  string // empty means allowed
	}{
		{"customer reads own issue", domain.RoleCustomer, ownerID, ActionRead, ownerID, false, ""},
		{"customer reads foreign issue", domain.RoleCustomer, otherID, ActionRead, ownerID, false, "You are not authorized to view this issue."},
		{"technician reads any issue", domain.RoleTechnician, otherID, ActionRead, ownerID, false, ""},
		{"admin reads any issue", domain.RoleAdmin, otherID, ActionRead, ownerID, false, ""},

		{"customer creates", domain.RoleCustomer, ownerID, ActionCreate, "", false, ""},
		{"technician cannot create", domain.RoleTechnician, otherID, ActionCreate, "", false, "Only customers can create issues."},
		{"admin cannot create", domain.RoleAdmin, otherID, ActionCreate, "", false, "Only customers can create issues."},

		{"customer updates own fields", domain.RoleCustomer, ownerID, ActionUpdate, ownerID, false, ""},
		{"customer updates foreign issue", domain.RoleCustomer, otherID, ActionUpdate, ownerID, false, "You are not authorized to update this issue."},
		{"customer touches status on own issue", domain.RoleCustomer, ownerID, ActionUpdate, ownerID, true, "Customers cannot change the status of an issue."},
		{"technician updates status", domain.RoleTechnician, otherID, ActionUpdate, ownerID, true, ""},
		{"admin updates status", domain.RoleAdmin, otherID, ActionUpdate, ownerID, true, ""},

		{"customer deletes own issue", domain.RoleCustomer, ownerID, ActionDelete, ownerID, false, ""},
		{"customer deletes foreign issue", domain.RoleCustomer, otherID, ActionDelete, ownerID, false, "You are not authorized to delete this issue."},
		{"technician cannot delete own assignment either", domain.RoleTechnician, ownerID, ActionDelete, ownerID, false, "Technicians cannot delete issues."},
		{"admin deletes any issue", domain.RoleAdmin, otherID, ActionDelete, ownerID, false, ""},

		{"admin exports", domain.RoleAdmin, otherID, ActionExport, "", false, ""},
		{"technician cannot export", domain.RoleTechnician, otherID, ActionExport, "", false, "Admin access required."},
		{"customer cannot export", domain.RoleCustomer, ownerID, ActionExport, "", false, "Admin access required."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := decide(t, tt.role, tt.actorID, tt.action, tt.ownerID, tt.statusChange)
			if tt.wantMessage == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			domainErr := apperrors.ToDomainError(err)
			assert.Equal(t, 403, domainErr.HTTPStatus)
			assert.Equal(t, tt.wantMessage, domainErr.Message)
		})
	}
}

func TestCustomerStatusRejectedBeforeOwnership(t *testing.T) {
	// A non-owner customer submitting a status gets the ownership error, an
	// owner gets the status error; in both cases the update is refused.
	err := decide(t, domain.RoleCustomer, otherID, ActionUpdate, ownerID, true)
	require.Error(t, err)
	assert.Equal(t, "You are not authorized to update this issue.", apperrors.ToDomainError(err).Message)

	err = decide(t, domain.RoleCustomer, ownerID, ActionUpdate, ownerID, true)
	require.Error(t, err)
	assert.Equal(t, "Customers cannot change the status of an issue.", apperrors.ToDomainError(err).Message)
}

func TestSameOwnerNormalizesIDForms(t *testing.T) {
	upper := "5F8A9C1E-26A4-4C7E-9C1D-3B2A1F0E9D8C"
	padded := "  5f8a9c1e-26a4-4c7e-9c1d-3b2a1f0e9d8c "

	assert.True(t, SameOwner(ownerID, upper))
	assert.True(t, SameOwner(padded, ownerID))
	assert.False(t, SameOwner(ownerID, otherID))
	assert.False(t, SameOwner("", ownerID))
}

func TestApplyOnlyTouchesPresentFields(t *testing.T) {
	issue := domain.Issue{
		Title:       "Leak",
		Description: "Water on the floor",
		Location:    "B1",
		Department:  "Plumbing",
		Status:      domain.IssueStatusOpen,
	}

	title := "Major leak"
	status := domain.IssueStatusClosed
	Apply(&issue, UpdateFields{Title: &title, Status: &status})

	assert.Equal(t, "Major leak", issue.Title)
	assert.Equal(t, domain.IssueStatusClosed, issue.Status)
	assert.Equal(t, "Water on the floor", issue.Description)
	assert.Equal(t, "B1", issue.Location)
	assert.Equal(t, "Plumbing", issue.Department)
}

func TestApplyEmptyMaskChangesNothing(t *testing.T) {
	issue := domain.Issue{Title: "Leak", Status: domain.IssueStatusOpen}
	Apply(&issue, UpdateFields{})
	assert.Equal(t, "Leak", issue.Title)
	assert.Equal(t, domain.IssueStatusOpen, issue.Status)
}
