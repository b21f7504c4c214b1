package export

import (
	"bytes"
	"encoding/csv"
	"time"

	"github.com/spec-kit/issue-tracker/internal/domain"
)

// Filename is the download hint attached to issue exports.
const Filename = "issues_export.csv"

var header = []string{
	"id",
	"title",
	"description",
	"location",
	"department",
	"status",
	"user_id",
	"username",
	"user_email",
	"user_phone_number",
	"created_at",
}

// IssuesCSV serializes the full issue set to CSV: one header row naming
// every field, one data row per issue, identifiers as plain strings and
// timestamps in RFC3339. An encoding failure returns an error rather than a
// truncated document.
func IssuesCSV(issues []domain.Issue) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, issue := range issues {
		record := []string{
			issue.ID,
			issue.Title,
			issue.Description,
			issue.Location,
			issue.Department,
			string(issue.Status),
			issue.UserID,
			issue.Username,
			issue.UserEmail,
			issue.UserPhoneNumber,
			issue.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
