package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/issue-tracker/internal/domain"
)

const issueColumns = `id, title, description, location, department, status,
               user_id, username, user_email, user_phone_number, created_at`

// IssueRepository encapsulates issue persistence. List and ListByOwner
// return issues ordered by creation time, most recent first.
type IssueRepository interface {
	Create(ctx context.Context, issue *domain.Issue) error
	GetByID(ctx context.Context, id string) (*domain.Issue, error)
	List(ctx context.Context) ([]domain.Issue, error)
	ListByOwner(ctx context.Context, userID string) ([]domain.Issue, error)
	Update(ctx context.Context, issue *domain.Issue) error
	Delete(ctx context.Context, id string) error
}

type issueRepository struct {
	pool *pgxpool.Pool
}

// NewIssueRepository returns a Postgres-backed implementation.
func NewIssueRepository(pool *pgxpool.Pool) IssueRepository {
	return &issueRepository{pool: pool}
}

func (r *issueRepository) Create(ctx context.Context, issue *domain.Issue) error {
	const query = `
        INSERT INTO issues (title, description, location, department, status,
                            user_id, username, user_email, user_phone_number)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		issue.Title,
		issue.Description,
		issue.Location,
		issue.Department,
		issue.Status,
		issue.UserID,
		issue.Username,
		issue.UserEmail,
		issue.UserPhoneNumber,
	).Scan(&issue.ID, &issue.CreatedAt)
}

func (r *issueRepository) GetByID(ctx context.Context, id string) (*domain.Issue, error) {
	query := `SELECT ` + issueColumns + ` FROM issues WHERE id=$1`

	var issue domain.Issue
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&issue.ID,
		&issue.Title,
		&issue.Description,
		&issue.Location,
		&issue.Department,
		&issue.Status,
		&issue.UserID,
		&issue.Username,
		&issue.UserEmail,
		&issue.UserPhoneNumber,
		&issue.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &issue, nil
}

func (r *issueRepository) List(ctx context.Context) ([]domain.Issue, error) {
	query := `SELECT ` + issueColumns + ` FROM issues ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanIssues(rows)
}

func (r *issueRepository) ListByOwner(ctx context.Context, userID string) ([]domain.Issue, error) {
	query := `SELECT ` + issueColumns + ` FROM issues WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanIssues(rows)
}

func (r *issueRepository) Update(ctx context.Context, issue *domain.Issue) error {
	const query = `
        UPDATE issues SET title=$1, description=$2, location=$3, department=$4, status=$5
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		issue.Title,
		issue.Description,
		issue.Location,
		issue.Department,
		issue.Status,
		issue.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *issueRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM issues WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanIssues(rows pgx.Rows) ([]domain.Issue, error) {
	var result []domain.Issue
	for rows.Next() {
		var issue domain.Issue
		if err := rows.Scan(
			&issue.ID,
			&issue.Title,
			&issue.Description,
			&issue.Location,
			&issue.Department,
			&issue.Status,
			&issue.UserID,
			&issue.Username,
			&issue.UserEmail,
			&issue.UserPhoneNumber,
			&issue.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, issue)
	}
	return result, rows.Err()
}
