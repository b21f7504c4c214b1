package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/issue-tracker/internal/domain"
)

// memoryUserRepository keeps users in process memory. It backs the service
// when no POSTGRES_DSN is configured and the fakes used by tests. Absence is
// reported as pgx.ErrNoRows so callers treat both backends identically.
type memoryUserRepository struct {
	mu      sync.RWMutex
	byID    map[string]domain.User
	byEmail map[string]string
}

// NewMemoryUserRepository returns an in-memory UserRepository.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{
		byID:    make(map[string]domain.User),
		byEmail: make(map[string]string),
	}
}

func (r *memoryUserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now().UTC()
	r.byID[user.ID] = *user
	r.byEmail[user.Email] = user.ID
	return nil
}

func (r *memoryUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (r *memoryUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	user := r.byID[id]
	return &user, nil
}

// memoryIssueRepository keeps issues in process memory.
type memoryIssueRepository struct {
	mu     sync.RWMutex
	issues map[string]domain.Issue
}

// NewMemoryIssueRepository returns an in-memory IssueRepository.
func NewMemoryIssueRepository() IssueRepository {
	return &memoryIssueRepository{issues: make(map[string]domain.Issue)}
}

func (r *memoryIssueRepository) Create(_ context.Context, issue *domain.Issue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	issue.ID = uuid.NewString()
	issue.CreatedAt = time.Now().UTC()
	r.issues[issue.ID] = *issue
	return nil
}

func (r *memoryIssueRepository) GetByID(_ context.Context, id string) (*domain.Issue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	issue, ok := r.issues[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &issue, nil
}

func (r *memoryIssueRepository) List(_ context.Context) ([]domain.Issue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]domain.Issue, 0, len(r.issues))
	for _, issue := range r.issues {
		result = append(result, issue)
	}
	sortByCreatedDesc(result)
	return result, nil
}

func (r *memoryIssueRepository) ListByOwner(_ context.Context, userID string) ([]domain.Issue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Issue
	for _, issue := range r.issues {
		if issue.UserID == userID {
			result = append(result, issue)
		}
	}
	sortByCreatedDesc(result)
	return result, nil
}

func (r *memoryIssueRepository) Update(_ context.Context, issue *domain.Issue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.issues[issue.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	// created_at is written once; keep the stored value on update.
	issue.CreatedAt = stored.CreatedAt
	r.issues[issue.ID] = *issue
	return nil
}

func (r *memoryIssueRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.issues[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.issues, id)
	return nil
}

func sortByCreatedDesc(issues []domain.Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].CreatedAt.After(issues[j].CreatedAt)
	})
}
