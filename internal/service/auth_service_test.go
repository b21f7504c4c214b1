package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/issue-tracker/internal/config"
	"github.com/spec-kit/issue-tracker/internal/domain"
	"github.com/spec-kit/issue-tracker/internal/repository"
	apperrors "github.com/spec-kit/issue-tracker/pkg/util"
)

func newAuthService() (*AuthService, repository.UserRepository) {
	users := repository.NewMemoryUserRepository()
	cfg := config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 60,
		BcryptCost:            4,
	}
	return NewAuthService(cfg, users), users
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, users := newAuthService()
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "a@x.com", "pw1", "555-0100", domain.RoleCustomer)
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, domain.RoleCustomer, user.Role)

	stored, err := users.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, "pw1", stored.PasswordHash)
	assert.NotContains(t, stored.PasswordHash, "pw1")
}

func TestRegisterCoercesUnknownRole(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	user, err := svc.Register(ctx, "bob", "b@x.com", "pw1", "", domain.Role("superuser"))
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCustomer, user.Role)

	tech, err := svc.Register(ctx, "tina", "t@x.com", "pw1", "", domain.RoleTechnician)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleTechnician, tech.Role)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "a@x.com", "pw1", "", domain.RoleCustomer)
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice2", "a@x.com", "pw2", "", domain.RoleCustomer)
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, 400, domainErr.HTTPStatus)
	assert.Equal(t, "User with this email already exists.", domainErr.Message)
}

func TestRegisterRequiresCoreFields(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "", "a@x.com", "pw1", "", domain.RoleCustomer)
	assert.Error(t, err)
	_, err = svc.Register(ctx, "alice", "", "pw1", "", domain.RoleCustomer)
	assert.Error(t, err)
	_, err = svc.Register(ctx, "alice", "a@x.com", "", "", domain.RoleCustomer)
	assert.Error(t, err)
}

func TestLoginRoundTrip(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, "alice", "a@x.com", "pw1", "555-0100", domain.RoleCustomer)
	require.NoError(t, err)

	user, token, _, err := svc.Login(ctx, "a@x.com", "pw1")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, token)

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.UserID)
	assert.Equal(t, domain.RoleCustomer, claims.Role)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "a@x.com", "pw1", "", domain.RoleCustomer)
	require.NoError(t, err)

	_, _, _, wrongPassword := svc.Login(ctx, "a@x.com", "pw2")
	require.Error(t, wrongPassword)
	_, _, _, unknownEmail := svc.Login(ctx, "nobody@x.com", "pw1")
	require.Error(t, unknownEmail)

	assert.Equal(t, "Invalid credentials.", apperrors.ToDomainError(wrongPassword).Message)
	assert.Equal(t, "Invalid credentials.", apperrors.ToDomainError(unknownEmail).Message)
	assert.Equal(t, 400, apperrors.ToDomainError(wrongPassword).HTTPStatus)
	assert.Equal(t, 400, apperrors.ToDomainError(unknownEmail).HTTPStatus)
}
