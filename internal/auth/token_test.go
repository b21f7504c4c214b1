package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/issue-tracker/internal/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:          "5f8a9c1e-26a4-4c7e-9c1d-3b2a1f0e9d8c",
		Username:    "alice",
		Email:       "a@x.com",
		PhoneNumber: "555-0100",
		Role:        domain.RoleCustomer,
	}
}

func TestGenerateAndParseToken(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	token, exp, err := tm.GenerateToken(testUser())
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "5f8a9c1e-26a4-4c7e-9c1d-3b2a1f0e9d8c", claims.UserID)
	assert.Equal(t, domain.RoleCustomer, claims.Role)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, "555-0100", claims.PhoneNumber)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("secret-one", 60).GenerateToken(testUser())
	require.NoError(t, err)

	_, err = NewTokenManager("secret-two", 60).ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID: "5f8a9c1e-26a4-4c7e-9c1d-3b2a1f0e9d8c",
		Role:   domain.RoleCustomer,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	})
	signed, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = tm.ParseToken(signed)
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	_, err := tm.ParseToken("not-a-token")
	assert.Error(t, err)
}
