package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/issue-tracker/internal/domain"
	apperrors "github.com/spec-kit/issue-tracker/pkg/util"
)

const actorKey = "auth_actor"

// Actor represents the authenticated caller, decoded entirely from token
// claims. The guard performs no store lookups.
type Actor struct {
	ID          string
	Role        domain.Role
	Username    string
	Email       string
	PhoneNumber string
}

// AuthMiddleware validates bearer tokens and attaches the actor.
type AuthMiddleware struct {
	tokens *TokenManager
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	token := strings.TrimPrefix(c.Get("Authorization"), "Bearer ")
	if token == "" {
		return apperrors.NewUnauthorized("No token, authorization denied.")
	}

	claims, err := m.tokens.ParseToken(token)
	if err != nil {
		return apperrors.NewUnauthorized("Token is not valid.")
	}

	c.Locals(actorKey, &Actor{
		ID:          claims.UserID,
		Role:        claims.Role,
		Username:    claims.Username,
		Email:       claims.Email,
		PhoneNumber: claims.PhoneNumber,
	})
	return c.Next()
}

// ActorFromContext retrieves the authenticated actor.
func ActorFromContext(c *fiber.Ctx) (*Actor, bool) {
	val := c.Locals(actorKey)
	if val == nil {
		return nil, false
	}
	actor, ok := val.(*Actor)
	return actor, ok
}
