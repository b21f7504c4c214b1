package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/issue-tracker/internal/domain"
	apperrors "github.com/spec-kit/issue-tracker/pkg/util"
)

// RequireAdmin gates routes that only administrators may reach.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := ActorFromContext(c)
		if !ok || actor.Role != domain.RoleAdmin {
			return apperrors.NewForbidden("Admin access required.")
		}
		return c.Next()
	}
}
