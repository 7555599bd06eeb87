package middleware

import (
	"context"

	"github.com/fernandoludvig/finance-api/internal/dto"
	"github.com/fernandoludvig/finance-api/internal/identity"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminChecker decides admin access from the configured admin emails and
// the stored user role.
type AdminChecker interface {
	IsAdmin(ctx context.Context, userID primitive.ObjectID, email string) bool
}

// AdminRequired must run after JWTProtected.
func AdminRequired(checker AdminChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := identity.Claims(c); !ok {
			return unauthorized(c, msgTokenRequired)
		}

		// A malformed id claim still allows an admin-email match.
		userID, _ := identity.GetUserID(c)
		if checker.IsAdmin(c.UserContext(), userID, identity.GetEmail(c)) {
			return c.Next()
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.Response{
			Success: false, Message: "Admin access required",
		})
	}
}
