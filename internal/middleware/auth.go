package middleware

import (
	"context"
	"errors"
	"log/slog"

	"github.com/fernandoludvig/finance-api/internal/config"
	"github.com/fernandoludvig/finance-api/internal/dto"
	"github.com/fernandoludvig/finance-api/internal/identity"
	"github.com/fernandoludvig/finance-api/internal/models"
	"github.com/fernandoludvig/finance-api/internal/services"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	msgTokenRequired = "Access denied. Token required."
	msgTokenInvalid  = "Invalid token."
	msgTokenExpired  = "Token expired. Please log in again."
	msgUserNotFound  = "User not found"
)

// JWTProtected requires "Authorization: Bearer <token>" signed with the
// configured secret. Verification is stateless.
func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{
			JWTAlg: jwt.SigningMethodHS256.Alg(),
			Key:    []byte(cfg.JWTSecret),
		},
		ContextKey:   identity.TokenKey,
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	message := msgTokenInvalid
	switch {
	case errors.Is(err, jwtware.ErrJWTMissingOrMalformed):
		message = msgTokenRequired
	case errors.Is(err, jwt.ErrTokenExpired):
		message = msgTokenExpired
	}
	return unauthorized(c, message)
}

// UserLoader resolves the account behind a token.
type UserLoader interface {
	Profile(ctx context.Context, userID primitive.ObjectID) (*models.User, error)
}

// LoadCurrentUser loads the token's user into the request. Must run after
// JWTProtected.
func LoadCurrentUser(users UserLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := identity.GetUserID(c)
		if err != nil {
			return unauthorized(c, msgTokenInvalid)
		}
		user, err := users.Profile(c.UserContext(), userID)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				return unauthorized(c, msgUserNotFound)
			}
			slog.Error("failed to load current user", "user_id", userID.Hex(), "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(dto.Response{
				Success: false, Message: "Internal server error",
			})
		}
		identity.SetCurrentUser(c, user)
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.Response{
		Success: false, Message: message,
	})
}
