// Package identity reads the authenticated caller from Fiber locals.
package identity

import (
	"errors"

	"github.com/fernandoludvig/finance-api/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	// TokenKey is where the JWT middleware stores the parsed token.
	TokenKey       = "user"
	CurrentUserKey = "current_user"
)

var ErrNoIdentity = errors.New("no authenticated user in context")

func Claims(c *fiber.Ctx) (jwt.MapClaims, bool) {
	token, ok := c.Locals(TokenKey).(*jwt.Token)
	if !ok || token == nil {
		return nil, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	return claims, ok
}

// GetUserID returns the caller's id from the userId claim, falling back to sub.
func GetUserID(c *fiber.Ctx) (primitive.ObjectID, error) {
	claims, ok := Claims(c)
	if !ok {
		return primitive.NilObjectID, ErrNoIdentity
	}
	raw, _ := claims["userId"].(string)
	if raw == "" {
		raw, _ = claims["sub"].(string)
	}
	if raw == "" {
		return primitive.NilObjectID, errors.New("missing user id claim")
	}
	return primitive.ObjectIDFromHex(raw)
}

func GetEmail(c *fiber.Ctx) string {
	claims, ok := Claims(c)
	if !ok {
		return ""
	}
	email, _ := claims["email"].(string)
	return email
}

func SetCurrentUser(c *fiber.Ctx, user *models.User) {
	c.Locals(CurrentUserKey, user)
}

// CurrentUser is set by the LoadCurrentUser middleware.
func CurrentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(CurrentUserKey).(*models.User)
	return user, ok && user != nil
}
