package handlers

import (
	"errors"
	"time"

	"github.com/fernandoludvig/finance-api/internal/config"
	"github.com/fernandoludvig/finance-api/internal/dto"
	"github.com/fernandoludvig/finance-api/internal/identity"
	"github.com/fernandoludvig/finance-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const stateCookie = "oauth_state"

type AuthHandler struct {
	authService *services.AuthService
	google      services.OAuthProvider
	secure      bool
}

// NewAuthHandler takes a nil google provider when OAuth is not configured.
func NewAuthHandler(authService *services.AuthService, google services.OAuthProvider, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, google: google, secure: cfg.IsProduction()}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	resp, err := h.authService.Register(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusCreated, "User registered successfully", resp)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	resp, err := h.authService.Login(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "Login successful", resp)
}

// Logout is stateless; clients discard their token.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return ok(c, fiber.StatusOK, "Logout successful", nil)
}

func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	user, found := identity.CurrentUser(c)
	if !found {
		return services.ErrUserNotFound
	}
	return ok(c, fiber.StatusOK, "", user)
}

func (h *AuthHandler) TestToken(c *fiber.Ctx) error {
	var req dto.TestTokenRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	id, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		return &services.ValidationError{Field: "userId", Message: "Invalid user ID"}
	}
	resp, err := h.authService.TestToken(c.UserContext(), id)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "Test token issued", resp)
}

// GoogleLogin redirects to Google's consent screen. The signed state is
// echoed in an HttpOnly cookie and checked on the callback.
func (h *AuthHandler) GoogleLogin(c *fiber.Ctx) error {
	if h.google == nil {
		return services.ErrOAuthDisabled
	}
	state, err := h.authService.NewOAuthState()
	if err != nil {
		return err
	}
	h.setStateCookie(c, state, 10*time.Minute)
	return c.Redirect(h.google.AuthCodeURL(state), fiber.StatusTemporaryRedirect)
}

func (h *AuthHandler) GoogleCallback(c *fiber.Ctx) error {
	if h.google == nil {
		return services.ErrOAuthDisabled
	}
	if reason := c.Query("error"); reason != "" {
		return &services.ValidationError{Message: "Google sign-in was cancelled: " + reason}
	}

	state := c.Query("state")
	cookie := c.Cookies(stateCookie)
	h.setStateCookie(c, "", -time.Second)
	if err := h.authService.VerifyOAuthState(state, cookie); err != nil {
		return err
	}

	code := c.Query("code")
	if code == "" {
		return &services.ValidationError{Field: "code", Message: "Missing authorization code"}
	}
	info, err := h.google.Exchange(c.UserContext(), code)
	if err != nil {
		return errors.Join(fiber.ErrBadGateway, err)
	}

	resp, err := h.authService.SignInWithGoogle(c.UserContext(), info)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "Login successful", resp)
}

func (h *AuthHandler) setStateCookie(c *fiber.Ctx, value string, ttl time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     stateCookie,
		Value:    value,
		Path:     "/api/auth/google",
		MaxAge:   int(ttl.Seconds()),
		Expires:  time.Now().Add(ttl),
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
