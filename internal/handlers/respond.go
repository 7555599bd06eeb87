package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/fernandoludvig/finance-api/internal/dto"
	"github.com/fernandoludvig/finance-api/internal/identity"
	"github.com/fernandoludvig/finance-api/internal/services"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func ok(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(dto.Response{Success: true, Message: message, Data: data})
}

func list[T any](c *fiber.Ctx, items []T) error {
	count := len(items)
	return c.JSON(dto.Response{Success: true, Data: items, Count: &count})
}

var errInvalidBody = &services.ValidationError{Message: "Invalid request body"}

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return errInvalidBody
	}
	return nil
}

// parseID reads the :id route param as an ObjectID.
func parseID(c *fiber.Ctx, resource string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return primitive.NilObjectID, &services.ValidationError{Field: "id", Message: fmt.Sprintf("Invalid %s ID", resource)}
	}
	return id, nil
}

func queryInt(c *fiber.Ctx, key string) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &services.ValidationError{Field: key, Message: fmt.Sprintf("%s must be an integer", key)}
	}
	return n, nil
}

func queryBool(c *fiber.Ctx, key string) (*bool, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, &services.ValidationError{Field: key, Message: fmt.Sprintf("%s must be true or false", key)}
	}
	return &b, nil
}

// queryDate accepts RFC 3339 or YYYY-MM-DD. endOfDay extends plain dates
// to cover the whole day.
func queryDate(c *fiber.Ctx, key string, endOfDay bool) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, &services.ValidationError{Field: key, Message: fmt.Sprintf("%s must be a date (YYYY-MM-DD)", key)}
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

func currentUserID(c *fiber.Ctx) (primitive.ObjectID, error) {
	id, err := identity.GetUserID(c)
	if err != nil {
		return primitive.NilObjectID, fiber.NewError(fiber.StatusUnauthorized, "Invalid token.")
	}
	return id, nil
}

// NewErrorHandler maps service errors onto HTTP statuses and the response
// envelope. With expose set, 5xx responses carry the underlying error.
func NewErrorHandler(expose bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, message := classify(err)

		resp := dto.Response{Success: false, Message: message}
		if status >= fiber.StatusInternalServerError {
			slog.Error("request failed",
				"method", c.Method(),
				"path", c.Path(),
				"status", status,
				"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
				"error", err.Error(),
			)
			if hub := sentryfiber.GetHubFromContext(c); hub != nil {
				hub.CaptureException(err)
			}
			if expose {
				resp.Error = err.Error()
			}
		}
		return c.Status(status).JSON(resp)
	}
}

func classify(err error) (int, string) {
	var validation *services.ValidationError
	var fe *fiber.Error

	switch {
	case errors.As(err, &validation):
		return fiber.StatusBadRequest, validation.Message
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrCategoryExists),
		errors.Is(err, services.ErrBudgetExists),
		errors.Is(err, services.ErrInvalidState):
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, services.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, err.Error()
	case errors.Is(err, services.ErrForbidden):
		return fiber.StatusForbidden, err.Error()
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrTransactionNotFound),
		errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrBudgetNotFound):
		return fiber.StatusNotFound, err.Error()
	case errors.Is(err, services.ErrOAuthDisabled):
		return fiber.StatusServiceUnavailable, err.Error()
	case errors.As(err, &fe):
		if fe.Code >= fiber.StatusInternalServerError {
			return fe.Code, "Internal server error"
		}
		return fe.Code, fe.Message
	default:
		return fiber.StatusInternalServerError, "Internal server error"
	}
}
