package handlers

import (
	"github.com/fernandoludvig/finance-api/internal/dto"
	"github.com/fernandoludvig/finance-api/internal/identity"
	"github.com/fernandoludvig/finance-api/internal/models"
	"github.com/fernandoludvig/finance-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.userService.List(c.UserContext(), models.UserFilter{
		Email: c.Query("email"),
		Name:  c.Query("name"),
	})
	if err != nil {
		return err
	}
	return list(c, users)
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	user, err := h.userService.Create(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusCreated, "User created successfully", user)
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := h.authorizedTarget(c)
	if err != nil {
		return err
	}
	user, err := h.userService.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "", user)
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := h.authorizedTarget(c)
	if err != nil {
		return err
	}
	var req dto.UpdateUserRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	user, err := h.userService.Update(c.UserContext(), id, &req)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "User updated successfully", user)
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := h.authorizedTarget(c)
	if err != nil {
		return err
	}
	if err := h.userService.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "User deleted successfully", nil)
}

// authorizedTarget parses :id and checks the caller may act on it.
func (h *UserHandler) authorizedTarget(c *fiber.Ctx) (primitive.ObjectID, error) {
	id, err := parseID(c, "user")
	if err != nil {
		return id, err
	}
	actor, err := currentUserID(c)
	if err != nil {
		return id, err
	}
	return id, h.userService.Authorize(c.UserContext(), actor, identity.GetEmail(c), id)
}
