package handlers

import (
	"github.com/fernandoludvig/finance-api/internal/dto"
	"github.com/fernandoludvig/finance-api/internal/models"
	"github.com/fernandoludvig/finance-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
}

func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func (h *CategoryHandler) List(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	categories, err := h.categoryService.List(c.UserContext(), models.CategoryFilter{
		UserID: userID,
		Type:   c.Query("type"),
	})
	if err != nil {
		return err
	}
	return list(c, categories)
}

func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "category")
	if err != nil {
		return err
	}
	category, err := h.categoryService.Get(c.UserContext(), userID, id)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "", category)
}

func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req dto.CategoryRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	category, err := h.categoryService.Create(c.UserContext(), userID, &req)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusCreated, "Category created successfully", category)
}

func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "category")
	if err != nil {
		return err
	}
	var req dto.CategoryRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	category, err := h.categoryService.Update(c.UserContext(), userID, id, &req)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "Category updated successfully", category)
}

func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "category")
	if err != nil {
		return err
	}
	if err := h.categoryService.Delete(c.UserContext(), userID, id); err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "Category deleted successfully", nil)
}
