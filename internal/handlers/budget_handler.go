package handlers

import (
	"github.com/fernandoludvig/finance-api/internal/dto"
	"github.com/fernandoludvig/finance-api/internal/models"
	"github.com/fernandoludvig/finance-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

type BudgetHandler struct {
	budgetService *services.BudgetService
}

func NewBudgetHandler(budgetService *services.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

func (h *BudgetHandler) List(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	year, err := queryInt(c, "year")
	if err != nil {
		return err
	}
	month, err := queryInt(c, "month")
	if err != nil {
		return err
	}
	budgets, err := h.budgetService.List(c.UserContext(), models.BudgetFilter{UserID: userID, Year: year, Month: month})
	if err != nil {
		return err
	}
	return list(c, budgets)
}

func (h *BudgetHandler) Current(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	budget, err := h.budgetService.Current(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "", budget)
}

func (h *BudgetHandler) Summary(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	year, err := queryInt(c, "year")
	if err != nil {
		return err
	}
	summary, err := h.budgetService.Summary(c.UserContext(), userID, year)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "", summary)
}

func (h *BudgetHandler) Get(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "budget")
	if err != nil {
		return err
	}
	budget, err := h.budgetService.Get(c.UserContext(), userID, id)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "", budget)
}

func (h *BudgetHandler) Create(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req dto.BudgetRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	budget, err := h.budgetService.Create(c.UserContext(), userID, &req)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusCreated, "Budget created successfully", budget)
}

func (h *BudgetHandler) Update(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "budget")
	if err != nil {
		return err
	}
	var req dto.BudgetRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	budget, err := h.budgetService.Update(c.UserContext(), userID, id, &req)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "Budget updated successfully", budget)
}

func (h *BudgetHandler) Delete(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "budget")
	if err != nil {
		return err
	}
	if err := h.budgetService.Delete(c.UserContext(), userID, id); err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "Budget deleted successfully", nil)
}
