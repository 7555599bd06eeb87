package handlers

import (
	"github.com/fernandoludvig/finance-api/internal/dto"
	"github.com/fernandoludvig/finance-api/internal/models"
	"github.com/fernandoludvig/finance-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

type TransactionHandler struct {
	transactionService *services.TransactionService
}

func NewTransactionHandler(transactionService *services.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

func (h *TransactionHandler) filter(c *fiber.Ctx) (models.TransactionFilter, error) {
	userID, err := currentUserID(c)
	if err != nil {
		return models.TransactionFilter{}, err
	}
	from, err := queryDate(c, "startDate", false)
	if err != nil {
		return models.TransactionFilter{}, err
	}
	to, err := queryDate(c, "endDate", true)
	if err != nil {
		return models.TransactionFilter{}, err
	}
	return models.TransactionFilter{
		UserID:   userID,
		Type:     c.Query("type"),
		Category: c.Query("category"),
		From:     from,
		To:       to,
	}, nil
}

func (h *TransactionHandler) List(c *fiber.Ctx) error {
	filter, err := h.filter(c)
	if err != nil {
		return err
	}
	txns, err := h.transactionService.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return list(c, txns)
}

func (h *TransactionHandler) Summary(c *fiber.Ctx) error {
	filter, err := h.filter(c)
	if err != nil {
		return err
	}
	summary, err := h.transactionService.Summary(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "", summary)
}

func (h *TransactionHandler) Get(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "transaction")
	if err != nil {
		return err
	}
	txn, err := h.transactionService.Get(c.UserContext(), userID, id)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "", txn)
}

func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req dto.TransactionRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	txn, err := h.transactionService.Create(c.UserContext(), userID, &req)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusCreated, "Transaction created successfully", txn)
}

func (h *TransactionHandler) Update(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "transaction")
	if err != nil {
		return err
	}
	var req dto.TransactionRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	txn, err := h.transactionService.Update(c.UserContext(), userID, id, &req)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "Transaction updated successfully", txn)
}

func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "transaction")
	if err != nil {
		return err
	}
	if err := h.transactionService.Delete(c.UserContext(), userID, id); err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "Transaction deleted successfully", nil)
}
