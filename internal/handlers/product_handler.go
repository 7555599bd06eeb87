package handlers

import (
	"github.com/fernandoludvig/finance-api/internal/dto"
	"github.com/fernandoludvig/finance-api/internal/models"
	"github.com/fernandoludvig/finance-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	inStock, err := queryBool(c, "inStock")
	if err != nil {
		return err
	}
	products, err := h.productService.List(c.UserContext(), models.ProductFilter{
		Category: c.Query("category"),
		Name:     c.Query("name"),
		InStock:  inStock,
	})
	if err != nil {
		return err
	}
	return list(c, products)
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "product")
	if err != nil {
		return err
	}
	product, err := h.productService.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "", product)
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req dto.ProductRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	product, err := h.productService.Create(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusCreated, "Product created successfully", product)
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "product")
	if err != nil {
		return err
	}
	var req dto.ProductRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	product, err := h.productService.Update(c.UserContext(), id, &req)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "Product updated successfully", product)
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "product")
	if err != nil {
		return err
	}
	if err := h.productService.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "Product deleted successfully", nil)
}
