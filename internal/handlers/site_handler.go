package handlers

import (
	"github.com/fernandoludvig/finance-api/internal/docs"
	"github.com/fernandoludvig/finance-api/internal/profile"
	"github.com/gofiber/fiber/v2"
)

type SiteHandler struct {
	professional *profile.Professional
}

func NewSiteHandler(professional *profile.Professional) *SiteHandler {
	return &SiteHandler{professional: professional}
}

// Professional returns the profile unwrapped; the personal-site frontend
// reads these fields at the top level.
func (h *SiteHandler) Professional(c *fiber.Ctx) error {
	return c.JSON(h.professional)
}

func (h *SiteHandler) DocsUI(c *fiber.Ctx) error {
	c.Type("html")
	return c.SendString(docs.UI("/api-docs/openapi.yaml"))
}

func (h *SiteHandler) DocsSpec(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "application/yaml")
	return c.Send(docs.OpenAPI)
}

func (h *SiteHandler) Root(c *fiber.Ctx) error {
	return ok(c, fiber.StatusOK, "Finance API is running. See /api-docs for documentation.", nil)
}
