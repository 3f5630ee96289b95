package http

import (
	"github.com/gofiber/fiber/v2"

	"sheltercms/internal/schema/domain/model"
	"sheltercms/internal/schema/usecase"
)

// sectionBody is the editor's submission shape for create and update.
type sectionBody struct {
	Name    string                `json:"name"`
	Columns []usecase.ColumnInput `json:"columns"`
}

// swapBody carries the two display positions to exchange.
type swapBody struct {
	IndexA int `json:"indexA"`
	IndexB int `json:"indexB"`
}

func (h *HTTPHandler) ListSections(c *fiber.Ctx) error {
	family := model.Family(c.Params("family"))
	projectID := c.Params("projectID")

	sections, err := h.CatalogUC.ListSections(c.UserContext(), family, projectID)
	if err != nil {
		h.Log.Error("Failed to list sections", "family", family, "projectID", projectID, "error", err)
		return h.respondError(c, err)
	}
	if sections == nil {
		sections = []*model.SectionDefinition{}
	}
	return c.JSON(fiber.Map{"sections": sections})
}

func (h *HTTPHandler) GetSection(c *fiber.Ctx) error {
	family := model.Family(c.Params("family"))

	section, err := h.CatalogUC.GetSection(c.UserContext(), family, c.Params("projectID"), c.Params("sectionID"))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(section)
}

func (h *HTTPHandler) CreateSection(c *fiber.Ctx) error {
	var body sectionBody
	if err := c.BodyParser(&body); err != nil {
		h.Log.Error("Failed to parse section body", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid_request_body",
			"message": "Failed to parse request body",
		})
	}

	section, err := h.CatalogUC.SaveSection(c.UserContext(), usecase.SaveSectionRequest{
		Family:    model.Family(c.Params("family")),
		ProjectID: c.Params("projectID"),
		Name:      body.Name,
		Columns:   body.Columns,
	})
	if err != nil {
		h.Log.Error("Failed to create section", "error", err)
		return h.respondError(c, err)
	}

	h.Log.Info("Section created", "sectionID", section.ID)
	return c.Status(fiber.StatusCreated).JSON(section)
}

func (h *HTTPHandler) UpdateSection(c *fiber.Ctx) error {
	var body sectionBody
	if err := c.BodyParser(&body); err != nil {
		h.Log.Error("Failed to parse section body", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid_request_body",
			"message": "Failed to parse request body",
		})
	}

	section, err := h.CatalogUC.SaveSection(c.UserContext(), usecase.SaveSectionRequest{
		Family:    model.Family(c.Params("family")),
		ProjectID: c.Params("projectID"),
		SectionID: c.Params("sectionID"),
		Name:      body.Name,
		Columns:   body.Columns,
	})
	if err != nil {
		h.Log.Error("Failed to update section", "sectionID", c.Params("sectionID"), "error", err)
		return h.respondError(c, err)
	}
	return c.JSON(section)
}

func (h *HTTPHandler) DeleteSection(c *fiber.Ctx) error {
	err := h.CatalogUC.DeleteSection(c.UserContext(), usecase.DeleteSectionRequest{
		Family:    model.Family(c.Params("family")),
		ProjectID: c.Params("projectID"),
		SectionID: c.Params("sectionID"),
	})
	if err != nil {
		h.Log.Error("Failed to delete section", "sectionID", c.Params("sectionID"), "error", err)
		return h.respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *HTTPHandler) SwapColumns(c *fiber.Ctx) error {
	var body swapBody
	if err := c.BodyParser(&body); err != nil {
		h.Log.Error("Failed to parse swap body", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid_request_body",
			"message": "Failed to parse request body",
		})
	}

	section, err := h.CatalogUC.SwapColumns(c.UserContext(), usecase.SwapColumnsRequest{
		Family:    model.Family(c.Params("family")),
		ProjectID: c.Params("projectID"),
		SectionID: c.Params("sectionID"),
		IndexA:    body.IndexA,
		IndexB:    body.IndexB,
	})
	if err != nil {
		h.Log.Error("Failed to swap columns", "sectionID", c.Params("sectionID"), "error", err)
		return h.respondError(c, err)
	}
	return c.JSON(section)
}
