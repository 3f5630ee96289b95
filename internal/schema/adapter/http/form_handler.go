package http

import (
	"github.com/gofiber/fiber/v2"

	"sheltercms/internal/schema/domain/model"
	"sheltercms/internal/schema/usecase"
)

// BuildForm renders the entry form for a section. Pass recordId to prefill
// the form for editing.
func (h *HTTPHandler) BuildForm(c *fiber.Ctx) error {
	view, err := h.FormUC.BuildForm(c.UserContext(), usecase.BuildFormRequest{
		Family:    model.Family(c.Params("family")),
		ProjectID: c.Params("projectID"),
		OwnerID:   ownerID(c),
		SectionID: c.Params("sectionID"),
		RecordID:  c.Query("recordId"),
	})
	if err != nil {
		h.Log.Error("Failed to build form", "sectionID", c.Params("sectionID"), "error", err)
		return h.respondError(c, err)
	}
	return c.JSON(view)
}

// SubmitForm persists a form submission: a new record, or a wholesale values
// replacement when recordId is present in the body.
func (h *HTTPHandler) SubmitForm(c *fiber.Ctx) error {
	var body struct {
		RecordID string            `json:"recordId,omitempty"`
		Values   map[string]string `json:"values"`
	}
	if err := c.BodyParser(&body); err != nil {
		h.Log.Error("Failed to parse form body", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid_request_body",
			"message": "Failed to parse request body",
		})
	}

	record, err := h.FormUC.SubmitForm(c.UserContext(), usecase.SubmitFormRequest{
		Family:    model.Family(c.Params("family")),
		ProjectID: c.Params("projectID"),
		OwnerID:   ownerID(c),
		SectionID: c.Params("sectionID"),
		RecordID:  body.RecordID,
		Values:    body.Values,
	})
	if err != nil {
		h.Log.Error("Failed to submit form", "sectionID", c.Params("sectionID"), "error", err)
		return h.respondError(c, err)
	}

	status := fiber.StatusOK
	if body.RecordID == "" {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(record)
}
