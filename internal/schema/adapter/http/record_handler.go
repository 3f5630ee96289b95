package http

import (
	"github.com/gofiber/fiber/v2"

	"sheltercms/internal/schema/domain/model"
	"sheltercms/internal/schema/usecase"
)

// recordBody is the submission shape for record writes: raw strings keyed by
// column ID, the way form inputs post them.
type recordBody struct {
	Values map[string]string `json:"values"`
}

// ownerID reads the record owner from the query string. Owner-scoped
// families require it; project-scoped families must leave it out.
func ownerID(c *fiber.Ctx) string {
	return c.Query("ownerId")
}

func (h *HTTPHandler) ListRecords(c *fiber.Ctx) error {
	records, err := h.RecordUC.ListRecords(c.UserContext(), usecase.ListRecordsRequest{
		Family:    model.Family(c.Params("family")),
		ProjectID: c.Params("projectID"),
		OwnerID:   ownerID(c),
		SectionID: c.Params("sectionID"),
	})
	if err != nil {
		h.Log.Error("Failed to list records", "sectionID", c.Params("sectionID"), "error", err)
		return h.respondError(c, err)
	}
	if records == nil {
		records = []*model.Record{}
	}
	return c.JSON(fiber.Map{"records": records})
}

func (h *HTTPHandler) GetRecord(c *fiber.Ctx) error {
	record, err := h.RecordUC.GetRecord(c.UserContext(), usecase.GetRecordRequest{
		Family:    model.Family(c.Params("family")),
		ProjectID: c.Params("projectID"),
		OwnerID:   ownerID(c),
		SectionID: c.Params("sectionID"),
		RecordID:  c.Params("recordID"),
	})
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(record)
}

func (h *HTTPHandler) CreateRecord(c *fiber.Ctx) error {
	var body recordBody
	if err := c.BodyParser(&body); err != nil {
		h.Log.Error("Failed to parse record body", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid_request_body",
			"message": "Failed to parse request body",
		})
	}

	record, err := h.RecordUC.CreateRecord(c.UserContext(), usecase.CreateRecordRequest{
		Family:    model.Family(c.Params("family")),
		ProjectID: c.Params("projectID"),
		OwnerID:   ownerID(c),
		SectionID: c.Params("sectionID"),
		Values:    body.Values,
	})
	if err != nil {
		h.Log.Error("Failed to create record", "sectionID", c.Params("sectionID"), "error", err)
		return h.respondError(c, err)
	}

	h.Log.Info("Record created", "recordID", record.ID)
	return c.Status(fiber.StatusCreated).JSON(record)
}

func (h *HTTPHandler) UpdateRecord(c *fiber.Ctx) error {
	var body recordBody
	if err := c.BodyParser(&body); err != nil {
		h.Log.Error("Failed to parse record body", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid_request_body",
			"message": "Failed to parse request body",
		})
	}

	record, err := h.RecordUC.UpdateRecord(c.UserContext(), usecase.UpdateRecordRequest{
		Family:    model.Family(c.Params("family")),
		ProjectID: c.Params("projectID"),
		OwnerID:   ownerID(c),
		SectionID: c.Params("sectionID"),
		RecordID:  c.Params("recordID"),
		Values:    body.Values,
	})
	if err != nil {
		h.Log.Error("Failed to update record", "recordID", c.Params("recordID"), "error", err)
		return h.respondError(c, err)
	}
	return c.JSON(record)
}

func (h *HTTPHandler) DeleteRecord(c *fiber.Ctx) error {
	err := h.RecordUC.DeleteRecord(c.UserContext(), usecase.DeleteRecordRequest{
		Family:    model.Family(c.Params("family")),
		ProjectID: c.Params("projectID"),
		OwnerID:   ownerID(c),
		SectionID: c.Params("sectionID"),
		RecordID:  c.Params("recordID"),
	})
	if err != nil {
		h.Log.Error("Failed to delete record", "recordID", c.Params("recordID"), "error", err)
		return h.respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
