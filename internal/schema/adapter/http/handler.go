package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"sheltercms/internal/schema/usecase"
	apperrors "sheltercms/internal/shared/errors"
	"sheltercms/internal/shared/logger"
)

// HTTPHandler exposes the schema engine over REST. Routes are scoped by
// record family and project:
// /families/{family}/projects/{projectId}/sections/...
type HTTPHandler struct {
	CatalogUC usecase.CatalogUsecase
	RecordUC  usecase.RecordUsecase
	FormUC    usecase.FormUsecase
	Log       logger.Logger
}

// NewHTTPHandler creates a new HTTPHandler.
func NewHTTPHandler(
	catalogUC usecase.CatalogUsecase,
	recordUC usecase.RecordUsecase,
	formUC usecase.FormUsecase,
	log logger.Logger,
) *HTTPHandler {
	return &HTTPHandler{
		CatalogUC: catalogUC,
		RecordUC:  recordUC,
		FormUC:    formUC,
		Log:       log.WithComponent("http-handler"),
	}
}

// RegisterRoutes registers all schema API routes on the given router.
func (h *HTTPHandler) RegisterRoutes(router fiber.Router) {
	scope := router.Group("/families/:family/projects/:projectID", TenantContextMiddleware(h.Log))

	h.registerSectionRoutes(scope)
	h.registerRecordRoutes(scope)
	h.registerFormRoutes(scope)
}

func (h *HTTPHandler) registerSectionRoutes(router fiber.Router) {
	router.Get("/sections", h.ListSections)
	router.Post("/sections", h.CreateSection)
	router.Get("/sections/:sectionID", h.GetSection)
	router.Put("/sections/:sectionID", h.UpdateSection)
	router.Delete("/sections/:sectionID", h.DeleteSection)
	router.Post("/sections/:sectionID/columns/swap", h.SwapColumns)
}

func (h *HTTPHandler) registerRecordRoutes(router fiber.Router) {
	router.Get("/sections/:sectionID/records", h.ListRecords)
	router.Post("/sections/:sectionID/records", h.CreateRecord)
	router.Get("/sections/:sectionID/records/:recordID", h.GetRecord)
	router.Put("/sections/:sectionID/records/:recordID", h.UpdateRecord)
	router.Delete("/sections/:sectionID/records/:recordID", h.DeleteRecord)
}

func (h *HTTPHandler) registerFormRoutes(router fiber.Router) {
	router.Get("/sections/:sectionID/form", h.BuildForm)
	router.Post("/sections/:sectionID/form", h.SubmitForm)
}

// respondError maps application errors onto their HTTP status and the shared
// error body shape. Errors without an AppError in their chain get a generic
// message; the underlying cause stays in the server log only.
func (h *HTTPHandler) respondError(c *fiber.Ctx, err error) error {
	status := apperrors.HTTPStatus(err)

	code := "internal_error"
	message := "An unexpected error occurred"
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		code = string(appErr.Type)
		message = appErr.Message
	} else {
		switch {
		case apperrors.IsNotFound(err):
			code = string(apperrors.ErrorTypeNotFound)
			message = "The requested resource was not found"
		case apperrors.IsValidation(err):
			code = string(apperrors.ErrorTypeValidation)
			message = "The request is invalid"
		case apperrors.IsDuplicateName(err):
			code = string(apperrors.ErrorTypeDuplicateName)
			message = "The section name is already in use"
		case errors.Is(err, apperrors.ErrUnknownFamily):
			code = string(apperrors.ErrorTypeValidation)
			message = "Unknown record family"
			status = fiber.StatusBadRequest
		}
	}

	return c.Status(status).JSON(fiber.Map{
		"error":   code,
		"message": message,
	})
}
