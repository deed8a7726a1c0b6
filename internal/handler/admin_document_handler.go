package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/workers-united/verify-api/internal/dto"
	"github.com/workers-united/verify-api/internal/service"
	"github.com/workers-united/verify-api/internal/utils"
)

// AdminDocumentHandler exposes the admin document-status dashboard and
// re-verification trigger.
type AdminDocumentHandler struct {
	service  service.AdminDocumentService
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewAdminDocumentHandler constructs the handler.
func NewAdminDocumentHandler(service service.AdminDocumentService, validate *validator.Validate, logger zerolog.Logger) *AdminDocumentHandler {
	return &AdminDocumentHandler{
		service:  service,
		validate: validate,
		logger:   logger.With().Str("component", "admin_document_handler").Logger(),
	}
}

// Register wires admin document routes.
func (h *AdminDocumentHandler) Register(router fiber.Router) {
	router.Get("/status", h.listStatus)
	router.Post("/re-verify", h.reverify)
}

func (h *AdminDocumentHandler) listStatus(c *fiber.Ctx) error {
	statuses, err := h.service.ListStatus(c.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list document status")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list document status")
	}

	return utils.SendSuccess(c, "document status", statuses)
}

func (h *AdminDocumentHandler) reverify(c *fiber.Ctx) error {
	var payload dto.ReverifyRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	if err := h.validate.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "documentId is required")
	}

	result, err := h.service.Reverify(c.Context(), payload.DocumentID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDocumentNotFound):
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrVerifierUnavailable):
			return utils.SendError(c, fiber.StatusServiceUnavailable, err.Error())
		default:
			h.logger.Error().Err(err).Uint("document_id", payload.DocumentID).Msg("re-verification failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "re-verification failed")
		}
	}

	return utils.SendSuccess(c, "re-verification completed", result)
}
