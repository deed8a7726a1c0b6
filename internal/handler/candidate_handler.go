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

// CandidateHandler handles candidate registration.
type CandidateHandler struct {
	service service.CandidateService
	logger  zerolog.Logger
}

// NewCandidateHandler constructs a candidate handler.
func NewCandidateHandler(service service.CandidateService, logger zerolog.Logger) *CandidateHandler {
	return &CandidateHandler{
		service: service,
		logger:  logger.With().Str("component", "candidate_handler").Logger(),
	}
}

// Register wires candidate routes.
func (h *CandidateHandler) Register(router fiber.Router) {
	router.Post("", h.create)
}

func (h *CandidateHandler) create(c *fiber.Ctx) error {
	var payload dto.CandidateCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Create(c.Context(), payload)
	if err != nil {
		var validationErrs validator.ValidationErrors
		switch {
		case errors.As(err, &validationErrs):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
		case errors.Is(err, service.ErrCandidateExists):
			return utils.SendError(c, fiber.StatusConflict, err.Error())
		default:
			h.logger.Error().Err(err).Msg("failed to register candidate")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to register candidate")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "candidate registered", response)
}
