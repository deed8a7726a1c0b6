package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/workers-united/verify-api/internal/dto"
	"github.com/workers-united/verify-api/internal/service"
)

// VerifyDocumentHandler exposes the document upload/verification endpoint.
//
// The response shape is the contract of the existing upload form: a flat
// object with a verified boolean and one of message/error, never the
// standard success envelope.
type VerifyDocumentHandler struct {
	service service.VerificationService
	logger  zerolog.Logger
}

// NewVerifyDocumentHandler constructs the handler.
func NewVerifyDocumentHandler(service service.VerificationService, logger zerolog.Logger) *VerifyDocumentHandler {
	return &VerifyDocumentHandler{
		service: service,
		logger:  logger.With().Str("component", "verify_document_handler").Logger(),
	}
}

// Register wires the verification route.
func (h *VerifyDocumentHandler) Register(router fiber.Router) {
	router.Post("/verify", h.verify)
}

func (h *VerifyDocumentHandler) verify(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return sendVerifyError(c, fiber.StatusBadRequest, "Missing required fields")
	}

	docType := strings.TrimSpace(c.FormValue("type"))
	email := strings.TrimSpace(c.FormValue("email"))
	if docType == "" || email == "" {
		return sendVerifyError(c, fiber.StatusBadRequest, "Missing required fields")
	}

	req := dto.VerifyDocumentRequest{
		File:          file,
		DocType:       docType,
		Email:         email,
		CandidateName: strings.TrimSpace(c.FormValue("candidateName")),
	}

	response, err := h.service.Process(c.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCandidateNotFound):
			return sendVerifyError(c, fiber.StatusNotFound,
				"Your application was not found. Please make sure you used the correct link from your email.")
		case errors.Is(err, service.ErrUploadTooLarge),
			errors.Is(err, service.ErrUploadTypeNotAllowed),
			errors.Is(err, service.ErrInvalidDocumentType):
			return sendVerifyError(c, fiber.StatusBadRequest, err.Error())
		default:
			h.logger.Error().Err(err).Str("email", email).Str("type", docType).Msg("verification pipeline failed")
			return sendVerifyError(c, fiber.StatusInternalServerError, "Verification failed. Please try again.")
		}
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

func sendVerifyError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(dto.VerifyDocumentResponse{
		Verified: false,
		Error:    message,
	})
}
