package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/workers-united/verify-api/internal/dto"
	"github.com/workers-united/verify-api/internal/handler"
	"github.com/workers-united/verify-api/internal/models"
	"github.com/workers-united/verify-api/internal/service"
)

type mockAdminDocumentService struct {
	statuses       []dto.AdminDocumentStatus
	reverifyResult dto.VerifyDocumentResponse
	reverifiedID   uint
	listErr        error
	reverifyErr    error
}

func (m *mockAdminDocumentService) ListStatus(_ context.Context) ([]dto.AdminDocumentStatus, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.statuses, nil
}

func (m *mockAdminDocumentService) Reverify(_ context.Context, documentID uint) (dto.VerifyDocumentResponse, error) {
	m.reverifiedID = documentID
	if m.reverifyErr != nil {
		return dto.VerifyDocumentResponse{}, m.reverifyErr
	}
	return m.reverifyResult, nil
}

func newAdminApp(svc service.AdminDocumentService) *fiber.App {
	app := fiber.New()
	h := handler.NewAdminDocumentHandler(svc, validator.New(validator.WithRequiredStructEnabled()), zerolog.New(io.Discard))
	h.Register(app.Group("/api/admin/documents"))
	return app
}

func TestAdminDocumentHandler_ListStatus(t *testing.T) {
	svc := &mockAdminDocumentService{statuses: []dto.AdminDocumentStatus{
		{CandidateID: 1, Name: "Amina Yusuf", Email: "amina@example.com", Status: models.CandidateStatusApproved, AllCompleted: true},
	}}
	app := newAdminApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/documents/status", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var response struct {
		Success bool                      `json:"success"`
		Data    []dto.AdminDocumentStatus `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.True(t, response.Success)
	require.Len(t, response.Data, 1)
	require.True(t, response.Data[0].AllCompleted)
}

func TestAdminDocumentHandler_ReverifySuccess(t *testing.T) {
	svc := &mockAdminDocumentService{reverifyResult: dto.VerifyDocumentResponse{Verified: true, Message: "ok"}}
	app := newAdminApp(svc)

	body, err := json.Marshal(dto.ReverifyRequest{DocumentID: 42})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/documents/re-verify", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, uint(42), svc.reverifiedID)
}

func TestAdminDocumentHandler_ReverifyRequiresDocumentID(t *testing.T) {
	app := newAdminApp(&mockAdminDocumentService{})

	req := httptest.NewRequest(http.MethodPost, "/api/admin/documents/re-verify", bytes.NewReader([]byte("{}")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAdminDocumentHandler_ReverifyNotFound(t *testing.T) {
	app := newAdminApp(&mockAdminDocumentService{reverifyErr: service.ErrDocumentNotFound})

	body, err := json.Marshal(dto.ReverifyRequest{DocumentID: 9999})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/documents/re-verify", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAdminDocumentHandler_ReverifyDegradedMode(t *testing.T) {
	app := newAdminApp(&mockAdminDocumentService{reverifyErr: service.ErrVerifierUnavailable})

	body, err := json.Marshal(dto.ReverifyRequest{DocumentID: 1})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/documents/re-verify", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}
