package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/workers-united/verify-api/internal/models"
	"github.com/workers-united/verify-api/pkg/ai"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Candidate{}, &models.Document{}, &models.DocumentRequirement{}))
	return db
}

func buildFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Disposition": {"form-data; name=\"file\"; filename=\"" + filename + "\""},
		"Content-Type":        {"application/octet-stream"},
	})
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	writer.Close()

	reader := multipart.NewReader(body, writer.Boundary())
	form, err := reader.ReadForm(int64(len(content) + 1024))
	require.NoError(t, err)
	files := form.File["file"]
	require.Len(t, files, 1)
	return files[0]
}

var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

type storageStub struct {
	uploads int
}

func (s *storageStub) UploadDocument(_ context.Context, email, docType, fileName string, reader io.Reader) (string, error) {
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return "", err
	}
	s.uploads++
	return "https://cdn.example.com/" + email + "/" + docType + "/" + fileName, nil
}

type verifierStub struct {
	verdict ai.Verdict
	inputs  []ai.VerificationInput
}

func (v *verifierStub) Verify(_ context.Context, input ai.VerificationInput) ai.Verdict {
	v.inputs = append(v.inputs, input)
	return v.verdict
}

type notifierStub struct {
	notified []models.Candidate
}

func (n *notifierStub) NotifyApproved(_ context.Context, candidate models.Candidate) error {
	n.notified = append(n.notified, candidate)
	return nil
}
