package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/workers-united/verify-api/internal/dto"
	"github.com/workers-united/verify-api/internal/models"
	"github.com/workers-united/verify-api/internal/observability"
	"github.com/workers-united/verify-api/internal/repository"
	"github.com/workers-united/verify-api/pkg/ai"
)

const manualReviewMessage = "Document uploaded successfully. Manual review pending."

var (
	// ErrCandidateNotFound indicates no candidate matched the upload's email.
	ErrCandidateNotFound = errors.New("your application was not found, please make sure you used the correct link from your email")
	// ErrUploadTooLarge indicates the payload exceeded the configured limit.
	ErrUploadTooLarge = errors.New("file exceeds maximum allowed size")
	// ErrUploadTypeNotAllowed indicates the MIME type is not permitted.
	ErrUploadTypeNotAllowed = errors.New("file type not allowed, upload an image or PDF")
	// ErrInvalidDocumentType indicates the type field was not a known enum value.
	ErrInvalidDocumentType = errors.New("unknown document type")
)

// DocumentStorage abstracts the durable object store for uploaded documents.
type DocumentStorage interface {
	UploadDocument(ctx context.Context, email, docType, fileName string, reader io.Reader) (string, error)
}

// VerificationService runs the full pipeline: intake, storage, AI verdict,
// status aggregation.
type VerificationService interface {
	Process(ctx context.Context, req dto.VerifyDocumentRequest) (dto.VerifyDocumentResponse, error)
}

type verificationService struct {
	candidates repository.CandidateRepository
	documents  repository.DocumentRepository
	aggregator StatusAggregator
	storage    DocumentStorage
	verifier   ai.DocumentVerifier
	sanitizer  *bluemonday.Policy
	logger     zerolog.Logger
	maxSize    int64
	tracer     trace.Tracer
}

// NewVerificationService constructs the pipeline service. A nil verifier puts
// the pipeline in degraded mode: uploads are accepted for manual review.
func NewVerificationService(
	candidates repository.CandidateRepository,
	documents repository.DocumentRepository,
	aggregator StatusAggregator,
	storage DocumentStorage,
	verifier ai.DocumentVerifier,
	maxSizeMB int,
	logger zerolog.Logger,
) VerificationService {
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}

	return &verificationService{
		candidates: candidates,
		documents:  documents,
		aggregator: aggregator,
		storage:    storage,
		verifier:   verifier,
		sanitizer:  bluemonday.StrictPolicy(),
		logger:     logger.With().Str("component", "verification_service").Logger(),
		maxSize:    int64(maxSizeMB) * 1024 * 1024,
		tracer:     otel.Tracer("github.com/workers-united/verify-api/internal/service/verification"),
	}
}

func (s *verificationService) Process(ctx context.Context, req dto.VerifyDocumentRequest) (dto.VerifyDocumentResponse, error) {
	docType, err := models.ParseDocumentType(req.DocType)
	if err != nil {
		return dto.VerifyDocumentResponse{}, ErrInvalidDocumentType
	}

	ctx, span := s.tracer.Start(ctx, "verification.process", trace.WithAttributes(
		attribute.String("document.type", string(docType)),
	))
	defer span.End()

	start := time.Now()
	defer func() {
		observability.PipelineLatency().WithLabelValues(string(docType)).Observe(time.Since(start).Seconds())
	}()

	payload, err := s.readUpload(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "intake rejected")
		return dto.VerifyDocumentResponse{}, err
	}

	candidate, err := s.candidates.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "candidate not found")
			return dto.VerifyDocumentResponse{}, ErrCandidateNotFound
		}
		span.RecordError(err)
		return dto.VerifyDocumentResponse{}, err
	}
	span.SetAttributes(attribute.Int("candidate.id", int(candidate.ID)))

	url, err := s.storage.UploadDocument(ctx, candidate.Email, string(docType), req.File.Filename, bytes.NewReader(payload))
	if err != nil {
		observability.UploadRejected().WithLabelValues("storage").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "storage failed")
		return dto.VerifyDocumentResponse{}, err
	}

	document := models.Document{
		CandidateID: candidate.ID,
		DocType:     docType,
		URL:         url,
		FileName:    req.File.Filename,
		Verified:    false,
		UploadedAt:  time.Now().UTC(),
	}
	if err := s.documents.Upsert(ctx, &document); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "persistence failed")
		return dto.VerifyDocumentResponse{}, err
	}

	if s.verifier == nil {
		return s.acceptForManualReview(ctx, candidate, docType, url, span)
	}

	claimedName := strings.TrimSpace(s.sanitizer.Sanitize(req.CandidateName))
	if claimedName == "" {
		claimedName = candidate.Name
	}

	verdict := s.verifier.Verify(ctx, ai.VerificationInput{
		ImageURL:     url,
		DocumentType: string(docType),
		ClaimedName:  claimedName,
	})

	if err := s.documents.UpdateVerification(ctx, candidate.ID, docType, verdict.Verified, datatypes.JSONMap(verdict.ExtractedData)); err != nil {
		span.RecordError(err)
		return dto.VerifyDocumentResponse{}, err
	}

	if err := s.aggregator.Apply(ctx, candidate, docType, verdict.Verified); err != nil {
		span.RecordError(err)
		return dto.VerifyDocumentResponse{}, err
	}

	outcome := "rejected"
	if verdict.Verified {
		outcome = "verified"
	}
	observability.DocumentUploads().WithLabelValues(string(docType), outcome).Inc()
	span.SetAttributes(attribute.Bool("verdict.verified", verdict.Verified))

	return dto.VerifyDocumentResponse{
		Verified:      verdict.Verified,
		Message:       verdict.Message,
		Error:         verdict.Error,
		ExtractedData: verdict.ExtractedData,
		URL:           url,
	}, nil
}

// acceptForManualReview is the degraded-mode tail of the pipeline: no AI
// credential is configured, so the document is accepted and flagged for a
// human reviewer. The aggregator still runs.
func (s *verificationService) acceptForManualReview(ctx context.Context, candidate models.Candidate, docType models.DocumentType, url string, span trace.Span) (dto.VerifyDocumentResponse, error) {
	s.logger.Warn().
		Uint("candidate_id", candidate.ID).
		Str("document_type", string(docType)).
		Msg("no AI credential configured, accepting document for manual review")

	if err := s.documents.UpdateVerification(ctx, candidate.ID, docType, true, nil); err != nil {
		span.RecordError(err)
		return dto.VerifyDocumentResponse{}, err
	}

	if err := s.aggregator.Apply(ctx, candidate, docType, true); err != nil {
		span.RecordError(err)
		return dto.VerifyDocumentResponse{}, err
	}

	observability.DocumentUploads().WithLabelValues(string(docType), "manual_review").Inc()

	return dto.VerifyDocumentResponse{
		Verified: true,
		Message:  manualReviewMessage,
		URL:      url,
	}, nil
}

// readUpload enforces the size cap and sniffs the MIME type before anything
// touches storage or the database.
func (s *verificationService) readUpload(req dto.VerifyDocumentRequest) ([]byte, error) {
	if req.File.Size > s.maxSize {
		observability.UploadRejected().WithLabelValues("size").Inc()
		return nil, ErrUploadTooLarge
	}

	handle, err := req.File.Open()
	if err != nil {
		return nil, err
	}
	defer handle.Close()

	buf := bytes.NewBuffer(nil)
	if _, err := io.Copy(buf, io.LimitReader(handle, s.maxSize+1)); err != nil {
		return nil, err
	}
	if int64(buf.Len()) > s.maxSize {
		observability.UploadRejected().WithLabelValues("size").Inc()
		return nil, ErrUploadTooLarge
	}

	mime := mimetype.Detect(buf.Bytes())
	if !isAllowedDocumentMime(mime.String()) {
		observability.UploadRejected().WithLabelValues("type").Inc()
		return nil, ErrUploadTypeNotAllowed
	}

	return buf.Bytes(), nil
}

func isAllowedDocumentMime(m string) bool {
	lower := strings.ToLower(strings.TrimSpace(m))
	if strings.HasPrefix(lower, "image/") {
		return true
	}
	return lower == "application/pdf"
}
