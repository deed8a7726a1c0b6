package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/workers-united/verify-api/internal/dto"
	"github.com/workers-united/verify-api/internal/repository"
	"github.com/workers-united/verify-api/pkg/ai"
)

const adminStatusCacheKey = "wu:admin:document-status"

var (
	// ErrDocumentNotFound indicates the re-verify target does not exist.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrVerifierUnavailable indicates re-verification was requested in degraded mode.
	ErrVerifierUnavailable = errors.New("AI verification is not configured")
)

// AdminDocumentService serves the admin document-status dashboard and
// administrative re-verification.
type AdminDocumentService interface {
	ListStatus(ctx context.Context) ([]dto.AdminDocumentStatus, error)
	Reverify(ctx context.Context, documentID uint) (dto.VerifyDocumentResponse, error)
}

type adminDocumentService struct {
	candidates   repository.CandidateRepository
	documents    repository.DocumentRepository
	requirements repository.RequirementRepository
	aggregator   StatusAggregator
	verifier     ai.DocumentVerifier
	redis        *redis.Client
	cacheTTL     time.Duration
	logger       zerolog.Logger
}

// NewAdminDocumentService constructs the admin document service. The Redis
// client may be nil, which disables caching.
func NewAdminDocumentService(
	candidates repository.CandidateRepository,
	documents repository.DocumentRepository,
	requirements repository.RequirementRepository,
	aggregator StatusAggregator,
	verifier ai.DocumentVerifier,
	redisClient *redis.Client,
	cacheTTL time.Duration,
	logger zerolog.Logger,
) AdminDocumentService {
	return &adminDocumentService{
		candidates:   candidates,
		documents:    documents,
		requirements: requirements,
		aggregator:   aggregator,
		verifier:     verifier,
		redis:        redisClient,
		cacheTTL:     cacheTTL,
		logger:       logger.With().Str("component", "admin_document_service").Logger(),
	}
}

// ListStatus rolls candidates, requirement flags, and upload counts into one
// dashboard view. Three bulk reads composed via maps, cached as a whole.
func (s *adminDocumentService) ListStatus(ctx context.Context) ([]dto.AdminDocumentStatus, error) {
	if cached, ok := s.readCache(ctx); ok {
		return cached, nil
	}

	candidates, err := s.candidates.List(ctx)
	if err != nil {
		return nil, err
	}

	requirements, err := s.requirements.List(ctx)
	if err != nil {
		return nil, err
	}
	requirementByCandidate := make(map[uint]int, len(requirements))
	for i, requirement := range requirements {
		requirementByCandidate[requirement.CandidateID] = i
	}

	documents, err := s.documents.List(ctx)
	if err != nil {
		return nil, err
	}
	type docCounts struct{ total, verified int }
	countsByCandidate := make(map[uint]docCounts, len(candidates))
	for _, document := range documents {
		counts := countsByCandidate[document.CandidateID]
		counts.total++
		if document.Verified {
			counts.verified++
		}
		countsByCandidate[document.CandidateID] = counts
	}

	statuses := make([]dto.AdminDocumentStatus, 0, len(candidates))
	for _, candidate := range candidates {
		status := dto.AdminDocumentStatus{
			CandidateID: candidate.ID,
			Name:        candidate.Name,
			Email:       candidate.Email,
			Status:      candidate.Status,
		}
		if idx, ok := requirementByCandidate[candidate.ID]; ok {
			requirement := requirements[idx]
			status.PassportVerified = requirement.PassportVerified
			status.PhotoVerified = requirement.PhotoVerified
			status.DiplomaVerified = requirement.DiplomaVerified
			status.AllCompleted = requirement.AllCompleted
			status.CompletedAt = requirement.CompletedAt
		}
		if counts, ok := countsByCandidate[candidate.ID]; ok {
			status.UploadedTotal = counts.total
			status.UploadedVerified = counts.verified
		}
		statuses = append(statuses, status)
	}

	s.writeCache(ctx, statuses)

	return statuses, nil
}

// Reverify re-runs the AI adapter against an already stored document and
// folds the fresh verdict into the aggregate. Used after prompt fixes or
// when an admin suspects a stale verdict.
func (s *adminDocumentService) Reverify(ctx context.Context, documentID uint) (dto.VerifyDocumentResponse, error) {
	if s.verifier == nil {
		return dto.VerifyDocumentResponse{}, ErrVerifierUnavailable
	}

	document, err := s.documents.GetByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.VerifyDocumentResponse{}, ErrDocumentNotFound
		}
		return dto.VerifyDocumentResponse{}, err
	}

	candidate, err := s.candidates.GetByID(ctx, document.CandidateID)
	if err != nil {
		return dto.VerifyDocumentResponse{}, err
	}

	verdict := s.verifier.Verify(ctx, ai.VerificationInput{
		ImageURL:     document.URL,
		DocumentType: string(document.DocType),
		ClaimedName:  candidate.Name,
	})

	if err := s.documents.UpdateVerification(ctx, candidate.ID, document.DocType, verdict.Verified, datatypes.JSONMap(verdict.ExtractedData)); err != nil {
		return dto.VerifyDocumentResponse{}, err
	}

	if err := s.aggregator.Apply(ctx, candidate, document.DocType, verdict.Verified); err != nil {
		return dto.VerifyDocumentResponse{}, err
	}

	s.invalidateCache(ctx)
	s.logger.Info().
		Uint("document_id", documentID).
		Uint("candidate_id", candidate.ID).
		Bool("verified", verdict.Verified).
		Msg("document re-verified by admin")

	return dto.VerifyDocumentResponse{
		Verified:      verdict.Verified,
		Message:       verdict.Message,
		Error:         verdict.Error,
		ExtractedData: verdict.ExtractedData,
		URL:           document.URL,
	}, nil
}

func (s *adminDocumentService) readCache(ctx context.Context) ([]dto.AdminDocumentStatus, bool) {
	if s.redis == nil || s.cacheTTL <= 0 {
		return nil, false
	}

	raw, err := s.redis.Get(ctx, adminStatusCacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Msg("admin status cache read failed")
		}
		return nil, false
	}

	var statuses []dto.AdminDocumentStatus
	if err := json.Unmarshal(raw, &statuses); err != nil {
		s.logger.Warn().Err(err).Msg("admin status cache corrupt, ignoring")
		return nil, false
	}

	return statuses, true
}

func (s *adminDocumentService) writeCache(ctx context.Context, statuses []dto.AdminDocumentStatus) {
	if s.redis == nil || s.cacheTTL <= 0 {
		return
	}

	raw, err := json.Marshal(statuses)
	if err != nil {
		return
	}

	if err := s.redis.Set(ctx, adminStatusCacheKey, raw, s.cacheTTL).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("admin status cache write failed")
	}
}

func (s *adminDocumentService) invalidateCache(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, adminStatusCacheKey).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("admin status cache invalidation failed")
	}
}
