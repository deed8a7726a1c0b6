package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/workers-united/verify-api/internal/dto"
	"github.com/workers-united/verify-api/internal/models"
	"github.com/workers-united/verify-api/internal/repository"
)

// ErrCandidateExists indicates a signup collided with an existing email.
var ErrCandidateExists = errors.New("a candidate with this email already exists")

// CandidateService handles candidate registration.
type CandidateService interface {
	Create(ctx context.Context, req dto.CandidateCreateRequest) (dto.CandidateResponse, error)
}

type candidateService struct {
	repo      repository.CandidateRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewCandidateService constructs a candidate service.
func NewCandidateService(repo repository.CandidateRepository, validate *validator.Validate, logger zerolog.Logger) CandidateService {
	return &candidateService{
		repo:      repo,
		validator: validate,
		logger:    logger.With().Str("component", "candidate_service").Logger(),
	}
}

func (s *candidateService) Create(ctx context.Context, req dto.CandidateCreateRequest) (dto.CandidateResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.CandidateResponse{}, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return dto.CandidateResponse{}, ErrCandidateExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.CandidateResponse{}, err
	}

	candidate := models.Candidate{
		Name:        strings.TrimSpace(req.Name),
		Email:       email,
		Nationality: strings.TrimSpace(req.Nationality),
		Status:      models.CandidateStatusNew,
	}

	if err := s.repo.Create(ctx, &candidate); err != nil {
		return dto.CandidateResponse{}, err
	}

	s.logger.Info().Uint("candidate_id", candidate.ID).Msg("candidate registered")

	return dto.NewCandidateResponse(candidate), nil
}
