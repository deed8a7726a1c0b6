package dto

import (
	"time"

	"github.com/workers-united/verify-api/internal/models"
)

// CandidateCreateRequest registers a new worker applicant.
type CandidateCreateRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=255"`
	Email       string `json:"email" validate:"required,email"`
	Nationality string `json:"nationality" validate:"max=128"`
}

// CandidateResponse is the public view of a candidate.
type CandidateResponse struct {
	ID          uint                   `json:"id"`
	Name        string                 `json:"name"`
	Email       string                 `json:"email"`
	Nationality string                 `json:"nationality"`
	Status      models.CandidateStatus `json:"status"`
	CreatedAt   time.Time              `json:"created_at"`
}

// NewCandidateResponse maps a candidate model to its response shape.
func NewCandidateResponse(candidate models.Candidate) CandidateResponse {
	return CandidateResponse{
		ID:          candidate.ID,
		Name:        candidate.Name,
		Email:       candidate.Email,
		Nationality: candidate.Nationality,
		Status:      candidate.Status,
		CreatedAt:   candidate.CreatedAt,
	}
}
