package dto

import (
	"time"

	"github.com/workers-united/verify-api/internal/models"
)

// AdminDocumentStatus is one row of the admin document-status dashboard.
type AdminDocumentStatus struct {
	CandidateID      uint                   `json:"candidate_id"`
	Name             string                 `json:"name"`
	Email            string                 `json:"email"`
	Status           models.CandidateStatus `json:"status"`
	PassportVerified bool                   `json:"passport_verified"`
	PhotoVerified    bool                   `json:"photo_verified"`
	DiplomaVerified  bool                   `json:"diploma_verified"`
	AllCompleted     bool                   `json:"all_completed"`
	UploadedTotal    int                    `json:"uploaded_total"`
	UploadedVerified int                    `json:"uploaded_verified"`
	CompletedAt      *time.Time             `json:"completed_at,omitempty"`
}

// ReverifyRequest asks for a stored document to be run through the AI adapter again.
type ReverifyRequest struct {
	DocumentID uint `json:"documentId" validate:"required,gt=0"`
}
