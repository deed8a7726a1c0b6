package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/workers-united/verify-api/internal/models"
)

// CandidateRepository provides access to candidate records.
type CandidateRepository interface {
	Create(ctx context.Context, candidate *models.Candidate) error
	GetByID(ctx context.Context, id uint) (models.Candidate, error)
	GetByEmail(ctx context.Context, email string) (models.Candidate, error)
	List(ctx context.Context) ([]models.Candidate, error)
	UpdateStatus(ctx context.Context, id uint, status models.CandidateStatus) error
}

type candidateRepository struct {
	db *gorm.DB
}

// NewCandidateRepository constructs a candidate repository.
func NewCandidateRepository(db *gorm.DB) CandidateRepository {
	return &candidateRepository{db: db}
}

func (r *candidateRepository) Create(ctx context.Context, candidate *models.Candidate) error {
	candidate.Email = strings.ToLower(strings.TrimSpace(candidate.Email))
	return r.db.WithContext(ctx).Create(candidate).Error
}

func (r *candidateRepository) GetByID(ctx context.Context, id uint) (models.Candidate, error) {
	var candidate models.Candidate
	if err := r.db.WithContext(ctx).First(&candidate, id).Error; err != nil {
		return models.Candidate{}, err
	}

	return candidate, nil
}

// GetByEmail matches case-insensitively: upload links embed the address the
// candidate typed at signup, which does not always match what we stored.
func (r *candidateRepository) GetByEmail(ctx context.Context, email string) (models.Candidate, error) {
	var candidate models.Candidate
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", strings.TrimSpace(email)).
		First(&candidate).Error
	if err != nil {
		return models.Candidate{}, err
	}

	return candidate, nil
}

func (r *candidateRepository) List(ctx context.Context) ([]models.Candidate, error) {
	var candidates []models.Candidate
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&candidates).Error; err != nil {
		return nil, err
	}

	return candidates, nil
}

func (r *candidateRepository) UpdateStatus(ctx context.Context, id uint, status models.CandidateStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.Candidate{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
