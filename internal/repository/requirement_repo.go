package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/workers-united/verify-api/internal/models"
)

// RequirementRepository manages per-candidate document requirement aggregates.
type RequirementRepository interface {
	SetFlag(ctx context.Context, candidateID uint, docType models.DocumentType, verified bool) error
	CompleteIfSatisfied(ctx context.Context, candidateID uint) (bool, error)
	ResetCompleted(ctx context.Context, candidateID uint) error
	GetByCandidate(ctx context.Context, candidateID uint) (models.DocumentRequirement, error)
	List(ctx context.Context) ([]models.DocumentRequirement, error)
}

type requirementRepository struct {
	db *gorm.DB
}

// NewRequirementRepository constructs a requirement repository.
func NewRequirementRepository(db *gorm.DB) RequirementRepository {
	return &requirementRepository{db: db}
}

// SetFlag upserts the candidate's requirement row touching only the column
// for the given document type. Column-scoped updates keep concurrent
// verifications of different types from clobbering each other.
func (r *requirementRepository) SetFlag(ctx context.Context, candidateID uint, docType models.DocumentType, verified bool) error {
	column := docType.RequirementColumn()
	if column == "" {
		return fmt.Errorf("document type %q has no requirement column", docType)
	}

	row := models.DocumentRequirement{CandidateID: candidateID}
	switch docType {
	case models.DocumentTypePassport:
		row.PassportVerified = verified
	case models.DocumentTypePhoto:
		row.PhotoVerified = verified
	case models.DocumentTypeDiploma:
		row.DiplomaVerified = verified
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "candidate_id"}},
		DoUpdates: clause.AssignmentColumns([]string{column, "updated_at"}),
	}).Create(&row).Error
}

// CompleteIfSatisfied marks all_completed in a single conditional update.
// The WHERE clause evaluates the aggregate server-side, so among any number
// of concurrent pipeline runs exactly one observes RowsAffected == 1 and owns
// the approval side effects.
func (r *requirementRepository) CompleteIfSatisfied(ctx context.Context, candidateID uint) (bool, error) {
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&models.DocumentRequirement{}).
		Where("candidate_id = ?", candidateID).
		Where("passport_verified = ? AND photo_verified = ? AND diploma_verified = ?", true, true, true).
		Where("all_completed = ?", false).
		Updates(map[string]interface{}{
			"all_completed": true,
			"completed_at":  now,
		})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

// ResetCompleted lowers all_completed when a flag reverts after re-verification.
// Conditional on the aggregate no longer holding, so a concurrent successful
// verification cannot be undone by a stale reset.
func (r *requirementRepository) ResetCompleted(ctx context.Context, candidateID uint) error {
	return r.db.WithContext(ctx).
		Model(&models.DocumentRequirement{}).
		Where("candidate_id = ?", candidateID).
		Where("all_completed = ?", true).
		Where("NOT (passport_verified = ? AND photo_verified = ? AND diploma_verified = ?)", true, true, true).
		Updates(map[string]interface{}{
			"all_completed": false,
			"completed_at":  nil,
		}).Error
}

func (r *requirementRepository) GetByCandidate(ctx context.Context, candidateID uint) (models.DocumentRequirement, error) {
	var requirement models.DocumentRequirement
	err := r.db.WithContext(ctx).
		Where("candidate_id = ?", candidateID).
		First(&requirement).Error
	if err != nil {
		return models.DocumentRequirement{}, err
	}

	return requirement, nil
}

func (r *requirementRepository) List(ctx context.Context) ([]models.DocumentRequirement, error) {
	var requirements []models.DocumentRequirement
	if err := r.db.WithContext(ctx).Find(&requirements).Error; err != nil {
		return nil, err
	}

	return requirements, nil
}
