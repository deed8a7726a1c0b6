package repository

import (
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/workers-united/verify-api/internal/models"
)

// DocumentRepository manages uploaded document rows.
type DocumentRepository interface {
	Upsert(ctx context.Context, document *models.Document) error
	UpdateVerification(ctx context.Context, candidateID uint, docType models.DocumentType, verified bool, payload datatypes.JSONMap) error
	GetByID(ctx context.Context, id uint) (models.Document, error)
	ListByCandidate(ctx context.Context, candidateID uint) ([]models.Document, error)
	List(ctx context.Context) ([]models.Document, error)
}

type documentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository constructs a document repository.
func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

// Upsert keeps at most one row per (candidate, type): a re-upload replaces
// the url, filename, and verification state of the existing row.
func (r *documentRepository) Upsert(ctx context.Context, document *models.Document) error {
	if document.UploadedAt.IsZero() {
		document.UploadedAt = time.Now().UTC()
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "candidate_id"}, {Name: "doc_type"}},
		DoUpdates: clause.AssignmentColumns([]string{"url", "file_name", "verified", "verification_data", "uploaded_at"}),
	}).Create(document).Error
}

func (r *documentRepository) UpdateVerification(ctx context.Context, candidateID uint, docType models.DocumentType, verified bool, payload datatypes.JSONMap) error {
	return r.db.WithContext(ctx).
		Model(&models.Document{}).
		Where("candidate_id = ? AND doc_type = ?", candidateID, docType).
		Updates(map[string]interface{}{
			"verified":          verified,
			"verification_data": payload,
		}).Error
}

func (r *documentRepository) GetByID(ctx context.Context, id uint) (models.Document, error) {
	var document models.Document
	if err := r.db.WithContext(ctx).First(&document, id).Error; err != nil {
		return models.Document{}, err
	}

	return document, nil
}

func (r *documentRepository) ListByCandidate(ctx context.Context, candidateID uint) ([]models.Document, error) {
	var documents []models.Document
	err := r.db.WithContext(ctx).
		Where("candidate_id = ?", candidateID).
		Order("uploaded_at DESC").
		Find(&documents).Error
	if err != nil {
		return nil, err
	}

	return documents, nil
}

func (r *documentRepository) List(ctx context.Context) ([]models.Document, error) {
	var documents []models.Document
	if err := r.db.WithContext(ctx).Find(&documents).Error; err != nil {
		return nil, err
	}

	return documents, nil
}
