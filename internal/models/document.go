package models

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// DocumentType enumerates the document kinds a candidate must provide.
type DocumentType string

const (
	DocumentTypePassport DocumentType = "passport"
	DocumentTypePhoto    DocumentType = "photo"
	DocumentTypeDiploma  DocumentType = "diploma"
)

// RequiredDocumentTypes lists every type that must be verified before approval.
var RequiredDocumentTypes = []DocumentType{DocumentTypePassport, DocumentTypePhoto, DocumentTypeDiploma}

// ParseDocumentType validates a raw form value against the known document types.
func ParseDocumentType(raw string) (DocumentType, error) {
	switch DocumentType(strings.ToLower(strings.TrimSpace(raw))) {
	case DocumentTypePassport:
		return DocumentTypePassport, nil
	case DocumentTypePhoto:
		return DocumentTypePhoto, nil
	case DocumentTypeDiploma:
		return DocumentTypeDiploma, nil
	default:
		return "", fmt.Errorf("unknown document type %q", raw)
	}
}

// RequirementColumn maps the document type to its flag column on document_requirements.
func (t DocumentType) RequirementColumn() string {
	switch t {
	case DocumentTypePassport:
		return "passport_verified"
	case DocumentTypePhoto:
		return "photo_verified"
	case DocumentTypeDiploma:
		return "diploma_verified"
	default:
		return ""
	}
}

// Document is one uploaded artifact tied to exactly one candidate and type.
// A re-upload overwrites the existing row; (candidate_id, doc_type) stays unique.
type Document struct {
	ID               uint              `gorm:"primaryKey" json:"id"`
	CandidateID      uint              `gorm:"not null;uniqueIndex:idx_documents_candidate_type" json:"candidate_id"`
	DocType          DocumentType      `gorm:"size:32;not null;uniqueIndex:idx_documents_candidate_type" json:"doc_type"`
	URL              string            `gorm:"size:1024;not null" json:"url"`
	FileName         string            `gorm:"size:512" json:"file_name"`
	Verified         bool              `gorm:"not null;default:false" json:"verified"`
	VerificationData datatypes.JSONMap `json:"verification_data"`
	UploadedAt       time.Time         `json:"uploaded_at"`
}
