package models

import "time"

// DocumentRequirement aggregates per-type verified flags for one candidate.
// AllCompleted is materialized by the aggregator, not computed on read.
type DocumentRequirement struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	CandidateID      uint       `gorm:"uniqueIndex;not null" json:"candidate_id"`
	PassportVerified bool       `gorm:"not null;default:false" json:"passport_verified"`
	PhotoVerified    bool       `gorm:"not null;default:false" json:"photo_verified"`
	DiplomaVerified  bool       `gorm:"not null;default:false" json:"diploma_verified"`
	AllCompleted     bool       `gorm:"not null;default:false" json:"all_completed"`
	CompletedAt      *time.Time `json:"completed_at"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// Satisfied reports whether every required flag is set.
func (r DocumentRequirement) Satisfied() bool {
	return r.PassportVerified && r.PhotoVerified && r.DiplomaVerified
}

// VerifiedFor returns the flag for the given document type.
func (r DocumentRequirement) VerifiedFor(t DocumentType) bool {
	switch t {
	case DocumentTypePassport:
		return r.PassportVerified
	case DocumentTypePhoto:
		return r.PhotoVerified
	case DocumentTypeDiploma:
		return r.DiplomaVerified
	default:
		return false
	}
}
