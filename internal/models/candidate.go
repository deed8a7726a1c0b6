package models

import "time"

// CandidateStatus enumerates the overall application states a candidate moves through.
type CandidateStatus string

const (
	CandidateStatusNew      CandidateStatus = "NEW"
	CandidateStatusInQueue  CandidateStatus = "IN_QUEUE"
	CandidateStatusApproved CandidateStatus = "APPROVED"
	CandidateStatusRejected CandidateStatus = "REJECTED"
)

// Candidate represents a worker applicant identified primarily by email.
// Email is stored lowercased so the unique index enforces case-insensitive uniqueness.
type Candidate struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	Email       string          `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Nationality string          `gorm:"size:128" json:"nationality"`
	Status      CandidateStatus `gorm:"size:32;not null;default:NEW" json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
