package models

import "time"

// CandidateStatus is the attempt state of a phone_candidates row.
type CandidateStatus string

const (
	CandidateStatusUntested CandidateStatus = "untested"
	CandidateStatusFailed   CandidateStatus = "failed"
	CandidateStatusVerified CandidateStatus = "verified"
)

// PhoneCandidate is one phone number believed to belong to an identity,
// plus the outcome of the most recent call attempt.
type PhoneCandidate struct {
	ID              int64           `json:"id"`
	SHA256ID        string          `json:"sha256_id"`
	MobileNumber    string          `json:"mobile_number"`
	FirstName       *string         `json:"first_name,omitempty"`
	LastName        *string         `json:"last_name,omitempty"`
	Source          *string         `json:"source,omitempty"`
	PriorityOrder   int             `json:"priority_order"`
	Status          CandidateStatus `json:"status"`
	LastAttemptedAt *time.Time      `json:"last_attempted_at,omitempty"`
	LastAttemptedBy *string         `json:"last_attempted_by,omitempty"`
}
