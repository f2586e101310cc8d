package application

import (
	"time"

	"talenthub/internal/common"
)

type Status string

const (
	StatusPending     Status = "pending"
	StatusReviewed    Status = "reviewed"
	StatusShortlisted Status = "shortlisted"
	StatusRejected    Status = "rejected"
	StatusHired       Status = "hired"
)

// Statuses lists every application status in lifecycle order.
var Statuses = []Status{StatusPending, StatusReviewed, StatusShortlisted, StatusRejected, StatusHired}

func (s Status) Terminal() bool {
	return s == StatusRejected || s == StatusHired
}

func (s Status) Known() bool {
	switch s {
	case StatusPending, StatusReviewed, StatusShortlisted, StatusRejected, StatusHired:
		return true
	default:
		return false
	}
}

type Application struct {
	ID          common.UUID `json:"id"`
	JobID       common.UUID `json:"job_id"`
	CandidateID common.UUID `json:"candidate_id"`
	Status      Status      `json:"status"`
	Notes       string      `json:"notes,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// ApplyResult distinguishes a fresh application from a duplicate
// submission; the duplicate carries the existing row unchanged.
type ApplyResult struct {
	Application *Application `json:"application"`
	Created     bool         `json:"created"`
}
