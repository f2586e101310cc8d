package job

import (
	"time"

	"talenthub/internal/common"
)

type Status string

const (
	StatusPendingReview Status = "pending_review"
	StatusActive        Status = "active"
	StatusRejected      Status = "rejected"
	StatusClosed        Status = "closed"
)

// Statuses lists every posting status in lifecycle order.
var Statuses = []Status{StatusPendingReview, StatusActive, StatusRejected, StatusClosed}

func (s Status) Terminal() bool {
	return s == StatusRejected || s == StatusClosed
}

type Job struct {
	ID              common.UUID `json:"id"`
	EmployerID      common.UUID `json:"employer_id"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	Requirements    []string    `json:"requirements"`
	Category        string      `json:"category"`
	EmploymentType  string      `json:"employment_type"`
	ExperienceLevel int         `json:"experience_level"`
	SalaryMin       *int64      `json:"salary_min,omitempty"`
	SalaryMax       *int64      `json:"salary_max,omitempty"`
	Location        string      `json:"location"`
	Status          Status      `json:"status"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// SearchFilter narrows the candidate-facing listing. Only active
// postings are ever returned through that path.
type SearchFilter struct {
	Category string
	Location string
	Limit    int
	Offset   int
}
