package profile

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"talenthub/internal/common"
)

type CandidateProfile struct {
	ID        common.UUID `json:"id"`
	UserID    common.UUID `json:"user_id"`
	FullName  string      `json:"full_name"`
	Phone     string      `json:"phone"`
	Location  string      `json:"location"`
	About     string      `json:"about"`
	ResumeURL string      `json:"resume_url,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

type EmployerProfile struct {
	ID          common.UUID `json:"id"`
	UserID      common.UUID `json:"user_id"`
	CompanyName string      `json:"company_name"`
	Description string      `json:"description"`
	Location    string      `json:"location"`
	Industry    string      `json:"industry"`
	CompanySize string      `json:"company_size"`
	Website     string      `json:"website"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// Permissions gates what a recruiter may do inside the delegating
// employer's scope. Stored as jsonb.
type Permissions struct {
	CanPostJobs           bool `json:"can_post_jobs"`
	CanReviewApplications bool `json:"can_review_applications"`
	CanInterview          bool `json:"can_interview"`
}

func (p Permissions) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *Permissions) Scan(src any) error {
	switch value := src.(type) {
	case []byte:
		return json.Unmarshal(value, p)
	case string:
		return json.Unmarshal([]byte(value), p)
	case nil:
		*p = Permissions{}
		return nil
	default:
		return errors.New("unsupported permissions column type")
	}
}

type RecruiterProfile struct {
	ID          common.UUID `json:"id"`
	UserID      common.UUID `json:"user_id"`
	EmployerID  common.UUID `json:"employer_id"`
	FullName    string      `json:"full_name"`
	Title       string      `json:"title"`
	Permissions Permissions `json:"permissions"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
