package principal

import (
	"time"

	"talenthub/internal/common"
)

type Role string

const (
	RoleCandidate Role = "candidate"
	RoleEmployer  Role = "employer"
	RoleRecruiter Role = "recruiter"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCandidate, RoleEmployer, RoleRecruiter:
		return true
	default:
		return false
	}
}

// Principal is an authenticated identity. Role is empty until the
// principal provisions a profile and is immutable afterwards.
type Principal struct {
	ID           common.UUID `json:"id"`
	Email        string      `json:"email"`
	Role         Role        `json:"role,omitempty"`
	PasswordHash string      `json:"-"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
