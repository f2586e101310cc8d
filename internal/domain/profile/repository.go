package profile

import (
	"context"

	"talenthub/internal/common"
)

// The Create methods are upsert-or-fetch on the user_id unique key:
// when a row for the principal already exists it is returned unchanged
// and the created flag is false. Concurrent first-time calls for the
// same principal must yield exactly one row.

type CandidateRepository interface {
	Create(ctx context.Context, p CandidateProfile) (*CandidateProfile, bool, error)
	GetByUserID(ctx context.Context, userID common.UUID) (*CandidateProfile, error)
	GetByID(ctx context.Context, id common.UUID) (*CandidateProfile, error)
	Update(ctx context.Context, p CandidateProfile) (*CandidateProfile, error)
	SetResumeURL(ctx context.Context, userID common.UUID, resumeURL string) error
}

type EmployerRepository interface {
	Create(ctx context.Context, p EmployerProfile) (*EmployerProfile, bool, error)
	GetByUserID(ctx context.Context, userID common.UUID) (*EmployerProfile, error)
	GetByID(ctx context.Context, id common.UUID) (*EmployerProfile, error)
	Update(ctx context.Context, p EmployerProfile) (*EmployerProfile, error)
}

type RecruiterRepository interface {
	Create(ctx context.Context, p RecruiterProfile) (*RecruiterProfile, bool, error)
	GetByUserID(ctx context.Context, userID common.UUID) (*RecruiterProfile, error)
	ListByEmployer(ctx context.Context, employerID common.UUID) ([]RecruiterProfile, error)
}
