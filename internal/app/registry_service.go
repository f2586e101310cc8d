package app

import (
	"context"
	"fmt"
	"strings"

	"talenthub/internal/common"
	"talenthub/internal/domain/principal"
	"talenthub/internal/domain/profile"
)

// RegistryService provisions role profiles. Provisioning is idempotent:
// the role is assigned exactly once and the profile insert is
// upsert-or-fetch, so concurrent retries of a login-time provisioning
// flow converge on a single row.
type RegistryService struct {
	principals principal.Repository
	candidates profile.CandidateRepository
	employers  profile.EmployerRepository
	recruiters profile.RecruiterRepository
	logger     Logger
}

func NewRegistryService(principals principal.Repository, candidates profile.CandidateRepository, employers profile.EmployerRepository, recruiters profile.RecruiterRepository, logger Logger) *RegistryService {
	return &RegistryService{principals: principals, candidates: candidates, employers: employers, recruiters: recruiters, logger: logger}
}

type CandidateInput struct {
	FullName string
	Phone    string
	Location string
	About    string
}

type EmployerInput struct {
	CompanyName string
	Description string
	Location    string
	Industry    string
	CompanySize string
	Website     string
}

type RecruiterInput struct {
	EmployerID  common.UUID
	FullName    string
	Title       string
	Permissions profile.Permissions
}

func (s *RegistryService) ProvisionCandidate(ctx context.Context, principalID common.UUID, input CandidateInput) (*profile.CandidateProfile, error) {
	if strings.TrimSpace(input.FullName) == "" {
		return nil, common.NewValidationError("invalid profile", map[string]string{"full_name": "full name is required"})
	}
	if err := s.assignRole(ctx, principalID, principal.RoleCandidate); err != nil {
		return nil, err
	}
	created, fresh, err := s.candidates.Create(ctx, profile.CandidateProfile{
		UserID:   principalID,
		FullName: input.FullName,
		Phone:    input.Phone,
		Location: input.Location,
		About:    input.About,
	})
	if err != nil {
		return nil, err
	}
	if fresh {
		s.logInfo(fmt.Sprintf("candidate profile provisioned user_id=%s", principalID))
	}
	return created, nil
}

func (s *RegistryService) ProvisionEmployer(ctx context.Context, principalID common.UUID, input EmployerInput) (*profile.EmployerProfile, error) {
	if strings.TrimSpace(input.CompanyName) == "" {
		return nil, common.NewValidationError("invalid profile", map[string]string{"company_name": "company name is required"})
	}
	if err := s.assignRole(ctx, principalID, principal.RoleEmployer); err != nil {
		return nil, err
	}
	created, fresh, err := s.employers.Create(ctx, profile.EmployerProfile{
		UserID:      principalID,
		CompanyName: input.CompanyName,
		Description: input.Description,
		Location:    input.Location,
		Industry:    input.Industry,
		CompanySize: input.CompanySize,
		Website:     input.Website,
	})
	if err != nil {
		return nil, err
	}
	if fresh {
		s.logInfo(fmt.Sprintf("employer profile provisioned user_id=%s", principalID))
	}
	return created, nil
}

func (s *RegistryService) ProvisionRecruiter(ctx context.Context, principalID common.UUID, input RecruiterInput) (*profile.RecruiterProfile, error) {
	if strings.TrimSpace(input.FullName) == "" {
		return nil, common.NewValidationError("invalid profile", map[string]string{"full_name": "full name is required"})
	}
	if input.EmployerID.IsZero() {
		return nil, common.NewValidationError("invalid profile", map[string]string{"employer_id": "employer_id is required"})
	}
	if _, err := s.employers.GetByID(ctx, input.EmployerID); err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewValidationError("invalid profile", map[string]string{"employer_id": "employer does not exist"})
		}
		return nil, err
	}
	if err := s.assignRole(ctx, principalID, principal.RoleRecruiter); err != nil {
		return nil, err
	}
	created, fresh, err := s.recruiters.Create(ctx, profile.RecruiterProfile{
		UserID:      principalID,
		EmployerID:  input.EmployerID,
		FullName:    input.FullName,
		Title:       input.Title,
		Permissions: input.Permissions,
	})
	if err != nil {
		return nil, err
	}
	if fresh {
		s.logInfo(fmt.Sprintf("recruiter profile provisioned user_id=%s employer_id=%s", principalID, input.EmployerID))
	}
	return created, nil
}

// InviteRecruiter lets an employer delegate an existing principal as a
// recruiter for their organization with a chosen permission set.
func (s *RegistryService) InviteRecruiter(ctx context.Context, actor Actor, email, fullName, title string, perms profile.Permissions) (*profile.RecruiterProfile, error) {
	if actor.Role != principal.RoleEmployer || actor.EmployerID.IsZero() {
		return nil, common.NewError(common.CodeForbidden, "only employers can invite recruiters", nil)
	}
	invitee, err := s.principals.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewValidationError("invalid invite", map[string]string{"email": "no account with this email"})
		}
		return nil, err
	}
	return s.ProvisionRecruiter(ctx, invitee.ID, RecruiterInput{
		EmployerID:  actor.EmployerID,
		FullName:    fullName,
		Title:       title,
		Permissions: perms,
	})
}

// assignRole is one-shot: the store refuses to change an already-set
// role, and a retry with the same role is a no-op.
func (s *RegistryService) assignRole(ctx context.Context, principalID common.UUID, role principal.Role) error {
	return s.principals.AssignRole(ctx, principalID, role)
}

func (s *RegistryService) logInfo(msg string) {
	if s.logger == nil {
		return
	}
	s.logger.Info(msg)
}
