package app

import (
	"context"
	"fmt"
	"path"
	"time"

	"talenthub/internal/common"
	"talenthub/internal/domain/principal"
	"talenthub/internal/domain/profile"
	"talenthub/internal/storage"
)

// ProfileView is the one place the single-vs-collection and
// role-variance ambiguity of profile queries is resolved: exactly one
// of the three pointers is set, matching Role.
type ProfileView struct {
	Role      principal.Role            `json:"role"`
	Candidate *profile.CandidateProfile `json:"candidate,omitempty"`
	Employer  *profile.EmployerProfile  `json:"employer,omitempty"`
	Recruiter *profile.RecruiterProfile `json:"recruiter,omitempty"`
}

type ProfileService struct {
	candidates profile.CandidateRepository
	employers  profile.EmployerRepository
	recruiters profile.RecruiterRepository
	blobs      storage.BlobStore
	logger     Logger
}

func NewProfileService(candidates profile.CandidateRepository, employers profile.EmployerRepository, recruiters profile.RecruiterRepository, blobs storage.BlobStore, logger Logger) *ProfileService {
	return &ProfileService{candidates: candidates, employers: employers, recruiters: recruiters, blobs: blobs, logger: logger}
}

func (s *ProfileService) Me(ctx context.Context, actor Actor) (*ProfileView, error) {
	view := &ProfileView{Role: actor.Role}
	switch actor.Role {
	case principal.RoleCandidate:
		p, err := s.candidates.GetByUserID(ctx, actor.PrincipalID)
		if err != nil {
			return nil, err
		}
		view.Candidate = p
	case principal.RoleEmployer:
		p, err := s.employers.GetByUserID(ctx, actor.PrincipalID)
		if err != nil {
			return nil, err
		}
		view.Employer = p
	case principal.RoleRecruiter:
		p, err := s.recruiters.GetByUserID(ctx, actor.PrincipalID)
		if err != nil {
			return nil, err
		}
		view.Recruiter = p
	default:
		return nil, common.NewError(common.CodeNotFound, "profile not found", nil)
	}
	return view, nil
}

func (s *ProfileService) UpdateCandidate(ctx context.Context, actor Actor, input CandidateInput) (*profile.CandidateProfile, error) {
	if actor.Role != principal.RoleCandidate {
		return nil, common.NewError(common.CodeForbidden, "candidate profile is required", nil)
	}
	return s.candidates.Update(ctx, profile.CandidateProfile{
		UserID:   actor.PrincipalID,
		FullName: input.FullName,
		Phone:    input.Phone,
		Location: input.Location,
		About:    input.About,
	})
}

func (s *ProfileService) UpdateEmployer(ctx context.Context, actor Actor, input EmployerInput) (*profile.EmployerProfile, error) {
	if actor.Role != principal.RoleEmployer {
		return nil, common.NewError(common.CodeForbidden, "employer profile is required", nil)
	}
	return s.employers.Update(ctx, profile.EmployerProfile{
		UserID:      actor.PrincipalID,
		CompanyName: input.CompanyName,
		Description: input.Description,
		Location:    input.Location,
		Industry:    input.Industry,
		CompanySize: input.CompanySize,
		Website:     input.Website,
	})
}

// UploadResume stores the blob and records its public URL on the
// candidate profile.
func (s *ProfileService) UploadResume(ctx context.Context, actor Actor, filename string, data []byte, contentType string) (string, error) {
	if actor.Role != principal.RoleCandidate || actor.ProfileID.IsZero() {
		return "", common.NewError(common.CodeForbidden, "candidate profile is required", nil)
	}
	if len(data) == 0 {
		return "", common.NewValidationError("invalid resume", map[string]string{"file": "file is empty"})
	}
	if s.blobs == nil {
		return "", common.NewError(common.CodeUnavailable, "blob storage is not configured", nil)
	}
	key := fmt.Sprintf("%s/%d-%s", actor.ProfileID, time.Now().UTC().Unix(), path.Base(filename))
	url, err := s.blobs.Upload(ctx, key, data, contentType)
	if err != nil {
		return "", err
	}
	if err := s.candidates.SetResumeURL(ctx, actor.PrincipalID, url); err != nil {
		return "", err
	}
	return url, nil
}

func (s *ProfileService) ListRecruiters(ctx context.Context, actor Actor) ([]profile.RecruiterProfile, error) {
	if actor.Role != principal.RoleEmployer || actor.EmployerID.IsZero() {
		return nil, common.NewError(common.CodeForbidden, "employer profile is required", nil)
	}
	return s.recruiters.ListByEmployer(ctx, actor.EmployerID)
}
