package app

import (
	"context"
	"fmt"
	"strings"

	"talenthub/internal/common"
	"talenthub/internal/domain/job"
	"talenthub/internal/domain/principal"
)

// jobTransitionSources maps a target status to the set of states the
// transition is legal from. The set doubles as the guard the store
// revalidates at commit time, so a transition started from a stale read
// is judged against the committed state only.
var jobTransitionSources = map[job.Status][]job.Status{
	job.StatusActive:   {job.StatusPendingReview},
	job.StatusRejected: {job.StatusPendingReview},
	job.StatusClosed:   {job.StatusActive},
}

type JobService struct {
	jobs     job.Repository
	authz    *Authorizer
	notifier *Notifier
	logger   Logger
}

func NewJobService(jobs job.Repository, authz *Authorizer, notifier *Notifier, logger Logger) *JobService {
	return &JobService{jobs: jobs, authz: authz, notifier: notifier, logger: logger}
}

type JobInput struct {
	Title           string
	Description     string
	Requirements    []string
	Category        string
	EmploymentType  string
	ExperienceLevel int
	SalaryMin       *int64
	SalaryMax       *int64
	Location        string
}

func (s *JobService) Create(ctx context.Context, actor Actor, input JobInput) (*job.Job, error) {
	if err := validateJobInput(input); err != nil {
		return nil, err
	}
	if actor.EmployerID.IsZero() {
		return nil, common.NewError(common.CodeForbidden, "employer profile is required", nil)
	}
	if actor.Role == principal.RoleRecruiter {
		if err := s.authz.CanPerform(actor, ActionPostJob, actor.EmployerID); err != nil {
			return nil, err
		}
	} else if actor.Role != principal.RoleEmployer {
		return nil, common.NewError(common.CodeForbidden, "only employers and recruiters can post jobs", nil)
	}
	created, err := s.jobs.Create(ctx, job.Job{
		EmployerID:      actor.EmployerID,
		Title:           input.Title,
		Description:     input.Description,
		Requirements:    input.Requirements,
		Category:        input.Category,
		EmploymentType:  input.EmploymentType,
		ExperienceLevel: input.ExperienceLevel,
		SalaryMin:       input.SalaryMin,
		SalaryMax:       input.SalaryMax,
		Location:        input.Location,
		Status:          job.StatusPendingReview,
	})
	if err != nil {
		return nil, err
	}
	s.logInfo(fmt.Sprintf("job posted job_id=%s employer_id=%s", created.ID, created.EmployerID))
	return created, nil
}

func (s *JobService) Approve(ctx context.Context, actor Actor, jobID common.UUID) (*job.Job, error) {
	return s.transition(ctx, actor, jobID, job.StatusActive, ActionApproveJob)
}

func (s *JobService) Reject(ctx context.Context, actor Actor, jobID common.UUID) (*job.Job, error) {
	return s.transition(ctx, actor, jobID, job.StatusRejected, ActionRejectJob)
}

func (s *JobService) Close(ctx context.Context, actor Actor, jobID common.UUID) (*job.Job, error) {
	return s.transition(ctx, actor, jobID, job.StatusClosed, ActionCloseJob)
}

func (s *JobService) transition(ctx context.Context, actor Actor, jobID common.UUID, next job.Status, action Action) (*job.Job, error) {
	current, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.CanPerform(actor, action, current.EmployerID); err != nil {
		return nil, err
	}
	updated, err := s.jobs.UpdateStatus(ctx, jobID, next, jobTransitionSources[next])
	if err != nil {
		return nil, err
	}
	s.logInfo(fmt.Sprintf("job status changed job_id=%s status=%s", updated.ID, updated.Status))
	if s.notifier != nil {
		s.notifier.JobStatusChanged(ctx, updated)
	}
	return updated, nil
}

// Get applies the posting visibility rules: candidates see active
// postings only, owners and their recruiters see every status, and
// nobody learns whether an out-of-scope ID exists.
func (s *JobService) Get(ctx context.Context, actor Actor, jobID common.UUID) (*job.Job, error) {
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	switch actor.Role {
	case principal.RoleCandidate:
		if j.Status != job.StatusActive {
			return nil, common.NewError(common.CodeNotFound, "job not found", nil)
		}
		return j, nil
	case principal.RoleEmployer, principal.RoleRecruiter:
		if actor.EmployerID.IsZero() || actor.EmployerID != j.EmployerID {
			if j.Status == job.StatusActive {
				return j, nil
			}
			return nil, common.NewError(common.CodeNotFound, "job not found", nil)
		}
		return j, nil
	default:
		return nil, common.NewError(common.CodeForbidden, "role not assigned", nil)
	}
}

func (s *JobService) Search(ctx context.Context, filter job.SearchFilter) ([]job.Job, error) {
	return s.jobs.ListActive(ctx, filter)
}

func (s *JobService) ListByEmployer(ctx context.Context, actor Actor) ([]job.Job, error) {
	if actor.EmployerID.IsZero() {
		return nil, common.NewError(common.CodeForbidden, "employer scope is required", nil)
	}
	return s.jobs.ListByEmployer(ctx, actor.EmployerID)
}

func validateJobInput(input JobInput) error {
	fields := map[string]string{}
	if strings.TrimSpace(input.Title) == "" {
		fields["title"] = "title is required"
	}
	if input.ExperienceLevel < 1 || input.ExperienceLevel > 5 {
		fields["experience_level"] = "experience level must be between 1 and 5"
	}
	if (input.SalaryMin == nil) != (input.SalaryMax == nil) {
		fields["salary"] = "salary min and max must be provided together"
	}
	if input.SalaryMin != nil && input.SalaryMax != nil && *input.SalaryMin > *input.SalaryMax {
		fields["salary"] = "salary min must not exceed salary max"
	}
	if len(fields) > 0 {
		return common.NewValidationError("invalid job", fields)
	}
	return nil
}

func (s *JobService) logInfo(msg string) {
	if s.logger == nil {
		return
	}
	s.logger.Info(msg)
}
