package app

import (
	"context"
	"fmt"

	"talenthub/internal/common"
	"talenthub/internal/domain/application"
	"talenthub/internal/domain/job"
	"talenthub/internal/domain/principal"
)

// applicationTransitionSources maps a target status to the states it is
// reachable from; see jobTransitionSources for the commit-time
// revalidation contract.
var applicationTransitionSources = map[application.Status][]application.Status{
	application.StatusReviewed:    {application.StatusPending},
	application.StatusShortlisted: {application.StatusPending, application.StatusReviewed},
	application.StatusHired:       {application.StatusShortlisted},
	application.StatusRejected:    {application.StatusPending, application.StatusReviewed, application.StatusShortlisted},
}

type ApplicationService struct {
	applications application.Repository
	jobs         job.Repository
	authz        *Authorizer
	notifier     *Notifier
	logger       Logger
}

func NewApplicationService(applications application.Repository, jobs job.Repository, authz *Authorizer, notifier *Notifier, logger Logger) *ApplicationService {
	return &ApplicationService{applications: applications, jobs: jobs, authz: authz, notifier: notifier, logger: logger}
}

// Apply submits a candidate's application. A repeat submission for the
// same job is not an error: the existing row comes back with
// Created=false so the caller can show its current status.
func (s *ApplicationService) Apply(ctx context.Context, actor Actor, jobID common.UUID, notes string) (*application.ApplyResult, error) {
	if actor.Role != principal.RoleCandidate {
		return nil, common.NewError(common.CodeForbidden, "only candidates can apply", nil)
	}
	if actor.ProfileID.IsZero() {
		return nil, common.NewError(common.CodeValidation, "candidate profile is required", nil)
	}
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if j.Status != job.StatusActive {
		// Non-active postings are outside the candidate-facing view.
		return nil, common.NewError(common.CodeNotFound, "job not found", nil)
	}
	created, fresh, err := s.applications.CreateIfAbsent(ctx, application.Application{
		JobID:       jobID,
		CandidateID: actor.ProfileID,
		Status:      application.StatusPending,
		Notes:       notes,
	})
	if err != nil {
		return nil, err
	}
	if fresh {
		s.logInfo(fmt.Sprintf("application created application_id=%s job_id=%s", created.ID, jobID))
		if s.notifier != nil {
			s.notifier.ApplicationReceived(ctx, created, j)
		}
	}
	return &application.ApplyResult{Application: created, Created: fresh}, nil
}

func (s *ApplicationService) UpdateStatus(ctx context.Context, actor Actor, applicationID common.UUID, next application.Status, notes string) (*application.Application, error) {
	if !next.Known() {
		return nil, common.NewValidationError("invalid status", map[string]string{"status": "status must be pending, reviewed, shortlisted, rejected, or hired"})
	}
	app, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	j, err := s.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		return nil, err
	}
	action := ActionReviewApp
	if next == application.StatusHired {
		action = ActionHire
	}
	if err := s.authz.CanPerform(actor, action, j.EmployerID); err != nil {
		return nil, err
	}
	if app.Status.Terminal() {
		return nil, common.NewError(common.CodeTerminalState, "application status is terminal", nil)
	}
	// The guard set re-validates against the committed row state, not
	// the state read above; a concurrent transition in between only
	// fails this call if the committed state makes it illegal.
	updated, err := s.applications.UpdateStatus(ctx, applicationID, next, notes, applicationTransitionSources[next])
	if err != nil {
		return nil, err
	}
	s.logInfo(fmt.Sprintf("application status changed application_id=%s status=%s", updated.ID, updated.Status))
	if s.notifier != nil {
		s.notifier.ApplicationStatusChanged(ctx, updated)
	}
	return updated, nil
}

func (s *ApplicationService) Get(ctx context.Context, actor Actor, applicationID common.UUID) (*application.Application, error) {
	app, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if actor.Role == principal.RoleCandidate {
		if err := canReadApplication(actor, app); err != nil {
			return nil, err
		}
		return app, nil
	}
	j, err := s.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.CanPerform(actor, ActionViewApplics, j.EmployerID); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *ApplicationService) ListByCandidate(ctx context.Context, actor Actor) ([]application.Application, error) {
	if actor.Role != principal.RoleCandidate || actor.ProfileID.IsZero() {
		return nil, common.NewError(common.CodeForbidden, "candidate profile is required", nil)
	}
	return s.applications.ListByCandidate(ctx, actor.ProfileID)
}

func (s *ApplicationService) ListByJob(ctx context.Context, actor Actor, jobID common.UUID) ([]application.Application, error) {
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.CanPerform(actor, ActionViewApplics, j.EmployerID); err != nil {
		return nil, err
	}
	return s.applications.ListByJob(ctx, jobID)
}

func (s *ApplicationService) ListByEmployer(ctx context.Context, actor Actor) ([]application.Application, error) {
	if actor.EmployerID.IsZero() {
		return nil, common.NewError(common.CodeForbidden, "employer scope is required", nil)
	}
	if err := s.authz.CanPerform(actor, ActionViewApplics, actor.EmployerID); err != nil {
		return nil, err
	}
	return s.applications.ListByEmployer(ctx, actor.EmployerID)
}

func (s *ApplicationService) logInfo(msg string) {
	if s.logger == nil {
		return
	}
	s.logger.Info(msg)
}
