package app

import (
	"context"

	"talenthub/internal/common"
	"talenthub/internal/domain/application"
	"talenthub/internal/domain/principal"
	"talenthub/internal/domain/profile"
)

// Actor is the resolved authorization context for one request. It is
// passed explicitly into every service call; nothing reads ambient
// session state.
type Actor struct {
	PrincipalID common.UUID
	Role        principal.Role
	// ProfileID is the role-specific profile row, zero until provisioned.
	ProfileID common.UUID
	// EmployerID is the employer scope: the employer's own profile ID,
	// or the delegating employer for a recruiter.
	EmployerID  common.UUID
	Permissions profile.Permissions
}

type Action string

const (
	ActionPostJob     Action = "job.post"
	ActionApproveJob  Action = "job.approve"
	ActionRejectJob   Action = "job.reject"
	ActionCloseJob    Action = "job.close"
	ActionReviewApp   Action = "application.review"
	ActionHire        Action = "application.hire"
	ActionViewStats   Action = "stats.view"
	ActionViewApplics Action = "application.list"
)

type Authorizer struct {
	candidates profile.CandidateRepository
	employers  profile.EmployerRepository
	recruiters profile.RecruiterRepository
}

func NewAuthorizer(candidates profile.CandidateRepository, employers profile.EmployerRepository, recruiters profile.RecruiterRepository) *Authorizer {
	return &Authorizer{candidates: candidates, employers: employers, recruiters: recruiters}
}

// ResolveActor loads the role profile backing the principal. A
// principal that has not provisioned a profile yet resolves with a zero
// ProfileID; only provisioning accepts such an actor.
func (a *Authorizer) ResolveActor(ctx context.Context, principalID common.UUID, role principal.Role) (Actor, error) {
	actor := Actor{PrincipalID: principalID, Role: role}
	switch role {
	case principal.RoleCandidate:
		p, err := a.candidates.GetByUserID(ctx, principalID)
		if err != nil {
			if common.Is(err, common.CodeNotFound) {
				return actor, nil
			}
			return Actor{}, err
		}
		actor.ProfileID = p.ID
	case principal.RoleEmployer:
		p, err := a.employers.GetByUserID(ctx, principalID)
		if err != nil {
			if common.Is(err, common.CodeNotFound) {
				return actor, nil
			}
			return Actor{}, err
		}
		actor.ProfileID = p.ID
		actor.EmployerID = p.ID
	case principal.RoleRecruiter:
		p, err := a.recruiters.GetByUserID(ctx, principalID)
		if err != nil {
			if common.Is(err, common.CodeNotFound) {
				return actor, nil
			}
			return Actor{}, err
		}
		actor.ProfileID = p.ID
		actor.EmployerID = p.EmployerID
		actor.Permissions = p.Permissions
	default:
		return Actor{}, common.NewError(common.CodeForbidden, "role not assigned", nil)
	}
	return actor, nil
}

// CanPerform is the single authorization predicate. employerID is the
// employer scope of the target entity. Out-of-scope access returns the
// same not-found error the repositories produce for missing rows, so a
// probe cannot tell absent from forbidden. A recruiter inside scope but
// missing the required permission flag gets a distinct forbidden error.
func (a *Authorizer) CanPerform(actor Actor, action Action, employerID common.UUID) error {
	switch actor.Role {
	case principal.RoleEmployer:
		if actor.EmployerID.IsZero() || actor.EmployerID != employerID {
			return maskedNotFound(action)
		}
		// Rejecting a posting is a review verdict; it belongs to
		// recruiters holding the review flag, not the owner.
		if action == ActionRejectJob {
			return common.NewError(common.CodeForbidden, "permission denied", nil)
		}
		return nil
	case principal.RoleRecruiter:
		if actor.EmployerID.IsZero() || actor.EmployerID != employerID {
			return maskedNotFound(action)
		}
		if !hasPermission(actor.Permissions, action) {
			return common.NewError(common.CodeForbidden, "permission denied", nil)
		}
		return nil
	case principal.RoleCandidate:
		return common.NewError(common.CodeForbidden, "candidates cannot perform this action", nil)
	default:
		return common.NewError(common.CodeForbidden, "role not assigned", nil)
	}
}

func hasPermission(p profile.Permissions, action Action) bool {
	switch action {
	case ActionPostJob, ActionApproveJob, ActionCloseJob:
		return p.CanPostJobs
	case ActionRejectJob, ActionReviewApp, ActionViewApplics:
		return p.CanReviewApplications
	case ActionHire:
		return p.CanInterview
	case ActionViewStats:
		return true
	default:
		return false
	}
}

// canReadApplication covers the candidate side: candidates read their
// own applications only, and never learn whether foreign IDs exist.
func canReadApplication(actor Actor, app *application.Application) error {
	if actor.Role == principal.RoleCandidate {
		if actor.ProfileID.IsZero() || app.CandidateID != actor.ProfileID {
			return maskedNotFound(ActionViewApplics)
		}
		return nil
	}
	return nil
}

func maskedNotFound(action Action) error {
	switch action {
	case ActionPostJob, ActionApproveJob, ActionRejectJob, ActionCloseJob, ActionViewStats:
		return common.NewError(common.CodeNotFound, "job not found", nil)
	default:
		return common.NewError(common.CodeNotFound, "application not found", nil)
	}
}
