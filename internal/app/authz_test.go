package app

import (
	"context"
	"testing"

	"talenthub/internal/common"
	"talenthub/internal/domain/principal"
	"talenthub/internal/domain/profile"
)

func TestResolveActorWithoutProfile(t *testing.T) {
	authz := NewAuthorizer(newFakeCandidateRepo(), newFakeEmployerRepo(), newFakeRecruiterRepo())

	actor, err := authz.ResolveActor(context.Background(), common.NewUUID(), principal.RoleCandidate)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !actor.ProfileID.IsZero() {
		t.Fatalf("unprovisioned principal must resolve with zero profile, got %s", actor.ProfileID)
	}
}

func TestResolveActorRecruiterScope(t *testing.T) {
	recruiters := newFakeRecruiterRepo()
	authz := NewAuthorizer(newFakeCandidateRepo(), newFakeEmployerRepo(), recruiters)
	employerID := common.NewUUID()
	perms := profile.Permissions{CanPostJobs: true}
	seeded, _, err := recruiters.Create(context.Background(), profile.RecruiterProfile{
		UserID:      common.NewUUID(),
		EmployerID:  employerID,
		FullName:    "R",
		Permissions: perms,
	})
	if err != nil {
		t.Fatalf("seed recruiter: %v", err)
	}

	actor, err := authz.ResolveActor(context.Background(), seeded.UserID, principal.RoleRecruiter)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if actor.EmployerID != employerID {
		t.Fatalf("employer scope %s, want %s", actor.EmployerID, employerID)
	}
	if actor.Permissions != perms {
		t.Fatalf("permissions %+v, want %+v", actor.Permissions, perms)
	}
}

func TestCanPerformScopeMasking(t *testing.T) {
	authz := NewAuthorizer(newFakeCandidateRepo(), newFakeEmployerRepo(), newFakeRecruiterRepo())
	mine := common.NewUUID()
	theirs := common.NewUUID()
	employer := Actor{Role: principal.RoleEmployer, ProfileID: mine, EmployerID: mine}

	if err := authz.CanPerform(employer, ActionCloseJob, mine); err != nil {
		t.Fatalf("own scope: %v", err)
	}
	err := authz.CanPerform(employer, ActionCloseJob, theirs)
	if !common.Is(err, common.CodeNotFound) {
		t.Fatalf("foreign scope: expected not found, got %v", err)
	}
	appErr := authz.CanPerform(employer, ActionReviewApp, theirs)
	if !common.Is(appErr, common.CodeNotFound) {
		t.Fatalf("foreign application scope: expected not found, got %v", appErr)
	}
	if err.Error() == appErr.Error() {
		t.Fatalf("job and application masks should name their own entity: %q", err)
	}
}

func TestCanPerformRecruiterFlags(t *testing.T) {
	authz := NewAuthorizer(newFakeCandidateRepo(), newFakeEmployerRepo(), newFakeRecruiterRepo())
	scope := common.NewUUID()
	base := Actor{Role: principal.RoleRecruiter, ProfileID: common.NewUUID(), EmployerID: scope}

	cases := []struct {
		action Action
		perms  profile.Permissions
		ok     bool
	}{
		{ActionPostJob, profile.Permissions{CanPostJobs: true}, true},
		{ActionPostJob, profile.Permissions{CanReviewApplications: true}, false},
		{ActionApproveJob, profile.Permissions{CanPostJobs: true}, true},
		{ActionCloseJob, profile.Permissions{CanPostJobs: true}, true},
		{ActionRejectJob, profile.Permissions{CanReviewApplications: true}, true},
		{ActionReviewApp, profile.Permissions{CanReviewApplications: true}, true},
		{ActionReviewApp, profile.Permissions{CanInterview: true}, false},
		{ActionHire, profile.Permissions{CanInterview: true}, true},
		{ActionHire, profile.Permissions{CanReviewApplications: true}, false},
		{ActionViewStats, profile.Permissions{}, true},
	}
	for _, tc := range cases {
		actor := base
		actor.Permissions = tc.perms
		err := authz.CanPerform(actor, tc.action, scope)
		if tc.ok && err != nil {
			t.Errorf("%s with %+v: unexpected %v", tc.action, tc.perms, err)
		}
		if !tc.ok && !common.Is(err, common.CodeForbidden) {
			t.Errorf("%s with %+v: expected forbidden, got %v", tc.action, tc.perms, err)
		}
	}
}

func TestCanPerformEmployerCannotReject(t *testing.T) {
	authz := NewAuthorizer(newFakeCandidateRepo(), newFakeEmployerRepo(), newFakeRecruiterRepo())
	scope := common.NewUUID()
	employer := Actor{Role: principal.RoleEmployer, ProfileID: scope, EmployerID: scope}

	if err := authz.CanPerform(employer, ActionApproveJob, scope); err != nil {
		t.Fatalf("approve in own scope: %v", err)
	}
	if err := authz.CanPerform(employer, ActionRejectJob, scope); !common.Is(err, common.CodeForbidden) {
		t.Fatalf("reject in own scope: expected forbidden, got %v", err)
	}
}

func TestCanPerformCandidateAlwaysForbidden(t *testing.T) {
	authz := NewAuthorizer(newFakeCandidateRepo(), newFakeEmployerRepo(), newFakeRecruiterRepo())
	candidate := Actor{Role: principal.RoleCandidate, ProfileID: common.NewUUID()}

	if err := authz.CanPerform(candidate, ActionPostJob, common.NewUUID()); !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}
