package app

import (
	"context"

	"talenthub/internal/common"
	"talenthub/internal/domain/application"
	"talenthub/internal/domain/job"
	"talenthub/internal/domain/stats"
)

// StatsService derives aggregate counts from the jobs and applications
// tables at read time. Counts are zero-filled across every status, so a
// posting with no applications reports zeros rather than absent keys.
type StatsService struct {
	stats stats.Repository
	jobs  job.Repository
	authz *Authorizer
}

func NewStatsService(statsRepo stats.Repository, jobs job.Repository, authz *Authorizer) *StatsService {
	return &StatsService{stats: statsRepo, jobs: jobs, authz: authz}
}

func (s *StatsService) JobStats(ctx context.Context, actor Actor, jobID common.UUID) (*stats.JobStats, error) {
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.CanPerform(actor, ActionViewStats, j.EmployerID); err != nil {
		return nil, err
	}
	counted, err := s.stats.CountApplicationsByStatus(ctx, jobID)
	if err != nil {
		return nil, err
	}
	result := &stats.JobStats{JobID: jobID, ByStatus: make(map[application.Status]int, len(application.Statuses))}
	for _, status := range application.Statuses {
		count := counted[status]
		result.ByStatus[status] = count
		result.TotalApplications += count
	}
	return result, nil
}

func (s *StatsService) EmployerStats(ctx context.Context, actor Actor) (*stats.EmployerStats, error) {
	if actor.EmployerID.IsZero() {
		return nil, common.NewError(common.CodeForbidden, "employer scope is required", nil)
	}
	if err := s.authz.CanPerform(actor, ActionViewStats, actor.EmployerID); err != nil {
		return nil, err
	}
	jobCounts, err := s.stats.CountJobsByStatus(ctx, actor.EmployerID)
	if err != nil {
		return nil, err
	}
	appCounts, err := s.stats.CountEmployerApplicationsByStatus(ctx, actor.EmployerID)
	if err != nil {
		return nil, err
	}
	result := &stats.EmployerStats{
		EmployerID:   actor.EmployerID,
		JobsByStatus: make(map[job.Status]int, len(job.Statuses)),
	}
	for _, status := range job.Statuses {
		count := jobCounts[status]
		result.JobsByStatus[status] = count
		result.TotalJobs += count
	}
	for _, status := range application.Statuses {
		result.TotalApplications += appCounts[status]
	}
	result.TotalShortlisted = appCounts[application.StatusShortlisted]
	result.TotalHired = appCounts[application.StatusHired]
	return result, nil
}
