package stats

import (
	"context"

	"talenthub/internal/common"
	"talenthub/internal/domain/application"
	"talenthub/internal/domain/job"
)

// Aggregates are derived views over the jobs and applications tables.
// They are computed at read time and are never independently mutable.

type JobStats struct {
	JobID             common.UUID                `json:"job_id"`
	TotalApplications int                        `json:"total_applications"`
	ByStatus          map[application.Status]int `json:"by_status"`
}

type EmployerStats struct {
	EmployerID        common.UUID        `json:"employer_id"`
	TotalJobs         int                `json:"total_jobs"`
	JobsByStatus      map[job.Status]int `json:"jobs_by_status"`
	TotalApplications int                `json:"total_applications"`
	TotalShortlisted  int                `json:"total_shortlisted"`
	TotalHired        int                `json:"total_hired"`
}

type Repository interface {
	CountApplicationsByStatus(ctx context.Context, jobID common.UUID) (map[application.Status]int, error)
	CountJobsByStatus(ctx context.Context, employerID common.UUID) (map[job.Status]int, error)
	CountEmployerApplicationsByStatus(ctx context.Context, employerID common.UUID) (map[application.Status]int, error)
}
