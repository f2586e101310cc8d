package postgres

import (
	"context"
	"database/sql"

	"talenthub/internal/common"
	"talenthub/internal/domain/application"
	"talenthub/internal/domain/job"
)

type StatsRepository struct {
	db *sql.DB
}

func NewStatsRepository(db *sql.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) CountApplicationsByStatus(ctx context.Context, jobID common.UUID) (map[application.Status]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM applications WHERE job_id = $1 GROUP BY status`, jobID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to count applications", err)
	}
	defer rows.Close()
	counts := make(map[application.Status]int)
	for rows.Next() {
		var status application.Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan application count", err)
		}
		counts[status] = count
	}
	return counts, nil
}

func (r *StatsRepository) CountJobsByStatus(ctx context.Context, employerID common.UUID) (map[job.Status]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM jobs WHERE employer_id = $1 GROUP BY status`, employerID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to count jobs", err)
	}
	defer rows.Close()
	counts := make(map[job.Status]int)
	for rows.Next() {
		var status job.Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan job count", err)
		}
		counts[status] = count
	}
	return counts, nil
}

func (r *StatsRepository) CountEmployerApplicationsByStatus(ctx context.Context, employerID common.UUID) (map[application.Status]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT a.status, COUNT(*)
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		WHERE j.employer_id = $1
		GROUP BY a.status`, employerID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to count employer applications", err)
	}
	defer rows.Close()
	counts := make(map[application.Status]int)
	for rows.Next() {
		var status application.Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan employer application count", err)
		}
		counts[status] = count
	}
	return counts, nil
}
