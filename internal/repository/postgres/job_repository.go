package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/lib/pq"

	"talenthub/internal/common"
	"talenthub/internal/domain/job"
)

type JobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

const jobColumns = `id, employer_id, title, description, requirements, category, employment_type, experience_level, salary_min, salary_max, location, status, created_at, updated_at`

func (r *JobRepository) Create(ctx context.Context, j job.Job) (*job.Job, error) {
	j.ID = common.NewUUID()
	now := time.Now().UTC()
	j.CreatedAt = now
	j.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO jobs (`+jobColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		j.ID, j.EmployerID, j.Title, j.Description, pq.Array(j.Requirements), j.Category, j.EmploymentType, j.ExperienceLevel, j.SalaryMin, j.SalaryMax, j.Location, j.Status, j.CreatedAt, j.UpdatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create job", err)
	}
	return &j, nil
}

func (r *JobRepository) GetByID(ctx context.Context, id common.UUID) (*job.Job, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	return scanJobRow(row)
}

func (r *JobRepository) ListActive(ctx context.Context, filter job.SearchFilter) ([]job.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE status = $1`
	args := []any{job.StatusActive}
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += ` AND category = $` + strconv.Itoa(len(args))
	}
	if filter.Location != "" {
		args = append(args, filter.Location)
		query += ` AND location = $` + strconv.Itoa(len(args))
	}
	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	args = append(args, limit)
	query += ` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args))
	args = append(args, filter.Offset)
	query += ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list jobs", err)
	}
	defer rows.Close()
	return collectJobs(rows)
}

func (r *JobRepository) ListByEmployer(ctx context.Context, employerID common.UUID) ([]job.Job, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE employer_id = $1 ORDER BY created_at DESC`, employerID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list employer jobs", err)
	}
	defer rows.Close()
	return collectJobs(rows)
}

// UpdateStatus guards the write with the set of states the transition is
// legal from; the WHERE clause is the commit-time revalidation. Zero
// rows updated means the committed state moved underneath the caller.
func (r *JobRepository) UpdateStatus(ctx context.Context, id common.UUID, next job.Status, allowedFrom []job.Status) (*job.Job, error) {
	from := make([]string, len(allowedFrom))
	for i, s := range allowedFrom {
		from[i] = string(s)
	}
	result, err := r.db.ExecContext(ctx, `UPDATE jobs SET status = $1, updated_at = $2
		WHERE id = $3 AND status = ANY($4)`,
		next, time.Now().UTC(), id, pq.Array(from))
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update job status", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		current, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if current.Status.Terminal() {
			return nil, common.NewError(common.CodeTerminalState, "job status is terminal", nil)
		}
		return nil, common.NewError(common.CodeInvalidTransition, "job status transition not allowed from "+string(current.Status), nil)
	}
	return r.GetByID(ctx, id)
}

func scanJobRow(row *sql.Row) (*job.Job, error) {
	var j job.Job
	if err := row.Scan(&j.ID, &j.EmployerID, &j.Title, &j.Description, pq.Array(&j.Requirements), &j.Category, &j.EmploymentType, &j.ExperienceLevel, &j.SalaryMin, &j.SalaryMax, &j.Location, &j.Status, &j.CreatedAt, &j.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "job not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load job", err)
	}
	return &j, nil
}

func collectJobs(rows *sql.Rows) ([]job.Job, error) {
	var items []job.Job
	for rows.Next() {
		var j job.Job
		if err := rows.Scan(&j.ID, &j.EmployerID, &j.Title, &j.Description, pq.Array(&j.Requirements), &j.Category, &j.EmploymentType, &j.ExperienceLevel, &j.SalaryMin, &j.SalaryMax, &j.Location, &j.Status, &j.CreatedAt, &j.UpdatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan job", err)
		}
		items = append(items, j)
	}
	return items, nil
}
