package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"talenthub/internal/common"
	"talenthub/internal/domain/application"
)

type ApplicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

const applicationColumns = `id, job_id, candidate_id, status, notes, created_at, updated_at`

// CreateIfAbsent relies on the (job_id, candidate_id) uniqueness
// constraint instead of a pre-check; the losing side of a race fetches
// the existing row and reports created=false.
func (r *ApplicationRepository) CreateIfAbsent(ctx context.Context, app application.Application) (*application.Application, bool, error) {
	app.ID = common.NewUUID()
	now := time.Now().UTC()
	app.CreatedAt = now
	app.UpdatedAt = now
	result, err := r.db.ExecContext(ctx, `INSERT INTO applications (`+applicationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (job_id, candidate_id) DO NOTHING`,
		app.ID, app.JobID, app.CandidateID, app.Status, app.Notes, app.CreatedAt, app.UpdatedAt)
	if err != nil {
		return nil, false, common.NewError(common.CodeInternal, "failed to create application", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		existing, err := r.findByJobAndCandidate(ctx, app.JobID, app.CandidateID)
		if err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}
	return &app, true, nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	return scanApplicationRow(row)
}

func (r *ApplicationRepository) findByJobAndCandidate(ctx context.Context, jobID, candidateID common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE job_id = $1 AND candidate_id = $2`, jobID, candidateID)
	return scanApplicationRow(row)
}

func (r *ApplicationRepository) ListByCandidate(ctx context.Context, candidateID common.UUID) ([]application.Application, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE candidate_id = $1 ORDER BY created_at DESC`, candidateID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list candidate applications", err)
	}
	defer rows.Close()
	return collectApplications(rows)
}

func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID common.UUID) ([]application.Application, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE job_id = $1 ORDER BY created_at DESC`, jobID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list job applications", err)
	}
	defer rows.Close()
	return collectApplications(rows)
}

func (r *ApplicationRepository) ListByEmployer(ctx context.Context, employerID common.UUID) ([]application.Application, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT a.id, a.job_id, a.candidate_id, a.status, a.notes, a.created_at, a.updated_at
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		WHERE j.employer_id = $1
		ORDER BY a.created_at DESC`, employerID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list employer applications", err)
	}
	defer rows.Close()
	return collectApplications(rows)
}

// UpdateStatus revalidates the transition table against the committed
// row state inside the WHERE clause; see JobRepository.UpdateStatus.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id common.UUID, next application.Status, notes string, allowedFrom []application.Status) (*application.Application, error) {
	from := make([]string, len(allowedFrom))
	for i, s := range allowedFrom {
		from[i] = string(s)
	}
	result, err := r.db.ExecContext(ctx, `UPDATE applications SET status = $1, notes = $2, updated_at = $3
		WHERE id = $4 AND status = ANY($5)`,
		next, notes, time.Now().UTC(), id, pq.Array(from))
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update application status", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		current, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if current.Status.Terminal() {
			return nil, common.NewError(common.CodeTerminalState, "application status is terminal", nil)
		}
		return nil, common.NewError(common.CodeInvalidTransition, "application status transition not allowed from "+string(current.Status), nil)
	}
	return r.GetByID(ctx, id)
}

func scanApplicationRow(row *sql.Row) (*application.Application, error) {
	var app application.Application
	if err := row.Scan(&app.ID, &app.JobID, &app.CandidateID, &app.Status, &app.Notes, &app.CreatedAt, &app.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "application not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load application", err)
	}
	return &app, nil
}

func collectApplications(rows *sql.Rows) ([]application.Application, error) {
	var items []application.Application
	for rows.Next() {
		var app application.Application
		if err := rows.Scan(&app.ID, &app.JobID, &app.CandidateID, &app.Status, &app.Notes, &app.CreatedAt, &app.UpdatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan application", err)
		}
		items = append(items, app)
	}
	return items, nil
}
