package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"talenthub/internal/common"
	"talenthub/internal/domain/profile"
)

type RecruiterProfileRepository struct {
	db *sql.DB
}

func NewRecruiterProfileRepository(db *sql.DB) *RecruiterProfileRepository {
	return &RecruiterProfileRepository{db: db}
}

func (r *RecruiterProfileRepository) Create(ctx context.Context, p profile.RecruiterProfile) (*profile.RecruiterProfile, bool, error) {
	p.ID = common.NewUUID()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	result, err := r.db.ExecContext(ctx, `INSERT INTO recruiter_profiles (id, user_id, employer_id, full_name, title, permissions, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO NOTHING`,
		p.ID, p.UserID, p.EmployerID, p.FullName, p.Title, p.Permissions, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return nil, false, common.NewError(common.CodeInternal, "failed to create recruiter profile", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		existing, err := r.GetByUserID(ctx, p.UserID)
		if err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}
	return &p, true, nil
}

func (r *RecruiterProfileRepository) GetByUserID(ctx context.Context, userID common.UUID) (*profile.RecruiterProfile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, user_id, employer_id, full_name, title, permissions, created_at, updated_at
		FROM recruiter_profiles WHERE user_id = $1`, userID)
	var p profile.RecruiterProfile
	if err := row.Scan(&p.ID, &p.UserID, &p.EmployerID, &p.FullName, &p.Title, &p.Permissions, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "recruiter profile not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load recruiter profile", err)
	}
	return &p, nil
}

func (r *RecruiterProfileRepository) ListByEmployer(ctx context.Context, employerID common.UUID) ([]profile.RecruiterProfile, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, user_id, employer_id, full_name, title, permissions, created_at, updated_at
		FROM recruiter_profiles WHERE employer_id = $1 ORDER BY created_at DESC`, employerID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list recruiters", err)
	}
	defer rows.Close()
	var items []profile.RecruiterProfile
	for rows.Next() {
		var p profile.RecruiterProfile
		if err := rows.Scan(&p.ID, &p.UserID, &p.EmployerID, &p.FullName, &p.Title, &p.Permissions, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan recruiter", err)
		}
		items = append(items, p)
	}
	return items, nil
}
