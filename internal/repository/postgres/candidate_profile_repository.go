package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"talenthub/internal/common"
	"talenthub/internal/domain/profile"
)

type CandidateProfileRepository struct {
	db *sql.DB
}

func NewCandidateProfileRepository(db *sql.DB) *CandidateProfileRepository {
	return &CandidateProfileRepository{db: db}
}

// Create is insert-if-absent on the user_id unique constraint. A lost
// race or a retry falls through to fetching the winner's row.
func (r *CandidateProfileRepository) Create(ctx context.Context, p profile.CandidateProfile) (*profile.CandidateProfile, bool, error) {
	p.ID = common.NewUUID()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	result, err := r.db.ExecContext(ctx, `INSERT INTO candidate_profiles (id, user_id, full_name, phone, location, about, resume_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id) DO NOTHING`,
		p.ID, p.UserID, p.FullName, p.Phone, p.Location, p.About, p.ResumeURL, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return nil, false, common.NewError(common.CodeInternal, "failed to create candidate profile", err)
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

func (r *CandidateProfileRepository) GetByUserID(ctx context.Context, userID common.UUID) (*profile.CandidateProfile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, user_id, full_name, phone, location, about, resume_url, created_at, updated_at
		FROM candidate_profiles WHERE user_id = $1`, userID)
	return scanCandidateProfile(row)
}

func (r *CandidateProfileRepository) GetByID(ctx context.Context, id common.UUID) (*profile.CandidateProfile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, user_id, full_name, phone, location, about, resume_url, created_at, updated_at
		FROM candidate_profiles WHERE id = $1`, id)
	return scanCandidateProfile(row)
}

func (r *CandidateProfileRepository) Update(ctx context.Context, p profile.CandidateProfile) (*profile.CandidateProfile, error) {
	p.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `UPDATE candidate_profiles SET full_name = $1, phone = $2, location = $3, about = $4, updated_at = $5
		WHERE user_id = $6`,
		p.FullName, p.Phone, p.Location, p.About, p.UpdatedAt, p.UserID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update candidate profile", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "candidate profile not found", sql.ErrNoRows)
	}
	return r.GetByUserID(ctx, p.UserID)
}

func (r *CandidateProfileRepository) SetResumeURL(ctx context.Context, userID common.UUID, resumeURL string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE candidate_profiles SET resume_url = $1, updated_at = $2 WHERE user_id = $3`,
		resumeURL, time.Now().UTC(), userID)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to set resume url", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "candidate profile not found", sql.ErrNoRows)
	}
	return nil
}

func scanCandidateProfile(row *sql.Row) (*profile.CandidateProfile, error) {
	var p profile.CandidateProfile
	var resumeURL sql.NullString
	if err := row.Scan(&p.ID, &p.UserID, &p.FullName, &p.Phone, &p.Location, &p.About, &resumeURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "candidate profile not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load candidate profile", err)
	}
	if resumeURL.Valid {
		p.ResumeURL = resumeURL.String
	}
	return &p, nil
}
