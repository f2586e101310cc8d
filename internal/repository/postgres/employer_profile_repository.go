package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"talenthub/internal/common"
	"talenthub/internal/domain/profile"
)

type EmployerProfileRepository struct {
	db *sql.DB
}

func NewEmployerProfileRepository(db *sql.DB) *EmployerProfileRepository {
	return &EmployerProfileRepository{db: db}
}

func (r *EmployerProfileRepository) Create(ctx context.Context, p profile.EmployerProfile) (*profile.EmployerProfile, bool, error) {
	p.ID = common.NewUUID()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	result, err := r.db.ExecContext(ctx, `INSERT INTO employer_profiles (id, user_id, company_name, description, location, industry, company_size, website, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (user_id) DO NOTHING`,
		p.ID, p.UserID, p.CompanyName, p.Description, p.Location, p.Industry, p.CompanySize, p.Website, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return nil, false, common.NewError(common.CodeInternal, "failed to create employer profile", err)
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

func (r *EmployerProfileRepository) GetByUserID(ctx context.Context, userID common.UUID) (*profile.EmployerProfile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, user_id, company_name, description, location, industry, company_size, website, created_at, updated_at
		FROM employer_profiles WHERE user_id = $1`, userID)
	return scanEmployerProfile(row)
}

func (r *EmployerProfileRepository) GetByID(ctx context.Context, id common.UUID) (*profile.EmployerProfile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, user_id, company_name, description, location, industry, company_size, website, created_at, updated_at
		FROM employer_profiles WHERE id = $1`, id)
	return scanEmployerProfile(row)
}

func (r *EmployerProfileRepository) Update(ctx context.Context, p profile.EmployerProfile) (*profile.EmployerProfile, error) {
	p.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `UPDATE employer_profiles SET company_name = $1, description = $2, location = $3, industry = $4, company_size = $5, website = $6, updated_at = $7
		WHERE user_id = $8`,
		p.CompanyName, p.Description, p.Location, p.Industry, p.CompanySize, p.Website, p.UpdatedAt, p.UserID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update employer profile", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "employer profile not found", sql.ErrNoRows)
	}
	return r.GetByUserID(ctx, p.UserID)
}

func scanEmployerProfile(row *sql.Row) (*profile.EmployerProfile, error) {
	var p profile.EmployerProfile
	if err := row.Scan(&p.ID, &p.UserID, &p.CompanyName, &p.Description, &p.Location, &p.Industry, &p.CompanySize, &p.Website, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "employer profile not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load employer profile", err)
	}
	return &p, nil
}
