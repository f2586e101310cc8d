package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"talenthub/internal/common"
	"talenthub/internal/domain/principal"
)

type PrincipalRepository struct {
	db *sql.DB
}

func NewPrincipalRepository(db *sql.DB) *PrincipalRepository {
	return &PrincipalRepository{db: db}
}

func (r *PrincipalRepository) Create(ctx context.Context, email, passwordHash string) (*principal.Principal, error) {
	p := principal.Principal{
		ID:           common.NewUUID(),
		Email:        email,
		PasswordHash: passwordHash,
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	result, err := r.db.ExecContext(ctx, `INSERT INTO principals (id, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO NOTHING`,
		p.ID, p.Email, p.PasswordHash, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create principal", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return nil, common.NewError(common.CodeConflict, "email already registered", nil)
	}
	return &p, nil
}

func (r *PrincipalRepository) GetByID(ctx context.Context, id common.UUID) (*principal.Principal, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, email, password_hash, role, created_at, updated_at FROM principals WHERE id = $1`, id)
	return scanPrincipal(row)
}

func (r *PrincipalRepository) GetByEmail(ctx context.Context, email string) (*principal.Principal, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, email, password_hash, role, created_at, updated_at FROM principals WHERE email = $1`, email)
	return scanPrincipal(row)
}

// AssignRole is a one-shot guarded update: the row is touched only when
// the role is still unset or already the requested one, so concurrent
// assignments cannot overwrite each other.
func (r *PrincipalRepository) AssignRole(ctx context.Context, id common.UUID, role principal.Role) error {
	result, err := r.db.ExecContext(ctx, `UPDATE principals SET role = $2, updated_at = $3
		WHERE id = $1 AND (role IS NULL OR role = $2)`,
		id, role, time.Now().UTC())
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to assign role", err)
	}
	rows, err := result.RowsAffected()
	if err != nil || rows > 0 {
		return nil
	}
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.Role != "" && existing.Role != role {
		return common.NewError(common.CodeRoleConflict, "principal already has role "+string(existing.Role), nil)
	}
	return nil
}

func scanPrincipal(row *sql.Row) (*principal.Principal, error) {
	var p principal.Principal
	var role sql.NullString
	if err := row.Scan(&p.ID, &p.Email, &p.PasswordHash, &role, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "principal not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load principal", err)
	}
	if role.Valid {
		p.Role = principal.Role(role.String)
	}
	return &p, nil
}
