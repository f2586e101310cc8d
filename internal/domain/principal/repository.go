package principal

import (
	"context"

	"talenthub/internal/common"
)

type Repository interface {
	Create(ctx context.Context, email, passwordHash string) (*Principal, error)
	GetByID(ctx context.Context, id common.UUID) (*Principal, error)
	GetByEmail(ctx context.Context, email string) (*Principal, error)
	// AssignRole sets the role exactly once. Assigning the role the
	// principal already has is a no-op; assigning a different role fails
	// with CodeRoleConflict.
	AssignRole(ctx context.Context, id common.UUID, role Role) error
}
