package job

import (
	"context"

	"talenthub/internal/common"
)

type Repository interface {
	Create(ctx context.Context, j Job) (*Job, error)
	GetByID(ctx context.Context, id common.UUID) (*Job, error)
	ListActive(ctx context.Context, filter SearchFilter) ([]Job, error)
	ListByEmployer(ctx context.Context, employerID common.UUID) ([]Job, error)
	// UpdateStatus commits the transition only when the row's current
	// status is one of allowedFrom, revalidating the transition table
	// against committed state. A stale assumption surfaces as zero rows
	// updated and is reported as CodeInvalidTransition.
	UpdateStatus(ctx context.Context, id common.UUID, next Status, allowedFrom []Status) (*Job, error)
}
