package application

import (
	"context"

	"talenthub/internal/common"
)

type Repository interface {
	// CreateIfAbsent inserts unless a row for (job_id, candidate_id)
	// already exists, relying on the store's uniqueness constraint
	// rather than a racy pre-check. The returned flag is false when the
	// existing row was fetched instead.
	CreateIfAbsent(ctx context.Context, app Application) (*Application, bool, error)
	GetByID(ctx context.Context, id common.UUID) (*Application, error)
	ListByCandidate(ctx context.Context, candidateID common.UUID) ([]Application, error)
	ListByJob(ctx context.Context, jobID common.UUID) ([]Application, error)
	ListByEmployer(ctx context.Context, employerID common.UUID) ([]Application, error)
	// UpdateStatus commits only when the row's current status is one of
	// allowedFrom; see job.Repository.UpdateStatus.
	UpdateStatus(ctx context.Context, id common.UUID, next Status, notes string, allowedFrom []Status) (*Application, error)
}
