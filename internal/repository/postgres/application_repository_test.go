package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"talenthub/internal/common"
	"talenthub/internal/domain/application"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func applicationRows(app application.Application) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "job_id", "candidate_id", "status", "notes", "created_at", "updated_at"}).
		AddRow(app.ID, app.JobID, app.CandidateID, app.Status, app.Notes, app.CreatedAt, app.UpdatedAt)
}

func TestCreateIfAbsentInserts(t *testing.T) {
	db, mock := newMock(t)
	repo := NewApplicationRepository(db)
	jobID := common.NewUUID()
	candidateID := common.NewUUID()

	mock.ExpectExec(`INSERT INTO applications`).
		WithArgs(sqlmock.AnyArg(), jobID, candidateID, application.StatusPending, "", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	created, fresh, err := repo.CreateIfAbsent(context.Background(), application.Application{
		JobID:       jobID,
		CandidateID: candidateID,
		Status:      application.StatusPending,
	})
	require.NoError(t, err)
	require.True(t, fresh)
	require.Equal(t, application.StatusPending, created.Status)
	require.False(t, created.ID.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateIfAbsentFetchesExistingOnConflict(t *testing.T) {
	db, mock := newMock(t)
	repo := NewApplicationRepository(db)
	jobID := common.NewUUID()
	candidateID := common.NewUUID()
	existing := application.Application{
		ID:          common.NewUUID(),
		JobID:       jobID,
		CandidateID: candidateID,
		Status:      application.StatusShortlisted,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	mock.ExpectExec(`INSERT INTO applications`).
		WithArgs(sqlmock.AnyArg(), jobID, candidateID, application.StatusPending, "", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT .+ FROM applications WHERE job_id = \$1 AND candidate_id = \$2`).
		WithArgs(jobID, candidateID).
		WillReturnRows(applicationRows(existing))

	got, fresh, err := repo.CreateIfAbsent(context.Background(), application.Application{
		JobID:       jobID,
		CandidateID: candidateID,
		Status:      application.StatusPending,
	})
	require.NoError(t, err)
	require.False(t, fresh)
	require.Equal(t, existing.ID, got.ID)
	require.Equal(t, application.StatusShortlisted, got.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationUpdateStatusGuardedCommit(t *testing.T) {
	db, mock := newMock(t)
	repo := NewApplicationRepository(db)
	id := common.NewUUID()
	updated := application.Application{
		ID:        id,
		JobID:     common.NewUUID(),
		Status:    application.StatusReviewed,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	mock.ExpectExec(`UPDATE applications SET status = \$1, notes = \$2, updated_at = \$3\s+WHERE id = \$4 AND status = ANY\(\$5\)`).
		WithArgs(application.StatusReviewed, "looks good", sqlmock.AnyArg(), id, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT .+ FROM applications WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(applicationRows(updated))

	got, err := repo.UpdateStatus(context.Background(), id, application.StatusReviewed, "looks good", []application.Status{application.StatusPending})
	require.NoError(t, err)
	require.Equal(t, application.StatusReviewed, got.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationUpdateStatusRefusedTerminal(t *testing.T) {
	db, mock := newMock(t)
	repo := NewApplicationRepository(db)
	id := common.NewUUID()
	current := application.Application{
		ID:        id,
		JobID:     common.NewUUID(),
		Status:    application.StatusHired,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	mock.ExpectExec(`UPDATE applications SET status`).
		WithArgs(application.StatusReviewed, "", sqlmock.AnyArg(), id, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT .+ FROM applications WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(applicationRows(current))

	_, err := repo.UpdateStatus(context.Background(), id, application.StatusReviewed, "", []application.Status{application.StatusPending})
	require.True(t, common.Is(err, common.CodeTerminalState), "got %v", err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationUpdateStatusRefusedNonTerminal(t *testing.T) {
	db, mock := newMock(t)
	repo := NewApplicationRepository(db)
	id := common.NewUUID()
	current := application.Application{
		ID:        id,
		JobID:     common.NewUUID(),
		Status:    application.StatusPending,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	mock.ExpectExec(`UPDATE applications SET status`).
		WithArgs(application.StatusHired, "", sqlmock.AnyArg(), id, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT .+ FROM applications WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(applicationRows(current))

	_, err := repo.UpdateStatus(context.Background(), id, application.StatusHired, "", []application.Status{application.StatusShortlisted})
	require.True(t, common.Is(err, common.CodeInvalidTransition), "got %v", err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationGetByIDNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewApplicationRepository(db)
	id := common.NewUUID()

	mock.ExpectQuery(`SELECT .+ FROM applications WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "job_id", "candidate_id", "status", "notes", "created_at", "updated_at"}))

	_, err := repo.GetByID(context.Background(), id)
	require.True(t, common.Is(err, common.CodeNotFound), "got %v", err)
	require.NoError(t, mock.ExpectationsWereMet())
}
