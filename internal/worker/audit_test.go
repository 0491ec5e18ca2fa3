package worker_test

import (
	"carbonaudit/internal/auditor"
	"carbonaudit/internal/worker"
	"carbonaudit/pkg/domain"
	"carbonaudit/pkg/logger"
	"carbonaudit/pkg/serrors"
	"context"
	"errors"
	"testing"
	"time"

	mockauditor "carbonaudit/internal/auditor/mock"

	"github.com/google/uuid"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

func makeJob(id int64, auditID domain.AuditID) *river.Job[auditor.JobArgs] {
	return &river.Job[auditor.JobArgs]{
		JobRow: &rivertype.JobRow{ID: id, Attempt: 1},
		Args:   auditor.JobArgs{AuditID: auditID},
	}
}

func newWorker(t *testing.T) (*mockauditor.MockAuditor, *worker.AuditWorker) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mock := mockauditor.NewMockAuditor(ctrl)

	return mock, worker.NewAuditWorker(mock, 3*time.Minute)
}

func TestAuditWorker_Work_Success(t *testing.T) {
	mock, w := newWorker(t)
	id := domain.AuditID(uuid.New())

	mock.EXPECT().Run(gomock.Any(), id).Return(&auditor.Result{
		Record: &domain.AuditRecord{ID: id, Status: domain.AuditStatusCompleted, Duration: 1200},
	}, nil)

	require.NoError(t, w.Work(context.Background(), makeJob(1, id)))
	require.Equal(t, 3*time.Minute, w.Timeout(makeJob(1, id)))
}

func TestAuditWorker_Work_TerminalOrMissingCancels(t *testing.T) {
	for name, cause := range map[string]error{
		"conflict":  serrors.With(serrors.ErrConflict, "audit is already completed"),
		"not found": serrors.With(serrors.ErrNotFound, "audit not found"),
	} {
		t.Run(name, func(t *testing.T) {
			mock, w := newWorker(t)
			mock.EXPECT().Run(gomock.Any(), gomock.Any()).Return(nil, cause)

			err := w.Work(context.Background(), makeJob(2, domain.AuditID{}))
			var cancelErr *river.JobCancelError
			require.ErrorAs(t, err, &cancelErr)
		})
	}
}

func TestAuditWorker_Work_FailedAuditCompletesJob(t *testing.T) {
	mock, w := newWorker(t)
	id := domain.AuditID(uuid.New())

	mock.EXPECT().Run(gomock.Any(), id).Return(nil, &auditor.Error{ID: id, Err: errors.New("carbon estimation failed")})

	require.NoError(t, w.Work(context.Background(), makeJob(3, id)))
}

func TestAuditWorker_Work_PersistenceErrorRetries(t *testing.T) {
	mock, w := newWorker(t)
	id := domain.AuditID(uuid.New())

	cause := &auditor.Error{ID: id, Err: serrors.Wrap(serrors.ErrUnavailable, errors.New("db down"), "could not persist audit")}
	mock.EXPECT().Run(gomock.Any(), id).Return(nil, cause)

	err := w.Work(context.Background(), makeJob(4, id))
	require.ErrorIs(t, err, serrors.ErrUnavailable)

	var cancelErr *river.JobCancelError
	require.False(t, errors.As(err, &cancelErr))
}
