package report_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/passcheck/pkg/report"
)

// MockTx is a mock implementation of the pgx.Tx methods used by the store.
type MockTx struct {
	pgx.Tx
	mock.Mock
}

func (m *MockTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	called := m.Called(ctx, sql, args)
	return pgconn.NewCommandTag("INSERT 0 1"), called.Error(0)
}

func (m *MockTx) CopyFrom(ctx context.Context, table pgx.Identifier, columns []string, src pgx.CopyFromSource) (int64, error) {
	var rows [][]any
	for src.Next() {
		values, err := src.Values()
		if err != nil {
			return 0, err
		}
		rows = append(rows, values)
	}
	called := m.Called(ctx, table, columns, rows)
	return int64(len(rows)), called.Error(0)
}

func (m *MockTx) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// MockBeginner is a mock implementation of the TxBeginner interface
type MockBeginner struct {
	mock.Mock
}

func (m *MockBeginner) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func newMocks(tx *MockTx) *MockBeginner {
	db := new(MockBeginner)
	db.On("Begin", mock.Anything).Return(tx, nil)
	tx.On("Rollback", mock.Anything).Return(pgx.ErrTxClosed).Maybe()
	return db
}

func TestPostgresStore_Save(t *testing.T) {
	t.Parallel()

	t.Run("writes run and violations", func(t *testing.T) {
		t.Parallel()

		r := sampleReport()
		tx := new(MockTx)
		db := newMocks(tx)

		tx.On("Exec",
			mock.Anything, // context
			mock.MatchedBy(func(sql string) bool { return strings.HasPrefix(sql, "INSERT INTO report_runs") }),
			[]any{r.RunID, "batch.txt", "full", r.StartedAt, r.FinishedAt, 4, 1, 3},
		).Return(nil)
		tx.On("CopyFrom",
			mock.Anything, // context
			pgx.Identifier{"report_violations"},
			[]string{"run_id", "record_index", "kind", "field_key", "value"},
			[][]any{
				{r.RunID, 1, "missing_field", "byr", ""},
				{r.RunID, 2, "out_of_range", "byr", "1900"},
				{r.RunID, 2, "invalid_format", "hgt", "190"},
			},
		).Return(nil)
		tx.On("Commit", mock.Anything).Return(nil)

		require.NoError(t, report.NewPostgresStore(db).Save(context.Background(), r))
		tx.AssertExpectations(t)
		db.AssertExpectations(t)
	})

	t.Run("skips copy without violations", func(t *testing.T) {
		t.Parallel()

		r := report.Build(runID, "clean.txt", "full", []error{nil, nil})
		tx := new(MockTx)
		db := newMocks(tx)
		tx.On("Exec", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		tx.On("Commit", mock.Anything).Return(nil)

		require.NoError(t, report.NewPostgresStore(db).Save(context.Background(), r))
		tx.AssertNotCalled(t, "CopyFrom", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("duplicate run", func(t *testing.T) {
		t.Parallel()

		tx := new(MockTx)
		db := newMocks(tx)
		tx.On("Exec", mock.Anything, mock.Anything, mock.Anything).
			Return(&pgconn.PgError{Code: "23505", Message: "duplicate key value"})

		err := report.NewPostgresStore(db).Save(context.Background(), sampleReport())
		assert.ErrorIs(t, err, report.ErrSaveReport)
		assert.ErrorIs(t, err, report.ErrDuplicateRun)
		tx.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("violations for a missing run", func(t *testing.T) {
		t.Parallel()

		tx := new(MockTx)
		db := newMocks(tx)
		tx.On("Exec", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		tx.On("CopyFrom", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(&pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"})

		err := report.NewPostgresStore(db).Save(context.Background(), sampleReport())
		assert.ErrorIs(t, err, report.ErrSaveReport)
		assert.ErrorIs(t, err, report.ErrRunNotFound)
		assert.NotErrorIs(t, err, report.ErrDuplicateRun)
		tx.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("begin fails", func(t *testing.T) {
		t.Parallel()

		db := new(MockBeginner)
		db.On("Begin", mock.Anything).Return(nil, errors.New("pool closed"))

		err := report.NewPostgresStore(db).Save(context.Background(), sampleReport())
		assert.ErrorIs(t, err, report.ErrSaveReport)
		assert.NotErrorIs(t, err, report.ErrDuplicateRun)
	})

	t.Run("commit fails", func(t *testing.T) {
		t.Parallel()

		tx := new(MockTx)
		db := newMocks(tx)
		tx.On("Exec", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		tx.On("CopyFrom", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
		tx.On("Commit", mock.Anything).Return(errors.New("serialization failure"))

		err := report.NewPostgresStore(db).Save(context.Background(), sampleReport())
		assert.ErrorIs(t, err, report.ErrSaveReport)
		tx.AssertCalled(t, "Rollback", mock.Anything)
	})
}
