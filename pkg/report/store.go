package report

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/passcheck/pkg/pg"
)

// Store persists finished reports.
type Store interface {
	Save(ctx context.Context, r Report) error
}

// TxBeginner is satisfied by *pgxpool.Pool and *pgx.Conn.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PostgresStore writes reports into the report_runs and report_violations
// tables created by pg.Migrate.
type PostgresStore struct {
	db TxBeginner
}

// NewPostgresStore returns a store backed by db.
func NewPostgresStore(db TxBeginner) *PostgresStore {
	return &PostgresStore{db: db}
}

const insertRunQuery = `INSERT INTO report_runs
	(id, source, mode, started_at, finished_at, total, valid, invalid)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

var violationColumns = []string{"run_id", "record_index", "kind", "field_key", "value"}

// Save inserts the run row and all of its violations in one transaction.
// Saving the same run twice returns ErrDuplicateRun.
func (s *PostgresStore) Save(ctx context.Context, r Report) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return errors.Join(ErrSaveReport, err)
	}
	// No-op once committed.
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, insertRunQuery,
		r.RunID, r.Source, string(r.Mode), r.StartedAt, r.FinishedAt, r.Total, r.Valid, r.Invalid,
	); err != nil {
		if pg.IsDuplicateKeyError(err) {
			return errors.Join(ErrSaveReport, ErrDuplicateRun, err)
		}
		return errors.Join(ErrSaveReport, err)
	}

	if rows := violationRows(r); len(rows) > 0 {
		if _, err := tx.CopyFrom(ctx, pgx.Identifier{"report_violations"}, violationColumns, pgx.CopyFromRows(rows)); err != nil {
			if pg.IsForeignKeyViolationError(err) {
				return errors.Join(ErrSaveReport, ErrRunNotFound, err)
			}
			return errors.Join(ErrSaveReport, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return errors.Join(ErrSaveReport, err)
	}
	return nil
}

func violationRows(r Report) [][]any {
	var rows [][]any
	for _, rec := range r.Records {
		for _, v := range rec.Violations {
			rows = append(rows, []any{r.RunID, rec.Index, v.Kind, v.Key, v.Value})
		}
	}
	return rows
}
