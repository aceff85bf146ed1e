package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dmitrymomot/passcheck/pkg/config"
	"github.com/dmitrymomot/passcheck/pkg/logger"
	"github.com/dmitrymomot/passcheck/pkg/metrics"
	"github.com/dmitrymomot/passcheck/pkg/passport"
	"github.com/dmitrymomot/passcheck/pkg/pg"
	"github.com/dmitrymomot/passcheck/pkg/report"
	"github.com/dmitrymomot/passcheck/pkg/source"
)

const serviceName = "passcheck"

type runIDKey struct{}

// run reads one batch, validates it and writes the report to stdout.
// Diagnostics go to stderr.
func run(ctx context.Context, cfg Config, args []string, stdout, stderr io.Writer) error {
	if err := applyFlags(&cfg, args, stderr); err != nil {
		if errors.Is(err, errHelp) {
			return nil
		}
		fmt.Fprintln(stderr, err)
		return err
	}

	log, err := newLogger(cfg, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return err
	}

	mode, err := passport.ParseMode(cfg.Mode)
	if err != nil {
		log.ErrorContext(ctx, "invalid mode", logger.Error(err))
		return err
	}
	format, err := report.ParseFormat(cfg.Report)
	if err != nil {
		log.ErrorContext(ctx, "invalid report format", logger.Error(err))
		return err
	}

	runID := report.NewRunID()
	ctx = context.WithValue(ctx, runIDKey{}, runID.String())
	m := metrics.New(nil)
	started := time.Now()

	src, err := source.Open(ctx, cfg.Input, cfg.S3)
	if err != nil {
		log.ErrorContext(ctx, "failed to open input", logger.Error(err))
		return err
	}
	log = log.With(logger.Source(src.Name()), logger.Mode(mode))

	records, err := readRecords(ctx, log, src)
	if err != nil {
		m.IncrementParseFailure(failureReason(err))
		m.ObserveRunDuration(time.Since(started))
		writeMetrics(ctx, log, m, cfg.MetricsTextfile)
		return err
	}

	results, err := passport.ValidateAll(ctx, records, mode, cfg.Workers)
	if err != nil {
		log.ErrorContext(ctx, "validation interrupted", logger.Error(err))
		return err
	}
	for i, res := range results {
		if vs := passport.ExtractViolations(res); vs != nil {
			log.DebugContext(ctx, "record invalid", logger.RecordIndex(i), logger.Violations(vs))
		}
	}

	r := report.Build(runID, src.Name(), mode, results, report.WithTiming(started, time.Now()))
	log.InfoContext(ctx, "batch validated",
		logger.Count("records", r.Total),
		logger.Count("valid", r.Valid),
		logger.Count("invalid", r.Invalid),
		logger.Duration(r.Duration()),
	)

	if err := report.Render(stdout, format, r, cfg.Verbose); err != nil {
		log.ErrorContext(ctx, "failed to render report", logger.Error(err))
		return err
	}

	m.ObserveReport(r)
	writeMetrics(ctx, log, m, cfg.MetricsTextfile)

	if cfg.PGConnURL != "" {
		if err := persist(ctx, log, r); err != nil {
			log.ErrorContext(ctx, "failed to persist report", logger.Error(err))
			return err
		}
	}
	return nil
}

func newLogger(cfg Config, output io.Writer) (*slog.Logger, error) {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return logger.New(
		logger.WithEnvironment(cfg.AppEnv, serviceName),
		logger.WithLevel(level),
		logger.WithOutput(output),
		logger.WithContextExtractors(runIDFromContext),
	), nil
}

func runIDFromContext(ctx context.Context) (slog.Attr, bool) {
	id, ok := ctx.Value(runIDKey{}).(string)
	if !ok {
		return slog.Attr{}, false
	}
	return logger.RunID(id), true
}

func readRecords(ctx context.Context, log *slog.Logger, src source.Source) ([]passport.Record, error) {
	lines, err := src.Lines(ctx)
	if err != nil {
		log.ErrorContext(ctx, "failed to read input", logger.Error(err))
		return nil, err
	}

	records, err := passport.ReadAll(lines, passport.WithRecordHook(func(index int, r passport.Record) {
		log.DebugContext(ctx, "record assembled", logger.RecordIndex(index), logger.Count("fields", r.Len()))
	}))
	if err != nil {
		log.ErrorContext(ctx, "failed to parse input", logger.ParseError(err), logger.Error(err))
		return nil, err
	}
	return records, nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, passport.ErrUnknownKey):
		return "unknown_key"
	case errors.Is(err, passport.ErrUnparsableInteger):
		return "unparsable_integer"
	case errors.Is(err, passport.ErrReadInput):
		return "read_input"
	default:
		return "other"
	}
}

func writeMetrics(ctx context.Context, log *slog.Logger, m *metrics.Metrics, path string) {
	if path == "" {
		return
	}
	if err := m.WriteTextfile(path); err != nil {
		log.WarnContext(ctx, "failed to write metrics", logger.Error(err))
	}
}

// persist stores r in Postgres. Pool settings come from the PG_* variables.
func persist(ctx context.Context, log *slog.Logger, r report.Report) error {
	var pgCfg pg.Config
	if err := config.Parse(&pgCfg); err != nil {
		return err
	}

	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pg.Healthcheck(pool)(ctx); err != nil {
		return err
	}
	if err := pg.Migrate(ctx, pool, pgCfg, log); err != nil {
		return err
	}
	if err := report.NewPostgresStore(pool).Save(ctx, r); err != nil {
		return err
	}

	log.InfoContext(ctx, "report persisted", logger.Component("postgres"))
	return nil
}
