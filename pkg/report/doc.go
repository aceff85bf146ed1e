// Package report turns per-record validation results into a run summary,
// renders it as text, JSON or YAML, and persists it to PostgreSQL.
//
//	results, err := passport.ValidateAll(ctx, records, passport.ModeFull, 4)
//	if err != nil {
//		return err
//	}
//	r := report.Build(report.NewRunID(), src.Name(), passport.ModeFull, results)
//	if err := report.Render(os.Stdout, report.FormatText, r, false); err != nil {
//		return err
//	}
//
// Valid is the count the batch is judged by. ByKind and ByKey break the
// violations down for dashboards.
package report
