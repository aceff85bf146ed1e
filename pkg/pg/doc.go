// Package pg connects to PostgreSQL through pgx/v5 and keeps the report
// schema up to date with embedded goose migrations.
//
// Config is populated from environment variables (see the field tags).
// Connect retries with a growing delay until the database answers a ping,
// and Migrate applies the schema used by report.PostgresStore:
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, log); err != nil {
//		return err
//	}
//
// Helpers such as IsDuplicateKeyError classify *pgconn.PgError values.
package pg
