// Package logger builds the *slog.Logger used by passcheck.
//
// New returns a logger configured by functional options: output format (text
// or JSON), minimum level, static attributes and ContextExtractor callbacks
// that copy values out of context.Context on every record. The CLI uses an
// extractor to stamp the batch run id on each line:
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "passcheck"),
//	    logger.WithContextValue("run_id", runIDKey{}),
//	)
//	log.InfoContext(ctx, "batch read", logger.Source(src.Name()), logger.Count("records", n))
//
// Attribute helpers in attr.go keep key names consistent. Error, RunID,
// ParseError and Violations return an empty Attr when there is nothing to
// log, so they can be passed unconditionally.
package logger
