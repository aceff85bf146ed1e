package logger

import (
	"errors"
	"log/slog"
	"time"

	"github.com/dmitrymomot/passcheck/pkg/passport"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// RunID records the batch run identifier under the key "run_id".
func RunID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("run_id", id)
}

// Source records the input location under the key "source".
func Source(name string) slog.Attr {
	return slog.String("source", name)
}

// Mode records the validation mode under the key "mode".
func Mode(m passport.Mode) slog.Attr {
	return slog.String("mode", m.String())
}

// RecordIndex records the zero-based record position under the key "record".
func RecordIndex(i int) slog.Attr {
	return slog.Int("record", i)
}

// Count records a named counter.
func Count(name string, n int) slog.Attr {
	return slog.Int(name, n)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// ParseError records the structured parse failure: offending text, the
// sentinel and, when known, the input line. Returns an empty Attr when err
// carries no *passport.ParseError.
func ParseError(err error) slog.Attr {
	perr, ok := passport.AsParseError(err)
	if !ok {
		return slog.Attr{}
	}

	attrs := []slog.Attr{
		slog.String("reason", perr.Err.Error()),
		slog.String("text", perr.Text),
	}
	var lerr *passport.LineError
	if errors.As(err, &lerr) {
		attrs = append(attrs, slog.Int("line", lerr.Line))
	}
	return slog.Attr{Key: "parse_error", Value: slog.GroupValue(attrs...)}
}

// Violations groups the findings of one record by kind, e.g.
// violations.missing_field=[ecl hgt]. Returns an empty Attr for no findings.
func Violations(vs passport.Violations) slog.Attr {
	if len(vs) == 0 {
		return slog.Attr{}
	}

	attrs := make([]slog.Attr, 0, len(passport.ViolationKinds))
	for _, kind := range passport.ViolationKinds {
		var keys []string
		for _, v := range vs {
			if v.Kind == kind {
				keys = append(keys, v.Key.String())
			}
		}
		if len(keys) > 0 {
			attrs = append(attrs, slog.Any(string(kind), keys))
		}
	}
	return slog.Attr{Key: "violations", Value: slog.GroupValue(attrs...)}
}
