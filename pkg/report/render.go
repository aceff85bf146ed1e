package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Format is an output encoding for Render.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat maps a case-insensitive name to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Render writes r to w. Per-record results are included only when verbose
// is set; the text format then lists invalid records only.
func Render(w io.Writer, format Format, r Report, verbose bool) error {
	if !verbose {
		r.Records = nil
	}

	var err error
	switch format {
	case FormatText:
		err = renderText(w, r)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		err = errors.Join(enc.Encode(r), enc.Close())
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return errors.Join(ErrRender, err)
	}
	return nil
}

func renderText(w io.Writer, r Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "run:\t%s\n", r.RunID)
	fmt.Fprintf(tw, "source:\t%s\n", r.Source)
	fmt.Fprintf(tw, "mode:\t%s\n", r.Mode)
	fmt.Fprintf(tw, "records:\t%d\n", r.Total)
	fmt.Fprintf(tw, "valid:\t%d\n", r.Valid)
	fmt.Fprintf(tw, "invalid:\t%d\n", r.Invalid)

	if len(r.ByKind) > 0 {
		fmt.Fprintln(tw, "violations:")
		for _, kind := range slices.Sorted(maps.Keys(r.ByKind)) {
			fmt.Fprintf(tw, "  %s\t%d\n", kind, r.ByKind[kind])
		}
	}

	for _, rec := range r.Failed() {
		fmt.Fprintf(tw, "record %d:\t%s\n", rec.Index, describe(rec))
	}

	return tw.Flush()
}

func describe(rec RecordResult) string {
	if rec.Error != "" {
		return rec.Error
	}
	parts := make([]string, 0, len(rec.Violations))
	for _, v := range rec.Violations {
		if v.Value == "" {
			parts = append(parts, fmt.Sprintf("%s %s", v.Key, v.Kind))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s %q", v.Key, v.Kind, v.Value))
	}
	return strings.Join(parts, "; ")
}
