package report_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/passcheck/pkg/passport"
	"github.com/dmitrymomot/passcheck/pkg/report"
)

func sampleReport() report.Report {
	started := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return report.Build(runID, "batch.txt", passport.ModeFull, sampleResults(),
		report.WithTiming(started, started.Add(time.Second)))
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"text", "JSON", " yaml "} {
		_, err := report.ParseFormat(in)
		assert.NoError(t, err, in)
	}

	_, err := report.ParseFormat("xml")
	assert.ErrorIs(t, err, report.ErrUnknownFormat)
}

func TestRender_Text(t *testing.T) {
	t.Parallel()

	t.Run("summary", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, report.Render(&buf, report.FormatText, sampleReport(), false))

		out := buf.String()
		assert.Contains(t, out, runID.String())
		assert.Contains(t, out, "source:")
		assert.Regexp(t, `valid:\s+1\n`, out)
		assert.Regexp(t, `invalid:\s+3\n`, out)
		assert.Regexp(t, `invalid_format\s+1`, out)
		assert.NotContains(t, out, "record 1:")
	})

	t.Run("verbose lists invalid records", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, report.Render(&buf, report.FormatText, sampleReport(), true))

		out := buf.String()
		assert.Regexp(t, `record 1:\s+byr missing_field\n`, out)
		assert.Contains(t, out, `byr out_of_range "1900"; hgt invalid_format "190"`)
		assert.Regexp(t, `record 3:\s+boom`, out)
		assert.NotContains(t, out, "record 0:")
	})
}

func TestRender_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, report.Render(&buf, report.FormatJSON, sampleReport(), true))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, runID.String(), decoded["run_id"])
	assert.Equal(t, "full", decoded["mode"])
	assert.EqualValues(t, 1, decoded["valid"])
	assert.Len(t, decoded["records"], 4)

	buf.Reset()
	require.NoError(t, report.Render(&buf, report.FormatJSON, sampleReport(), false))
	assert.NotContains(t, buf.String(), `"records"`)
}

func TestRender_YAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, report.Render(&buf, report.FormatYAML, sampleReport(), false))

	var decoded struct {
		RunID   string         `yaml:"run_id"`
		Total   int            `yaml:"total"`
		Invalid int            `yaml:"invalid"`
		ByKind  map[string]int `yaml:"by_kind"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, runID.String(), decoded.RunID)
	assert.Equal(t, 4, decoded.Total)
	assert.Equal(t, 3, decoded.Invalid)
	assert.Equal(t, 1, decoded.ByKind["out_of_range"])
}

func TestRender_UnknownFormat(t *testing.T) {
	t.Parallel()

	err := report.Render(&bytes.Buffer{}, report.Format("xml"), sampleReport(), false)
	assert.ErrorIs(t, err, report.ErrUnknownFormat)
}
