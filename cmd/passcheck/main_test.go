package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/passcheck/pkg/config"
	"github.com/dmitrymomot/passcheck/pkg/passport"
	"github.com/dmitrymomot/passcheck/pkg/source"
)

// Four records fail full validation, the last four pass. All eight pass
// the simplified check.
const puzzleBatch = `eyr:1972 cid:100
hcl:#18171d ecl:amb hgt:170 pid:186cm iyr:2018 byr:1926

iyr:2019
hcl:#602927 eyr:1967 hgt:170cm
ecl:grn pid:012533040 byr:1946

hcl:dab227 iyr:2012
ecl:brn hgt:182cm pid:021572410 eyr:2020 byr:1992 cid:277

hgt:59cm ecl:zzz
eyr:2038 hcl:74454a iyr:2023
pid:3556412378 byr:2007

pid:087499704 hgt:74in ecl:grn iyr:2012 eyr:2030 byr:1980
hcl:#623a2f

eyr:2029 ecl:blu cid:129 byr:1989
iyr:2014 pid:896056539 hcl:#a97842 hgt:165cm

hcl:#888785
hgt:164cm byr:2001 iyr:2015 cid:88
pid:545766238 ecl:hzl
eyr:2022

iyr:2010 hgt:158cm hcl:#b6652a ecl:blu byr:1944 eyr:2021 pid:093154719
`

func writeBatch(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "batch.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func testConfig(t *testing.T, env map[string]string) Config {
	t.Helper()

	if env == nil {
		env = map[string]string{}
	}

	var cfg Config
	require.NoError(t, config.Parse(&cfg, config.WithEnvironment(env)))
	return cfg
}

func TestRun(t *testing.T) {
	t.Parallel()

	t.Run("full mode text report", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig(t, map[string]string{"PASSCHECK_INPUT": writeBatch(t, puzzleBatch)})
		var stdout, stderr bytes.Buffer

		require.NoError(t, run(context.Background(), cfg, nil, &stdout, &stderr))
		assert.Regexp(t, `\nvalid:\s+4\n`, stdout.String())
		assert.Regexp(t, `invalid:\s+4\n`, stdout.String())
		assert.Regexp(t, `mode:\s+full\n`, stdout.String())
		assert.Contains(t, stderr.String(), "batch validated")
	})

	t.Run("simplified mode json report", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig(t, map[string]string{
			"PASSCHECK_INPUT":   writeBatch(t, puzzleBatch),
			"PASSCHECK_MODE":    "simplified",
			"PASSCHECK_REPORT":  "json",
			"PASSCHECK_VERBOSE": "true",
		})
		var stdout, stderr bytes.Buffer

		require.NoError(t, run(context.Background(), cfg, nil, &stdout, &stderr))

		var decoded struct {
			Mode    string `json:"mode"`
			Total   int    `json:"total"`
			Valid   int    `json:"valid"`
			Records []any  `json:"records"`
		}
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &decoded))
		assert.Equal(t, "simplified", decoded.Mode)
		assert.Equal(t, 8, decoded.Total)
		assert.Equal(t, 8, decoded.Valid)
		assert.Len(t, decoded.Records, 8)
	})

	t.Run("flags override environment", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig(t, map[string]string{"PASSCHECK_MODE": "full"})
		var stdout, stderr bytes.Buffer

		args := []string{"-mode", "simplified", "-report", "yaml", writeBatch(t, puzzleBatch)}
		require.NoError(t, run(context.Background(), cfg, args, &stdout, &stderr))
		assert.Contains(t, stdout.String(), "mode: simplified")
		assert.Contains(t, stdout.String(), "valid: 8")
	})

	t.Run("writes metrics textfile", func(t *testing.T) {
		t.Parallel()

		metricsPath := filepath.Join(t.TempDir(), "passcheck.prom")
		cfg := testConfig(t, map[string]string{
			"PASSCHECK_INPUT":  writeBatch(t, puzzleBatch),
			"METRICS_TEXTFILE": metricsPath,
		})

		require.NoError(t, run(context.Background(), cfg, nil, &bytes.Buffer{}, &bytes.Buffer{}))

		data, err := os.ReadFile(metricsPath)
		require.NoError(t, err)
		assert.Contains(t, string(data), `passcheck_records_validated_total{mode="full",result="valid"} 4`)
		assert.Contains(t, string(data), "passcheck_records_read_total 8")
	})

	t.Run("production logs json with run id", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig(t, map[string]string{
			"PASSCHECK_INPUT": writeBatch(t, puzzleBatch),
			"APP_ENV":         "production",
		})
		var stderr bytes.Buffer

		require.NoError(t, run(context.Background(), cfg, nil, &bytes.Buffer{}, &stderr))

		var entry map[string]any
		require.NoError(t, json.Unmarshal(bytes.SplitN(stderr.Bytes(), []byte("\n"), 2)[0], &entry))
		assert.Equal(t, "batch validated", entry["msg"])
		assert.Equal(t, "passcheck", entry["service"])
		assert.NotEmpty(t, entry["run_id"])
		assert.EqualValues(t, 8, entry["records"])
	})
}

func TestRun_Failures(t *testing.T) {
	t.Parallel()

	t.Run("missing input", func(t *testing.T) {
		t.Parallel()

		var stderr bytes.Buffer
		err := run(context.Background(), testConfig(t, nil), nil, &bytes.Buffer{}, &stderr)
		assert.ErrorIs(t, err, ErrMissingInput)
		assert.Contains(t, stderr.String(), "PASSCHECK_INPUT")
	})

	t.Run("unknown mode", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig(t, map[string]string{"PASSCHECK_INPUT": writeBatch(t, puzzleBatch)})
		err := run(context.Background(), cfg, []string{"-mode", "strict"}, &bytes.Buffer{}, &bytes.Buffer{})
		assert.ErrorIs(t, err, passport.ErrUnknownMode)
	})

	t.Run("invalid log level", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig(t, map[string]string{
			"PASSCHECK_INPUT": writeBatch(t, puzzleBatch),
			"LOG_LEVEL":       "loud",
		})
		err := run(context.Background(), cfg, nil, &bytes.Buffer{}, &bytes.Buffer{})
		assert.Error(t, err)
	})

	t.Run("unknown key aborts the batch", func(t *testing.T) {
		t.Parallel()

		metricsPath := filepath.Join(t.TempDir(), "passcheck.prom")
		cfg := testConfig(t, map[string]string{
			"PASSCHECK_INPUT":  writeBatch(t, "byr:1937\nfoo:1\n"),
			"METRICS_TEXTFILE": metricsPath,
		})
		var stdout, stderr bytes.Buffer

		err := run(context.Background(), cfg, nil, &stdout, &stderr)
		require.Error(t, err)
		assert.ErrorIs(t, err, passport.ErrUnknownKey)
		assert.Empty(t, stdout.String())
		assert.Contains(t, stderr.String(), "failed to parse input")
		assert.Contains(t, stderr.String(), "parse_error.text=foo")

		data, readErr := os.ReadFile(metricsPath)
		require.NoError(t, readErr)
		assert.Contains(t, string(data), `passcheck_parse_failures_total{reason="unknown_key"} 1`)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig(t, map[string]string{
			"PASSCHECK_INPUT": filepath.Join(t.TempDir(), "absent.txt"),
		})
		err := run(context.Background(), cfg, nil, &bytes.Buffer{}, &bytes.Buffer{})
		assert.ErrorIs(t, err, passport.ErrReadInput)
		assert.ErrorIs(t, err, source.ErrFileNotFound)
		assert.False(t, passport.IsParseError(err))
	})

	t.Run("help exits cleanly", func(t *testing.T) {
		t.Parallel()

		var stderr bytes.Buffer
		require.NoError(t, run(context.Background(), testConfig(t, nil), []string{"-h"}, &bytes.Buffer{}, &stderr))
		assert.Contains(t, stderr.String(), "Usage:")
	})
}

func TestFailureReason(t *testing.T) {
	t.Parallel()

	_, err := passport.ReadAll([]string{"byr:x"})
	assert.Equal(t, "unparsable_integer", failureReason(err))

	_, err = passport.ReadAll([]string{"zzz:1"})
	assert.Equal(t, "unknown_key", failureReason(err))

	assert.Equal(t, "read_input", failureReason(passport.ErrReadInput))
	assert.Equal(t, "other", failureReason(assert.AnError))
}
