package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/dmitrymomot/passcheck/pkg/source"
)

var (
	ErrMissingInput = errors.New("no input given, set PASSCHECK_INPUT or pass -input")
	errHelp         = errors.New("help requested")
)

// Config is read from the environment; flags override it.
type Config struct {
	Input   string `env:"PASSCHECK_INPUT"`
	Mode    string `env:"PASSCHECK_MODE" envDefault:"full"`
	Workers int    `env:"PASSCHECK_WORKERS" envDefault:"4"`
	Report  string `env:"PASSCHECK_REPORT" envDefault:"text"`
	Verbose bool   `env:"PASSCHECK_VERBOSE" envDefault:"false"`

	AppEnv   string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	MetricsTextfile string `env:"METRICS_TEXTFILE"`
	PGConnURL       string `env:"PG_CONN_URL"` // reports are persisted only when set

	S3 source.S3Config
}

// applyFlags overrides cfg with command line flags. A positional argument is
// taken as the input when -input is absent.
func applyFlags(cfg *Config, args []string, output io.Writer) error {
	fs := flag.NewFlagSet("passcheck", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprint(output, `
passcheck - validates batches of passport records.

Usage:
  passcheck [options] [INPUT]

Arguments:
  INPUT
    Path to a batch file, "-" for stdin, or s3://bucket/key.

Options:
`)
		fs.PrintDefaults()
	}

	fs.StringVar(&cfg.Input, "input", cfg.Input, "Batch to read: file path, \"-\" for stdin, or s3://bucket/key.")
	fs.StringVar(&cfg.Mode, "mode", cfg.Mode, "Validation mode: 'simplified' or 'full'.")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Number of concurrent validation workers.")
	fs.StringVar(&cfg.Report, "report", cfg.Report, "Report format: 'text', 'json' or 'yaml'.")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Include per-record results in the report.")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Logging level: 'debug', 'info', 'warn', 'error'.")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return errHelp
		}
		return err
	}

	if cfg.Input == "" && fs.NArg() > 0 {
		cfg.Input = fs.Arg(0)
	}
	if cfg.Input == "" {
		return ErrMissingInput
	}
	return nil
}
