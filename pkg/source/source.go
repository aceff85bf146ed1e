package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/dmitrymomot/passcheck/pkg/passport"
)

// Source yields the raw lines of one batch.
type Source interface {
	// Name identifies the source in logs and reports.
	Name() string
	// Lines reads the whole input. Failures wrap passport.ErrReadInput.
	Lines(ctx context.Context) ([]string, error)
}

// StdinPath selects standard input in Local and Open.
const StdinPath = "-"

// LocalSource reads a file from disk, or stdin for StdinPath.
type LocalSource struct {
	path  string
	stdin io.Reader
}

// Local returns a source for path.
func Local(path string) *LocalSource {
	return &LocalSource{path: path, stdin: os.Stdin}
}

func (s *LocalSource) Name() string {
	if s.path == StdinPath {
		return "stdin"
	}
	return s.path
}

func (s *LocalSource) Lines(ctx context.Context) ([]string, error) {
	if s.path == StdinPath {
		return readLines(ctx, s.stdin)
	}

	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w: %s", passport.ErrReadInput, ErrFileNotFound, s.path)
		}
		return nil, fmt.Errorf("%w: %w", passport.ErrReadInput, err)
	}
	defer func() { _ = f.Close() }()

	return readLines(ctx, f)
}

// ReaderSource adapts an io.Reader.
type ReaderSource struct {
	name string
	r    io.Reader
}

// Reader returns a source reading r once.
func Reader(name string, r io.Reader) *ReaderSource {
	return &ReaderSource{name: name, r: r}
}

func (s *ReaderSource) Name() string {
	return s.name
}

func (s *ReaderSource) Lines(ctx context.Context) ([]string, error) {
	return readLines(ctx, s.r)
}

// Open picks a source for uri: s3://bucket/key goes to S3, anything else is
// a local path. The S3 client is only built for s3 URIs.
func Open(ctx context.Context, uri string, cfg S3Config, opts ...S3Option) (Source, error) {
	if uri == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidURI)
	}
	if !strings.HasPrefix(uri, s3Scheme) {
		return Local(uri), nil
	}

	bucket, key, err := ParseS3URI(uri)
	if err != nil {
		return nil, err
	}
	client, err := NewS3Client(ctx, cfg, opts...)
	if err != nil {
		return nil, err
	}
	return S3(client, bucket, key), nil
}

// readLines decodes r as UTF-8, honoring a UTF-8 or UTF-16 byte order mark,
// and splits it into lines.
func readLines(ctx context.Context, r io.Reader) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", passport.ErrReadInput, err)
	}

	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	data, err := io.ReadAll(decoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", passport.ErrReadInput, err)
	}
	return passport.SplitLines(string(data)), nil
}
