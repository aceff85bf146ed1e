package passport

import (
	"errors"
	"io"
	"os"
	"strings"
)

// ReadAll groups lines into records and returns them in input order.
// Empty or all-blank input yields an empty slice and no error. The first
// parse error aborts the read and no records are returned.
func ReadAll(lines []string, opts ...BuilderOption) ([]Record, error) {
	b := NewBuilder(opts...)
	for _, line := range lines {
		if err := b.Feed(line); err != nil {
			return nil, err
		}
	}
	if err := b.Close(); err != nil {
		return nil, err
	}

	records := b.Records()
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

// Read consumes r fully and parses it with ReadAll. Read failures wrap
// ErrReadInput; parse failures keep their *LineError / *ParseError form.
func Read(r io.Reader, opts ...BuilderOption) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Join(ErrReadInput, err)
	}
	return ReadAll(SplitLines(string(data)), opts...)
}

// ReadFile opens path and parses it with Read.
func ReadFile(path string, opts ...BuilderOption) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Join(ErrReadInput, err)
	}
	defer func() { _ = f.Close() }()

	return Read(f, opts...)
}

// SplitLines splits content on '\n', dropping a trailing '\r' from each line.
func SplitLines(content string) []string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
