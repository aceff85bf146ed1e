package passport

import (
	"slices"
	"strings"
)

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithRecordHook registers a callback invoked each time a record is closed.
// index is the zero-based position of the record in the output.
func WithRecordHook(fn func(index int, r Record)) BuilderOption {
	return func(b *Builder) {
		if fn != nil {
			b.onRecord = fn
		}
	}
}

// Builder groups raw lines into records. Blank lines close the open record;
// any other line is parsed into it. The zero value is ready to use.
// Builder is not safe for concurrent use.
type Builder struct {
	table    transitionTable
	state    State
	current  Record
	records  []Record
	line     int
	onRecord func(int, Record)
}

// NewBuilder returns a builder in StateEmpty.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		table: newTransitionTable(),
		state: StateEmpty,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// State returns the current builder state.
func (b *Builder) State() State {
	if b.state == "" {
		return StateEmpty
	}
	return b.state
}

// Line returns the number of lines fed so far.
func (b *Builder) Line() int {
	return b.line
}

// Records returns a copy of the records closed so far, in input order.
func (b *Builder) Records() []Record {
	return slices.Clone(b.records)
}

// Feed consumes one raw line. A parse failure is returned as a *LineError
// wrapping the *ParseError; the caller must stop feeding the batch.
func (b *Builder) Feed(line string) error {
	b.line++

	trimmed := strings.TrimSpace(line)
	event := EventContentLine
	if trimmed == "" {
		event = EventBlankLine
	}

	if err := b.fire(event, trimmed); err != nil {
		return &LineError{Line: b.line, Err: err}
	}
	return nil
}

// Close signals end of input and emits the open record, if any.
func (b *Builder) Close() error {
	return b.fire(EventEOF, "")
}

func (b *Builder) fire(event Event, line string) error {
	if b.table == nil {
		b.table = newTransitionTable()
		b.state = StateEmpty
	}
	tr := b.table[b.state][event]

	for _, act := range tr.actions {
		if err := act(b, line); err != nil {
			return err
		}
	}

	b.state = tr.to
	return nil
}
