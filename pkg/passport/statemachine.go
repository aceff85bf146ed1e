package passport

// State is a state of the record builder.
type State string

const (
	// StateEmpty means no record is open.
	StateEmpty State = "empty"
	// StateInRecord means a record is accumulating fields.
	StateInRecord State = "in_record"
)

func (s State) Name() string {
	return string(s)
}

// Event is an input that drives the record builder.
type Event string

const (
	EventBlankLine   Event = "blank_line"
	EventContentLine Event = "content_line"
	EventEOF         Event = "eof"
)

func (e Event) Name() string {
	return string(e)
}

// action runs during a transition. Returning an error aborts the transition
// and leaves the builder in its previous state.
type action func(b *Builder, line string) error

type transition struct {
	to      State
	actions []action
}

// transitionTable is keyed by [from][event]. Every state handles every event,
// so the machine can be re-entered any number of times across the input.
type transitionTable map[State]map[Event]transition

func newTransitionTable() transitionTable {
	return transitionTable{
		StateEmpty: {
			EventBlankLine:   {to: StateEmpty},
			EventContentLine: {to: StateInRecord, actions: []action{startRecord, processLine}},
			EventEOF:         {to: StateEmpty},
		},
		StateInRecord: {
			EventBlankLine:   {to: StateEmpty, actions: []action{emitRecord}},
			EventContentLine: {to: StateInRecord, actions: []action{processLine}},
			EventEOF:         {to: StateEmpty, actions: []action{emitRecord}},
		},
	}
}

func startRecord(b *Builder, _ string) error {
	b.current = Record{}
	return nil
}

func processLine(b *Builder, line string) error {
	next, err := b.current.Process(line)
	if err != nil {
		return err
	}
	b.current = next
	return nil
}

func emitRecord(b *Builder, _ string) error {
	b.records = append(b.records, b.current)
	if b.onRecord != nil {
		b.onRecord(len(b.records)-1, b.current)
	}
	b.current = Record{}
	return nil
}
