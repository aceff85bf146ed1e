package passport

import (
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Record is one passport: a set of catalog keys mapped to typed values.
// The zero value is an empty record. Records are values; Process returns
// a new record and never touches the receiver.
type Record struct {
	fields map[Key]Field
}

// Get returns the field stored under key.
func (r Record) Get(key Key) (Field, bool) {
	f, ok := r.fields[key]
	return f, ok
}

// Has reports whether key is present.
func (r Record) Has(key Key) bool {
	_, ok := r.fields[key]
	return ok
}

// Len returns the number of fields.
func (r Record) Len() int {
	return len(r.fields)
}

// Keys returns the present keys in lexical order.
func (r Record) Keys() []Key {
	return slices.Sorted(maps.Keys(r.fields))
}

// Fields returns a copy of the field map.
func (r Record) Fields() map[Key]Field {
	return maps.Clone(r.fields)
}

// Process parses the whitespace separated key:value tokens of line into a
// copy of r. A repeated key overwrites the earlier value. The first token
// that fails stops processing and the error is a *ParseError.
func (r Record) Process(line string) (Record, error) {
	next := Record{fields: make(map[Key]Field, len(r.fields)+8)}
	maps.Copy(next.fields, r.fields)

	for _, token := range strings.Fields(line) {
		rawKey, value, _ := strings.Cut(token, ":")
		key := Key(rawKey)

		kind, ok := key.Kind()
		if !ok {
			return r, newUnknownKeyError(rawKey)
		}

		switch kind {
		case KindNumeric:
			// A single leading plus sign is accepted, as in "byr:+1937".
			n, err := strconv.ParseUint(strings.TrimPrefix(value, "+"), 10, 32)
			if err != nil {
				return r, newUnparsableIntegerError(value)
			}
			next.fields[key] = Numeric(uint32(n))
		default:
			next.fields[key] = Text(value)
		}
	}

	return next, nil
}
