package passport

import (
	"errors"
	"fmt"
	"strings"
)

// ViolationKind classifies a validation finding.
type ViolationKind string

const (
	ViolationMissingField  ViolationKind = "missing_field"
	ViolationOutOfRange    ViolationKind = "out_of_range"
	ViolationInvalidFormat ViolationKind = "invalid_format"
)

// ViolationKinds lists every kind in a stable order.
var ViolationKinds = []ViolationKind{
	ViolationMissingField,
	ViolationOutOfRange,
	ViolationInvalidFormat,
}

// Violation is a single validation finding. Value holds the observed text
// and is empty for a missing field.
type Violation struct {
	Kind  ViolationKind
	Key   Key
	Value string
}

// MissingField reports an absent required key.
func MissingField(key Key) Violation {
	return Violation{Kind: ViolationMissingField, Key: key}
}

// OutOfRange reports a well-formed value outside its allowed range.
func OutOfRange(key Key, value string) Violation {
	return Violation{Kind: ViolationOutOfRange, Key: key, Value: value}
}

// InvalidFormat reports a value with the wrong shape.
func InvalidFormat(key Key, value string) Violation {
	return Violation{Kind: ViolationInvalidFormat, Key: key, Value: value}
}

func (v Violation) Error() string {
	if v.Kind == ViolationMissingField {
		return fmt.Sprintf("%s: %v", v.Key, ErrMissingField)
	}
	return fmt.Sprintf("%s: %v %q", v.Key, v.sentinel(), v.Value)
}

// Is matches ErrMissingField, ErrOutOfRange and ErrInvalidFormat.
func (v Violation) Is(target error) bool {
	return target == v.sentinel()
}

func (v Violation) sentinel() error {
	switch v.Kind {
	case ViolationMissingField:
		return ErrMissingField
	case ViolationOutOfRange:
		return ErrOutOfRange
	case ViolationInvalidFormat:
		return ErrInvalidFormat
	default:
		return nil
	}
}

// Violations is the complete list of findings for one record.
type Violations []Violation

func (vs Violations) Error() string {
	if len(vs) == 0 {
		return "passport invalid"
	}

	parts := make([]string, 0, len(vs))
	for _, v := range vs {
		parts = append(parts, v.Error())
	}
	return "passport invalid: " + strings.Join(parts, "; ")
}

// Unwrap exposes each violation to errors.Is and errors.As.
func (vs Violations) Unwrap() []error {
	errs := make([]error, 0, len(vs))
	for _, v := range vs {
		errs = append(errs, v)
	}
	return errs
}

// Has reports whether any violation concerns key.
func (vs Violations) Has(key Key) bool {
	for _, v := range vs {
		if v.Key == key {
			return true
		}
	}
	return false
}

// ForKey returns the violations concerning key.
func (vs Violations) ForKey(key Key) Violations {
	var out Violations
	for _, v := range vs {
		if v.Key == key {
			out = append(out, v)
		}
	}
	return out
}

// Keys returns the distinct keys with violations, in first-seen order.
func (vs Violations) Keys() []Key {
	var keys []Key
	seen := make(map[Key]bool)
	for _, v := range vs {
		if !seen[v.Key] {
			keys = append(keys, v.Key)
			seen[v.Key] = true
		}
	}
	return keys
}

// Count returns the number of violations of the given kind.
func (vs Violations) Count(kind ViolationKind) int {
	n := 0
	for _, v := range vs {
		if v.Kind == kind {
			n++
		}
	}
	return n
}

// ExtractViolations returns the Violations carried by err, or nil.
func ExtractViolations(err error) Violations {
	if err == nil {
		return nil
	}

	var vs Violations
	if errors.As(err, &vs) {
		return vs
	}
	return nil
}

// IsViolation reports whether err carries validation findings.
func IsViolation(err error) bool {
	if err == nil {
		return false
	}

	var vs Violations
	return errors.As(err, &vs)
}
