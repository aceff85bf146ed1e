package passport

import (
	"fmt"
	"strings"
)

// Mode selects how strictly a record is validated.
type Mode string

const (
	// ModeSimplified checks required-key presence only.
	ModeSimplified Mode = "simplified"
	// ModeFull checks presence plus per-field format and range rules.
	ModeFull Mode = "full"
)

// ParseMode maps a case-insensitive name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeSimplified, ModeFull:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

func (m Mode) String() string {
	return string(m)
}

// ValidateSimplified reports a MissingField violation for every absent
// required key. It returns nil or Violations.
func (r Record) ValidateSimplified() error {
	rules := make([]rule, 0, len(RequiredKeys))
	for _, key := range RequiredKeys {
		rules = append(rules, present(r, key))
	}
	return apply(rules...)
}

// ValidateFull checks every required key for presence and, when present,
// for format and range. All findings are returned, ordered by RequiredKeys.
func (r Record) ValidateFull() error {
	rules := make([]rule, 0, len(RequiredKeys)+1)
	for _, key := range RequiredKeys {
		f, ok := r.Get(key)
		if !ok {
			rules = append(rules, present(r, key))
			continue
		}
		rules = append(rules, fieldRules(key, f)...)
	}
	return apply(rules...)
}

// Validate dispatches to ValidateSimplified or ValidateFull.
func (r Record) Validate(mode Mode) error {
	switch mode {
	case ModeSimplified:
		return r.ValidateSimplified()
	case ModeFull:
		return r.ValidateFull()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}
