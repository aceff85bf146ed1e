package passport

import (
	"cmp"
	"regexp"
	"slices"
	"strconv"
)

var (
	heightPattern     = regexp.MustCompile(`^(\d+)(\D+)$`)
	hairColorPattern  = regexp.MustCompile(`^#[0-9a-f]{6}$`)
	passportIDPattern = regexp.MustCompile(`^\d{9}$`)

	eyeColors   = []string{"amb", "blu", "brn", "gry", "grn", "hzl", "oth"}
	heightUnits = []string{"cm", "in"}
)

// Year and height bounds, inclusive.
const (
	minBirthYear      = 1920
	maxBirthYear      = 2002
	minIssueYear      = 2010
	maxIssueYear      = 2020
	minExpirationYear = 2020
	maxExpirationYear = 2030

	minHeightCM = 150
	maxHeightCM = 193
	minHeightIn = 59
	maxHeightIn = 76
)

// rule pairs a check with the violation reported when it fails.
type rule struct {
	check     func() bool
	violation Violation
}

// apply runs every rule and collects all failures; it never stops early.
func apply(rules ...rule) error {
	var vs Violations
	for _, r := range rules {
		if !r.check() {
			vs = append(vs, r.violation)
		}
	}
	if len(vs) == 0 {
		return nil
	}
	return vs
}

func present(r Record, key Key) rule {
	return rule{
		check:     func() bool { return r.Has(key) },
		violation: MissingField(key),
	}
}

// between checks min <= value <= max and reports observed on failure.
func between[T cmp.Ordered](key Key, observed string, value, min, max T) rule {
	return rule{
		check:     func() bool { return value >= min && value <= max },
		violation: OutOfRange(key, observed),
	}
}

func matches(key Key, value string, re *regexp.Regexp) rule {
	return rule{
		check:     func() bool { return re.MatchString(value) },
		violation: InvalidFormat(key, value),
	}
}

// oneOf checks candidate against allowed and reports observed on failure.
func oneOf(key Key, observed, candidate string, allowed []string) rule {
	return rule{
		check:     func() bool { return slices.Contains(allowed, candidate) },
		violation: InvalidFormat(key, observed),
	}
}

func reject(v Violation) rule {
	return rule{
		check:     func() bool { return false },
		violation: v,
	}
}

// fieldRules returns the format and range rules for a present field.
// Combinations that cannot come out of Process yield no rules.
func fieldRules(key Key, f Field) []rule {
	switch {
	case key == KeyBirthYear && f.Kind == KindNumeric:
		return []rule{between(key, f.String(), f.Num, minBirthYear, maxBirthYear)}
	case key == KeyIssueYear && f.Kind == KindNumeric:
		return []rule{between(key, f.String(), f.Num, minIssueYear, maxIssueYear)}
	case key == KeyExpirationYear && f.Kind == KindNumeric:
		return []rule{between(key, f.String(), f.Num, minExpirationYear, maxExpirationYear)}
	case key == KeyHeight && f.Kind == KindText:
		return heightRules(key, f.Text)
	case key == KeyHairColor && f.Kind == KindText:
		return []rule{matches(key, f.Text, hairColorPattern)}
	case key == KeyEyeColor && f.Kind == KindText:
		return []rule{oneOf(key, f.Text, f.Text, eyeColors)}
	case key == KeyPassportID && f.Kind == KindText:
		return []rule{matches(key, f.Text, passportIDPattern)}
	default:
		return nil
	}
}

// heightRules checks the unit and the range independently. An unknown unit
// gets a format violation only; the range applies to cm and in.
func heightRules(key Key, value string) []rule {
	m := heightPattern.FindStringSubmatch(value)
	if m == nil {
		return []rule{reject(InvalidFormat(key, value))}
	}
	measure, unit := m[1], m[2]

	rules := []rule{oneOf(key, value, unit, heightUnits)}

	n, err := strconv.ParseUint(measure, 10, 32)
	if err != nil {
		return append(rules, reject(InvalidFormat(key, value)))
	}

	switch unit {
	case "cm":
		rules = append(rules, between(key, value, n, minHeightCM, maxHeightCM))
	case "in":
		rules = append(rules, between(key, value, n, minHeightIn, maxHeightIn))
	}
	return rules
}
