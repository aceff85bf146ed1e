package passport

import "strconv"

// Kind tags the variant held by a Field.
type Kind uint8

const (
	KindNumeric Kind = iota + 1
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Field is a passport value: either an unsigned integer or verbatim text.
type Field struct {
	Kind Kind
	Num  uint32
	Text string
}

// Numeric returns a numeric field.
func Numeric(v uint32) Field {
	return Field{Kind: KindNumeric, Num: v}
}

// Text returns a text field.
func Text(s string) Field {
	return Field{Kind: KindText, Text: s}
}

// String renders the value the way it appeared in the input.
func (f Field) String() string {
	if f.Kind == KindNumeric {
		return strconv.FormatUint(uint64(f.Num), 10)
	}
	return f.Text
}

// Key identifies a passport field.
type Key string

const (
	KeyBirthYear      Key = "byr"
	KeyExpirationYear Key = "eyr"
	KeyIssueYear      Key = "iyr"
	KeyEyeColor       Key = "ecl"
	KeyHairColor      Key = "hcl"
	KeyHeight         Key = "hgt"
	KeyPassportID     Key = "pid"
	KeyCountryID      Key = "cid"
)

// catalog is the closed set of recognized keys and the value kind each one carries.
var catalog = map[Key]Kind{
	KeyBirthYear:      KindNumeric,
	KeyExpirationYear: KindNumeric,
	KeyIssueYear:      KindNumeric,
	KeyEyeColor:       KindText,
	KeyHairColor:      KindText,
	KeyHeight:         KindText,
	KeyPassportID:     KindText,
	KeyCountryID:      KindText,
}

// RequiredKeys lists the keys checked by validation, in report order.
// KeyCountryID is optional and never checked.
var RequiredKeys = []Key{
	KeyBirthYear,
	KeyExpirationYear,
	KeyIssueYear,
	KeyEyeColor,
	KeyHairColor,
	KeyHeight,
	KeyPassportID,
}

// Kind reports the value kind for k and whether k is a recognized key.
func (k Key) Kind() (Kind, bool) {
	kind, ok := catalog[k]
	return kind, ok
}

func (k Key) String() string {
	return string(k)
}
