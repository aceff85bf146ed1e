// Package passport parses batches of passport records and validates them
// against a fixed field schema.
//
// # Input
//
// A batch is plain text. Records are separated by one or more blank lines;
// inside a record, fields are whitespace separated key:value tokens and may
// span several lines:
//
//	ecl:gry pid:860033327 eyr:2020 hcl:#fffffd
//	byr:1937 iyr:2017 cid:147 hgt:183cm
//
//	iyr:2013 ecl:amb cid:350 eyr:2023 pid:028048884
//	hcl:#cfa07d byr:1929
//
// The key catalog is closed. byr, eyr and iyr carry unsigned integers; ecl,
// hcl, hgt, pid and cid carry text. Any other key, or a year that is not an
// integer, fails the whole read with a *ParseError (wrapped in a *LineError
// by the Builder).
//
// # Reading
//
// Builder is a two-state machine (StateEmpty, StateInRecord) driven by blank
// lines, content lines and end of input. ReadAll, Read and ReadFile wrap it:
//
//	records, err := passport.ReadFile("batch.txt")
//	if err != nil {
//	    if perr, ok := passport.AsParseError(err); ok {
//	        // perr.Err is ErrUnknownKey or ErrUnparsableInteger
//	    }
//	}
//
// # Validation
//
// ValidateSimplified checks that byr, eyr, iyr, ecl, hcl, hgt and pid are
// present. ValidateFull also checks their format and range. Both collect every
// finding into a Violations value instead of stopping at the first:
//
//	if err := rec.ValidateFull(); err != nil {
//	    for _, v := range passport.ExtractViolations(err) {
//	        fmt.Println(v.Kind, v.Key, v.Value)
//	    }
//	}
//
// Violations unwraps to its members, so errors.Is(err, passport.ErrOutOfRange)
// works on the returned error. ValidateAll fans validation out over an
// errgroup for large batches.
package passport
