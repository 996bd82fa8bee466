package model

import (
	"errors"
	"regexp"
	"strings"
)

var (
	yearPattern  = regexp.MustCompile(`^\d{4}$`)
	digitPattern = regexp.MustCompile(`^\d+$`)
)

// Validation errors returned by Validate.
var (
	ErrEmptyValue   = errors.New("a value must be entered")
	ErrInvalidYear  = errors.New("a 4 digit year must be entered")
	ErrNotDigits    = errors.New("non digit character was entered")
	ErrUnknownGenre = errors.New("unknown genre")
)

// Validate checks a user-entered value for f.
//
// When required is false an empty value is accepted (used for Common Tags,
// where empty means "ask per file"); non-empty values are always checked.
func Validate(f Field, value string, required bool) error {
	if value == "" {
		if required {
			return ErrEmptyValue
		}
		return nil
	}

	switch f {
	case FieldYear:
		if !yearPattern.MatchString(value) {
			return ErrInvalidYear
		}
	case FieldTrackNum:
		if !digitPattern.MatchString(value) {
			return ErrNotDigits
		}
	case FieldGenre:
		if _, ok := LookupGenre(value); !ok {
			return ErrUnknownGenre
		}
	}
	return nil
}

// Normalize returns value in its canonical form for f.
//
// Genres are mapped to the spelling of the genre list; all values have
// surrounding whitespace removed.
func Normalize(f Field, value string) string {
	value = strings.TrimSpace(value)
	if f == FieldGenre {
		if g, ok := LookupGenre(value); ok {
			return g
		}
	}
	return value
}
