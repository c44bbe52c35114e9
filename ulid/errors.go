package ulid

import (
	"errors"
	"fmt"
)

var (
	// ErrDataSize is returned when text or binary input has the wrong length.
	ErrDataSize = errors.New("ulid: bad data size when decoding")

	// ErrInvalidCharacter is returned when text input holds a symbol outside
	// the Crockford base-32 alphabet.
	ErrInvalidCharacter = errors.New("ulid: bad data characters when decoding")

	// ErrOverflow is returned when the leading symbol would set bits above
	// the 128th. The largest valid text form is 7ZZZZZZZZZZZZZZZZZZZZZZZZZ.
	ErrOverflow = errors.New("ulid: overflow when decoding")

	// ErrOutOfRange is matched by every *RangeError.
	ErrOutOfRange = errors.New("ulid: value out of range")

	// ErrInvalidCalendar is matched by every *CalendarError.
	ErrInvalidCalendar = errors.New("ulid: invalid calendar fields")

	// ErrScanValue is returned by Scan for unsupported source types.
	ErrScanValue = errors.New("ulid: source value must be a string or byte slice")
)

// DecodeError reports malformed text or binary input.
type DecodeError struct {
	Input string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%v: %q", e.Err, e.Input)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// InvalidUUIDError reports input that is not a UUID in any of the
// textual forms accepted by github.com/google/uuid.
type InvalidUUIDError struct {
	Input string
	Err   error
}

func (e *InvalidUUIDError) Error() string {
	return fmt.Sprintf("ulid: invalid uuid %q: %v", e.Input, e.Err)
}

func (e *InvalidUUIDError) Unwrap() error { return e.Err }

// RangeError reports a numeric input that does not fit its field.
type RangeError struct {
	Field string
	Value string
	Max   string
}

func (e *RangeError) Error() string {
	if e.Max == "" {
		return fmt.Sprintf("ulid: %s %s out of range", e.Field, e.Value)
	}
	return fmt.Sprintf("ulid: %s %s out of range [0, %s]", e.Field, e.Value, e.Max)
}

func (e *RangeError) Is(target error) bool { return target == ErrOutOfRange }

// CalendarError reports calendar fields that do not name a real instant.
type CalendarError struct {
	Fields CalendarFields
	Reason string
}

func (e *CalendarError) Error() string {
	return fmt.Sprintf("ulid: invalid datetime %s: %s", e.Fields, e.Reason)
}

func (e *CalendarError) Is(target error) bool { return target == ErrInvalidCalendar }
