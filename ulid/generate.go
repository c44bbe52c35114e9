package ulid

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"lukechampine.com/uint128"
)

// Clock reports the current wall-clock time. Readings should not go
// backwards within a process for ordering guarantees to mean anything.
type Clock interface {
	Now() time.Time
}

// RandomSource yields uniformly random 80-bit values. A source that cannot
// produce entropy reports the fault itself; the core has no failure path
// for it.
type RandomSource interface {
	Next80() uint128.Uint128
}

// New returns a ULID for the clock's current millisecond with fresh
// randomness. A clock outside the timestamp range is clamped to it.
func New(c Clock, r RandomSource) ULID {
	ms := ClampMilli(c.Now())
	return compose(ms, r.Next80().And(MaxRandomness))
}

// FromTimestampSeconds builds a ULID from fractional Unix seconds. The value
// is truncated, not rounded, to whole milliseconds. NaN, infinite, negative
// and too-large inputs fail with a *RangeError.
func FromTimestampSeconds(seconds float64, r RandomSource) (ULID, error) {
	ms := math.Floor(seconds * 1000)
	if math.IsNaN(seconds) || ms < 0 || ms > float64(MaxTime) {
		return Zero, &RangeError{
			Field: "timestamp",
			Value: strconv.FormatFloat(seconds, 'f', -1, 64) + "s",
			Max:   strconv.FormatFloat(float64(MaxTime)/1000, 'f', 3, 64) + "s",
		}
	}
	return compose(uint64(ms), r.Next80().And(MaxRandomness)), nil
}

// FromTime builds a ULID from t truncated to the millisecond.
func FromTime(t time.Time, r RandomSource) (ULID, error) {
	ms, err := unixMilli(t)
	if err != nil {
		return Zero, err
	}
	return compose(ms, r.Next80().And(MaxRandomness)), nil
}

var (
	minInstant = time.Unix(0, 0)
	// pastMax is the first instant whose millisecond exceeds MaxTime.
	pastMax = time.UnixMilli(int64(MaxTime) + 1)
)

// unixMilli compares instants before converting, since UnixMilli wraps
// for years far beyond the timestamp range.
func unixMilli(t time.Time) (uint64, error) {
	if t.Before(minInstant) || !t.Before(pastMax) {
		return 0, &RangeError{
			Field: "timestamp",
			Value: t.UTC().Format(time.RFC3339Nano),
			Max:   time.UnixMilli(int64(MaxTime)).UTC().Format(time.RFC3339Nano),
		}
	}
	return uint64(t.UnixMilli()), nil
}

// ClampMilli returns t in Unix milliseconds, clamped to [0, MaxTime].
// Clock readings go through it so an out-of-range clock pins to the
// nearest representable millisecond instead of wrapping.
func ClampMilli(t time.Time) uint64 {
	switch {
	case t.Before(minInstant):
		return 0
	case !t.Before(pastMax):
		return MaxTime
	}
	return uint64(t.UnixMilli())
}

// FromParts composes a ULID from raw field values. ms is masked to 48 bits
// and randomness to 80 bits; higher bits are dropped without error.
func FromParts(ms uint64, randomness uint128.Uint128) ULID {
	return compose(ms&MaxTime, randomness.And(MaxRandomness))
}

// Increment returns the ULID with the same timestamp and randomness plus
// one. It reports false when the randomness field is already 2^80-1; the
// caller has to move on to a new millisecond.
func (id ULID) Increment() (ULID, bool) {
	r := id.Randomness()
	if r.Equals(MaxRandomness) {
		return Zero, false
	}
	next := id
	next.setRandomness(r.Add64(1))
	return next, true
}

// Timestamp returns the timestamp field in fractional Unix seconds.
func (id ULID) Timestamp() float64 {
	return float64(id.Time()) / 1000
}

// UTC returns the timestamp field as a UTC time.
func (id ULID) UTC() time.Time {
	return time.UnixMilli(int64(id.Time())).UTC()
}

// CalendarFields is a UTC calendar date and time of day.
type CalendarFields struct {
	Year        int
	Month       int
	Day         int
	Hour        int
	Minute      int
	Second      int
	Microsecond int
}

func (f CalendarFields) String() string {
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d.%06dZ",
		f.Year, f.Month, f.Day, f.Hour, f.Minute, f.Second, f.Microsecond)
}

// DateTime returns the timestamp field as calendar fields. Microsecond is
// always a whole number of milliseconds.
func (id ULID) DateTime() CalendarFields {
	return calendarFromTime(id.UTC())
}

func calendarFromTime(t time.Time) CalendarFields {
	return CalendarFields{
		Year:        t.Year(),
		Month:       int(t.Month()),
		Day:         t.Day(),
		Hour:        t.Hour(),
		Minute:      t.Minute(),
		Second:      t.Second(),
		Microsecond: t.Nanosecond() / 1000,
	}
}

// Time returns the instant the fields describe, with Microsecond truncated
// to whole milliseconds. Fields that do not name a real date or time of day
// fail with a *CalendarError.
func (f CalendarFields) Time() (time.Time, error) {
	if err := f.validate(); err != nil {
		return time.Time{}, err
	}
	ms := f.Microsecond / 1000
	return time.Date(f.Year, time.Month(f.Month), f.Day,
		f.Hour, f.Minute, f.Second, ms*int(time.Millisecond), time.UTC), nil
}

func (f CalendarFields) validate() error {
	switch {
	case f.Month < 1 || f.Month > 12:
		return &CalendarError{Fields: f, Reason: "month must be in 1..12"}
	case f.Day < 1 || f.Day > daysIn(f.Year, f.Month):
		return &CalendarError{Fields: f, Reason: fmt.Sprintf("day must be in 1..%d", daysIn(f.Year, f.Month))}
	case f.Hour < 0 || f.Hour > 23:
		return &CalendarError{Fields: f, Reason: "hour must be in 0..23"}
	case f.Minute < 0 || f.Minute > 59:
		return &CalendarError{Fields: f, Reason: "minute must be in 0..59"}
	case f.Second < 0 || f.Second > 59:
		return &CalendarError{Fields: f, Reason: "second must be in 0..59"}
	case f.Microsecond < 0 || f.Microsecond > 999999:
		return &CalendarError{Fields: f, Reason: "microsecond must be in 0..999999"}
	}
	return nil
}

// daysIn relies on time.Date normalising day 0 to the last day of the
// previous month.
func daysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FromDateTime builds a ULID from UTC calendar fields. Microsecond is
// truncated to milliseconds (123456µs becomes 123ms). Impossible fields fail
// with a *CalendarError; instants outside the timestamp range fail with a
// *RangeError.
func FromDateTime(f CalendarFields, r RandomSource) (ULID, error) {
	t, err := f.Time()
	if err != nil {
		return Zero, err
	}
	return FromTime(t, r)
}
