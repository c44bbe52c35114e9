package endpoints

import (
	"encoding/hex"

	"github.com/aatuh/ulid-toolkit/ulid"
)

const datetimeLayout = "2006-01-02T15:04:05.000Z07:00"

// View is the JSON projection of a ULID returned by every endpoint.
type View struct {
	ULID        string  `json:"ulid"`
	Bytes       string  `json:"bytes"`
	UUID        string  `json:"uuid"`
	Timestamp   float64 `json:"timestamp"`
	TimestampMs uint64  `json:"timestamp_ms"`
	Randomness  string  `json:"randomness"`
	Datetime    string  `json:"datetime"`
}

// NewView projects id. Randomness is a decimal string because 80 bits do
// not fit a JSON number.
func NewView(id ulid.ULID) View {
	return View{
		ULID:        id.String(),
		Bytes:       hex.EncodeToString(id.Bytes()),
		UUID:        id.UUID().String(),
		Timestamp:   id.Timestamp(),
		TimestampMs: id.Time(),
		Randomness:  id.Randomness().String(),
		Datetime:    id.UTC().Format(datetimeLayout),
	}
}

// ListResponse wraps generated batches.
type ListResponse struct {
	ULIDs []View `json:"ulids"`
}

type FromBytesRequest struct {
	Hex string `json:"hex" validate:"required,len=32,hexadecimal"`
}

type FromUUIDRequest struct {
	UUID string `json:"uuid" validate:"required"`
}

type FromTimestampRequest struct {
	Seconds *float64 `json:"seconds" validate:"required"`
}

// FromDatetimeRequest holds UTC calendar fields. 10889 is the last year
// with representable instants. Cross-field checks such as February 30 and
// instants after the last millisecond of 10889-08-02 are left to the ulid
// package.
type FromDatetimeRequest struct {
	Year        int `json:"year" validate:"gte=1,lte=10889"`
	Month       int `json:"month" validate:"gte=1,lte=12"`
	Day         int `json:"day" validate:"gte=1,lte=31"`
	Hour        int `json:"hour" validate:"gte=0,lte=23"`
	Minute      int `json:"minute" validate:"gte=0,lte=59"`
	Second      int `json:"second" validate:"gte=0,lte=59"`
	Microsecond int `json:"microsecond" validate:"gte=0,lte=999999"`
}

func (r FromDatetimeRequest) fields() ulid.CalendarFields {
	return ulid.CalendarFields{
		Year:        r.Year,
		Month:       r.Month,
		Day:         r.Day,
		Hour:        r.Hour,
		Minute:      r.Minute,
		Second:      r.Second,
		Microsecond: r.Microsecond,
	}
}

// FromPartsRequest takes randomness as a decimal string. Bits above the
// 80-bit field are masked off, as are timestamp bits above 48.
type FromPartsRequest struct {
	TimestampMs uint64 `json:"timestamp_ms"`
	Randomness  string `json:"randomness" validate:"required,numeric"`
}
