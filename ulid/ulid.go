package ulid

import (
	"bytes"
	"encoding/binary"

	"lukechampine.com/uint128"
)

// ULID is a 128-bit identifier encoded as 16 bytes big-endian:
// [6 bytes ms timestamp][10 bytes randomness].
type ULID [16]byte

const (
	// TimeBits is the width of the timestamp field.
	TimeBits = 48
	// RandomnessBits is the width of the randomness field.
	RandomnessBits = 80

	// MaxTime is the largest representable timestamp in milliseconds
	// (year 10889).
	MaxTime uint64 = 1<<TimeBits - 1

	// EncodedSize is the length of the text encoding.
	EncodedSize = 26
	// BinarySize is the length of the binary encoding.
	BinarySize = 16
)

var (
	// MaxRandomness is the largest representable randomness value, 2^80-1.
	MaxRandomness = uint128.New(^uint64(0), 1<<(RandomnessBits-64)-1)

	// Zero is the ULID with every bit cleared.
	Zero ULID

	// Max is the ULID with every bit set.
	Max = ULID{
		0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
		0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
	}
)

// Time returns the timestamp field in milliseconds since the Unix epoch.
func (id ULID) Time() uint64 {
	return uint64(id[5]) | uint64(id[4])<<8 |
		uint64(id[3])<<16 | uint64(id[2])<<24 |
		uint64(id[1])<<32 | uint64(id[0])<<40
}

// Randomness returns the low 80 bits.
func (id ULID) Randomness() uint128.Uint128 {
	return uint128.New(
		binary.BigEndian.Uint64(id[8:]),
		uint64(binary.BigEndian.Uint16(id[6:8])),
	)
}

// Uint128 returns the whole identifier as a single unsigned integer.
func (id ULID) Uint128() uint128.Uint128 {
	return uint128.New(
		binary.BigEndian.Uint64(id[8:]),
		binary.BigEndian.Uint64(id[:8]),
	)
}

// FromUint128 is the inverse of Uint128.
func FromUint128(v uint128.Uint128) ULID {
	var id ULID
	binary.BigEndian.PutUint64(id[:8], v.Hi)
	binary.BigEndian.PutUint64(id[8:], v.Lo)
	return id
}

// Compose builds a ULID from its two fields. It rejects values that do not
// fit their field instead of masking them; use FromParts for masking.
func Compose(ms uint64, randomness uint128.Uint128) (ULID, error) {
	if ms > MaxTime {
		return Zero, &RangeError{Field: "timestamp", Value: uint128.From64(ms).String(), Max: uint128.From64(MaxTime).String()}
	}
	if randomness.Cmp(MaxRandomness) > 0 {
		return Zero, &RangeError{Field: "randomness", Value: randomness.String(), Max: MaxRandomness.String()}
	}
	return compose(ms, randomness), nil
}

// compose assumes both fields are already in range.
func compose(ms uint64, randomness uint128.Uint128) ULID {
	var id ULID
	id.setTime(ms)
	id.setRandomness(randomness)
	return id
}

func (id *ULID) setTime(ms uint64) {
	id[0] = byte(ms >> 40)
	id[1] = byte(ms >> 32)
	id[2] = byte(ms >> 24)
	id[3] = byte(ms >> 16)
	id[4] = byte(ms >> 8)
	id[5] = byte(ms)
}

func (id *ULID) setRandomness(r uint128.Uint128) {
	binary.BigEndian.PutUint16(id[6:8], uint16(r.Hi))
	binary.BigEndian.PutUint64(id[8:], r.Lo)
}

// Compare returns -1, 0 or 1. Byte order is numeric order, which is
// timestamp order with ties broken by randomness.
func (id ULID) Compare(other ULID) int {
	return bytes.Compare(id[:], other[:])
}

// IsZero reports whether every bit is cleared.
func (id ULID) IsZero() bool {
	return id == Zero
}
