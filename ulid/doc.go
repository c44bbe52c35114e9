// Package ulid implements Universally Unique Lexicographically Sortable
// Identifiers.
//
// # Format
//
// A ULID is 128 bits stored as 16 bytes big-endian:
//
//	 0                   1                   2                   3
//	 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	|                      32_bit_uint_time_high                    |
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	|     16_bit_uint_time_low      |       16_bit_uint_random      |
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	|                       32_bit_uint_random                      |
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	|                       32_bit_uint_random                      |
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//
// The high 48 bits are milliseconds since the Unix epoch and the low 80 bits
// are randomness. The text form is 26 Crockford base-32 symbols, most
// significant first. Byte order, numeric order and text order all agree, and
// all three sort by timestamp first.
//
// # Construction
//
// New draws the current time from a Clock and 80 bits from a RandomSource.
// FromTimestampSeconds, FromTime and FromDateTime validate their input and
// truncate it to millisecond precision. FromParts masks its input to the
// field widths and never fails. Compose is the validating form of FromParts.
//
// # Monotonic sequences
//
// Increment returns the next ULID in the same millisecond. It reports false
// once the randomness field is exhausted, at which point the caller has to
// move to a new millisecond and fresh randomness.
//
// The package holds no state. ULID values are immutable and safe to share
// between goroutines.
package ulid
