package ulid

import (
	"database/sql/driver"
	"encoding/hex"

	"lukechampine.com/uint128"
)

// Encoding is the Crockford base-32 alphabet. It leaves out I, L, O and U.
const Encoding = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

const invalidSymbol = 0xFF

// dec maps ASCII to symbol values. Lowercase letters decode like their
// uppercase forms; everything else is invalidSymbol.
var dec = func() [256]byte {
	var t [256]byte
	for i := range t {
		t[i] = invalidSymbol
	}
	for i := 0; i < len(Encoding); i++ {
		c := Encoding[i]
		t[c] = byte(i)
		if c >= 'A' && c <= 'Z' {
			t[c+'a'-'A'] = byte(i)
		}
	}
	return t
}()

// String returns the 26-character uppercase text form.
func (id ULID) String() string {
	var dst [EncodedSize]byte
	id.encode(dst[:])
	return string(dst[:])
}

// encode writes the text form into dst, which must hold EncodedSize bytes.
func (id ULID) encode(dst []byte) {
	v := id.Uint128()
	for i := EncodedSize - 1; i >= 0; i-- {
		dst[i] = Encoding[v.Lo&0x1F]
		v = v.Rsh(5)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (id ULID) MarshalText() ([]byte, error) {
	dst := make([]byte, EncodedSize)
	id.encode(dst)
	return dst, nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ULID) UnmarshalText(text []byte) error {
	parsed, err := parse(text)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Parse decodes the text form. It is case-insensitive and fails with a
// *DecodeError on a wrong length, a symbol outside the alphabet, or a
// leading symbol above 7.
func Parse(s string) (ULID, error) {
	return parse([]byte(s))
}

// MustParse is like Parse but panics on malformed input.
func MustParse(s string) ULID {
	id, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return id
}

func parse(s []byte) (ULID, error) {
	if len(s) != EncodedSize {
		return Zero, &DecodeError{Input: string(s), Err: ErrDataSize}
	}
	var v uint128.Uint128
	for i, c := range s {
		d := dec[c]
		if d == invalidSymbol {
			return Zero, &DecodeError{Input: string(s), Err: ErrInvalidCharacter}
		}
		// 26 symbols carry 130 bits; the top two must be clear.
		if i == 0 && d > 7 {
			return Zero, &DecodeError{Input: string(s), Err: ErrOverflow}
		}
		v = v.Lsh(5).Or64(uint64(d))
	}
	return FromUint128(v), nil
}

// Bytes returns a copy of the 16-byte big-endian form.
func (id ULID) Bytes() []byte {
	b := make([]byte, BinarySize)
	copy(b, id[:])
	return b
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (id ULID) MarshalBinary() ([]byte, error) {
	return id.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (id *ULID) UnmarshalBinary(data []byte) error {
	parsed, err := FromBytes(data)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// FromBytes decodes the binary form. Every 16-byte sequence is a valid
// ULID; other lengths fail with a *DecodeError.
func FromBytes(b []byte) (ULID, error) {
	if len(b) != BinarySize {
		return Zero, &DecodeError{Input: hex.EncodeToString(b), Err: ErrDataSize}
	}
	var id ULID
	copy(id[:], b)
	return id, nil
}

// FromArray is the total form of FromBytes.
func FromArray(b [BinarySize]byte) ULID {
	return ULID(b)
}

// Scan implements sql.Scanner. Strings are read as the text form and byte
// slices as the binary form, except that a 26-byte slice is read as text.
func (id *ULID) Scan(src any) error {
	switch x := src.(type) {
	case nil:
		*id = Zero
		return nil
	case string:
		return id.UnmarshalText([]byte(x))
	case []byte:
		if len(x) == EncodedSize {
			return id.UnmarshalText(x)
		}
		return id.UnmarshalBinary(x)
	}
	return ErrScanValue
}

// Value implements driver.Valuer and stores the text form.
func (id ULID) Value() (driver.Value, error) {
	return id.String(), nil
}
