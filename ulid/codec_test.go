package ulid

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	oklog "github.com/oklog/ulid/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/uint128"
)

const knownText = "01D39ZY06FGSCTVN4T2V9PKHFZ"

func TestParseKnownVector(t *testing.T) {
	id, err := Parse(knownText)
	require.NoError(t, err)

	assert.Equal(t, "0168d3ff00cf8659add49a16d369c5ff", hex.EncodeToString(id.Bytes()))
	assert.Equal(t, "634451394732979059803647", id.Randomness().String())
	assert.Equal(t, uint64(1549744931023), id.Time())
	assert.Equal(t, knownText, id.String())
}

func TestScenarioNewYear2021(t *testing.T) {
	id := FromParts(1609459200000, uint128.Zero)
	text := id.String()
	assert.Equal(t, "01ETXKWW000000000000000000", text)

	back, err := Parse(text)
	require.NoError(t, err)
	assert.Equal(t, uint64(1609459200000), back.Time())
	assert.True(t, back.Randomness().IsZero())
}

func TestRoundTripAndWidth(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	for i := 0; i < 1000; i++ {
		id := randomULID(rng)

		text := id.String()
		require.Len(t, text, EncodedSize)
		parsed, err := Parse(text)
		require.NoError(t, err)
		assert.Equal(t, id, parsed)

		b := id.Bytes()
		require.Len(t, b, BinarySize)
		decoded, err := FromBytes(b)
		require.NoError(t, err)
		assert.Equal(t, id, decoded)
	}
}

func TestOrderEquivalence(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	for i := 0; i < 1000; i++ {
		a, b := randomULID(rng), randomULID(rng)
		if i%3 == 0 {
			// same millisecond, ordering decided by randomness
			b = FromParts(a.Time(), b.Randomness())
		}
		want := a.Uint128().Cmp(b.Uint128())
		assert.Equal(t, want, strings.Compare(a.String(), b.String()))
		assert.Equal(t, want, bytes.Compare(a.Bytes(), b.Bytes()))
		if a.Time() < b.Time() {
			assert.Less(t, a.String(), b.String())
		}
	}
}

func TestStringMatchesOklog(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 8))
	for i := 0; i < 200; i++ {
		id := randomULID(rng)
		id[0] &= 0x7F

		ref := oklog.ULID(id)
		assert.Equal(t, ref.String(), id.String())

		parsed, err := oklog.ParseStrict(id.String())
		require.NoError(t, err)
		assert.Equal(t, ref, parsed)
	}
}

func TestParseLowercase(t *testing.T) {
	id, err := Parse(strings.ToLower(knownText))
	require.NoError(t, err)
	assert.Equal(t, knownText, id.String())
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"short", "short", ErrDataSize},
		{"empty", "", ErrDataSize},
		{"too long", knownText + "0", ErrDataSize},
		{"contains U", "01D39ZY06FGSCTVN4T2V9PKHFU", ErrInvalidCharacter},
		{"contains I", "01D39ZY06FGSCTVN4T2V9PKHFI", ErrInvalidCharacter},
		{"contains L", "01D39ZY06FGSCTVN4T2V9PKHFL", ErrInvalidCharacter},
		{"contains O", "01D39ZY06FGSCTVN4T2V9PKHFO", ErrInvalidCharacter},
		{"punctuation", "01D39ZY06FGSCTVN4T2V9PKH-Z", ErrInvalidCharacter},
		{"leading 8 overflows", "8ZZZZZZZZZZZZZZZZZZZZZZZZZ", ErrOverflow},
		{"leading Z overflows", "Z0000000000000000000000000", ErrOverflow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			var derr *DecodeError
			require.ErrorAs(t, err, &derr)
			assert.Equal(t, tt.input, derr.Input)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestParseLargestValue(t *testing.T) {
	id, err := Parse("7ZZZZZZZZZZZZZZZZZZZZZZZZZ")
	require.NoError(t, err)
	assert.Equal(t, Max, id)
	assert.Equal(t, "7ZZZZZZZZZZZZZZZZZZZZZZZZZ", Max.String())
	assert.Equal(t, "00000000000000000000000000", Zero.String())
}

func TestMustParsePanics(t *testing.T) {
	assert.Panics(t, func() { MustParse("q") })
	assert.Equal(t, knownText, MustParse(knownText).String())
}

func TestFromBytesSize(t *testing.T) {
	_, err := FromBytes(make([]byte, 15))
	assert.ErrorIs(t, err, ErrDataSize)

	var arr [BinarySize]byte
	arr[15] = 1
	assert.Equal(t, uint64(1), FromArray(arr).Randomness().Lo)
}

func TestBytesIsCopy(t *testing.T) {
	id := MustParse(knownText)
	b := id.Bytes()
	b[0] = 0xFF
	assert.Equal(t, knownText, id.String())
}

func TestJSONUsesText(t *testing.T) {
	type doc struct {
		ID ULID `json:"id"`
	}
	out, err := json.Marshal(doc{ID: MustParse(knownText)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"`+knownText+`"}`, string(out))

	var in doc
	require.NoError(t, json.Unmarshal(out, &in))
	assert.Equal(t, knownText, in.ID.String())

	err = json.Unmarshal([]byte(`{"id":"nope"}`), &in)
	assert.ErrorIs(t, err, ErrDataSize)
}

func TestBinaryMarshaling(t *testing.T) {
	id := MustParse(knownText)
	b, err := id.MarshalBinary()
	require.NoError(t, err)

	var back ULID
	require.NoError(t, back.UnmarshalBinary(b))
	assert.Equal(t, id, back)
	assert.Error(t, back.UnmarshalBinary(b[:3]))
}

func TestScanAndValue(t *testing.T) {
	id := MustParse(knownText)

	v, err := id.Value()
	require.NoError(t, err)
	assert.Equal(t, knownText, v)

	var got ULID
	require.NoError(t, got.Scan(knownText))
	assert.Equal(t, id, got)

	got = Zero
	require.NoError(t, got.Scan(id.Bytes()))
	assert.Equal(t, id, got)

	got = Zero
	require.NoError(t, got.Scan([]byte(knownText)))
	assert.Equal(t, id, got)

	require.NoError(t, got.Scan(nil))
	assert.True(t, got.IsZero())

	assert.ErrorIs(t, got.Scan(42), ErrScanValue)
}

func TestUUIDBitIdentity(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 10))
	for i := 0; i < 1000; i++ {
		var u uuid.UUID
		for j := range u {
			u[j] = byte(rng.UintN(256))
		}
		assert.Equal(t, u, FromUUID(u).UUID())
	}

	v4 := uuid.New()
	id := FromUUID(v4)
	next, ok := id.Increment()
	require.True(t, ok)
	assert.Equal(t, id.Randomness().Add64(1), next.Randomness())
}

func TestParseUUID(t *testing.T) {
	id, err := ParseUUID("0168d3ff-00cf-8659-add4-9a16d369c5ff")
	require.NoError(t, err)
	assert.Equal(t, knownText, id.String())
	assert.Equal(t, "0168d3ff-00cf-8659-add4-9a16d369c5ff", id.UUID().String())

	_, err = ParseUUID("q")
	var uerr *InvalidUUIDError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "q", uerr.Input)
	assert.NotNil(t, errors.Unwrap(err))
}
