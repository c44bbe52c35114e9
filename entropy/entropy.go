// Package entropy provides random sources for ULID generation.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"sync"

	"lukechampine.com/uint128"
)

// randomnessBytes is the width of the ULID randomness field.
const randomnessBytes = 10

// ReaderSource draws 80-bit values from an io.Reader. It serialises reads
// so readers that are not goroutine-safe, such as math/rand, can be shared.
// A failing reader makes Next80 panic: there is no meaningful ULID to
// return without entropy.
type ReaderSource struct {
	mu sync.Mutex
	r  io.Reader
}

// NewReaderSource wraps r.
func NewReaderSource(r io.Reader) *ReaderSource {
	return &ReaderSource{r: r}
}

// NewCryptoSource returns a source backed by crypto/rand.
func NewCryptoSource() *ReaderSource {
	return NewReaderSource(rand.Reader)
}

// Next80 returns the next 80 random bits.
func (s *ReaderSource) Next80() uint128.Uint128 {
	var b [randomnessBytes]byte
	s.mu.Lock()
	_, err := io.ReadFull(s.r, b[:])
	s.mu.Unlock()
	if err != nil {
		panic(fmt.Errorf("entropy: read %d bytes: %w", randomnessBytes, err))
	}
	return fromBytes(b)
}

// Probe reads once from the underlying reader and reports the error instead
// of panicking. Health checks use it.
func (s *ReaderSource) Probe() error {
	var b [randomnessBytes]byte
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := io.ReadFull(s.r, b[:]); err != nil {
		return fmt.Errorf("entropy: read %d bytes: %w", randomnessBytes, err)
	}
	return nil
}

// fromBytes reads b as a big-endian 80-bit integer.
func fromBytes(b [randomnessBytes]byte) uint128.Uint128 {
	return uint128.New(
		binary.BigEndian.Uint64(b[2:]),
		uint64(binary.BigEndian.Uint16(b[:2])),
	)
}
