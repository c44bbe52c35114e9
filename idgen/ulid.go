package idgen

import (
	"errors"
	"sync"

	"github.com/aatuh/ulid-toolkit/clock"
	"github.com/aatuh/ulid-toolkit/entropy"
	"github.com/aatuh/ulid-toolkit/ports"
	"github.com/aatuh/ulid-toolkit/ulid"
)

// ErrMonotonicOverflow is returned when 2^80 IDs have already been issued
// for the current millisecond.
var ErrMonotonicOverflow = errors.New("idgen: monotonic randomness exhausted for this millisecond")

// ULIDGen issues ULIDs with fresh randomness on every call. IDs from the
// same millisecond are unique but not ordered among themselves.
type ULIDGen struct {
	clock  ulid.Clock
	source ulid.RandomSource
}

// NewULIDGen creates a ULID generator that implements ports.IDGen using the
// system clock and crypto/rand.
func NewULIDGen() ports.IDGen {
	return NewULIDGenWith(clock.NewSystemClock(), entropy.NewCryptoSource())
}

// NewULIDGenWith creates a generator over the given collaborators.
func NewULIDGenWith(c ulid.Clock, src ulid.RandomSource) *ULIDGen {
	return &ULIDGen{clock: c, source: src}
}

// Next returns a new ULID.
func (g *ULIDGen) Next() (ulid.ULID, error) {
	return ulid.New(g.clock, g.source), nil
}

// New returns the text form of a new ULID.
func (g *ULIDGen) New() (string, error) {
	id, err := g.Next()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Monotonic issues strictly increasing ULIDs within one process. The first
// ID of a millisecond gets fresh randomness; later IDs in the same
// millisecond increment the previous one. If the clock goes backwards the
// generator stays on the last millisecond it issued. Readings outside the
// timestamp range are clamped, so they also keep the order.
type Monotonic struct {
	mu     sync.Mutex
	clock  ulid.Clock
	source ulid.RandomSource
	last   ulid.ULID
	issued bool
}

// NewMonotonic creates a monotonic generator over the system clock and
// crypto/rand.
func NewMonotonic() *Monotonic {
	return NewMonotonicWith(clock.NewSystemClock(), entropy.NewCryptoSource())
}

// NewMonotonicWith creates a monotonic generator over the given
// collaborators.
func NewMonotonicWith(c ulid.Clock, src ulid.RandomSource) *Monotonic {
	return &Monotonic{clock: c, source: src}
}

// Next returns a ULID greater than every ULID this generator returned
// before.
func (g *Monotonic) Next() (ulid.ULID, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := ulid.ClampMilli(g.clock.Now())
	if g.issued && ms <= g.last.Time() {
		next, ok := g.last.Increment()
		if !ok {
			return ulid.Zero, ErrMonotonicOverflow
		}
		g.last = next
		return next, nil
	}

	g.last = ulid.FromParts(ms, g.source.Next80())
	g.issued = true
	return g.last, nil
}

// New returns the text form of the next ULID.
func (g *Monotonic) New() (string, error) {
	id, err := g.Next()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Batch returns n IDs from g in issue order.
func Batch(g ports.IDGen, n int) ([]ulid.ULID, error) {
	out := make([]ulid.ULID, 0, n)
	for i := 0; i < n; i++ {
		id, err := g.Next()
		if err != nil {
			return out, err
		}
		out = append(out, id)
	}
	return out, nil
}
