package idgen

import (
	"sync"
	"testing"
	"time"

	oklog "github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/uint128"

	"github.com/aatuh/ulid-toolkit/clock"
	"github.com/aatuh/ulid-toolkit/entropy"
	"github.com/aatuh/ulid-toolkit/ulid"
)

type countingSource struct {
	mu    sync.Mutex
	calls int
	v     uint128.Uint128
}

func (s *countingSource) Next80() uint128.Uint128 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.v
}

var epoch2021 = time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)

func TestULIDGenNew(t *testing.T) {
	s, err := NewULIDGen().New()
	require.NoError(t, err)
	id, err := ulid.Parse(s)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), id.UTC(), 5*time.Second)
}

func TestULIDGenDrawsEveryTime(t *testing.T) {
	src := &countingSource{v: uint128.From64(3)}
	g := NewULIDGenWith(clock.NewFixedClock(epoch2021), src)

	a, err := g.Next()
	require.NoError(t, err)
	b, err := g.Next()
	require.NoError(t, err)

	assert.Equal(t, 2, src.calls)
	assert.Equal(t, a, b)
	assert.Equal(t, uint64(1609459200000), a.Time())
}

func TestMonotonicSameMillisecond(t *testing.T) {
	src := &countingSource{v: uint128.From64(100)}
	g := NewMonotonicWith(clock.NewFixedClock(epoch2021), src)

	ids, err := Batch(g, 5)
	require.NoError(t, err)
	require.Len(t, ids, 5)

	assert.Equal(t, 1, src.calls, "only the first ID of a millisecond draws entropy")
	for i := 1; i < len(ids); i++ {
		assert.Equal(t, -1, ids[i-1].Compare(ids[i]))
		assert.Equal(t, ids[0].Time(), ids[i].Time())
	}
	assert.Equal(t, uint128.From64(104), ids[4].Randomness())
}

func TestMonotonicNewMillisecondReseeds(t *testing.T) {
	src := &countingSource{v: uint128.From64(100)}
	clk := clock.NewFixedClock(epoch2021)
	g := NewMonotonicWith(clk, src)

	_, err := g.Next()
	require.NoError(t, err)
	clk.Advance(time.Millisecond)
	id, err := g.Next()
	require.NoError(t, err)

	assert.Equal(t, 2, src.calls)
	assert.Equal(t, uint64(1609459200001), id.Time())
	assert.Equal(t, uint128.From64(100), id.Randomness())
}

func TestMonotonicClockOutsideTimestampRange(t *testing.T) {
	cases := map[string]struct {
		start time.Time
		next  time.Time
	}{
		"past max time": {time.UnixMilli(int64(ulid.MaxTime)), time.UnixMilli(int64(ulid.MaxTime) + 1)},
		"before epoch":  {time.UnixMilli(0), time.Unix(-5, 0)},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			clk := clock.NewFixedClock(tc.start)
			g := NewMonotonicWith(clk, &countingSource{v: uint128.From64(1)})

			a, err := g.Next()
			require.NoError(t, err)
			clk.Set(tc.next)
			b, err := g.Next()
			require.NoError(t, err)

			assert.Equal(t, -1, a.Compare(b))
			assert.Equal(t, a.Time(), b.Time())
		})
	}
}

func TestMonotonicClockRegression(t *testing.T) {
	clk := clock.NewFixedClock(epoch2021)
	g := NewMonotonicWith(clk, &countingSource{v: uint128.From64(1)})

	a, err := g.Next()
	require.NoError(t, err)
	clk.Set(epoch2021.Add(-time.Second))
	b, err := g.Next()
	require.NoError(t, err)

	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, a.Time(), b.Time())
}

func TestMonotonicOverflow(t *testing.T) {
	src := &countingSource{v: ulid.MaxRandomness}
	g := NewMonotonicWith(clock.NewFixedClock(epoch2021), src)

	_, err := g.Next()
	require.NoError(t, err)
	_, err = g.Next()
	assert.ErrorIs(t, err, ErrMonotonicOverflow)

	s, err := g.New()
	assert.ErrorIs(t, err, ErrMonotonicOverflow)
	assert.Empty(t, s)
}

func TestMonotonicConcurrent(t *testing.T) {
	g := NewMonotonicWith(clock.NewSystemClock(), entropy.NewCryptoSource())

	const workers, per = 8, 200
	results := make(chan ulid.ULID, workers*per)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < per; i++ {
				id, err := g.Next()
				if err != nil {
					t.Error(err)
					return
				}
				results <- id
			}
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[ulid.ULID]struct{}, workers*per)
	for id := range results {
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, workers*per)
}

func TestOklogInterop(t *testing.T) {
	id := ulid.MustParse("01D39ZY06FGSCTVN4T2V9PKHFZ")
	ref := ToOklog(id)
	assert.Equal(t, id.String(), ref.String())
	assert.Equal(t, id.Time(), ref.Time())
	assert.Equal(t, id, FromOklog(ref))

	fresh := oklog.Make()
	assert.Equal(t, fresh.String(), FromOklog(fresh).String())
}
