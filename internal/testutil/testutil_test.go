package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/curveforge/internal/curve"
	"github.com/roach88/curveforge/internal/instructions"
)

func TestDeterministicClock(t *testing.T) {
	clock := NewDeterministicClock()
	assert.Equal(t, int64(0), clock.Current())
	assert.Equal(t, int64(1), clock.Next())
	assert.Equal(t, int64(2), clock.Next())

	clock.Reset()
	assert.Equal(t, int64(0), clock.Current())
	assert.Equal(t, int64(1), clock.Next())
}

func TestDeterministicClockAt(t *testing.T) {
	clock := NewDeterministicClockAt(40)
	assert.Equal(t, int64(41), clock.Next())

	clock.Reset()
	assert.Equal(t, int64(40), clock.Current())
}

func TestDeterministicClock_ThreadSafe(t *testing.T) {
	clock := NewDeterministicClock()
	const goroutines, calls = 50, 20

	var mu sync.Mutex
	seen := make(map[int64]bool)
	var wg sync.WaitGroup
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range calls {
				v := clock.Next()
				mu.Lock()
				seen[v] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, goroutines*calls)
	assert.Equal(t, int64(goroutines*calls), clock.Current())
}

func TestFixedRunIDGenerator(t *testing.T) {
	g := NewFixedRunIDGenerator("run-7")
	assert.Equal(t, "run-7", g.Generate())
	assert.Equal(t, "run-7", g.Generate())

	assert.Equal(t, DefaultRunID, NewFixedRunIDGenerator("").Generate())
}

func TestFixtures(t *testing.T) {
	irs := IRSDefinition("usd", 0.25, "1Y", "2Y")
	assert.Equal(t, curve.TypeIRS, irs.Type)
	require.Len(t, irs.Instruments, 2)
	assert.Equal(t, "2Y", irs.Instruments[1].Maturity().String())

	rpi := RPIDefinition("gbp", 0.03, "1Y")
	assert.Equal(t, instructions.LogLinear, rpi.Instructions.InterpolationMethod())

	assert.Equal(t, curve.TypeCreditSwap, UnsupportedDefinition("cds").Type)
	assert.NotEqual(t, irs.Hash, rpi.Hash)
}

func TestOpenStore(t *testing.T) {
	s := OpenStore(t)
	seq, err := s.MaxSeq(t.Context())
	require.NoError(t, err)
	assert.Equal(t, int64(0), seq)
}
