package cadence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFuzzDeltaSingleBand(t *testing.T) {
	// interval=3 → only [2.5, 7) band: 1.0 + 0.15*0.5
	assert.InDelta(t, 1.075, fuzzDelta(3), epsilon)
}

func TestFuzzDeltaTwoBands(t *testing.T) {
	// interval=10 → 1.0 + 0.15*4.5 + 0.10*3
	assert.InDelta(t, 1.975, fuzzDelta(10), epsilon)
}

func TestFuzzDeltaThreeBands(t *testing.T) {
	// interval=50 → 1.0 + 0.675 + 1.3 + 0.05*30
	assert.InDelta(t, 4.475, fuzzDelta(50), epsilon)
}

func TestFuzzRange(t *testing.T) {
	tests := []struct {
		interval, maxIvl int
		lo, hi           int
	}{
		{1, 36500, 1, 1},
		{2, 36500, 2, 2},
		{3, 36500, 2, 4},
		{10, 36500, 8, 12},
		{50, 36500, 46, 54},
		{50, 48, 46, 48},
		{30, 30, 27, 30},
	}
	for _, tt := range tests {
		lo, hi := FuzzRange(tt.interval, tt.maxIvl)
		assert.Equal(t, tt.lo, lo, "FuzzRange(%d, %d) lo", tt.interval, tt.maxIvl)
		assert.Equal(t, tt.hi, hi, "FuzzRange(%d, %d) hi", tt.interval, tt.maxIvl)
	}
}

func TestApplyFuzzEndpoints(t *testing.T) {
	assert.Equal(t, 8, applyFuzz(10, 36500, 0))
	assert.Equal(t, 12, applyFuzz(10, 36500, 0.9999))
	assert.Equal(t, 10, applyFuzz(10, 36500, 0.5))
}

func TestApplyFuzzOutOfRangeDraw(t *testing.T) {
	// A misbehaving source cannot push the interval outside its range.
	assert.Equal(t, 12, applyFuzz(10, 36500, 7))
	assert.Equal(t, 8, applyFuzz(10, 36500, -1))
}

func TestApplyFuzzSmallIntervalUntouched(t *testing.T) {
	for _, u := range []float64{0, 0.5, 0.999} {
		assert.Equal(t, 1, applyFuzz(1, 36500, u))
		assert.Equal(t, 2, applyFuzz(2, 36500, u))
	}
}

func TestApplyFuzzBounds(t *testing.T) {
	for _, maxIvl := range []int{1, 2, 10, 365, 36500} {
		for ivl := 1; ivl <= min(maxIvl, 500); ivl++ {
			limit := 0.5
			if ivl >= 3 {
				limit += fuzzDelta(float64(ivl))
			}
			for i := 0; i < 20; i++ {
				u := float64(i) / 20
				got := applyFuzz(ivl, maxIvl, u)
				assert.GreaterOrEqual(t, got, 1)
				assert.LessOrEqual(t, got, maxIvl)
				assert.LessOrEqual(t, float64(abs(got-ivl)), limit, "ivl=%d max=%d u=%v", ivl, maxIvl, u)
			}
		}
	}
}

func TestPCGSourceDeterministic(t *testing.T) {
	src := pcgSource{}
	for seed := uint64(0); seed < 50; seed++ {
		u := src.Uniform(seed)
		assert.Equal(t, u, src.Uniform(seed))
		assert.GreaterOrEqual(t, u, 0.0)
		assert.Less(t, u, 1.0)
	}
	assert.NotEqual(t, src.Uniform(1), src.Uniform(2))
}

func TestFuzzSeed(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	a := Card{CardID: "a", Reps: 3, Stability: 4, Difficulty: 5}
	b := a
	b.CardID = "b"

	assert.Equal(t, fuzzSeed(a, now), fuzzSeed(a, now))
	assert.NotEqual(t, fuzzSeed(a, now), fuzzSeed(b, now))
	assert.NotEqual(t, fuzzSeed(a, now), fuzzSeed(a, now.Add(time.Millisecond)))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
