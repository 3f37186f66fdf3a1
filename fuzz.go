package cadence

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"math/rand/v2"
	"time"
)

// Source supplies the uniform draw in [0, 1) used to fuzz a review's
// interval. It must be deterministic in seed: PreviewCard and ReviewCard
// derive the same seed for the same card and time, so the previewed due
// date is the one that gets committed.
type Source interface {
	Uniform(seed uint64) float64
}

// SourceFunc adapts a function to Source.
type SourceFunc func(seed uint64) float64

// Uniform implements Source.
func (f SourceFunc) Uniform(seed uint64) float64 { return f(seed) }

// pcgSource is the default Source. It keeps no state between calls.
type pcgSource struct{}

func (pcgSource) Uniform(seed uint64) float64 {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)).Float64()
}

type fuzzEntry struct {
	start, end float64
	factor     float64
}

var fuzzRanges = []fuzzEntry{
	{2.5, 7.0, 0.15},
	{7.0, 20.0, 0.10},
	{20.0, math.Inf(1), 0.05},
}

// fuzzDelta computes the fuzz range delta for a given interval.
// delta = 1.0 + Σ(factor * max(min(interval, end) - start, 0))
func fuzzDelta(interval float64) float64 {
	delta := 1.0
	for _, r := range fuzzRanges {
		delta += r.factor * math.Max(math.Min(interval, r.end)-r.start, 0)
	}
	return delta
}

// FuzzRange returns the inclusive bounds a fuzzed interval can take.
// Intervals under 2.5 days are never fuzzed and return (interval, interval).
// Otherwise the bounds are round(interval - delta) and
// round(interval + delta), where delta is one day plus 15% of the part of
// the interval in [2.5, 7), 10% of the part in [7, 20) and 5% of the part
// beyond 20 days. Rounding lets a bound sit up to delta + 0.5 days from the
// interval (10 has delta 1.975 and bounds 8..12). The lower bound is at
// least 2 and the upper bound at most maxIvl.
func FuzzRange(interval, maxIvl int) (lo, hi int) {
	if float64(interval) < 2.5 {
		return interval, interval
	}
	ivl := float64(interval)
	delta := fuzzDelta(ivl)

	lo = max(2, int(math.Round(ivl-delta)))
	hi = min(int(math.Round(ivl+delta)), maxIvl)
	lo = min(lo, hi)
	return lo, hi
}

// applyFuzz maps the uniform draw u onto FuzzRange(interval, maxIvl).
func applyFuzz(interval, maxIvl int, u float64) int {
	lo, hi := FuzzRange(interval, maxIvl)
	if lo == hi {
		return lo
	}
	fuzzed := lo + int(math.Floor(u*float64(hi-lo+1)))
	return min(max(fuzzed, lo), hi)
}

// fuzzSeed derives a per-review seed. It ignores the rating: all four
// outcomes of one review share a draw.
func fuzzSeed(c Card, now time.Time) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(c.CardID))
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(now.UnixMilli()))
	_, _ = h.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], uint64(c.Reps))
	_, _ = h.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(c.Difficulty*c.Stability))
	_, _ = h.Write(buf[:])
	return h.Sum64()
}
