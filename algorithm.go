package cadence

import "math"

const (
	// Decay is the fixed exponent of the FSRS-5 forgetting curve.
	Decay = -0.5
	// Factor is 0.9^(1/Decay) - 1, so that R(S, S) = 0.9.
	Factor = 19.0 / 81.0

	minStability  = 0.001
	minDifficulty = 1.0
	maxDifficulty = 10.0
)

// Model holds the memory model's pure functions for one weight vector.
// The zero value is not usable; build one with NewModel.
type Model struct {
	w Weights
}

// NewModel returns the memory model for w. Weights are not validated here;
// NewScheduler does that.
func NewModel(w Weights) Model {
	return Model{w: w}
}

// Weights returns the model's parameter vector.
func (m Model) Weights() Weights {
	return m.w
}

// Retrievability computes R(t, S) = (1 + FACTOR * t / S) ^ DECAY.
// It returns 1 for t <= 0 and never returns 0.
func (m Model) Retrievability(stability, elapsedDays float64) float64 {
	if elapsedDays <= 0 {
		return 1
	}
	r := math.Pow(1+Factor*elapsedDays/clampS(stability), Decay)
	return clampR(r)
}

// InitialStability returns S₀(G) = clamp_s(w[G-1]).
func (m Model) InitialStability(r Rating) float64 {
	return clampS(m.w[r-1])
}

// InitialDifficulty returns D₀(G) = clamp_d(w[4] - e^(w[5] * (G - 1)) + 1).
func (m Model) InitialDifficulty(r Rating) float64 {
	return clampD(m.initDifficulty(r))
}

func (m Model) initDifficulty(r Rating) float64 {
	return m.w[4] - math.Exp(m.w[5]*float64(r-1)) + 1
}

// NextDifficulty computes the updated difficulty after a review.
// ΔD = -w[6] * (G - 3)
// D' = D + (10 - D) * ΔD / 9     (linear damping)
// D'' = w[7]*D₀(Easy) + (1-w[7])*D'  (mean reversion)
func (m Model) NextDifficulty(difficulty float64, r Rating) float64 {
	deltaD := -m.w[6] * (float64(r) - 3)
	dPrime := difficulty + (10-difficulty)*deltaD/9
	d0Easy := m.initDifficulty(Easy) // mean reversion target, unclamped
	return clampD(m.w[7]*d0Easy + (1-m.w[7])*dPrime)
}

// NextStabilityOnSuccess computes stability after a Hard, Good or Easy recall.
// S'_r = S * (1 + e^w[8] * (11-D) * S^(-w[9]) * (e^((1-R)*w[10]) - 1) * hardPenalty * easyBonus)
func (m Model) NextStabilityOnSuccess(d, s, r float64, rating Rating) float64 {
	s = clampS(s)
	r = clampR(r)
	hardPenalty := 1.0
	if rating == Hard {
		hardPenalty = m.w[15]
	}
	easyBonus := 1.0
	if rating == Easy {
		easyBonus = m.w[16]
	}
	return clampS(s * (1 + math.Exp(m.w[8])*
		(11-d)*
		math.Pow(s, -m.w[9])*
		(math.Exp((1-r)*m.w[10])-1)*
		hardPenalty*easyBonus))
}

// NextStabilityOnFailure computes stability after a lapse.
// long  = w[11] * D^(-w[12]) * ((S+1)^w[13] - 1) * e^((1-R)*w[14])
// short = S / e^(w[17] * w[18])
// S'_f  = min(long, short, S)
func (m Model) NextStabilityOnFailure(d, s, r float64) float64 {
	s = clampS(s)
	r = clampR(r)
	long := m.w[11] *
		math.Pow(d, -m.w[12]) *
		(math.Pow(s+1, m.w[13]) - 1) *
		math.Exp((1-r)*m.w[14])
	short := s / math.Exp(m.w[17]*m.w[18])
	return clampS(math.Min(math.Min(long, short), s))
}

// NextStabilityShortTerm computes the same-day review stability.
// SInc = e^(w[17] * (G - 3 + w[18])), at least 1 for Good and Easy.
func (m Model) NextStabilityShortTerm(s float64, rating Rating) float64 {
	s = clampS(s)
	sInc := math.Exp(m.w[17] * (float64(rating) - 3 + m.w[18]))
	if rating == Good || rating == Easy {
		sInc = math.Max(sInc, 1.0)
	}
	return clampS(s * sInc)
}

// NextInterval computes the next review interval in days: the elapsed time
// at which retrievability falls to retention.
// I = round((S / FACTOR) * (retention^(1/DECAY) - 1)), clamped to [1, maxIvl].
func (m Model) NextInterval(stability, retention float64, maxIvl int) int {
	ivl := clampS(stability) / Factor * (math.Pow(retention, 1.0/Decay) - 1)
	rounded := int(math.Round(ivl))
	if math.IsNaN(ivl) || rounded < 1 {
		rounded = 1
	}
	if ivl > float64(maxIvl) || rounded > maxIvl {
		rounded = maxIvl
	}
	return rounded
}

// clampS floors stability at 0.001. NaN passes through for the caller's
// finiteness check.
func clampS(s float64) float64 {
	if s < minStability {
		return minStability
	}
	return s
}

// clampD clamps difficulty to [1, 10].
func clampD(d float64) float64 {
	if d < minDifficulty {
		return minDifficulty
	}
	if d > maxDifficulty {
		return maxDifficulty
	}
	return d
}

// clampR keeps retrievability in (0, 1].
func clampR(r float64) float64 {
	if r > 1 {
		return 1
	}
	if r <= 0 {
		return math.SmallestNonzeroFloat64
	}
	return r
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
