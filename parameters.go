package cadence

import (
	"fmt"
	"math"
)

// Weights is the FSRS-5 parameter vector w[0..18].
type Weights [19]float64

// DefaultWeights are the FSRS-5 default parameter values.
var DefaultWeights = Weights{
	0.40255, 1.18385, 3.173, 15.69105, // w[0..3]  initial stability S₀(G)
	7.1949, 0.5345, 1.4604, 0.0046, // w[4..7]  difficulty params
	1.54575, 0.1192, 1.01925, // w[8..10] recall stability params
	1.9395, 0.11, 0.29605, 2.2698, // w[11..14] forget stability params
	0.2315, 2.9898, // w[15..16] hard penalty, easy bonus
	0.51655, 0.6621, // w[17..18] short-term params
}

// LowerBounds defines the minimum allowed value for each weight.
var LowerBounds = Weights{
	0.001, 0.001, 0.001, 0.001,
	1.0, 0.001, 0.001, 0.001,
	0.0, 0.0, 0.001,
	0.001, 0.001, 0.001, 0.0,
	0.0, 1.0,
	0.0, 0.0,
}

// UpperBounds defines the maximum allowed value for each weight.
var UpperBounds = Weights{
	100.0, 100.0, 100.0, 100.0,
	10.0, 4.0, 4.0, 0.75,
	4.5, 0.8, 3.5,
	5.0, 0.25, 0.9, 4.0,
	1.0, 6.0,
	2.0, 2.0,
}

// ValidateWeights checks that every weight is finite and within
// [LowerBounds, UpperBounds].
func ValidateWeights(w Weights) error {
	for i, v := range w {
		if math.IsNaN(v) || v < LowerBounds[i] || v > UpperBounds[i] {
			return fmt.Errorf("%w: w[%d] = %f, bounds [%f, %f]",
				ErrInvalidConfig, i, v, LowerBounds[i], UpperBounds[i])
		}
	}
	return nil
}
