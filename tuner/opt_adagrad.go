// tuner/opt_adagrad.go
package tuner

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Live values are pinned to three quarters of the int16 range, leaving
// headroom when many terms accumulate in an evaluation sum.
const (
	liveValueMax = float64(math.MaxInt16) * 3 / 4
	liveValueMin = float64(math.MinInt16) * 3 / 4
)

const adaGradEpsilon = 1e-6

// AdaGrad steps each channel by the gradient scaled with the inverse
// square root of its accumulated square sum:
//
//	g2 += g*g
//	v  -= eta * g / sqrt(g2 + epsilon)
//
// The fractional part of v survives between batches in the weight's
// 8-bit carry, so steps smaller than one point still add up. AdaGrad
// itself is stateless and one value may serve any number of fold
// workers.
type AdaGrad struct {
	Eta float64
}

func (a AdaGrad) Update16(w *Weight, v *[2]int16) { adaGradStep(a.Eta, w, v) }
func (a AdaGrad) Update32(w *Weight, v *[2]int32) { adaGradStep(a.Eta, w, v) }

// AdaGradRules returns n copies of the rule, one per fold worker.
func AdaGradRules(n int, eta float64) []UpdateRule {
	rules := make([]UpdateRule, n)
	for i := range rules {
		rules[i] = AdaGrad{Eta: eta}
	}
	return rules
}

func adaGradStep[T constraints.Signed](eta float64, w *Weight, v *[2]T) {
	for i := 0; i < 2; i++ {
		// Untouched channels stay untouched: most features see no
		// gradient in a given batch.
		if w.Grad[i] == 0 {
			continue
		}

		w.G2[i] += w.Grad[i] * w.Grad[i]

		// The carry holds the fractional part scaled to ±127; 127
		// rather than 128 so that -1.0 stays representable.
		V := float64(v[i]) + float64(w.V8[i])/127
		V -= eta * float64(w.Grad[i]) / math.Sqrt(float64(w.G2[i])+adaGradEpsilon)
		V = math.Min(V, liveValueMax)
		V = math.Max(V, liveValueMin)

		v[i] = T(math.Round(V))
		w.V8[i] = int8((V - float64(v[i])) * 127)
	}
}
