// tuner/opt_sgd.go
package tuner

import (
	"math"
	"math/rand"

	"golang.org/x/exp/constraints"
)

// The clamp bound of opt_adagrad.go, taken in the integer domain.
const (
	liveValueMaxInt = math.MaxInt16 * 3 / 4
	liveValueMinInt = math.MinInt16 * 3 / 4
)

// SignSGD looks only at the gradient's sign and nudges the live value
// one point against it. A full point every batch moves the values too
// much, so a third of the nudges are skipped at random. Not safe for
// concurrent use; give every fold worker its own instance.
type SignSGD struct {
	rng *rand.Rand
}

func NewSignSGD(seed int64) *SignSGD {
	return &SignSGD{rng: rand.New(rand.NewSource(seed))}
}

func (s *SignSGD) Update16(w *Weight, v *[2]int16) { signStep(s.rng, w, v) }
func (s *SignSGD) Update32(w *Weight, v *[2]int32) { signStep(s.rng, w, v) }

// SignSGDRules returns n independently seeded rules, one per fold
// worker.
func SignSGDRules(n int, seed int64) []UpdateRule {
	rules := make([]UpdateRule, n)
	for i := range rules {
		rules[i] = NewSignSGD(seed + int64(i))
	}
	return rules
}

func signStep[T constraints.Signed](rng *rand.Rand, w *Weight, v *[2]T) {
	for i := 0; i < 2; i++ {
		if w.Grad[i] == 0 {
			continue
		}
		if rng.Intn(3) == 0 {
			continue
		}
		nv := v[i]
		if w.Grad[i] > 0 {
			nv--
		} else {
			nv++
		}
		v[i] = clamp(nv, T(liveValueMinInt), T(liveValueMaxInt))
	}
}
