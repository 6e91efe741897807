// tuner/loss.go
package tuner

import "math"

// logistic probability p = 1/(1+exp(-k*E))
func prob(k, eval float64) float64 {
	z := k * eval
	if z > 40 {
		return 1
	}
	if z < -40 {
		return 0
	}
	return 1.0 / (1.0 + math.Exp(-z))
}

// sampleLoss returns the squared-error loss and dLoss/dEval for one
// sample. eval is the score from the side to move's viewpoint and y
// the game result from the same viewpoint.
func sampleLoss(k, eval, y float64) (loss, dLdE float64) {
	p := prob(k, eval)
	diff := p - y
	return diff * diff, 2.0 * diff * k * p * (1.0 - p)
}
