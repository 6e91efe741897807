// tuner/loss_test.go
package tuner

import (
	"math"
	"testing"
)

func TestProb(t *testing.T) {
	k := 1.0 / 600
	if got := prob(k, 0); got != 0.5 {
		t.Fatalf("prob(0) = %v, want 0.5", got)
	}
	if got := prob(k, 1e9); got != 1 {
		t.Fatalf("prob at saturation = %v, want 1", got)
	}
	if got := prob(k, -1e9); got != 0 {
		t.Fatalf("prob at saturation = %v, want 0", got)
	}
	if a, b := prob(k, 300), prob(k, -300); math.Abs(a+b-1) > 1e-12 {
		t.Fatalf("prob(300)+prob(-300) = %v, want 1", a+b)
	}
	if p := prob(k, 600); p <= 0.5 || p >= 1 {
		t.Fatalf("prob(600) = %v, want inside (0.5, 1)", p)
	}
}

func TestSampleLoss(t *testing.T) {
	k := 1.0 / 600
	loss, d := sampleLoss(k, 0, 1)
	if loss != 0.25 {
		t.Fatalf("loss = %v, want 0.25", loss)
	}
	// p sits below the label, so the gradient must push the eval up.
	want := 2 * (0.5 - 1) * k * 0.5 * 0.5
	if math.Abs(d-want) > 1e-15 || d >= 0 {
		t.Fatalf("dLoss/dEval = %v, want %v", d, want)
	}

	// A perfectly predicted decisive game contributes nothing.
	loss, d = sampleLoss(k, 1e9, 1)
	if loss != 0 || d != 0 {
		t.Fatalf("saturated sample: loss=%v grad=%v", loss, d)
	}
}
