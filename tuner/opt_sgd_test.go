// tuner/opt_sgd_test.go
package tuner

import "testing"

func TestSignSGDZeroGradIsNoop(t *testing.T) {
	rule := NewSignSGD(7)
	for i := 0; i < 1000; i++ {
		var w Weight
		v := [2]int32{42, -42}
		rule.Update32(&w, &v)
		if v != ([2]int32{42, -42}) {
			t.Fatalf("values moved to %v on zero gradient", v)
		}
	}
}

func TestSignSGDNudgeDirectionAndRate(t *testing.T) {
	rule := NewSignSGD(1)
	const trials = 30000
	down, up := 0, 0
	for i := 0; i < trials; i++ {
		w := Weight{Grad: [2]float32{2.5, -0.5}}
		v := [2]int16{100, -100}
		rule.Update16(&w, &v)
		switch v[0] {
		case 99:
			down++
		case 100:
		default:
			t.Fatalf("positive gradient moved v[0] to %d", v[0])
		}
		switch v[1] {
		case -99:
			up++
		case -100:
		default:
			t.Fatalf("negative gradient moved v[1] to %d", v[1])
		}
	}
	// Two of every three nudges land. 30000 trials put the count
	// within a few hundred of 20000.
	if down < trials*3/5 || down > trials*11/15 {
		t.Fatalf("%d of %d positive-gradient nudges landed, want about two thirds", down, trials)
	}
	if up < trials*3/5 || up > trials*11/15 {
		t.Fatalf("%d of %d negative-gradient nudges landed, want about two thirds", up, trials)
	}
}

func TestSignSGDClamp(t *testing.T) {
	rule := NewSignSGD(3)
	for i := 0; i < 200; i++ {
		w := Weight{Grad: [2]float32{-1, 1}}
		v := [2]int16{24575, -24576}
		rule.Update16(&w, &v)
		if v[0] != 24575 {
			t.Fatalf("v[0] = %d, want pinned at 24575", v[0])
		}
		if v[1] != -24576 {
			t.Fatalf("v[1] = %d, want pinned at -24576", v[1])
		}
	}
}

func TestSignSGDRulesIndependent(t *testing.T) {
	rules := SignSGDRules(4, 42)
	if len(rules) != 4 {
		t.Fatalf("got %d rules, want 4", len(rules))
	}
	seen := map[*SignSGD]bool{}
	for _, r := range rules {
		s, ok := r.(*SignSGD)
		if !ok {
			t.Fatalf("rule %#v is not a SignSGD", r)
		}
		if seen[s] {
			t.Fatal("two fold workers share one SignSGD")
		}
		seen[s] = true
	}
}
