// tuner.go wires the eval tables, the weight array and the symmetry
// context together for one KPPT training run.
package tuner

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"shogi-kppt/kppt"
	"shogi-kppt/shogi"
)

// Trainer owns the mutable state of a run: the live eval tables being
// tuned and one Weight per feature index shadowing them.
type Trainer struct {
	Tables  *Tables
	Eval    *kppt.EvalTable
	Weights []Weight

	// rules holds one update rule per fold worker. Stateless rules may
	// repeat; a *SignSGD must appear only once.
	rules []UpdateRule
}

// NewTrainer allocates the weight array (close to 4GB) beside ev.
// The fold phase runs len(rules) workers, worker i applying rules[i].
func NewTrainer(st *Tables, ev *kppt.EvalTable, rules []UpdateRule) (*Trainer, error) {
	if len(rules) == 0 {
		return nil, fmt.Errorf("tuner: need at least one update rule")
	}
	return &Trainer{
		Tables:  st,
		Eval:    ev,
		Weights: make([]Weight, IndexSpaceSize),
		rules:   rules,
	}, nil
}

// AddGrad scatters one sample's gradient over every feature of pos.
// delta is dLoss/dEval for the eval seen from the side to move. Calls
// must not run concurrently: distinct positions share features.
func (tr *Trainer) AddGrad(pos *shogi.Position, delta float64) {
	var fb, fw [kppt.PieceListLen]kppt.BonaPiece
	n := kppt.BuildLists(pos, &fb, &fw)

	bk := pos.KingSquare(shogi.Black)
	wk := pos.KingSquare(shogi.White)
	invWk := shogi.InverseSquare(wk)

	// Channel 0 is the board value from black's viewpoint, channel 1
	// the side-to-move bonus.
	g0 := float32(delta)
	if pos.Side == shogi.White {
		g0 = -g0
	}
	g1 := float32(delta)

	tr.addAt(KK{bk, wk}.Index(), g0, g1)
	for i := 0; i < n; i++ {
		tr.addAt(KKP{bk, wk, fb[i]}.Index(), g0, g1)
		for j := 0; j < i; j++ {
			tr.addAt(KPP{bk, fb[i], fb[j]}.Index(), g0, g1)
			// The white-view pair carries the board channel with the
			// opposite sign, matching its place in the evaluation sum.
			tr.addAt(KPP{invWk, fw[i], fw[j]}.Index(), -g0, g1)
		}
	}
}

func (tr *Trainer) addAt(index uint64, g0, g1 float32) {
	w := &tr.Weights[index]
	w.Grad[0] += g0
	w.Grad[1] += g1
}

// UpdateWeights folds every accumulated gradient into the eval tables
// and clears the gradients, one symmetry class at a time: the class
// gradient is summed over its distinct members, the rule is applied to
// the canonical member's record, and the updated value is written back
// to every member's table slot.
//
// Work is partitioned over the canonical indices. A class is owned by
// exactly one worker, since member records are only ever touched
// through their canonical index, so the workers never overlap.
func (tr *Trainer) UpdateWeights(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	workers := uint64(len(tr.rules))
	chunk := IndexSpaceSize/workers + 1
	for w := uint64(0); w < workers; w++ {
		lo := w * chunk
		hi := min(lo+chunk, IndexSpaceSize)
		if lo >= hi {
			break
		}
		rule := tr.rules[w]
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if i&0xfffff == 0 {
					select {
					case <-ctx.Done():
						return ctx.Err()
					default:
					}
				}
				if !tr.Tables.IsMinIndex(i) {
					continue
				}
				switch {
				case IsKKIndex(i):
					tr.foldKK(rule, KKFromIndex(i))
				case IsKKPIndex(i):
					tr.foldKKP(rule, KKPFromIndex(i))
				default:
					tr.foldKPP(rule, KPPFromIndex(i))
				}
			}
			return nil
		})
	}
	return g.Wait()
}

func (tr *Trainer) foldKK(rule UpdateRule, f KK) {
	w := &tr.Weights[f.Index()]
	if w.Grad[0] == 0 && w.Grad[1] == 0 {
		return
	}
	rule.Update32(w, (*[2]int32)(&tr.Eval.KK[f.King0][f.King1]))
	w.Grad = [2]float32{}
}

func (tr *Trainer) foldKKP(rule UpdateRule, f KKP) {
	lows := f.LowerDimensions(tr.Tables)
	idx0 := lows[0].Index()
	idx1 := lows[1].Index()

	// Clear only records that held something; most of the sweep sees
	// untouched classes and must not dirty their cache lines.
	w := &tr.Weights[idx0]
	g := w.Grad
	if g[0] != 0 || g[1] != 0 {
		w.Grad = [2]float32{}
	}
	if idx1 != idx0 {
		mw := &tr.Weights[idx1]
		if mw.Grad[0] != 0 || mw.Grad[1] != 0 {
			g[0] += mw.Grad[0]
			g[1] += mw.Grad[1]
			mw.Grad = [2]float32{}
		}
	}
	if g[0] == 0 && g[1] == 0 {
		return
	}

	w.Grad = g
	v := &tr.Eval.KKP[f.King0][f.King1][f.Piece]
	rule.Update32(w, (*[2]int32)(v))
	w.Grad = [2]float32{}
	tr.Eval.KKP[lows[1].King0][lows[1].King1][lows[1].Piece] = *v
}

func (tr *Trainer) foldKPP(rule UpdateRule, f KPP) {
	lows := f.LowerDimensions(tr.Tables)

	// Swap and mirror can coincide with the feature itself; each
	// distinct record contributes once and is cleared once.
	var ids [4]uint64
	cnt := 0
	for _, lf := range lows {
		id := lf.Index()
		dup := false
		for j := 0; j < cnt; j++ {
			if ids[j] == id {
				dup = true
				break
			}
		}
		if !dup {
			ids[cnt] = id
			cnt++
		}
	}

	var g [2]float32
	for j := 0; j < cnt; j++ {
		w := &tr.Weights[ids[j]]
		if w.Grad[0] != 0 || w.Grad[1] != 0 {
			g[0] += w.Grad[0]
			g[1] += w.Grad[1]
			w.Grad = [2]float32{}
		}
	}
	if g[0] == 0 && g[1] == 0 {
		return
	}

	w := &tr.Weights[ids[0]]
	w.Grad = g
	v := &tr.Eval.KPP[f.King][f.Piece0][f.Piece1]
	rule.Update16(w, (*[2]int16)(v))
	w.Grad = [2]float32{}
	for _, lf := range lows[1:] {
		tr.Eval.KPP[lf.King][lf.Piece0][lf.Piece1] = *v
	}
}
