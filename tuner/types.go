// tuner/types.go
package tuner

import (
	"time"

	"shogi-kppt/shogi"
)

// Weight is the training accumulator for one feature index. Grad
// gathers one mini-batch of gradient for the two channels (board value
// and turn bonus). G2 and V8 belong to the AdaGrad rule: the running
// squared-gradient sums and the fractional carry of the live value,
// scaled so that ±127 spans one point.
//
// A weight array covers the whole index space, two hundred million
// records, so the record serializes to 18 tightly packed bytes (see
// WeightRecordSize) and nothing else may be added to it lightly.
type Weight struct {
	Grad [2]float32
	G2   [2]float32
	V8   [2]int8
}

// WeightRecordSize is the serialized size of a Weight: checkpoint
// files pack the fields in declaration order, little-endian, with no
// padding.
const WeightRecordSize = 18

// UpdateRule folds a weight's accumulated gradient into the live
// parameter pair it shadows. The two methods cover the two live-value
// widths used by the eval tables. Implementations may assume the
// caller serializes calls touching the same record and clears Grad
// afterwards; no synchronization happens inside.
type UpdateRule interface {
	Update16(w *Weight, v *[2]int16)
	Update32(w *Weight, v *[2]int32)
}

// Sample is one training position with its game outcome.
type Sample struct {
	Pos   *shogi.Position
	Label float64 // result for black: 1 win, 0 loss, 0.5 draw
	Score int16   // search score of the generating engine, if any
	Ply   uint16  // game ply the position occurred at
}

// TrainConfig controls the training loop.
type TrainConfig struct {
	Epochs  int
	Batch   int     // samples per mini-batch (default 32768)
	ScaleK  float64 // centipawn scale of the logistic link (default 600)
	Shuffle bool
	Workers int // gradient-phase parallelism (default GOMAXPROCS)

	ValFrac float64 // fraction of data held out for validation

	CheckpointDir string // per-epoch weight checkpoints (optional)
	EvalSaveDir   string // per-epoch eval table saves (optional)

	OnEpoch func(EpochStats) // called after each epoch when set
}

// EpochStats summarizes one finished epoch.
type EpochStats struct {
	Epoch   int
	Loss    float64 // mean train loss
	ValLoss float64 // mean holdout loss, 0 when no holdout
	Samples int
	Elapsed time.Duration
}
