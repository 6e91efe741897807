// tuner/train.go
package tuner

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"shogi-kppt/kppt"
	"shogi-kppt/shogi"
)

// Train runs cfg.Epochs passes over data, accumulating gradients per
// mini-batch and folding them into the eval tables at every batch
// boundary. The last cfg.ValFrac of data is held out for validation
// and never trained on.
func (tr *Trainer) Train(ctx context.Context, data []Sample, cfg TrainConfig) error {
	if len(data) == 0 {
		return fmt.Errorf("tuner: empty dataset")
	}
	bs := cfg.Batch
	if bs <= 0 {
		bs = 32768
	}
	scale := cfg.ScaleK
	if scale <= 0 {
		scale = 600
	}
	k := 1.0 / scale
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if cfg.CheckpointDir != "" {
		if err := os.MkdirAll(cfg.CheckpointDir, 0o755); err != nil {
			return fmt.Errorf("create checkpoint dir: %w", err)
		}
	}

	valSize := int(cfg.ValFrac * float64(len(data)))
	if valSize >= len(data) {
		valSize = len(data) - 1
	}
	trainSize := len(data) - valSize

	rng := rand.New(rand.NewSource(42))
	order := make([]int, trainSize)
	for i := range order {
		order[i] = i
	}
	deltas := make([]float64, bs)

	for ep := 1; ep <= cfg.Epochs; ep++ {
		t0 := time.Now()
		if cfg.Shuffle {
			rng.Shuffle(trainSize, func(i, j int) { order[i], order[j] = order[j], order[i] })
		}

		totalLoss := 0.0
		totalN := 0
		for off := 0; off < trainSize; off += bs {
			end := min(off+bs, trainSize)
			loss, err := tr.batchGrad(ctx, data, order[off:end], k, deltas, workers)
			if err != nil {
				return err
			}
			if err := tr.UpdateWeights(ctx); err != nil {
				return err
			}
			totalLoss += loss
			totalN += end - off
		}

		stats := EpochStats{
			Epoch:   ep,
			Loss:    totalLoss / float64(max(1, totalN)),
			Samples: totalN,
		}
		if valSize > 0 {
			valLoss, err := tr.datasetLoss(ctx, data[trainSize:], k, workers)
			if err != nil {
				return err
			}
			stats.ValLoss = valLoss / float64(valSize)
		}
		stats.Elapsed = time.Since(t0)

		if valSize > 0 {
			fmt.Printf("epoch %d  loss=%.6f  val=%.6f  n=%d  time=%s\n",
				ep, stats.Loss, stats.ValLoss, totalN, stats.Elapsed)
		} else {
			fmt.Printf("epoch %d  loss=%.6f  n=%d  time=%s\n",
				ep, stats.Loss, totalN, stats.Elapsed)
		}

		if cfg.CheckpointDir != "" {
			path := filepath.Join(cfg.CheckpointDir, fmt.Sprintf("weights-epoch%03d.bin", ep))
			if err := SaveWeights(path, tr.Weights); err != nil {
				return fmt.Errorf("checkpoint epoch %d: %w", ep, err)
			}
		}
		if cfg.EvalSaveDir != "" {
			dir := filepath.Join(cfg.EvalSaveDir, fmt.Sprintf("epoch%03d", ep))
			if err := tr.Eval.Save(dir); err != nil {
				return fmt.Errorf("save eval epoch %d: %w", ep, err)
			}
		}
		if cfg.OnEpoch != nil {
			cfg.OnEpoch(stats)
		}
	}
	return nil
}

// batchGrad evaluates one mini-batch in parallel, then scatters the
// per-sample gradients serially, since samples share features. deltas
// is scratch space at least len(batch) long.
func (tr *Trainer) batchGrad(ctx context.Context, data []Sample, batch []int, k float64, deltas []float64, workers int) (float64, error) {
	g, ctx := errgroup.WithContext(ctx)
	losses := make([]float64, workers)
	shard := (len(batch) + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * shard
		hi := min(lo+shard, len(batch))
		if lo >= hi {
			break
		}
		slot := w
		g.Go(func() error {
			var loss float64
			for i := lo; i < hi; i++ {
				if i&1023 == 0 {
					select {
					case <-ctx.Done():
						return ctx.Err()
					default:
					}
				}
				s := &data[batch[i]]
				eval := float64(kppt.Evaluate(s.Pos, tr.Eval))
				y := s.Label
				if s.Pos.Side == shogi.White {
					y = 1 - y
				}
				l, d := sampleLoss(k, eval, y)
				loss += l
				deltas[i] = d
			}
			losses[slot] = loss
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	for i, di := range batch {
		tr.AddGrad(data[di].Pos, deltas[i])
	}

	var total float64
	for _, l := range losses {
		total += l
	}
	return total, nil
}

// datasetLoss sums the loss over data without touching any gradients.
func (tr *Trainer) datasetLoss(ctx context.Context, data []Sample, k float64, workers int) (float64, error) {
	g, ctx := errgroup.WithContext(ctx)
	losses := make([]float64, workers)
	shard := (len(data) + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * shard
		hi := min(lo+shard, len(data))
		if lo >= hi {
			break
		}
		slot := w
		g.Go(func() error {
			var loss float64
			for i := lo; i < hi; i++ {
				if i&1023 == 0 {
					select {
					case <-ctx.Done():
						return ctx.Err()
					default:
					}
				}
				s := &data[i]
				eval := float64(kppt.Evaluate(s.Pos, tr.Eval))
				y := s.Label
				if s.Pos.Side == shogi.White {
					y = 1 - y
				}
				diff := prob(k, eval) - y
				loss += diff * diff
			}
			losses[slot] = loss
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	var total float64
	for _, l := range losses {
		total += l
	}
	return total, nil
}
