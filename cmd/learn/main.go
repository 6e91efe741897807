// cmd/learn/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"

	"shogi-kppt/journal"
	"shogi-kppt/kppt"
	"shogi-kppt/tuner"
)

var (
	dataPath   = flag.String("data", "", "Path to TSV/CSV with SFEN and result")
	binPath    = flag.String("bin", "", "Path to packed binary dataset (alternative to -data)")
	isCSV      = flag.Bool("csv", false, "Input is CSV (default TSV)")
	evalDir    = flag.String("eval", "", "Directory with initial KK/KKP/KPP tables (empty = zero start)")
	outDir     = flag.String("out", "eval_out", "Directory for the tuned tables")
	epochs     = flag.Int("epochs", 3, "Training epochs")
	batchSize  = flag.Int("batch", 32768, "Mini-batch size")
	eta        = flag.Float64("eta", 30, "AdaGrad learning rate")
	ruleName   = flag.String("rule", "adagrad", `Update rule: "adagrad" or "sgd"`)
	scaleK     = flag.Float64("scale", 600, "Centipawn scale of the logistic link")
	valFrac    = flag.Float64("val", 0.1, "Fraction of data held out for validation")
	shuffle    = flag.Bool("shuffle", true, "Shuffle each epoch")
	threads    = flag.Int("threads", runtime.NumCPU(), "Worker goroutines")
	checkpoint = flag.String("checkpoint", "", "Directory for per-epoch weight checkpoints")
	resumePath = flag.String("resume", "", "Weight checkpoint to resume from")
	evalSave   = flag.String("evalsave", "", "Directory for per-epoch eval table saves")
	journalDir = flag.String("journal", "", "Directory for the run journal database")
	maxRows    = flag.Int("max", 0, "Optional cap on rows loaded (0=all)")
	seed       = flag.Int64("seed", 42, "Seed for the sgd rule")
)

func main() {
	flag.Parse()
	if *dataPath == "" && *binPath == "" {
		fmt.Println("Usage: learn -data <games.tsv> | -bin <games.bin> [options]")
		flag.PrintDefaults()
		os.Exit(2)
	}
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var (
		data []tuner.Sample
		err  error
		src  string
	)
	if *binPath != "" {
		src = *binPath
		fmt.Printf("Loading binary dataset: %s\n", src)
		data, err = tuner.LoadBinaryDataset(src, *maxRows)
	} else {
		src = *dataPath
		fmt.Printf("Loading dataset: %s\n", src)
		data, err = tuner.LoadDataset(src, *isCSV, *maxRows)
	}
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	fmt.Printf("Loaded %d samples\n", len(data))

	ev := kppt.NewEvalTable()
	if *evalDir != "" {
		if err := ev.Load(*evalDir); err != nil {
			return fmt.Errorf("load eval tables: %w", err)
		}
		fmt.Printf("Loaded tables from %s\n", *evalDir)
	}

	fmt.Println("Building symmetry tables")
	st := tuner.NewTables()

	var rules []tuner.UpdateRule
	switch strings.ToLower(*ruleName) {
	case "adagrad":
		rules = tuner.AdaGradRules(*threads, *eta)
	case "sgd":
		rules = tuner.SignSGDRules(*threads, *seed)
	default:
		return fmt.Errorf("unknown rule %q", *ruleName)
	}

	tr, err := tuner.NewTrainer(st, ev, rules)
	if err != nil {
		return err
	}
	if *resumePath != "" {
		if err := tuner.LoadWeights(*resumePath, tr.Weights); err != nil {
			return fmt.Errorf("resume: %w", err)
		}
		fmt.Printf("Resumed optimizer state from %s\n", *resumePath)
	}

	cfg := tuner.TrainConfig{
		Epochs:        *epochs,
		Batch:         *batchSize,
		ScaleK:        *scaleK,
		Shuffle:       *shuffle,
		Workers:       *threads,
		ValFrac:       *valFrac,
		CheckpointDir: *checkpoint,
		EvalSaveDir:   *evalSave,
	}

	if *journalDir != "" {
		jr, err := journal.Open(*journalDir)
		if err != nil {
			return err
		}
		defer jr.Close()

		rec := journal.NewRun(src, strings.ToLower(*ruleName), *eta)
		rec.Batch = *batchSize
		rec.ScaleK = *scaleK
		if err := jr.PutRun(rec); err != nil {
			return fmt.Errorf("record run: %w", err)
		}
		fmt.Printf("Journal run %s\n", rec.ID)
		cfg.OnEpoch = func(s tuner.EpochStats) {
			if err := jr.AppendEpoch(rec.ID, s); err != nil {
				fmt.Fprintf(os.Stderr, "journal epoch %d: %v\n", s.Epoch, err)
			}
		}
	}

	if err := tr.Train(context.Background(), data, cfg); err != nil {
		return fmt.Errorf("train: %w", err)
	}

	if err := ev.Save(*outDir); err != nil {
		return fmt.Errorf("save eval tables: %w", err)
	}
	fmt.Printf("Saved tuned tables to %s\n", *outDir)
	return nil
}
