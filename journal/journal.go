// Package journal persists training-run records in an embedded
// BadgerDB, so separate invocations of the learn command can be listed
// and compared afterwards.
package journal

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"shogi-kppt/tuner"
)

const runKeyPrefix = "run:"

// Run records one training invocation.
type Run struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"started_at"`
	Dataset   string    `json:"dataset"`
	Rule      string    `json:"rule"`
	Eta       float64   `json:"eta"`
	Batch     int       `json:"batch"`
	ScaleK    float64   `json:"scale_k"`

	Epochs []EpochEntry `json:"epochs"`
}

// EpochEntry is one epoch's outcome inside a run.
type EpochEntry struct {
	Epoch   int           `json:"epoch"`
	Loss    float64       `json:"loss"`
	ValLoss float64       `json:"val_loss,omitempty"`
	Samples int           `json:"samples"`
	Elapsed time.Duration `json:"elapsed"`
}

// NewRun stamps a fresh run record with a unique ID.
func NewRun(dataset, rule string, eta float64) *Run {
	return &Run{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
		Dataset:   dataset,
		Rule:      rule,
		Eta:       eta,
	}
}

// AddEpoch appends one epoch's stats to the run.
func (r *Run) AddEpoch(s tuner.EpochStats) {
	r.Epochs = append(r.Epochs, EpochEntry{
		Epoch:   s.Epoch,
		Loss:    s.Loss,
		ValLoss: s.ValLoss,
		Samples: s.Samples,
		Elapsed: s.Elapsed,
	})
}

// LastLoss returns the most recent epoch's training loss, or 0 for a
// run that has not finished an epoch yet.
func (r *Run) LastLoss() float64 {
	if len(r.Epochs) == 0 {
		return 0
	}
	return r.Epochs[len(r.Epochs)-1].Loss
}

// Journal wraps the BadgerDB holding the run records.
type Journal struct {
	db *badger.DB
}

// Open opens or creates the journal database under dir.
func Open(dir string) (*Journal, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	return &Journal{db: db}, nil
}

// Close closes the database.
func (j *Journal) Close() error {
	if j.db != nil {
		return j.db.Close()
	}
	return nil
}

func runKey(id string) []byte { return []byte(runKeyPrefix + id) }

// PutRun writes the run record, replacing any previous version.
func (j *Journal) PutRun(r *Run) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal run %s: %w", r.ID, err)
	}
	return j.db.Update(func(txn *badger.Txn) error {
		return txn.Set(runKey(r.ID), data)
	})
}

// GetRun reads one run by ID.
func (j *Journal) GetRun(id string) (*Run, error) {
	var r Run
	err := j.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(runKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &r)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", id, err)
	}
	return &r, nil
}

// AppendEpoch loads the run, appends the epoch and writes it back.
func (j *Journal) AppendEpoch(id string, s tuner.EpochStats) error {
	r, err := j.GetRun(id)
	if err != nil {
		return err
	}
	r.AddEpoch(s)
	return j.PutRun(r)
}

// Runs returns every recorded run, newest first.
func (j *Journal) Runs() ([]*Run, error) {
	var runs []*Run
	prefix := []byte(runKeyPrefix)
	err := j.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var r Run
				if err := json.Unmarshal(val, &r); err != nil {
					return err
				}
				runs = append(runs, &r)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(runs, func(i, k int) bool {
		return runs[i].StartedAt.After(runs[k].StartedAt)
	})
	return runs, nil
}
