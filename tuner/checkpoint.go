// tuner/checkpoint.go
package tuner

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
)

// weightSlab bounds the scratch buffer binary.Write allocates per
// call; the full weight array is close to 4GB.
const weightSlab = 1 << 20

// SaveWeights writes the optimizer state: a uint64 count followed by
// the packed records, WeightRecordSize bytes each.
func SaveWeights(path string, weights []Weight) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriterSize(f, 1<<20)
	if err := binary.Write(w, binary.LittleEndian, uint64(len(weights))); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for off := 0; off < len(weights); off += weightSlab {
		end := min(off+weightSlab, len(weights))
		if err := binary.Write(w, binary.LittleEndian, weights[off:end]); err != nil {
			return fmt.Errorf("write weights at %d: %w", off, err)
		}
	}
	return w.Flush()
}

// LoadWeights fills weights from a file written by SaveWeights. The
// stored count must match len(weights); the caller allocates.
func LoadWeights(path string, weights []Weight) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := bufio.NewReaderSize(f, 1<<20)
	var count uint64
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	if count != uint64(len(weights)) {
		return fmt.Errorf("weight count mismatch: file has %d, want %d", count, len(weights))
	}
	for off := 0; off < len(weights); off += weightSlab {
		end := min(off+weightSlab, len(weights))
		if err := binary.Read(r, binary.LittleEndian, weights[off:end]); err != nil {
			return fmt.Errorf("read weights at %d: %w", off, err)
		}
	}
	return nil
}
