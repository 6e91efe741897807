package kppt

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
)

// On-disk file names. Each file is the raw little-endian table with no
// header, so the sizes are fixed by the table dimensions.
const (
	KKFileName  = "KK_synthesized.bin"
	KKPFileName = "KKP_synthesized.bin"
	KPPFileName = "KPP_synthesized.bin"
)

// Save writes the three table files into dir.
func (ev *EvalTable) Save(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create eval dir: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, KKFileName))
	if err != nil {
		return fmt.Errorf("create %s: %w", KKFileName, err)
	}
	if err := binary.Write(f, binary.LittleEndian, ev.KK); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", KKFileName, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", KKFileName, err)
	}

	f, err = os.Create(filepath.Join(dir, KKPFileName))
	if err != nil {
		return fmt.Errorf("create %s: %w", KKPFileName, err)
	}
	// One king-square slab at a time keeps the encoding buffer small.
	for bk := 0; bk < len(ev.KKP); bk++ {
		if err := binary.Write(f, binary.LittleEndian, &ev.KKP[bk]); err != nil {
			f.Close()
			return fmt.Errorf("write %s slab %d: %w", KKPFileName, bk, err)
		}
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", KKPFileName, err)
	}

	f, err = os.Create(filepath.Join(dir, KPPFileName))
	if err != nil {
		return fmt.Errorf("create %s: %w", KPPFileName, err)
	}
	for k := 0; k < len(ev.KPP); k++ {
		if err := binary.Write(f, binary.LittleEndian, &ev.KPP[k]); err != nil {
			f.Close()
			return fmt.Errorf("write %s slab %d: %w", KPPFileName, k, err)
		}
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", KPPFileName, err)
	}

	return nil
}

// Load reads the three table files from dir into ev.
func (ev *EvalTable) Load(dir string) error {
	f, err := os.Open(filepath.Join(dir, KKFileName))
	if err != nil {
		return fmt.Errorf("open %s: %w", KKFileName, err)
	}
	if err := binary.Read(f, binary.LittleEndian, ev.KK); err != nil {
		f.Close()
		return fmt.Errorf("read %s: %w", KKFileName, err)
	}
	f.Close()

	f, err = os.Open(filepath.Join(dir, KKPFileName))
	if err != nil {
		return fmt.Errorf("open %s: %w", KKPFileName, err)
	}
	for bk := 0; bk < len(ev.KKP); bk++ {
		if err := binary.Read(f, binary.LittleEndian, &ev.KKP[bk]); err != nil {
			f.Close()
			return fmt.Errorf("read %s slab %d: %w", KKPFileName, bk, err)
		}
	}
	f.Close()

	f, err = os.Open(filepath.Join(dir, KPPFileName))
	if err != nil {
		return fmt.Errorf("open %s: %w", KPPFileName, err)
	}
	for k := 0; k < len(ev.KPP); k++ {
		if err := binary.Read(f, binary.LittleEndian, &ev.KPP[k]); err != nil {
			f.Close()
			return fmt.Errorf("read %s slab %d: %w", KPPFileName, k, err)
		}
	}
	f.Close()

	return nil
}
