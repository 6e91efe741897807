// tuner/binary_format.go
package tuner

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"shogi-kppt/shogi"
)

// BinarySample is the fixed-size on-disk form of one training row. A
// packed dataset starts with a uint64 record count, followed by the
// records little-endian with no padding, so record i sits at byte
// offset 8 + i*BinarySampleSize.
type BinarySample struct {
	Board [shogi.SquareNB]uint8 // piece codes, 0 for empty
	Hands [2][shogi.HandKindNB]uint8
	STM   uint8
	Label float32
	Score int16
	Ply   uint16
}

// BinarySampleSize is the packed size of one record: 81+14+1+4+2+2.
const BinarySampleSize = 104

// ToBinary packs s for writing.
func (s *Sample) ToBinary() BinarySample {
	b := BinarySample{
		STM:   uint8(s.Pos.Side),
		Label: float32(s.Label),
		Score: s.Score,
		Ply:   s.Ply,
	}
	for sq, pc := range s.Pos.Board {
		b.Board[sq] = uint8(pc)
	}
	for c := 0; c < 2; c++ {
		b.Hands[c] = [shogi.HandKindNB]uint8(s.Pos.Hands[c])
	}
	return b
}

// ToSample unpacks b into a live position.
func (b *BinarySample) ToSample() (Sample, error) {
	pos := shogi.NewPosition()
	for sq, v := range b.Board {
		pc := shogi.Piece(v)
		if pc == shogi.NoPiece {
			continue
		}
		if pc.Color() > shogi.White || pc.Kind() == shogi.KindNone || pc.Kind() >= shogi.KindNB {
			return Sample{}, fmt.Errorf("bad piece code %d at square %d", v, sq)
		}
		pos.SetPiece(shogi.Square(sq), pc)
	}
	for c := 0; c < 2; c++ {
		pos.Hands[c] = shogi.Hand(b.Hands[c])
	}
	if b.STM > 1 {
		return Sample{}, fmt.Errorf("bad side-to-move byte %d", b.STM)
	}
	pos.Side = shogi.Color(b.STM)
	pos.Ply = int(b.Ply)
	if pos.KingSquare(shogi.Black) == shogi.SquareNone || pos.KingSquare(shogi.White) == shogi.SquareNone {
		return Sample{}, fmt.Errorf("missing king in binary sample")
	}
	return Sample{Pos: pos, Label: float64(b.Label), Score: b.Score, Ply: b.Ply}, nil
}

// WriteBinary writes samples to path in the packed format.
func WriteBinary(path string, samples []Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriterSize(f, 1<<20)
	if err := binary.Write(w, binary.LittleEndian, uint64(len(samples))); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := range samples {
		b := samples[i].ToBinary()
		if err := binary.Write(w, binary.LittleEndian, &b); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
	}
	return w.Flush()
}

// ConvertToBinary reads a text dataset and writes its packed form.
func ConvertToBinary(inPath, outPath string, isCSV bool, maxRows int) error {
	samples, err := LoadDataset(inPath, isCSV, maxRows)
	if err != nil {
		return err
	}
	fmt.Printf("loaded %d samples, writing %s\n", len(samples), outPath)
	if err := WriteBinary(outPath, samples); err != nil {
		return err
	}
	fmt.Printf("wrote %d records (%d bytes each)\n", len(samples), BinarySampleSize)
	return nil
}

// LoadBinaryDataset reads every record from a packed dataset. maxRows
// caps the result when positive.
func LoadBinaryDataset(path string, maxRows int) ([]Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := bufio.NewReaderSize(f, 1<<20)
	var count uint64
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	n := int(count)
	if maxRows > 0 && maxRows < n {
		n = maxRows
	}

	samples := make([]Sample, 0, n)
	var b BinarySample
	for i := 0; i < n; i++ {
		if err := binary.Read(r, binary.LittleEndian, &b); err != nil {
			return nil, fmt.Errorf("read record %d: %w", i, err)
		}
		s, err := b.ToSample()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		samples = append(samples, s)
	}
	return samples, nil
}

// LoadBinaryBatch reads up to n records starting at record offset. A
// short batch at end of file is not an error.
func LoadBinaryBatch(path string, offset, n int) ([]Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.Seek(8+int64(offset)*BinarySampleSize, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek record %d: %w", offset, err)
	}
	r := bufio.NewReaderSize(f, 1<<20)
	samples := make([]Sample, 0, n)
	var b BinarySample
	for i := 0; i < n; i++ {
		if err := binary.Read(r, binary.LittleEndian, &b); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				break
			}
			return nil, fmt.Errorf("read record %d: %w", offset+i, err)
		}
		s, err := b.ToSample()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", offset+i, err)
		}
		samples = append(samples, s)
	}
	return samples, nil
}

// GetBinaryDatasetSize reads just the record count header.
func GetBinaryDatasetSize(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	var count uint64
	if err := binary.Read(f, binary.LittleEndian, &count); err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}
	return int(count), nil
}
