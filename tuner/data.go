// tuner/data.go
package tuner

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"shogi-kppt/kppt"
	"shogi-kppt/shogi"
)

// parseLabel turns a game outcome field into black's expected score:
// 1 for a black win, 0 for a white win, 0.5 for a draw. Bare floats in
// [0,1] pass through, so pre-computed win rates work too.
func parseLabel(s string) (float64, error) {
	switch strings.TrimSpace(s) {
	case "1-0":
		return 1, nil
	case "0-1":
		return 0, nil
	case "1/2-1/2", "1/2", "0.5":
		return 0.5, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("bad result %q", s)
	}
	if f < 0 || f > 1 {
		return 0, fmt.Errorf("result %v outside [0,1]", f)
	}
	return f, nil
}

// sfenToSample validates one dataset row. Positions missing a king or
// holding more pieces than a feature list can carry are rejected here
// instead of crashing the gradient pass.
func sfenToSample(sfen string, label float64, score int16) (Sample, error) {
	pos, err := shogi.ParseSFEN(sfen)
	if err != nil {
		return Sample{}, err
	}
	if pos.KingSquare(shogi.Black) == shogi.SquareNone || pos.KingSquare(shogi.White) == shogi.SquareNone {
		return Sample{}, fmt.Errorf("missing king in %q", sfen)
	}
	n := 0
	for _, pc := range pos.Board {
		if pc != shogi.NoPiece && pc.Kind() != shogi.King {
			n++
		}
	}
	for c := shogi.Black; c < shogi.ColorNB; c++ {
		for k := shogi.Pawn; k <= shogi.Rook; k++ {
			n += pos.Hands[c].Count(k)
		}
	}
	if n > kppt.PieceListLen {
		return Sample{}, fmt.Errorf("%d non-king pieces in %q", n, sfen)
	}
	return Sample{Pos: pos, Label: label, Score: score, Ply: uint16(pos.Ply)}, nil
}

// LoadDataset reads SFEN training rows from path: sfen, result, and an
// optional engine score per record, tab-separated by default or
// comma-separated when isCSV is set. Unparseable rows are skipped.
// maxRows caps the result when positive.
func LoadDataset(path string, isCSV bool, maxRows int) ([]Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'
	if isCSV {
		r.Comma = ','
	}
	r.FieldsPerRecord = -1

	var samples []Sample
	skipped := 0
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read dataset: %w", err)
		}
		if len(rec) < 2 {
			skipped++
			continue
		}
		label, err := parseLabel(rec[1])
		if err != nil {
			skipped++
			continue
		}
		var score int16
		if len(rec) >= 3 {
			if v, err := strconv.Atoi(strings.TrimSpace(rec[2])); err == nil {
				score = int16(v)
			}
		}
		s, err := sfenToSample(rec[0], label, score)
		if err != nil {
			skipped++
			continue
		}
		samples = append(samples, s)
		if maxRows > 0 && len(samples) >= maxRows {
			break
		}
	}
	if skipped > 0 {
		fmt.Printf("dataset: skipped %d bad rows\n", skipped)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("no usable rows in %s", path)
	}
	return samples, nil
}
