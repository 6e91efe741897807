// tuner/features.go
package tuner

import (
	"fmt"

	"shogi-kppt/kppt"
	"shogi-kppt/shogi"
)

// KK is the king-versus-king feature: both king squares, black's king
// first. KK entries are never folded, so each one is its own symmetry
// class.
type KK struct {
	King0, King1 shogi.Square
}

// IsKKIndex reports whether index falls in the KK slice of the space.
func IsKKIndex(index uint64) bool { return index < KKMaxIndex }

// KKFromIndex decodes a global index back into a KK feature. Passing
// an index outside the KK slice is a caller bug and panics.
func KKFromIndex(index uint64) KK {
	if !IsKKIndex(index) {
		panic(fmt.Sprintf("tuner: index %d outside the KK range", index))
	}
	index -= KKMinIndex
	k1 := shogi.Square(index % squareNB)
	index /= squareNB
	return KK{shogi.Square(index), k1}
}

// Index returns the feature's global serial index.
func (f KK) Index() uint64 {
	return KKMinIndex + uint64(f.King0)*squareNB + uint64(f.King1)
}

// LowerDimensions returns the feature's symmetry class, which for KK
// is just the feature itself.
func (f KK) LowerDimensions() [1]KK {
	return [1]KK{f}
}

// KKP relates both kings to one other piece.
type KKP struct {
	King0, King1 shogi.Square
	Piece        kppt.BonaPiece
}

// IsKKPIndex reports whether index falls in the KKP slice of the space.
func IsKKPIndex(index uint64) bool { return KKPMinIndex <= index && index < KKPMaxIndex }

// KKPFromIndex decodes a global index back into a KKP feature. Passing
// an index outside the KKP slice is a caller bug and panics.
func KKPFromIndex(index uint64) KKP {
	if !IsKKPIndex(index) {
		panic(fmt.Sprintf("tuner: index %d outside the KKP range", index))
	}
	index -= KKPMinIndex
	p := kppt.BonaPiece(index % feEnd)
	index /= feEnd
	k1 := shogi.Square(index % squareNB)
	index /= squareNB
	return KKP{shogi.Square(index), k1, p}
}

// Index returns the feature's global serial index.
func (f KKP) Index() uint64 {
	return KKPMinIndex + (uint64(f.King0)*squareNB+uint64(f.King1))*feEnd + uint64(f.Piece)
}

// LowerDimensions returns the feature's symmetry class: itself and its
// left-right mirror.
func (f KKP) LowerDimensions(st *Tables) [2]KKP {
	return [2]KKP{
		f,
		{shogi.MirrorSquare(f.King0), shogi.MirrorSquare(f.King1), st.MirPiece(f.Piece)},
	}
}

// KPP relates one king to a pair of pieces. The pair is unordered in
// meaning but both orders are stored, which is why the swap belongs to
// the symmetry class.
type KPP struct {
	King           shogi.Square
	Piece0, Piece1 kppt.BonaPiece
}

// IsKPPIndex reports whether index falls in the KPP slice of the space.
func IsKPPIndex(index uint64) bool { return KPPMinIndex <= index && index < KPPMaxIndex }

// KPPFromIndex decodes a global index back into a KPP feature. Passing
// an index outside the KPP slice is a caller bug and panics.
func KPPFromIndex(index uint64) KPP {
	if !IsKPPIndex(index) {
		panic(fmt.Sprintf("tuner: index %d outside the KPP range", index))
	}
	index -= KPPMinIndex
	p1 := kppt.BonaPiece(index % feEnd)
	index /= feEnd
	p0 := kppt.BonaPiece(index % feEnd)
	index /= feEnd
	return KPP{shogi.Square(index), p0, p1}
}

// Index returns the feature's global serial index.
func (f KPP) Index() uint64 {
	return KPPMinIndex + (uint64(f.King)*feEnd+uint64(f.Piece0))*feEnd + uint64(f.Piece1)
}

// LowerDimensions returns the feature's symmetry class: itself, the
// swapped pair, and the left-right mirrors of both.
func (f KPP) LowerDimensions(st *Tables) [4]KPP {
	mk := shogi.MirrorSquare(f.King)
	m0 := st.MirPiece(f.Piece0)
	m1 := st.MirPiece(f.Piece1)
	return [4]KPP{
		f,
		{f.King, f.Piece1, f.Piece0},
		{mk, m0, m1},
		{mk, m1, m0},
	}
}
