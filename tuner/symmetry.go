// tuner/symmetry.go
package tuner

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"shogi-kppt/kppt"
	"shogi-kppt/shogi"
)

// Tables holds the symmetry context for the whole index space: the
// piece-code involutions and the canonical-index flags. Build it once
// with NewTables before encoding or folding anything; afterwards it is
// immutable and safe to share across goroutines.
type Tables struct {
	invPiece [kppt.FEEnd]kppt.BonaPiece
	mirPiece [kppt.FEEnd]kppt.BonaPiece

	// minIndexFlag is set for exactly one member of every symmetry
	// class: the numerically smallest index in it.
	minIndexFlag bitset
}

// InvPiece returns p as seen from the opposing side.
func (st *Tables) InvPiece(p kppt.BonaPiece) kppt.BonaPiece { return st.invPiece[p] }

// MirPiece returns p reflected across the board's left-right axis.
func (st *Tables) MirPiece(p kppt.BonaPiece) kppt.BonaPiece { return st.mirPiece[p] }

// IsMinIndex reports whether index is the canonical member of its
// symmetry class.
func (st *Tables) IsMinIndex(index uint64) bool { return st.minIndexFlag.get(index) }

// NewTables builds the symmetry context. Flagging the canonical
// indices scans all two hundred million of them, so the scan is
// partitioned across the CPUs; it runs once per process, in seconds.
func NewTables() *Tables {
	st := &Tables{minIndexFlag: newBitset(IndexSpaceSize)}
	st.initPieceTables()

	var g errgroup.Group
	workers := runtime.GOMAXPROCS(0)
	// Chunks are multiples of 64 indices so that no two workers ever
	// touch the same word of the flag bitset.
	chunk := (IndexSpaceSize/uint64(workers) + 64) &^ 63
	for lo := uint64(0); lo < IndexSpaceSize; lo += chunk {
		lo := lo
		hi := lo + chunk
		if hi > IndexSpaceSize {
			hi = IndexSpaceSize
		}
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if st.classMinIndex(i) == i {
					st.minIndexFlag.set(i)
				}
			}
			return nil
		})
	}
	_ = g.Wait()
	return st
}

// initPieceTables fills the involutions. Codes start as their own
// image, which already covers hand mirroring and the reserve slots of
// the hand blocks; the loops below overwrite the paired entries.
func (st *Tables) initPieceTables() {
	for p := kppt.BonaPiece(0); p < kppt.FEEnd; p++ {
		st.invPiece[p] = p
		st.mirPiece[p] = p
	}

	// A piece in hand looks the same from both edges of the board, so
	// mirroring keeps the code and only the owner flips on inversion.
	for _, blk := range kppt.HandBlocks {
		for i := 0; i < blk.Used; i++ {
			f := blk.F + kppt.BonaPiece(i)
			e := blk.E + kppt.BonaPiece(i)
			st.invPiece[f] = e
			st.invPiece[e] = f
		}
	}

	// Board codes swap owner and rotate the square on inversion, and
	// keep the owner while flipping the file on mirroring.
	for _, blk := range kppt.BoardBlocks {
		for sq := shogi.Square(0); sq < shogi.SquareNB; sq++ {
			f := blk.F + kppt.BonaPiece(sq)
			e := blk.E + kppt.BonaPiece(sq)
			inv := kppt.BonaPiece(shogi.InverseSquare(sq))
			mir := kppt.BonaPiece(shogi.MirrorSquare(sq))
			st.invPiece[f] = blk.E + inv
			st.invPiece[e] = blk.F + inv
			st.mirPiece[f] = blk.F + mir
			st.mirPiece[e] = blk.E + mir
		}
	}
}

// classMinIndex returns the smallest index in the symmetry class of
// index.
func (st *Tables) classMinIndex(index uint64) uint64 {
	switch {
	case IsKKIndex(index):
		return index
	case IsKKPIndex(index):
		lows := KKPFromIndex(index).LowerDimensions(st)
		m := lows[0].Index()
		if i := lows[1].Index(); i < m {
			m = i
		}
		return m
	default:
		lows := KPPFromIndex(index).LowerDimensions(st)
		m := lows[0].Index()
		for _, lf := range lows[1:] {
			if i := lf.Index(); i < m {
				m = i
			}
		}
		return m
	}
}
