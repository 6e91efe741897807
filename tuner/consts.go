// tuner/consts.go
package tuner

import (
	"shogi-kppt/kppt"
	"shogi-kppt/shogi"
)

// The three feature families serialize into one contiguous index
// space: KK first, then KKP, then KPP, each family starting exactly
// where the previous one ends. Persisted weight files are addressed by
// these offsets, so the chaining is a layout contract rather than a
// convenience.
const (
	squareNB = uint64(shogi.SquareNB)
	feEnd    = uint64(kppt.FEEnd)

	KKMinIndex  uint64 = 0
	KKMaxIndex         = KKMinIndex + squareNB*squareNB
	KKPMinIndex        = KKMaxIndex
	KKPMaxIndex        = KKPMinIndex + squareNB*squareNB*feEnd
	KPPMinIndex        = KKPMaxIndex
	KPPMaxIndex        = KPPMinIndex + squareNB*feEnd*feEnd

	// IndexSpaceSize is the total number of trainable parameters,
	// a little over 204 million.
	IndexSpaceSize = KPPMaxIndex
)
