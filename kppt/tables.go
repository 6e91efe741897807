package kppt

import "shogi-kppt/shogi"

// FVScale divides the raw table sum down to centipawns.
const FVScale = 32

// Value is an evaluation score in centipawns from the side to move's
// point of view.
type Value int32

// Each table entry carries two channels: index 0 is the board value
// from black's point of view, index 1 the bonus for the side to move.
type (
	KKValue  [2]int32
	KKPValue [2]int32
	KPPValue [2]int16
)

type (
	KKTable  [shogi.SquareNB][shogi.SquareNB]KKValue
	KKPTable [shogi.SquareNB][shogi.SquareNB][FEEnd]KKPValue
	KPPTable [shogi.SquareNB][FEEnd][FEEnd]KPPValue
)

// EvalTable holds the three weight tables. The KPP table alone runs to
// roughly 740MB, so a process keeps exactly one of these.
type EvalTable struct {
	KK  *KKTable
	KKP *KKPTable
	KPP *KPPTable
}

// NewEvalTable allocates a zeroed table set.
func NewEvalTable() *EvalTable {
	return &EvalTable{
		KK:  new(KKTable),
		KKP: new(KKPTable),
		KPP: new(KPPTable),
	}
}

// Evaluate scores pos against ev. The board channel flips sign for
// white, the turn channel follows the side to move, and the combined
// sum is scaled down by FVScale.
func Evaluate(pos *shogi.Position, ev *EvalTable) Value {
	var fb, fw [PieceListLen]BonaPiece
	n := BuildLists(pos, &fb, &fw)

	bk := pos.KingSquare(shogi.Black)
	wk := pos.KingSquare(shogi.White)

	kk := ev.KK[bk][wk]
	board := kk[0]
	turn := kk[1]

	kkp := &ev.KKP[bk][wk]
	kppB := &ev.KPP[bk]
	kppW := &ev.KPP[shogi.InverseSquare(wk)]

	for i := 0; i < n; i++ {
		b0, w0 := fb[i], fw[i]
		board += kkp[b0][0]
		turn += kkp[b0][1]
		for j := 0; j < i; j++ {
			vb := kppB[b0][fb[j]]
			vw := kppW[w0][fw[j]]
			board += int32(vb[0]) - int32(vw[0])
			turn += int32(vb[1]) + int32(vw[1])
		}
	}

	if pos.Side == shogi.White {
		board = -board
	}
	return Value((board + turn) / FVScale)
}
