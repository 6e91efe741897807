package kppt

import "shogi-kppt/shogi"

// PieceListLen is the number of non-king pieces in a regulation game:
// forty pieces less the two kings.
const PieceListLen = 38

// BuildLists fills fb with the codes of every non-king piece of pos
// from black's point of view and fw with the same pieces from white's,
// keeping the two lists index-aligned. It returns the number of
// entries written. Board squares in fw are inverted so that each side
// sees its own king at the same orientation.
func BuildLists(pos *shogi.Position, fb, fw *[PieceListLen]BonaPiece) int {
	n := 0
	put := func(b, w BonaPiece) {
		if n >= PieceListLen {
			panic("kppt: position holds more than 38 non-king pieces")
		}
		fb[n] = b
		fw[n] = w
		n++
	}

	for c := shogi.Black; c < shogi.ColorNB; c++ {
		for k := shogi.Pawn; k <= shogi.Rook; k++ {
			cnt := pos.Hands[c].Count(k)
			for i := 0; i < cnt; i++ {
				put(HandPiece(c, k, i), HandPiece(c.Flip(), k, i))
			}
		}
	}

	for sq := shogi.Square(0); sq < shogi.SquareNB; sq++ {
		pc := pos.PieceOn(sq)
		if pc == shogi.NoPiece || pc.Kind() == shogi.King {
			continue
		}
		c, k := pc.Color(), pc.Kind()
		put(BoardPiece(c, k, sq), BoardPiece(c.Flip(), k, shogi.InverseSquare(sq)))
	}

	return n
}
