package shogi

import "fmt"

// Square identifies one of the 81 board squares. Numbering is file-major
// starting from the top-right corner as seen from Black: square 0 is file 1
// rank 1, square 8 is file 1 rank 9, square 9 is file 2 rank 1, and so on
// up to square 80 at file 9 rank 9.
type Square int8

const (
	SquareNB   = 81
	FileNB     = 9
	RankNB     = 9
	SquareNone Square = -1
)

// File returns the 0-based file of sq (0 = shogi file 1, the rightmost).
func (sq Square) File() int { return int(sq) / RankNB }

// Rank returns the 0-based rank of sq (0 = rank one, the top).
func (sq Square) Rank() int { return int(sq) % RankNB }

// NewSquare builds a square from 0-based file and rank.
func NewSquare(file, rank int) Square {
	return Square(file*RankNB + rank)
}

// IsValid reports whether sq lies on the board.
func (sq Square) IsValid() bool { return 0 <= sq && sq < SquareNB }

// MirrorSquare reflects sq across the central file. Applying it twice is
// the identity.
func MirrorSquare(sq Square) Square {
	return NewSquare(FileNB-1-sq.File(), sq.Rank())
}

// InverseSquare rotates sq 180 degrees, i.e. the same square as seen from
// the opposing player. Applying it twice is the identity.
func InverseSquare(sq Square) Square {
	return SquareNB - 1 - sq
}

// String renders the square in the usual file-then-rank notation, e.g. "7f".
func (sq Square) String() string {
	if !sq.IsValid() {
		return "??"
	}
	return fmt.Sprintf("%d%c", sq.File()+1, 'a'+sq.Rank())
}
