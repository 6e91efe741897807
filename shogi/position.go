package shogi

// Position is a static shogi position: board occupancy, both hands, and the
// side to move. There is no move generation here; positions arrive fully
// formed from game records and the training pipeline only reads them.
type Position struct {
	Board [SquareNB]Piece
	Hands [ColorNB]Hand
	Side  Color
	Ply   int

	kings [ColorNB]Square
}

// NewPosition returns an empty position with both kings off the board.
func NewPosition() *Position {
	p := &Position{}
	p.kings[Black] = SquareNone
	p.kings[White] = SquareNone
	return p
}

// PieceOn returns the piece occupying sq, or NoPiece.
func (p *Position) PieceOn(sq Square) Piece { return p.Board[sq] }

// SetPiece places pc on sq, tracking king squares.
func (p *Position) SetPiece(sq Square, pc Piece) {
	p.Board[sq] = pc
	if pc != NoPiece && pc.Kind() == King {
		p.kings[pc.Color()] = sq
	}
}

// KingSquare returns the square of c's king, or SquareNone if absent.
func (p *Position) KingSquare(c Color) Square { return p.kings[c] }

// PieceCount returns the number of pieces on the board, kings included.
func (p *Position) PieceCount() int {
	n := 0
	for _, pc := range p.Board {
		if pc != NoPiece {
			n++
		}
	}
	return n
}
