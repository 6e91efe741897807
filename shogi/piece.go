package shogi

// Color of a player. Black moves first.
type Color int8

const (
	Black Color = iota
	White
	ColorNB
)

// Flip returns the other side.
func (c Color) Flip() Color { return 1 - c }

func (c Color) String() string {
	if c == Black {
		return "black"
	}
	return "white"
}

// PieceKind is a piece role independent of ownership. Promoted pawn, lance,
// knight and silver move like gold but remain distinct kinds so a position
// can be written back out losslessly.
type PieceKind uint8

const (
	KindNone PieceKind = iota
	Pawn
	Lance
	Knight
	Silver
	Gold
	Bishop
	Rook
	King
	ProPawn
	ProLance
	ProKnight
	ProSilver
	Horse
	Dragon
	KindNB
)

// HandKindNB counts the droppable kinds (pawn through rook); gold sits at
// index 4 because hands hold unpromoted pieces only.
const HandKindNB = 7

// handIndex maps a droppable kind to its slot in a Hand.
func handIndex(k PieceKind) int { return int(k - Pawn) }

// MaxHandCount is the largest number of pieces of each droppable kind one
// side can hold.
var MaxHandCount = [HandKindNB]uint8{18, 4, 4, 4, 4, 2, 2}

// Piece is a kind bound to an owner, or NoPiece for an empty square.
type Piece uint8

const NoPiece Piece = 0

const pieceColorShift = 4

// MakePiece binds kind k to color c.
func MakePiece(c Color, k PieceKind) Piece {
	return Piece(uint8(k) | uint8(c)<<pieceColorShift)
}

// Kind returns the piece role.
func (p Piece) Kind() PieceKind { return PieceKind(p & (1<<pieceColorShift - 1)) }

// Color returns the owner. Only meaningful when p != NoPiece.
func (p Piece) Color() Color { return Color(p >> pieceColorShift) }

// Promote returns the promoted counterpart of k, or k itself when k does
// not promote.
func Promote(k PieceKind) PieceKind {
	switch k {
	case Pawn:
		return ProPawn
	case Lance:
		return ProLance
	case Knight:
		return ProKnight
	case Silver:
		return ProSilver
	case Bishop:
		return Horse
	case Rook:
		return Dragon
	}
	return k
}

// Demote returns the base kind of k with any promotion removed.
func Demote(k PieceKind) PieceKind {
	switch k {
	case ProPawn:
		return Pawn
	case ProLance:
		return Lance
	case ProKnight:
		return Knight
	case ProSilver:
		return Silver
	case Horse:
		return Bishop
	case Dragon:
		return Rook
	}
	return k
}

// kindLetters holds the SFEN letter for each unpromoted kind.
var kindLetters = [KindNB]byte{
	Pawn: 'P', Lance: 'L', Knight: 'N', Silver: 'S',
	Gold: 'G', Bishop: 'B', Rook: 'R', King: 'K',
}

// kindFromLetter resolves an upper-case SFEN letter to a kind.
func kindFromLetter(ch byte) PieceKind {
	switch ch {
	case 'P':
		return Pawn
	case 'L':
		return Lance
	case 'N':
		return Knight
	case 'S':
		return Silver
	case 'G':
		return Gold
	case 'B':
		return Bishop
	case 'R':
		return Rook
	case 'K':
		return King
	}
	return KindNone
}

// Hand holds the in-hand piece counts for one side, indexed pawn through
// rook.
type Hand [HandKindNB]uint8

// Count returns how many pieces of droppable kind k are held.
func (h Hand) Count(k PieceKind) int { return int(h[handIndex(k)]) }

// Add puts n pieces of kind k into the hand.
func (h *Hand) Add(k PieceKind, n int) { h[handIndex(k)] += uint8(n) }

// IsEmpty reports whether the hand holds nothing.
func (h Hand) IsEmpty() bool {
	for _, n := range h {
		if n != 0 {
			return false
		}
	}
	return true
}
