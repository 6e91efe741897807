// Package kppt implements the KPPT evaluation tables: a three-way
// decomposition of a shogi position into king-king, king-king-piece
// and king-piece-piece terms, each carrying a board value and a
// side-to-move bonus.
package kppt

import "shogi-kppt/shogi"

// BonaPiece encodes a piece state as a single small integer. Hand
// pieces occupy the low codes, one code per copy a player may hold.
// Board pieces follow in 81-square blocks, one block per piece kind
// and owner. Owners are written from black's point of view: F blocks
// are black's pieces, E blocks are white's. Kings have no code.
type BonaPiece int32

const (
	BonaPieceZero BonaPiece = 0

	FHandPawn   BonaPiece = 1
	EHandPawn   BonaPiece = 20
	FHandLance  BonaPiece = 39
	EHandLance  BonaPiece = 44
	FHandKnight BonaPiece = 49
	EHandKnight BonaPiece = 54
	FHandSilver BonaPiece = 59
	EHandSilver BonaPiece = 64
	FHandGold   BonaPiece = 69
	EHandGold   BonaPiece = 74
	FHandBishop BonaPiece = 79
	EHandBishop BonaPiece = 82
	FHandRook   BonaPiece = 85
	EHandRook   BonaPiece = 88
	FEHandEnd   BonaPiece = 90

	FPawn   BonaPiece = FEHandEnd
	EPawn   BonaPiece = FPawn + shogi.SquareNB
	FLance  BonaPiece = EPawn + shogi.SquareNB
	ELance  BonaPiece = FLance + shogi.SquareNB
	FKnight BonaPiece = ELance + shogi.SquareNB
	EKnight BonaPiece = FKnight + shogi.SquareNB
	FSilver BonaPiece = EKnight + shogi.SquareNB
	ESilver BonaPiece = FSilver + shogi.SquareNB
	FGold   BonaPiece = ESilver + shogi.SquareNB
	EGold   BonaPiece = FGold + shogi.SquareNB
	FBishop BonaPiece = EGold + shogi.SquareNB
	EBishop BonaPiece = FBishop + shogi.SquareNB
	FHorse  BonaPiece = EBishop + shogi.SquareNB
	EHorse  BonaPiece = FHorse + shogi.SquareNB
	FRook   BonaPiece = EHorse + shogi.SquareNB
	ERook   BonaPiece = FRook + shogi.SquareNB
	FDragon BonaPiece = ERook + shogi.SquareNB
	EDragon BonaPiece = FDragon + shogi.SquareNB
	FEEnd   BonaPiece = EDragon + shogi.SquareNB
)

// handBase maps an owner and a raw piece kind to the first code of
// its hand block.
var handBase = [shogi.ColorNB][shogi.KindNB]BonaPiece{
	shogi.Black: {
		shogi.Pawn:   FHandPawn,
		shogi.Lance:  FHandLance,
		shogi.Knight: FHandKnight,
		shogi.Silver: FHandSilver,
		shogi.Gold:   FHandGold,
		shogi.Bishop: FHandBishop,
		shogi.Rook:   FHandRook,
	},
	shogi.White: {
		shogi.Pawn:   EHandPawn,
		shogi.Lance:  EHandLance,
		shogi.Knight: EHandKnight,
		shogi.Silver: EHandSilver,
		shogi.Gold:   EHandGold,
		shogi.Bishop: EHandBishop,
		shogi.Rook:   EHandRook,
	},
}

// boardBase maps an owner and a piece kind to the first code of its
// board block. Promoted pawns, lances, knights and silvers move like
// golds and share the gold block. Kings map to BonaPieceZero.
var boardBase = [shogi.ColorNB][shogi.KindNB]BonaPiece{
	shogi.Black: {
		shogi.Pawn:      FPawn,
		shogi.Lance:     FLance,
		shogi.Knight:    FKnight,
		shogi.Silver:    FSilver,
		shogi.Gold:      FGold,
		shogi.ProPawn:   FGold,
		shogi.ProLance:  FGold,
		shogi.ProKnight: FGold,
		shogi.ProSilver: FGold,
		shogi.Bishop:    FBishop,
		shogi.Horse:     FHorse,
		shogi.Rook:      FRook,
		shogi.Dragon:    FDragon,
	},
	shogi.White: {
		shogi.Pawn:      EPawn,
		shogi.Lance:     ELance,
		shogi.Knight:    EKnight,
		shogi.Silver:    ESilver,
		shogi.Gold:      EGold,
		shogi.ProPawn:   EGold,
		shogi.ProLance:  EGold,
		shogi.ProKnight: EGold,
		shogi.ProSilver: EGold,
		shogi.Bishop:    EBishop,
		shogi.Horse:     EHorse,
		shogi.Rook:      ERook,
		shogi.Dragon:    EDragon,
	},
}

// HandPiece returns the code of the i-th copy (counting from zero) of
// kind k held in c's hand, seen from black.
func HandPiece(c shogi.Color, k shogi.PieceKind, i int) BonaPiece {
	return handBase[c][k] + BonaPiece(i)
}

// BoardPiece returns the code of kind k owned by c sitting on sq, seen
// from black. k must not be King.
func BoardPiece(c shogi.Color, k shogi.PieceKind, sq shogi.Square) BonaPiece {
	return boardBase[c][k] + BonaPiece(sq)
}

// PieceBlock describes a pair of black/white code blocks covering the
// same piece kind. Used is the number of codes actually reachable in
// each block; hand blocks reserve more room than the piece counts can
// fill.
type PieceBlock struct {
	F, E BonaPiece
	Used int
}

// HandBlocks lists the paired hand code blocks.
var HandBlocks = []PieceBlock{
	{FHandPawn, EHandPawn, 18},
	{FHandLance, EHandLance, 4},
	{FHandKnight, EHandKnight, 4},
	{FHandSilver, EHandSilver, 4},
	{FHandGold, EHandGold, 4},
	{FHandBishop, EHandBishop, 2},
	{FHandRook, EHandRook, 2},
}

// BoardBlocks lists the paired board code blocks, each 81 codes wide.
var BoardBlocks = []PieceBlock{
	{FPawn, EPawn, shogi.SquareNB},
	{FLance, ELance, shogi.SquareNB},
	{FKnight, EKnight, shogi.SquareNB},
	{FSilver, ESilver, shogi.SquareNB},
	{FGold, EGold, shogi.SquareNB},
	{FBishop, EBishop, shogi.SquareNB},
	{FHorse, EHorse, shogi.SquareNB},
	{FRook, ERook, shogi.SquareNB},
	{FDragon, EDragon, shogi.SquareNB},
}
