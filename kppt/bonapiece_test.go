package kppt

import (
	"testing"

	"shogi-kppt/shogi"
)

func TestBonaPieceLayout(t *testing.T) {
	if FEHandEnd != 90 {
		t.Fatalf("FEHandEnd = %d, want 90", FEHandEnd)
	}
	if FPawn != 90 {
		t.Fatalf("FPawn = %d, want 90", FPawn)
	}
	if FGold != 738 || EGold != 819 {
		t.Fatalf("gold block at %d/%d, want 738/819", FGold, EGold)
	}
	if FDragon != 1386 || EDragon != 1467 {
		t.Fatalf("dragon block at %d/%d, want 1386/1467", FDragon, EDragon)
	}
	if FEEnd != 1548 {
		t.Fatalf("FEEnd = %d, want 1548", FEEnd)
	}
}

func TestBoardBlocksTile(t *testing.T) {
	// The board blocks must tile [FEHandEnd, FEEnd) without gaps.
	next := FEHandEnd
	for _, blk := range BoardBlocks {
		if blk.F != next {
			t.Fatalf("block %d starts at %d, want %d", blk.F, blk.F, next)
		}
		if blk.E != blk.F+shogi.SquareNB {
			t.Fatalf("block %d: E = %d, want %d", blk.F, blk.E, blk.F+shogi.SquareNB)
		}
		if blk.Used != shogi.SquareNB {
			t.Fatalf("block %d: Used = %d, want %d", blk.F, blk.Used, shogi.SquareNB)
		}
		next = blk.E + shogi.SquareNB
	}
	if next != FEEnd {
		t.Fatalf("board blocks end at %d, want %d", next, FEEnd)
	}
}

func TestHandBlocksWithinBounds(t *testing.T) {
	for _, blk := range HandBlocks {
		if blk.F+BonaPiece(blk.Used) > blk.E {
			t.Fatalf("hand block %d: %d used codes overrun paired block at %d", blk.F, blk.Used, blk.E)
		}
		if blk.E+BonaPiece(blk.Used) > FEHandEnd {
			t.Fatalf("hand block %d: white side overruns FEHandEnd", blk.F)
		}
	}
}

func TestBoardPiece(t *testing.T) {
	sq := shogi.NewSquare(2, 2)
	cases := []struct {
		c    shogi.Color
		k    shogi.PieceKind
		base BonaPiece
	}{
		{shogi.Black, shogi.Pawn, FPawn},
		{shogi.White, shogi.Pawn, EPawn},
		{shogi.Black, shogi.Gold, FGold},
		{shogi.Black, shogi.ProPawn, FGold},
		{shogi.Black, shogi.ProLance, FGold},
		{shogi.Black, shogi.ProKnight, FGold},
		{shogi.Black, shogi.ProSilver, FGold},
		{shogi.White, shogi.ProSilver, EGold},
		{shogi.Black, shogi.Horse, FHorse},
		{shogi.White, shogi.Dragon, EDragon},
	}
	for _, tc := range cases {
		if got := BoardPiece(tc.c, tc.k, sq); got != tc.base+BonaPiece(sq) {
			t.Fatalf("BoardPiece(%v, %v, %v) = %d, want %d", tc.c, tc.k, sq, got, tc.base+BonaPiece(sq))
		}
	}
}

func TestHandPiece(t *testing.T) {
	if got := HandPiece(shogi.Black, shogi.Pawn, 0); got != FHandPawn {
		t.Fatalf("first black hand pawn = %d, want %d", got, FHandPawn)
	}
	if got := HandPiece(shogi.Black, shogi.Pawn, 17); got != FHandPawn+17 {
		t.Fatalf("18th black hand pawn = %d, want %d", got, FHandPawn+17)
	}
	if got := HandPiece(shogi.White, shogi.Rook, 1); got != EHandRook+1 {
		t.Fatalf("2nd white hand rook = %d, want %d", got, EHandRook+1)
	}
}
