package shogi

import "testing"

func TestSquareFileRank(t *testing.T) {
	for f := 0; f < FileNB; f++ {
		for r := 0; r < RankNB; r++ {
			sq := NewSquare(f, r)
			if !sq.IsValid() {
				t.Fatalf("NewSquare(%d, %d) = %d, not valid", f, r, sq)
			}
			if sq.File() != f || sq.Rank() != r {
				t.Fatalf("square %d: got file %d rank %d, want %d %d", sq, sq.File(), sq.Rank(), f, r)
			}
		}
	}
}

func TestMirrorSquare(t *testing.T) {
	for sq := Square(0); sq < SquareNB; sq++ {
		m := MirrorSquare(sq)
		if m.Rank() != sq.Rank() {
			t.Fatalf("mirror of %v changed rank: got %v", sq, m)
		}
		if m.File() != FileNB-1-sq.File() {
			t.Fatalf("mirror of %v: got file %d, want %d", sq, m.File(), FileNB-1-sq.File())
		}
		if MirrorSquare(m) != sq {
			t.Fatalf("mirror not an involution at %v", sq)
		}
	}
}

func TestInverseSquare(t *testing.T) {
	for sq := Square(0); sq < SquareNB; sq++ {
		inv := InverseSquare(sq)
		if inv != SquareNB-1-sq {
			t.Fatalf("inverse of %v: got %v", sq, inv)
		}
		if InverseSquare(inv) != sq {
			t.Fatalf("inverse not an involution at %v", sq)
		}
	}
}

func TestPieceRoundTrip(t *testing.T) {
	for c := Black; c < ColorNB; c++ {
		for k := Pawn; k < KindNB; k++ {
			pc := MakePiece(c, k)
			if pc.Color() != c || pc.Kind() != k {
				t.Fatalf("piece %v/%v: got %v/%v", c, k, pc.Color(), pc.Kind())
			}
		}
	}
}

func TestPromoteDemote(t *testing.T) {
	pairs := []struct {
		base, promoted PieceKind
	}{
		{Pawn, ProPawn},
		{Lance, ProLance},
		{Knight, ProKnight},
		{Silver, ProSilver},
		{Bishop, Horse},
		{Rook, Dragon},
	}
	for _, pr := range pairs {
		if got := Promote(pr.base); got != pr.promoted {
			t.Fatalf("Promote(%v) = %v, want %v", pr.base, got, pr.promoted)
		}
		if got := Demote(pr.promoted); got != pr.base {
			t.Fatalf("Demote(%v) = %v, want %v", pr.promoted, got, pr.base)
		}
	}
	if Promote(Gold) != Gold || Promote(King) != King {
		t.Fatalf("gold and king must not promote")
	}
}
